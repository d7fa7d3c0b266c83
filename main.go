package main

import (
	"os"

	"github.com/hotelforge/seedgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
