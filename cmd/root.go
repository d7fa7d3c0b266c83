package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.3.0"
)

func showBanner() {
	color.New(color.FgGreen, color.Bold).Println("seedgen · schema-driven synthetic data for PostgreSQL")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "seedgen",
	Short: "Generate and bulk-load constraint-valid synthetic data from a live schema",
	Long: `
seedgen introspects a running PostgreSQL database, works out a
dependency-safe load order, synthesizes rows that satisfy the schema's
primary keys, foreign keys, enums and unique constraints, writes one CSV
artifact per table and streams it back in through COPY.

The live database is the only source of truth: no schema files, no
models, no annotations.`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("seedgen CLI version %s\n", Version)
			os.Exit(0)
		}

		showBanner()
		fmt.Println()
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./seedgen.config.json)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("seedgen.config")
	}

	viper.AutomaticEnv()

	viper.ReadInConfig()
}
