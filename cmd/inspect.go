package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hotelforge/seedgen/internal/config"
	"github.com/hotelforge/seedgen/internal/database/postgres"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the introspected schema metadata",
	Long: `Connect to the database and dump what generation would see: tables with
their columns, primary keys, foreign keys, unique columns and enum types.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		dbURL, err := cfg.GetDatabaseURL()
		if err != nil {
			return err
		}

		ctx := context.Background()
		adapter := postgres.New()
		if err := adapter.Connect(ctx, dbURL); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer adapter.Close()

		snap, err := adapter.Snapshot(ctx, cfg.Database.Schema)
		if err != nil {
			return fmt.Errorf("failed to introspect schema: %w", err)
		}

		color.Cyan("🔍 Schema %s: %d tables, %d foreign keys, %d enum types",
			snap.Schema, len(snap.Tables), len(snap.ForeignKeys), len(snap.Enums))
		fmt.Println()

		fkMap := snap.FKMap()
		for _, table := range snap.Tables {
			color.Green("%s", table)
			if pk, ok := snap.PrimaryKeys[table]; ok {
				fmt.Printf("  pk: %s\n", strings.Join(pk.Columns, ", "))
			}
			for _, col := range snap.Columns[table] {
				line := fmt.Sprintf("  %-30s %s", col.Name, col.DataType)
				if !col.Nullable {
					line += " not null"
				}
				if snap.UniqueColumns[table][col.Name] {
					line += " unique"
				}
				if ref, ok := fkMap[table][col.Name]; ok {
					line += fmt.Sprintf(" -> %s.%s", ref.Table, ref.Column)
				}
				fmt.Println(line)
			}
			fmt.Println()
		}

		if len(snap.Enums) > 0 {
			color.Cyan("Enum types:")
			for name, labels := range snap.Enums {
				fmt.Printf("  %s: %s\n", name, strings.Join(labels, ", "))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
