package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hotelforge/seedgen/internal/config"
	"github.com/hotelforge/seedgen/internal/seeder"
)

var planCountsFile string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the load order and row counts without writing anything",
	Long: `Introspect the schema and print the dependency-ordered load plan with
the row count each table would get. No files are written, nothing is
truncated and no rows are loaded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if planCountsFile != "" {
			cfg.CountsPath = planCountsFile
		}

		ctx := context.Background()
		s, err := seeder.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		plan, err := s.BuildPlan(ctx, seeder.RunOptions{})
		if err != nil {
			return err
		}

		color.Cyan("📋 Load plan for schema %s (%d tables)", plan.Snapshot.Schema, len(plan.Order))
		fmt.Println()
		total := 0
		for i, table := range plan.Order {
			fmt.Printf("  %2d. %-40s %d rows\n", i+1, table, plan.Counts[table])
			total += plan.Counts[table]
		}
		fmt.Println()
		color.Green("Total: %d rows", total)
		return nil
	},
}

func init() {
	planCmd.Flags().StringVar(&planCountsFile, "counts", "", "YAML file with per-table row count overrides")
	rootCmd.AddCommand(planCmd)
}
