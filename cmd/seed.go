package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hotelforge/seedgen/internal/config"
	"github.com/hotelforge/seedgen/internal/seeder"
)

var (
	seedOutDir     string
	seedSeed       int64
	seedNoTruncate bool
	seedCountsFile string
	seedTables     []string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate synthetic data and bulk-load it into the database",
	Long: `Introspect the target schema, generate constraint-valid rows for every
table, write one CSV per table and load them through COPY in dependency
order. Per-table row counts come from built-in heuristics, optionally
overridden by a YAML file or --table flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFlags(cmd, cfg)

		counts, err := parseTableCounts(seedTables)
		if err != nil {
			return err
		}

		ctx := context.Background()
		s, err := seeder.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		return s.Run(ctx, seeder.RunOptions{
			Counts:   counts,
			Truncate: cfg.Truncate && !seedNoTruncate,
			OutDir:   cfg.OutDir,
			Seed:     cfg.Seed,
		})
	},
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if seedOutDir != "" {
		cfg.OutDir = seedOutDir
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seedSeed
	}
	if seedCountsFile != "" {
		cfg.CountsPath = seedCountsFile
	}
}

// parseTableCounts turns repeated --table name=count flags into a count map.
func parseTableCounts(specs []string) (map[string]int, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	counts := make(map[string]int, len(specs))
	for _, spec := range specs {
		name, val, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --table value %q, expected name=count", spec)
		}
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid row count in --table value %q", spec)
		}
		counts[strings.ToLower(strings.TrimSpace(name))] = n
	}
	return counts, nil
}

func init() {
	seedCmd.Flags().StringVarP(&seedOutDir, "out", "o", "", "Directory for generated CSV files (default from config)")
	seedCmd.Flags().Int64Var(&seedSeed, "seed", 0, "Random seed for reproducible runs (default from config)")
	seedCmd.Flags().BoolVar(&seedNoTruncate, "no-truncate", false, "Skip truncating tables before loading")
	seedCmd.Flags().StringVar(&seedCountsFile, "counts", "", "YAML file with per-table row count overrides")
	seedCmd.Flags().StringArrayVarP(&seedTables, "table", "t", nil, "Per-table row count as name=count (repeatable)")

	rootCmd.AddCommand(seedCmd)
}
