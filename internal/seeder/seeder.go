package seeder

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/hotelforge/seedgen/internal/config"
	"github.com/hotelforge/seedgen/internal/database/postgres"
	"github.com/hotelforge/seedgen/internal/types"
)

// validIdentifier validates SQL identifiers (table/column names) to prevent SQL injection
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func isValidIdentifier(name string) bool {
	return validIdentifier.MatchString(name)
}

type Seeder struct {
	config   *config.Config
	adapter  *postgres.Adapter
	registry *Registry
}

func New(ctx context.Context, cfg *config.Config) (*Seeder, error) {
	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, fmt.Errorf("failed to get database URL: %w", err)
	}

	adapter := postgres.New()
	if err := adapter.Connect(ctx, dbURL); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Seeder{
		config:   cfg,
		adapter:  adapter,
		registry: NewRegistry(),
	}, nil
}

func (s *Seeder) Close() {
	s.adapter.Close()
}

// Plan is the read-only half of Run: snapshot, validation, ordering and
// per-table counts, with nothing written or truncated.
type Plan struct {
	Snapshot *types.Snapshot
	Order    []string
	Counts   map[string]int
}

func (s *Seeder) BuildPlan(ctx context.Context, opts RunOptions) (*Plan, error) {
	snap, err := s.adapter.Snapshot(ctx, s.config.Database.Schema)
	if err != nil {
		return nil, fmt.Errorf("failed to introspect schema: %w", err)
	}
	if len(snap.Tables) == 0 {
		return nil, fmt.Errorf("no tables found in schema %s", s.config.Database.Schema)
	}

	for _, table := range snap.Tables {
		if !isValidIdentifier(table) {
			return nil, fmt.Errorf("invalid table name: %s", table)
		}
		for _, col := range snap.Columns[table] {
			if !isValidIdentifier(col.Name) {
				return nil, fmt.Errorf("invalid column name in table %s: %s", table, col.Name)
			}
		}
	}

	order := LoadOrder(snap.Tables, snap.ForeignKeys)

	counts := DefaultCounts(snap.Tables)
	if s.config.CountsPath != "" {
		overrides, err := LoadOverrides(s.config.CountsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load count overrides: %w", err)
		}
		ApplyOverrides(counts, overrides)
	}
	ApplyOverrides(counts, opts.Counts)

	return &Plan{Snapshot: snap, Order: order, Counts: counts}, nil
}

func (s *Seeder) Run(ctx context.Context, opts RunOptions) error {
	start := time.Now()
	color.Cyan("🌱 Starting synthetic data generation...")

	plan, err := s.BuildPlan(ctx, opts)
	if err != nil {
		return err
	}
	snap := plan.Snapshot

	color.Green("📊 Found %d tables in schema %s", len(snap.Tables), snap.Schema)
	color.Cyan("📋 Load order: %s", strings.Join(plan.Order, " → "))
	fmt.Println()

	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", opts.OutDir, err)
	}

	if opts.Truncate {
		if err := s.adapter.TruncateAll(ctx, snap.Schema, plan.Order); err != nil {
			return fmt.Errorf("failed to truncate tables: %w", err)
		}
		color.Yellow("🧹 Truncated %d tables", len(plan.Order))
	}

	env := &GenContext{
		Gen:    NewDataGenerator(opts.Seed),
		Keys:   make(KeyPool),
		Enums:  snap.Enums,
		Unique: NewUniqueRegistry(),
	}
	fkMap := snap.FKMap()

	var totalRows int64
	for _, table := range plan.Order {
		job := buildJob(table, snap, fkMap, plan.Counts[table])
		if job.Count <= 0 {
			continue
		}

		rows, err := s.registry.For(table).Assemble(job, env)
		if err != nil {
			return fmt.Errorf("failed to generate %s: %w", table, err)
		}

		path, err := WriteCSV(opts.OutDir, table, job.Columns, rows)
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", table, err)
		}

		loaded, err := s.adapter.CopyCSV(ctx, snap.Schema, table, job.ColumnNames(), path)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", table, err)
		}
		totalRows += loaded

		if job.HasPK {
			keys, err := s.adapter.PrimaryKeyValues(ctx, snap.Schema, table, job.PrimaryKey)
			if err != nil {
				return fmt.Errorf("failed to read back keys for %s: %w", table, err)
			}
			env.Keys[table] = keys
		}

		color.Green("  ✓ %s: %d rows", table, loaded)
	}

	color.Green("\n✅ Generated and loaded %d rows across %d tables in %s",
		totalRows, len(plan.Order), time.Since(start).Round(time.Millisecond))
	return nil
}

// buildJob collapses the snapshot's per-table metadata into the flat shape
// the assemblers consume. A single-column primary key is treated as unique
// so ordinal generation never collides with reruns of derived values.
func buildJob(table string, snap *types.Snapshot, fkMap map[string]map[string]types.FKRef, count int) TableJob {
	job := TableJob{
		Table:       table,
		Columns:     snap.Columns[table],
		ForeignKeys: fkMap[table],
		Unique:      make(map[string]bool),
		Count:       count,
	}
	if job.ForeignKeys == nil {
		job.ForeignKeys = make(map[string]types.FKRef)
	}
	for u, ok := range snap.UniqueColumns[table] {
		if ok {
			job.Unique[u] = true
		}
	}
	if pk, ok := snap.PrimaryKeys[table]; ok {
		if col, single := pk.Single(); single {
			job.PrimaryKey = col
			job.HasPK = true
			job.Unique[col] = true
		}
	}
	return job
}
