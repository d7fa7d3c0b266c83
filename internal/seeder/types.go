package seeder

import (
	"fmt"

	"github.com/hotelforge/seedgen/internal/types"
)

// RunOptions carries per-run knobs on top of the loaded config.
type RunOptions struct {
	Counts   map[string]int // explicit per-table row counts, highest priority
	Truncate bool
	OutDir   string
	Seed     int64
}

// KeyPool maps a lowercased table name to the primary-key values known to
// exist in that table. Entries are overwritten from the database after each
// load; in-memory generated values are never trusted across tables.
type KeyPool map[string][]interface{}

// TableJob is everything an assembler needs to build one table's rows.
type TableJob struct {
	Table       string
	Columns     []types.ColumnInfo
	PrimaryKey  string // single-column primary key, empty when composite or absent
	HasPK       bool
	ForeignKeys map[string]types.FKRef // column name -> parent reference
	Unique      map[string]bool        // single-column UNIQUE constraints
	Count       int
}

// ColumnNames returns the ordered column list, which is also the CSV and
// COPY column order.
func (j TableJob) ColumnNames() []string {
	names := make([]string, len(j.Columns))
	for i, c := range j.Columns {
		names[i] = c.Name
	}
	return names
}

// GenContext is the mutable generation state for one run, owned by the
// Seeder and threaded through every assembler and synthesizer call.
// Single-writer: tables are generated strictly sequentially.
type GenContext struct {
	Gen    *DataGenerator
	Keys   KeyPool
	Enums  map[string][]string
	Unique *UniqueRegistry
}

// CapacityError reports a requested row count that exceeds the distinct
// values or pairs a constrained table can hold. Raised before any row for
// the table is written.
type CapacityError struct {
	Table     string
	Requested int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("table %s: requested %d rows but only %d distinct values available",
		e.Table, e.Requested, e.Available)
}
