package seeder

import (
	"fmt"
	"strings"
	"time"

	"github.com/hotelforge/seedgen/internal/types"
)

// Assembler builds all rows for one table. Rows come back in the job's
// column order, ready for the CSV artifact and COPY.
type Assembler interface {
	Assemble(job TableJob, env *GenContext) ([][]interface{}, error)
}

// Registry maps table identity to a bespoke assembler, falling back to the
// generic one. Bespoke entries exist where a table's constraints cannot be
// met column-by-column: composite uniqueness, date-range expansion,
// status-dependent nullability.
type Registry struct {
	bespoke map[string]Assembler
	generic Assembler
}

func NewRegistry() *Registry {
	r := &Registry{
		bespoke: make(map[string]Assembler),
		generic: &GenericAssembler{},
	}

	r.Register("booking_room", &PairAssembler{
		LeftTable: "booking", RightTable: "room",
		LeftColumns: []string{"booking_id"}, RightColumns: []string{"room_id"},
		MinPerLeft: 1, MaxPerLeft: 3,
	})
	r.Register("booking_discount", &PairAssembler{
		LeftTable: "booking", RightTable: "promotion",
		LeftColumns: []string{"booking_id"}, RightColumns: []string{"promotion_id", "promo_id"},
		MinPerLeft: 0, MaxPerLeft: 2,
	})
	r.Register("review_score", &PairAssembler{
		LeftTable: "review", RightTable: "review_category",
		LeftColumns: []string{"review_id"}, RightColumns: []string{"review_category_id", "category_id"},
		MinPerLeft: 1, MaxPerLeft: 5, SampleRight: true,
	})
	r.Register("room_night", &NightAssembler{
		ParentTable: "room", ParentColumn: "room_id", DateColumn: "night_date",
	})
	r.Register("stay", &StayAssembler{})

	return r
}

func (r *Registry) Register(table string, a Assembler) {
	r.bespoke[strings.ToLower(table)] = a
}

func (r *Registry) For(table string) Assembler {
	if a, ok := r.bespoke[strings.ToLower(table)]; ok {
		return a
	}
	return r.generic
}

// Recognized start/end column pairs. The end value is derived from the
// start at generation time, so the ordering invariant holds by construction.
var startEndPairs = []struct {
	start   string
	end     string
	maxDays int
}{
	{"checkin_date", "checkout_date", 14},
	{"start_date", "end_date", 60},
	{"from_date", "to_date", 60},
	{"valid_from", "valid_to", 60},
	{"effective_start_date", "effective_end_date", 60},
	{"block_start_date", "block_end_date", 60},
}

// GenericAssembler is the default per-column path: primary key from the row
// ordinal, foreign keys from committed parent pools, uniqueness
// retry-then-derive, sentinels for non-nullable gaps.
type GenericAssembler struct{}

func (a *GenericAssembler) Assemble(job TableJob, env *GenContext) ([][]interface{}, error) {
	colByName := make(map[string]types.ColumnInfo, len(job.Columns))
	for _, c := range job.Columns {
		colByName[strings.ToLower(c.Name)] = c
	}

	var startCol, endCol string
	maxOffset := 0
	for _, p := range startEndPairs {
		if _, ok := colByName[p.start]; !ok {
			continue
		}
		if _, ok := colByName[p.end]; !ok {
			continue
		}
		startCol, endCol, maxOffset = colByName[p.start].Name, colByName[p.end].Name, p.maxDays
		break
	}

	uniqueFKPools, err := buildUniqueFKPools(job, env)
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, job.Count)
	for i := 1; i <= job.Count; i++ {
		row := make(map[string]interface{}, len(job.Columns))

		if startCol != "" && endCol != "" {
			start := env.Gen.dateBetween(-365, 365)
			row[startCol] = start
			row[endCol] = start.AddDate(0, 0, 1+env.Gen.rand.Intn(maxOffset))
		}

		for _, col := range job.Columns {
			if _, done := row[col.Name]; done {
				continue
			}
			if err := fillColumn(row, col, job, env, i, uniqueFKPools); err != nil {
				return nil, err
			}
		}

		repairDateOrder(row, startCol, endCol)
		rows = append(rows, flatten(job, row))
	}

	return rows, nil
}

// buildUniqueFKPools prepares a non-repeating pool of parent keys for each FK
// column that also carries a UNIQUE constraint (1:1 relationships). The
// pool is drawn once, shuffled and consumed positionally.
func buildUniqueFKPools(job TableJob, env *GenContext) (map[string][]interface{}, error) {
	pools := make(map[string][]interface{})
	for _, col := range job.Columns {
		ref, isFK := job.ForeignKeys[col.Name]
		if !isFK || !job.Unique[col.Name] {
			continue
		}
		parents := append([]interface{}(nil), env.Keys[ref.Table]...)
		if !col.Nullable && len(parents) < job.Count {
			return nil, &CapacityError{Table: job.Table, Requested: job.Count, Available: len(parents)}
		}
		env.Gen.rand.Shuffle(len(parents), func(i, j int) { parents[i], parents[j] = parents[j], parents[i] })
		if len(parents) > job.Count {
			parents = parents[:job.Count]
		}
		pools[col.Name] = parents
	}
	return pools, nil
}

// fillColumn resolves one remaining column of one row: FK sampling,
// synthesis, uniqueness enforcement and the non-null sentinel, in that
// order. Shared by the generic and bespoke assemblers.
func fillColumn(row map[string]interface{}, col types.ColumnInfo, job TableJob, env *GenContext, rowIdx int, uniqueFKPools map[string][]interface{}) error {
	if ref, isFK := job.ForeignKeys[col.Name]; isFK {
		if pool, ok := uniqueFKPools[col.Name]; ok {
			if rowIdx-1 < len(pool) {
				row[col.Name] = pool[rowIdx-1]
			} else {
				row[col.Name] = nil
			}
			return nil
		}

		candidates := env.Keys[ref.Table]
		if len(candidates) == 0 {
			if col.Nullable {
				row[col.Name] = nil
				return nil
			}
			return fmt.Errorf("table %s: non-nullable FK column %s references %s, which has no committed keys",
				job.Table, col.Name, ref.Table)
		}
		row[col.Name] = candidates[env.Gen.rand.Intn(len(candidates))]
		return nil
	}

	v := env.Gen.Value(col, rowIdx, env.Enums)

	if job.Unique[col.Name] {
		v = claimUnique(col, v, job, env, rowIdx)
	}

	if v == nil && !col.Nullable {
		v = sentinel(col, env)
		if job.Unique[col.Name] {
			v = claimUnique(col, v, job, env, rowIdx)
		}
	}

	row[col.Name] = v
	return nil
}

// claimUnique applies the two-phase uniqueness strategy: bounded
// probabilistic regeneration, then deterministic forced distinction.
func claimUnique(col types.ColumnInfo, v interface{}, job TableJob, env *GenContext, rowIdx int) interface{} {
	if env.Unique.Claim(job.Table, col.Name, v) {
		return v
	}

	for attempt := 1; attempt <= maxUniqueTries; attempt++ {
		v = env.Gen.Value(col, rowIdx+attempt, env.Enums)
		if env.Unique.Claim(job.Table, col.Name, v) {
			return v
		}
	}

	for attempt := 1; ; attempt++ {
		derived := Derive(col, v, rowIdx, attempt)
		if env.Unique.Claim(job.Table, col.Name, derived) {
			return derived
		}
	}
}

// sentinel substitutes a type-appropriate non-null value. Generation must
// never leave a non-nullable column null.
func sentinel(col types.ColumnInfo, env *GenContext) interface{} {
	switch {
	case col.IsInteger():
		return 1
	case col.IsBoolean():
		return false
	case col.IsDate():
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	case col.IsTimestamp():
		return time.Now().UTC()
	case col.IsNumeric():
		return 0.0
	default:
		return "VAL_" + shortToken()
	}
}

func repairDateOrder(row map[string]interface{}, startCol, endCol string) {
	if startCol == "" || endCol == "" {
		return
	}
	start, okS := row[startCol].(time.Time)
	end, okE := row[endCol].(time.Time)
	if okS && okE && end.Before(start) {
		row[endCol] = start.AddDate(0, 0, 1)
	}
}

func flatten(job TableJob, row map[string]interface{}) []interface{} {
	out := make([]interface{}, len(job.Columns))
	for i, c := range job.Columns {
		out[i] = row[c.Name]
	}
	return out
}
