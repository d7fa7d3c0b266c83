package seeder

import (
	"fmt"
	"strings"
	"time"

	"github.com/hotelforge/seedgen/internal/types"
)

// PairAssembler populates junction tables whose identity is the pair of
// parent keys. Pairs are drawn without replacement so the composite
// uniqueness the table's primary key implies holds in the artifact, not
// just in the database.
type PairAssembler struct {
	LeftTable    string
	RightTable   string
	LeftColumns  []string
	RightColumns []string
	MinPerLeft   int
	MaxPerLeft   int
	// SampleRight draws the per-left rights without replacement, for
	// tables where one left row scores each right at most once.
	SampleRight bool
}

func (a *PairAssembler) Assemble(job TableJob, env *GenContext) ([][]interface{}, error) {
	leftCol := findColumn(job, a.LeftColumns)
	rightCol := findColumn(job, a.RightColumns)
	if leftCol == nil || rightCol == nil {
		return (&GenericAssembler{}).Assemble(job, env)
	}

	lefts := env.Keys[a.LeftTable]
	rights := env.Keys[a.RightTable]
	if len(lefts) == 0 || len(rights) == 0 {
		return nil, fmt.Errorf("table %s: pair generation needs committed keys in %s and %s",
			job.Table, a.LeftTable, a.RightTable)
	}
	if job.Count > len(lefts)*len(rights) {
		return nil, &CapacityError{Table: job.Table, Requested: job.Count, Available: len(lefts) * len(rights)}
	}

	uniqueFKPools, err := buildUniqueFKPools(job, env)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, job.Count)
	rows := make([][]interface{}, 0, job.Count)

	appendRow := func(l, r interface{}) error {
		key := fmt.Sprintf("%v|%v", l, r)
		if _, dup := seen[key]; dup {
			return nil
		}
		seen[key] = struct{}{}

		row := map[string]interface{}{leftCol.Name: l, rightCol.Name: r}
		for _, col := range job.Columns {
			if _, done := row[col.Name]; done {
				continue
			}
			if err := fillColumn(row, col, job, env, len(rows)+1, uniqueFKPools); err != nil {
				return err
			}
		}
		rows = append(rows, flatten(job, row))
		return nil
	}

	for _, l := range lefts {
		if len(rows) >= job.Count {
			break
		}
		n := a.MinPerLeft
		if a.MaxPerLeft > a.MinPerLeft {
			n += env.Gen.rand.Intn(a.MaxPerLeft - a.MinPerLeft + 1)
		}
		if remaining := job.Count - len(rows); n > remaining {
			n = remaining
		}
		if a.SampleRight {
			if n > len(rights) {
				n = len(rights)
			}
			for _, idx := range env.Gen.rand.Perm(len(rights))[:n] {
				if err := appendRow(l, rights[idx]); err != nil {
					return nil, err
				}
			}
		} else {
			for k := 0; k < n; k++ {
				if err := appendRow(l, rights[env.Gen.rand.Intn(len(rights))]); err != nil {
					return nil, err
				}
			}
		}
	}

	// Random draws can land short of the target through duplicate
	// suppression. Sweep the cartesian space deterministically to top up.
	for li := 0; li < len(lefts) && len(rows) < job.Count; li++ {
		for ri := 0; ri < len(rights) && len(rows) < job.Count; ri++ {
			if err := appendRow(lefts[li], rights[ri]); err != nil {
				return nil, err
			}
		}
	}

	return rows, nil
}

// NightAssembler expands one row per parent per calendar night, the shape
// of availability and occupancy calendars. Each parent gets a distinct set
// of night offsets inside a fixed window around today.
type NightAssembler struct {
	ParentTable  string
	ParentColumn string
	DateColumn   string
}

const (
	nightWindowPast   = 730
	nightWindowFuture = 365
)

func (a *NightAssembler) Assemble(job TableJob, env *GenContext) ([][]interface{}, error) {
	parentCol := findColumn(job, []string{a.ParentColumn})
	dateCol := findColumn(job, []string{a.DateColumn})
	if parentCol == nil || dateCol == nil {
		return nil, fmt.Errorf("table %s: expected columns %s and %s", job.Table, a.ParentColumn, a.DateColumn)
	}

	parents := env.Keys[a.ParentTable]
	if len(parents) == 0 {
		return nil, fmt.Errorf("table %s: night generation needs committed keys in %s", job.Table, a.ParentTable)
	}

	totalDays := nightWindowPast + nightWindowFuture + 1
	if job.Count > len(parents)*totalDays {
		return nil, &CapacityError{Table: job.Table, Requested: job.Count, Available: len(parents) * totalDays}
	}

	uniqueFKPools, err := buildUniqueFKPools(job, env)
	if err != nil {
		return nil, err
	}

	perParent := job.Count / len(parents)
	if perParent < 1 {
		perParent = 1
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	rows := make([][]interface{}, 0, job.Count)
	for _, p := range parents {
		if len(rows) >= job.Count {
			break
		}
		n := perParent
		if remaining := job.Count - len(rows); n > remaining {
			n = remaining
		}
		for _, off := range env.Gen.rand.Perm(totalDays)[:n] {
			night := today.AddDate(0, 0, off-nightWindowPast)
			row := map[string]interface{}{parentCol.Name: p, dateCol.Name: night}
			for _, col := range job.Columns {
				if _, done := row[col.Name]; done {
					continue
				}
				if err := fillColumn(row, col, job, env, len(rows)+1, uniqueFKPools); err != nil {
					return nil, err
				}
			}
			rows = append(rows, flatten(job, row))
		}
	}

	return rows, nil
}

// StayAssembler ties checkin and checkout presence to the stay status so
// lifecycle invariants hold: cancelled stays never have dates, checked-out
// stays have both, in-house stays have only a checkin.
type StayAssembler struct{}

func (a *StayAssembler) Assemble(job TableJob, env *GenContext) ([][]interface{}, error) {
	statusCol := findColumn(job, []string{"stay_status", "status"})
	checkinCol := findColumn(job, []string{"checkin_date", "actual_checkin", "checkin_at"})
	checkoutCol := findColumn(job, []string{"checkout_date", "actual_checkout", "checkout_at"})
	bookingCol := findColumn(job, []string{"booking_id"})
	if statusCol == nil || checkinCol == nil || checkoutCol == nil {
		return (&GenericAssembler{}).Assemble(job, env)
	}

	// Only a UNIQUE booking_id gets the non-repeating pool and its capacity
	// check; schemas that allow several stays per booking sample with
	// replacement through the regular FK path.
	var bookingPool []interface{}
	if bookingCol != nil && job.Unique[bookingCol.Name] {
		if ref, ok := job.ForeignKeys[bookingCol.Name]; ok {
			bookingPool = append([]interface{}(nil), env.Keys[ref.Table]...)
			if len(bookingPool) < job.Count {
				return nil, &CapacityError{Table: job.Table, Requested: job.Count, Available: len(bookingPool)}
			}
			env.Gen.rand.Shuffle(len(bookingPool), func(i, j int) {
				bookingPool[i], bookingPool[j] = bookingPool[j], bookingPool[i]
			})
		}
	}

	uniqueFKPools, err := buildUniqueFKPools(job, env)
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, job.Count)
	for i := 1; i <= job.Count; i++ {
		row := make(map[string]interface{}, len(job.Columns))

		if bookingCol != nil && bookingPool != nil {
			row[bookingCol.Name] = bookingPool[i-1]
		}

		status := env.Gen.Value(*statusCol, i, env.Enums)
		if status == nil && !statusCol.Nullable {
			status = "BOOKED"
		}
		row[statusCol.Name] = status

		upper := strings.ToUpper(fmt.Sprint(status))
		switch {
		case strings.Contains(upper, "CANCEL"):
			row[checkinCol.Name] = nil
			row[checkoutCol.Name] = nil
		case strings.Contains(upper, "OUT"):
			in := env.Gen.dateBetween(-180, 0)
			row[checkinCol.Name] = in
			row[checkoutCol.Name] = in.AddDate(0, 0, 1+env.Gen.rand.Intn(10))
		case strings.Contains(upper, "IN"):
			row[checkinCol.Name] = env.Gen.dateBetween(-14, 0)
			row[checkoutCol.Name] = nil
		default:
			row[checkinCol.Name] = nil
			row[checkoutCol.Name] = nil
		}

		if !checkinCol.Nullable && row[checkinCol.Name] == nil {
			row[checkinCol.Name] = env.Gen.dateBetween(-180, 0)
		}
		if !checkoutCol.Nullable && row[checkoutCol.Name] == nil {
			in, _ := row[checkinCol.Name].(time.Time)
			if in.IsZero() {
				in = env.Gen.dateBetween(-180, 0)
				row[checkinCol.Name] = in
			}
			row[checkoutCol.Name] = in.AddDate(0, 0, 1)
		}

		for _, col := range job.Columns {
			if _, done := row[col.Name]; done {
				continue
			}
			if err := fillColumn(row, col, job, env, i, uniqueFKPools); err != nil {
				return nil, err
			}
		}

		if in, ok := row[checkinCol.Name].(time.Time); ok {
			if out, ok := row[checkoutCol.Name].(time.Time); ok && out.Before(in) {
				row[checkoutCol.Name] = in.AddDate(0, 0, 1)
			}
		}

		rows = append(rows, flatten(job, row))
	}

	return rows, nil
}

func findColumn(job TableJob, names []string) *types.ColumnInfo {
	for _, want := range names {
		for i := range job.Columns {
			if strings.EqualFold(job.Columns[i].Name, want) {
				return &job.Columns[i]
			}
		}
	}
	return nil
}
