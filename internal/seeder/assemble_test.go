package seeder

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hotelforge/seedgen/internal/types"
)

func newTestEnv(keys KeyPool, enums map[string][]string) *GenContext {
	return &GenContext{
		Gen:    NewDataGenerator(1),
		Keys:   keys,
		Enums:  enums,
		Unique: NewUniqueRegistry(),
	}
}

func colIndex(t *testing.T, job TableJob, name string) int {
	t.Helper()
	for i, c := range job.Columns {
		if c.Name == name {
			return i
		}
	}
	t.Fatalf("column %s not in job", name)
	return -1
}

func TestGenericAssemblerForeignKeysFromPool(t *testing.T) {
	job := TableJob{
		Table: "room",
		Columns: []types.ColumnInfo{
			{Table: "room", Name: "room_id", DataType: "integer"},
			{Table: "room", Name: "hotel_id", DataType: "integer"},
			{Table: "room", Name: "floor", DataType: "integer"},
		},
		ForeignKeys: map[string]types.FKRef{
			"hotel_id": {Table: "hotel", Column: "hotel_id"},
		},
		Unique: map[string]bool{"room_id": true},
		Count:  40,
	}
	env := newTestEnv(KeyPool{"hotel": {10, 20, 30}}, nil)

	rows, err := (&GenericAssembler{}).Assemble(job, env)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(rows) != 40 {
		t.Fatalf("got %d rows, want 40", len(rows))
	}

	hotelIdx := colIndex(t, job, "hotel_id")
	for _, row := range rows {
		switch row[hotelIdx] {
		case 10, 20, 30:
		default:
			t.Fatalf("hotel_id = %v, not in committed pool", row[hotelIdx])
		}
	}
}

func TestGenericAssemblerNonNullableFKNeedsParents(t *testing.T) {
	job := TableJob{
		Table: "room",
		Columns: []types.ColumnInfo{
			{Table: "room", Name: "room_id", DataType: "integer"},
			{Table: "room", Name: "hotel_id", DataType: "integer"},
		},
		ForeignKeys: map[string]types.FKRef{
			"hotel_id": {Table: "hotel", Column: "hotel_id"},
		},
		Unique: map[string]bool{},
		Count:  5,
	}
	env := newTestEnv(KeyPool{}, nil)

	if _, err := (&GenericAssembler{}).Assemble(job, env); err == nil {
		t.Fatal("expected error for non-nullable FK with no committed parents")
	}
}

func TestGenericAssemblerNullableFKEmptyPoolYieldsNull(t *testing.T) {
	job := TableJob{
		Table: "booking",
		Columns: []types.ColumnInfo{
			{Table: "booking", Name: "booking_id", DataType: "integer"},
			{Table: "booking", Name: "promotion_id", DataType: "integer", Nullable: true},
		},
		ForeignKeys: map[string]types.FKRef{
			"promotion_id": {Table: "promotion", Column: "promotion_id"},
		},
		Unique: map[string]bool{},
		Count:  5,
	}
	env := newTestEnv(KeyPool{}, nil)

	rows, err := (&GenericAssembler{}).Assemble(job, env)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	idx := colIndex(t, job, "promotion_id")
	for _, row := range rows {
		if row[idx] != nil {
			t.Fatalf("promotion_id = %v, want NULL when parent pool is empty", row[idx])
		}
	}
}

func TestGenericAssemblerDatePairOrdering(t *testing.T) {
	job := TableJob{
		Table: "promotion",
		Columns: []types.ColumnInfo{
			{Table: "promotion", Name: "promotion_id", DataType: "integer"},
			{Table: "promotion", Name: "start_date", DataType: "date"},
			{Table: "promotion", Name: "end_date", DataType: "date"},
		},
		ForeignKeys: map[string]types.FKRef{},
		Unique:      map[string]bool{},
		Count:       50,
	}
	env := newTestEnv(KeyPool{}, nil)

	rows, err := (&GenericAssembler{}).Assemble(job, env)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	startIdx := colIndex(t, job, "start_date")
	endIdx := colIndex(t, job, "end_date")
	for i, row := range rows {
		start := row[startIdx].(time.Time)
		end := row[endIdx].(time.Time)
		if !end.After(start) {
			t.Fatalf("row %d: end_date %v not after start_date %v", i, end, start)
		}
		if end.Sub(start) > 60*24*time.Hour {
			t.Fatalf("row %d: range %v exceeds 60 days", i, end.Sub(start))
		}
	}
}

func TestGenericAssemblerUniqueColumnsDistinct(t *testing.T) {
	job := TableJob{
		Table: "promotion",
		Columns: []types.ColumnInfo{
			{Table: "promotion", Name: "promotion_id", DataType: "integer"},
			{Table: "promotion", Name: "code", DataType: "character varying", MaxLength: 30},
		},
		ForeignKeys: map[string]types.FKRef{},
		Unique:      map[string]bool{"promotion_id": true, "code": true},
		Count:       200,
	}
	env := newTestEnv(KeyPool{}, nil)

	rows, err := (&GenericAssembler{}).Assemble(job, env)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	codeIdx := colIndex(t, job, "code")
	seen := make(map[string]bool)
	for _, row := range rows {
		code := row[codeIdx].(string)
		if code == "" {
			t.Fatal("unique non-nullable code is empty")
		}
		if seen[code] {
			t.Fatalf("duplicate code %q", code)
		}
		seen[code] = true
	}
}

func TestGenericAssemblerUniqueFKDoesNotRepeat(t *testing.T) {
	pool := make([]interface{}, 10)
	for i := range pool {
		pool[i] = i + 1
	}
	job := TableJob{
		Table: "invoice",
		Columns: []types.ColumnInfo{
			{Table: "invoice", Name: "invoice_id", DataType: "integer"},
			{Table: "invoice", Name: "booking_id", DataType: "integer"},
		},
		ForeignKeys: map[string]types.FKRef{
			"booking_id": {Table: "booking", Column: "booking_id"},
		},
		Unique: map[string]bool{"invoice_id": true, "booking_id": true},
		Count:  10,
	}
	env := newTestEnv(KeyPool{"booking": pool}, nil)

	rows, err := (&GenericAssembler{}).Assemble(job, env)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	idx := colIndex(t, job, "booking_id")
	seen := make(map[interface{}]bool)
	for _, row := range rows {
		if seen[row[idx]] {
			t.Fatalf("booking_id %v repeated on a unique FK column", row[idx])
		}
		seen[row[idx]] = true
	}
}

func TestGenericAssemblerUniqueFKCapacity(t *testing.T) {
	job := TableJob{
		Table: "invoice",
		Columns: []types.ColumnInfo{
			{Table: "invoice", Name: "invoice_id", DataType: "integer"},
			{Table: "invoice", Name: "booking_id", DataType: "integer"},
		},
		ForeignKeys: map[string]types.FKRef{
			"booking_id": {Table: "booking", Column: "booking_id"},
		},
		Unique: map[string]bool{"booking_id": true},
		Count:  10,
	}
	env := newTestEnv(KeyPool{"booking": {1, 2, 3}}, nil)

	_, err := (&GenericAssembler{}).Assemble(job, env)
	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("err = %v, want CapacityError", err)
	}
	if capErr.Requested != 10 || capErr.Available != 3 {
		t.Errorf("CapacityError = %+v, want Requested 10 Available 3", capErr)
	}
}

func TestGenericAssemblerNonNullSentinel(t *testing.T) {
	job := TableJob{
		Table: "hotel",
		Columns: []types.ColumnInfo{
			{Table: "hotel", Name: "hotel_id", DataType: "integer"},
			{Table: "hotel", Name: "amenities", DataType: "jsonb"},
			{Table: "hotel", Name: "metadata", DataType: "jsonb", Nullable: true},
		},
		ForeignKeys: map[string]types.FKRef{},
		Unique:      map[string]bool{"hotel_id": true},
		Count:       30,
	}
	env := newTestEnv(KeyPool{}, nil)

	rows, err := (&GenericAssembler{}).Assemble(job, env)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	idx := colIndex(t, job, "amenities")
	for i, row := range rows {
		v := row[idx]
		if v == nil {
			t.Fatalf("row %d: non-nullable column left null", i)
		}
		if s, ok := v.(string); !ok || s == "" {
			t.Fatalf("row %d: sentinel = %T(%v), want non-empty string", i, v, v)
		}
	}
}

func junctionJob(count int) TableJob {
	return TableJob{
		Table: "booking_room",
		Columns: []types.ColumnInfo{
			{Table: "booking_room", Name: "booking_id", DataType: "integer"},
			{Table: "booking_room", Name: "room_id", DataType: "integer"},
		},
		ForeignKeys: map[string]types.FKRef{
			"booking_id": {Table: "booking", Column: "booking_id"},
			"room_id":    {Table: "room", Column: "room_id"},
		},
		Unique: map[string]bool{},
		Count:  count,
	}
}

func TestPairAssemblerDistinctPairs(t *testing.T) {
	a := &PairAssembler{
		LeftTable: "booking", RightTable: "room",
		LeftColumns: []string{"booking_id"}, RightColumns: []string{"room_id"},
		MinPerLeft: 1, MaxPerLeft: 3,
	}
	env := newTestEnv(KeyPool{
		"booking": {1, 2, 3, 4, 5},
		"room":    {10, 20, 30},
	}, nil)

	job := junctionJob(12)
	rows, err := a.Assemble(job, env)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(rows) != 12 {
		t.Fatalf("got %d rows, want 12", len(rows))
	}

	bIdx := colIndex(t, job, "booking_id")
	rIdx := colIndex(t, job, "room_id")
	seen := make(map[string]bool)
	for _, row := range rows {
		key := fmt.Sprintf("%v|%v", row[bIdx], row[rIdx])
		if seen[key] {
			t.Fatalf("duplicate pair %s", key)
		}
		seen[key] = true
	}
}

func TestPairAssemblerCapacity(t *testing.T) {
	a := &PairAssembler{
		LeftTable: "booking", RightTable: "room",
		LeftColumns: []string{"booking_id"}, RightColumns: []string{"room_id"},
		MinPerLeft: 1, MaxPerLeft: 3,
	}
	env := newTestEnv(KeyPool{
		"booking": {1, 2, 3},
		"room":    {10, 20, 30},
	}, nil)

	_, err := a.Assemble(junctionJob(10), env)
	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("err = %v, want CapacityError", err)
	}
	if capErr.Available != 9 {
		t.Errorf("Available = %d, want 9", capErr.Available)
	}
}

func TestNightAssemblerDistinctRoomNights(t *testing.T) {
	a := &NightAssembler{ParentTable: "room", ParentColumn: "room_id", DateColumn: "night_date"}
	job := TableJob{
		Table: "room_night",
		Columns: []types.ColumnInfo{
			{Table: "room_night", Name: "room_id", DataType: "integer"},
			{Table: "room_night", Name: "night_date", DataType: "date"},
			{Table: "room_night", Name: "rate", DataType: "numeric", Scale: 2, Nullable: true},
		},
		ForeignKeys: map[string]types.FKRef{
			"room_id": {Table: "room", Column: "room_id"},
		},
		Unique: map[string]bool{},
		Count:  20,
	}
	env := newTestEnv(KeyPool{"room": {1, 2, 3, 4, 5}}, nil)

	rows, err := a.Assemble(job, env)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(rows) != 20 {
		t.Fatalf("got %d rows, want 20", len(rows))
	}

	roomIdx := colIndex(t, job, "room_id")
	dateIdx := colIndex(t, job, "night_date")
	seen := make(map[string]bool)
	for _, row := range rows {
		night := row[dateIdx].(time.Time)
		if night.Hour() != 0 || night.Minute() != 0 {
			t.Fatalf("night_date %v carries a time component", night)
		}
		key := fmt.Sprintf("%v|%s", row[roomIdx], night.Format("2006-01-02"))
		if seen[key] {
			t.Fatalf("duplicate room-night %s", key)
		}
		seen[key] = true
	}
}

func TestNightAssemblerCapacity(t *testing.T) {
	a := &NightAssembler{ParentTable: "room", ParentColumn: "room_id", DateColumn: "night_date"}
	job := TableJob{
		Table: "room_night",
		Columns: []types.ColumnInfo{
			{Table: "room_night", Name: "room_id", DataType: "integer"},
			{Table: "room_night", Name: "night_date", DataType: "date"},
		},
		ForeignKeys: map[string]types.FKRef{
			"room_id": {Table: "room", Column: "room_id"},
		},
		Unique: map[string]bool{},
		Count:  1100,
	}
	env := newTestEnv(KeyPool{"room": {1}}, nil)

	_, err := a.Assemble(job, env)
	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("err = %v, want CapacityError", err)
	}
}

func stayJob(count int) TableJob {
	return TableJob{
		Table: "stay",
		Columns: []types.ColumnInfo{
			{Table: "stay", Name: "stay_id", DataType: "integer"},
			{Table: "stay", Name: "booking_id", DataType: "integer"},
			{Table: "stay", Name: "stay_status", DataType: "USER-DEFINED", UDTName: "stay_status"},
			{Table: "stay", Name: "checkin_date", DataType: "date", Nullable: true},
			{Table: "stay", Name: "checkout_date", DataType: "date", Nullable: true},
		},
		ForeignKeys: map[string]types.FKRef{
			"booking_id": {Table: "booking", Column: "booking_id"},
		},
		Unique: map[string]bool{"stay_id": true, "booking_id": true},
		Count:  count,
	}
}

var stayEnums = map[string][]string{
	"stay_status": {"BOOKED", "CHECKED_IN", "CHECKED_OUT", "CANCELLED"},
}

func TestStayAssemblerLifecycleInvariants(t *testing.T) {
	pool := make([]interface{}, 2000)
	for i := range pool {
		pool[i] = i + 1
	}
	env := newTestEnv(KeyPool{"booking": pool}, stayEnums)

	job := stayJob(1000)
	rows, err := (&StayAssembler{}).Assemble(job, env)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(rows) != 1000 {
		t.Fatalf("got %d rows, want 1000", len(rows))
	}

	bIdx := colIndex(t, job, "booking_id")
	sIdx := colIndex(t, job, "stay_status")
	inIdx := colIndex(t, job, "checkin_date")
	outIdx := colIndex(t, job, "checkout_date")

	seenBookings := make(map[interface{}]bool)
	for i, row := range rows {
		if seenBookings[row[bIdx]] {
			t.Fatalf("row %d: booking_id %v repeated", i, row[bIdx])
		}
		seenBookings[row[bIdx]] = true

		status := row[sIdx].(string)
		checkin, hasIn := row[inIdx].(time.Time)
		checkout, hasOut := row[outIdx].(time.Time)

		switch status {
		case "CANCELLED":
			if hasIn || hasOut {
				t.Fatalf("row %d: cancelled stay has dates", i)
			}
		case "CHECKED_OUT":
			if !hasIn || !hasOut {
				t.Fatalf("row %d: checked-out stay missing dates", i)
			}
			if !checkout.After(checkin) {
				t.Fatalf("row %d: checkout %v not after checkin %v", i, checkout, checkin)
			}
		case "CHECKED_IN":
			if !hasIn {
				t.Fatalf("row %d: in-house stay missing checkin", i)
			}
			if hasOut {
				t.Fatalf("row %d: in-house stay has a checkout", i)
			}
		case "BOOKED":
			if hasIn || hasOut {
				t.Fatalf("row %d: booked stay has dates", i)
			}
		default:
			t.Fatalf("row %d: status %q not in enum", i, status)
		}
	}
}

func TestStayAssemblerSharedBookingsSampleWithReplacement(t *testing.T) {
	env := newTestEnv(KeyPool{"booking": {1, 2, 3}}, stayEnums)

	job := stayJob(10)
	job.Unique = map[string]bool{"stay_id": true}

	rows, err := (&StayAssembler{}).Assemble(job, env)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(rows) != 10 {
		t.Fatalf("got %d rows, want 10", len(rows))
	}

	bIdx := colIndex(t, job, "booking_id")
	counts := make(map[interface{}]int)
	for _, row := range rows {
		switch row[bIdx] {
		case 1, 2, 3:
		default:
			t.Fatalf("booking_id = %v, not in committed pool", row[bIdx])
		}
		counts[row[bIdx]]++
	}

	repeated := false
	for _, n := range counts {
		if n > 1 {
			repeated = true
		}
	}
	if !repeated {
		t.Fatal("10 stays over 3 bookings produced no repeated booking_id")
	}
}

func TestStayAssemblerCapacity(t *testing.T) {
	env := newTestEnv(KeyPool{"booking": {1, 2, 3}}, stayEnums)

	_, err := (&StayAssembler{}).Assemble(stayJob(10), env)
	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("err = %v, want CapacityError", err)
	}
}

func TestRegistryDispatch(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.For("room_night").(*NightAssembler); !ok {
		t.Errorf("For(room_night) = %T, want *NightAssembler", r.For("room_night"))
	}
	if _, ok := r.For("stay").(*StayAssembler); !ok {
		t.Errorf("For(stay) = %T, want *StayAssembler", r.For("stay"))
	}
	if _, ok := r.For("booking_room").(*PairAssembler); !ok {
		t.Errorf("For(booking_room) = %T, want *PairAssembler", r.For("booking_room"))
	}
	if _, ok := r.For("customer").(*GenericAssembler); !ok {
		t.Errorf("For(customer) = %T, want *GenericAssembler", r.For("customer"))
	}
}
