package seeder

import (
	"reflect"
	"testing"

	"github.com/hotelforge/seedgen/internal/types"
)

func TestLoadOrderParentsFirst(t *testing.T) {
	tables := []string{"booking", "room", "hotel"}
	fks := []types.ForeignKey{
		{Table: "room", Column: "hotel_id", RefTable: "hotel", RefColumn: "hotel_id"},
		{Table: "booking", Column: "room_id", RefTable: "room", RefColumn: "room_id"},
	}

	got := LoadOrder(tables, fks)
	want := []string{"hotel", "room", "booking"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadOrder = %v, want %v", got, want)
	}
}

func TestLoadOrderLexicographicTies(t *testing.T) {
	got := LoadOrder([]string{"zebra", "apple", "mango"}, nil)
	want := []string{"apple", "mango", "zebra"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadOrder = %v, want %v", got, want)
	}
}

func TestLoadOrderDeterministic(t *testing.T) {
	tables := []string{"d", "c", "b", "a"}
	fks := []types.ForeignKey{
		{Table: "c", Column: "a_id", RefTable: "a", RefColumn: "id"},
		{Table: "d", Column: "a_id", RefTable: "a", RefColumn: "id"},
	}

	first := LoadOrder(tables, fks)
	for i := 0; i < 10; i++ {
		if got := LoadOrder(tables, fks); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: LoadOrder = %v, want %v", i, got, first)
		}
	}
}

func TestLoadOrderSelfReferenceIgnored(t *testing.T) {
	tables := []string{"employee"}
	fks := []types.ForeignKey{
		{Table: "employee", Column: "manager_id", RefTable: "employee", RefColumn: "employee_id"},
	}

	got := LoadOrder(tables, fks)
	if !reflect.DeepEqual(got, []string{"employee"}) {
		t.Errorf("LoadOrder = %v, want [employee]", got)
	}
}

func TestLoadOrderCycleAppendsRemaining(t *testing.T) {
	tables := []string{"b", "a", "standalone"}
	fks := []types.ForeignKey{
		{Table: "a", Column: "b_id", RefTable: "b", RefColumn: "id"},
		{Table: "b", Column: "a_id", RefTable: "a", RefColumn: "id"},
	}

	got := LoadOrder(tables, fks)
	want := []string{"standalone", "a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadOrder = %v, want %v", got, want)
	}
	if len(got) != len(tables) {
		t.Errorf("cycle dropped tables: got %d, want %d", len(got), len(tables))
	}
}

func TestLoadOrderIgnoresOutOfScopeEdges(t *testing.T) {
	tables := []string{"booking"}
	fks := []types.ForeignKey{
		{Table: "booking", Column: "customer_id", RefTable: "customer", RefColumn: "customer_id"},
	}

	got := LoadOrder(tables, fks)
	if !reflect.DeepEqual(got, []string{"booking"}) {
		t.Errorf("LoadOrder = %v, want [booking]", got)
	}
}
