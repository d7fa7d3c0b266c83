package types

import "strings"

// ColumnInfo is one column of an introspected table, immutable after
// introspection. DataType and UDTName come straight from
// information_schema.columns; for enum columns UDTName is the enum type name.
type ColumnInfo struct {
	Table     string
	Name      string
	DataType  string
	UDTName   string
	Nullable  bool
	MaxLength int // character_maximum_length, 0 when not applicable
	Precision int
	Scale     int
}

func (c ColumnInfo) IsInteger() bool {
	switch strings.ToLower(c.DataType) {
	case "integer", "bigint", "smallint":
		return true
	}
	switch strings.ToLower(c.UDTName) {
	case "int2", "int4", "int8":
		return true
	}
	return false
}

func (c ColumnInfo) IsNumeric() bool {
	dt := strings.ToLower(c.DataType)
	return dt == "numeric" || dt == "decimal" || strings.ToLower(c.UDTName) == "numeric"
}

func (c ColumnInfo) IsText() bool {
	switch strings.ToLower(c.DataType) {
	case "character varying", "character", "text":
		return true
	}
	return false
}

func (c ColumnInfo) IsBoolean() bool {
	return strings.ToLower(c.DataType) == "boolean"
}

func (c ColumnInfo) IsDate() bool {
	return strings.ToLower(c.DataType) == "date"
}

func (c ColumnInfo) IsTimestamp() bool {
	switch strings.ToLower(c.DataType) {
	case "timestamp without time zone", "timestamp with time zone":
		return true
	}
	switch strings.ToLower(c.UDTName) {
	case "timestamp", "timestamptz":
		return true
	}
	return false
}

func (c ColumnInfo) IsUUID() bool {
	return strings.ToLower(c.DataType) == "uuid" || strings.ToLower(c.UDTName) == "uuid"
}

// PrimaryKey is a table's primary key. Only single-column keys feed the
// reference key pools; composite keys are tracked but never cached.
type PrimaryKey struct {
	Table   string
	Columns []string
}

// Single returns the key column name when the key covers exactly one column.
func (pk PrimaryKey) Single() (string, bool) {
	if len(pk.Columns) == 1 {
		return pk.Columns[0], true
	}
	return "", false
}

// ForeignKey is a single-column FK edge from (Table, Column) to
// (RefTable, RefColumn).
type ForeignKey struct {
	Table     string
	Column    string
	RefTable  string
	RefColumn string
}

// FKRef identifies the parent side of a foreign key.
type FKRef struct {
	Table  string
	Column string
}

// Snapshot is the full schema metadata for one run. All table keys are
// lowercased so generation and lookup never miss on identifier casing.
type Snapshot struct {
	Schema        string
	Tables        []string
	Columns       map[string][]ColumnInfo
	PrimaryKeys   map[string]PrimaryKey
	ForeignKeys   []ForeignKey
	Enums         map[string][]string
	UniqueColumns map[string]map[string]bool
}

// FKMap indexes the FK edges by (lowercased table, column).
func (s *Snapshot) FKMap() map[string]map[string]FKRef {
	out := make(map[string]map[string]FKRef)
	for _, fk := range s.ForeignKeys {
		t := strings.ToLower(fk.Table)
		if out[t] == nil {
			out[t] = make(map[string]FKRef)
		}
		out[t][fk.Column] = FKRef{Table: strings.ToLower(fk.RefTable), Column: fk.RefColumn}
	}
	return out
}

// EnumLabels returns the label set for a column's enum type, if any.
func (s *Snapshot) EnumLabels(c ColumnInfo) ([]string, bool) {
	labels, ok := s.Enums[strings.ToLower(c.UDTName)]
	return labels, ok
}
