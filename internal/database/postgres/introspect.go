package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hotelforge/seedgen/internal/types"
)

// Snapshot reads the full schema metadata in one pass. Table keys in every
// returned map are lowercased; generation treats table identity as
// case-insensitive.
func (p *Adapter) Snapshot(ctx context.Context, schema string) (*types.Snapshot, error) {
	tables, err := p.TableNames(ctx, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	columns, err := p.Columns(ctx, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	pks, err := p.PrimaryKeys(ctx, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to read primary keys: %w", err)
	}

	fks, err := p.ForeignKeys(ctx, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to read foreign keys: %w", err)
	}

	enums, err := p.Enums(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read enum types: %w", err)
	}

	uniques, err := p.UniqueColumns(ctx, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to read unique constraints: %w", err)
	}

	return &types.Snapshot{
		Schema:        schema,
		Tables:        tables,
		Columns:       columns,
		PrimaryKeys:   pks,
		ForeignKeys:   fks,
		Enums:         enums,
		UniqueColumns: uniques,
	}, nil
}

func (p *Adapter) TableNames(ctx context.Context, schema string) ([]string, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`, schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := make([]string, 0, 32)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, strings.ToLower(name))
	}
	return tables, rows.Err()
}

func (p *Adapter) Columns(ctx context.Context, schema string) (map[string][]types.ColumnInfo, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT
			table_name,
			column_name,
			data_type,
			udt_name,
			is_nullable,
			character_maximum_length,
			numeric_precision,
			numeric_scale
		FROM information_schema.columns
		WHERE table_schema = $1
		ORDER BY table_name, ordinal_position
	`, schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]types.ColumnInfo)
	for rows.Next() {
		var table, name, dataType, udtName, nullable string
		var maxLen, precision, scale sql.NullInt64

		if err := rows.Scan(&table, &name, &dataType, &udtName, &nullable, &maxLen, &precision, &scale); err != nil {
			return nil, err
		}

		table = strings.ToLower(table)
		out[table] = append(out[table], types.ColumnInfo{
			Table:     table,
			Name:      name,
			DataType:  dataType,
			UDTName:   udtName,
			Nullable:  nullable == "YES",
			MaxLength: int(maxLen.Int64),
			Precision: int(precision.Int64),
			Scale:     int(scale.Int64),
		})
	}
	return out, rows.Err()
}

func (p *Adapter) PrimaryKeys(ctx context.Context, schema string) (map[string]types.PrimaryKey, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT tc.table_name, kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON tc.constraint_name = kcu.constraint_name
		 AND tc.table_schema = kcu.table_schema
		WHERE tc.table_schema = $1
		  AND tc.constraint_type = 'PRIMARY KEY'
		ORDER BY tc.table_name, kcu.ordinal_position
	`, schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]types.PrimaryKey)
	for rows.Next() {
		var table, column string
		if err := rows.Scan(&table, &column); err != nil {
			return nil, err
		}
		table = strings.ToLower(table)
		pk := out[table]
		pk.Table = table
		pk.Columns = append(pk.Columns, column)
		out[table] = pk
	}
	return out, rows.Err()
}

func (p *Adapter) ForeignKeys(ctx context.Context, schema string) ([]types.ForeignKey, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT
			tc.table_name,
			kcu.column_name,
			ccu.table_name AS ref_table_name,
			ccu.column_name AS ref_column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON tc.constraint_name = kcu.constraint_name
		 AND tc.table_schema = kcu.table_schema
		JOIN information_schema.constraint_column_usage ccu
		  ON ccu.constraint_name = tc.constraint_name
		 AND ccu.table_schema = tc.table_schema
		WHERE tc.table_schema = $1
		  AND tc.constraint_type = 'FOREIGN KEY'
		ORDER BY tc.table_name, kcu.column_name
	`, schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []types.ForeignKey
	for rows.Next() {
		var fk types.ForeignKey
		if err := rows.Scan(&fk.Table, &fk.Column, &fk.RefTable, &fk.RefColumn); err != nil {
			return nil, err
		}
		fk.Table = strings.ToLower(fk.Table)
		fk.RefTable = strings.ToLower(fk.RefTable)
		out = append(out, fk)
	}
	return out, rows.Err()
}

func (p *Adapter) Enums(ctx context.Context) (map[string][]string, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT t.typname AS enum_name, e.enumlabel AS enum_value
		FROM pg_type t
		JOIN pg_enum e ON t.oid = e.enumtypid
		ORDER BY t.typname, e.enumsortorder
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var name, label string
		if err := rows.Scan(&name, &label); err != nil {
			return nil, err
		}
		name = strings.ToLower(name)
		out[name] = append(out[name], label)
	}
	return out, rows.Err()
}

// UniqueColumns returns only single-column UNIQUE constraints per table.
// Composite uniqueness is handled by dedicated assemblers, never generically.
func (p *Adapter) UniqueColumns(ctx context.Context, schema string) (map[string]map[string]bool, error) {
	rows, err := p.pool.Query(ctx, `
		WITH uniq AS (
			SELECT
				tc.table_schema,
				tc.table_name,
				tc.constraint_name,
				COUNT(kcu.column_name) AS col_count
			FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
			  ON tc.constraint_name = kcu.constraint_name
			 AND tc.table_schema = kcu.table_schema
			WHERE tc.table_schema = $1
			  AND tc.constraint_type = 'UNIQUE'
			GROUP BY 1, 2, 3
		)
		SELECT kcu.table_name, kcu.column_name
		FROM uniq
		JOIN information_schema.key_column_usage kcu
		  ON uniq.constraint_name = kcu.constraint_name
		 AND uniq.table_schema = kcu.table_schema
		WHERE uniq.col_count = 1
	`, schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]map[string]bool)
	for rows.Next() {
		var table, column string
		if err := rows.Scan(&table, &column); err != nil {
			return nil, err
		}
		table = strings.ToLower(table)
		if out[table] == nil {
			out[table] = make(map[string]bool)
		}
		out[table][column] = true
	}
	return out, rows.Err()
}
