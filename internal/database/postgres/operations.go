package postgres

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
)

// TruncateAll truncates every table in reverse dependency order so identity
// sequences restart and no residual rows survive into the new run. Runs once
// up front, never mid-run.
func (p *Adapter) TruncateAll(ctx context.Context, schema string, loadOrder []string) error {
	for i := len(loadOrder) - 1; i >= 0; i-- {
		table := loadOrder[i]
		query := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE",
			pgx.Identifier{schema, table}.Sanitize())
		if _, err := p.pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// CopyCSV streams a generated CSV file into the table through the COPY
// protocol. The file's header row is consumed by COPY itself; empty
// unquoted fields arrive as NULL.
func (p *Adapter) CopyCSV(ctx context.Context, schema, table string, columns []string, csvPath string) (int64, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", csvPath, err)
	}
	defer f.Close()

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	copySQL := fmt.Sprintf("COPY %s (%s) FROM STDIN WITH (FORMAT csv, HEADER true)",
		pgx.Identifier{schema, table}.Sanitize(), strings.Join(quoted, ", "))

	tag, err := conn.Conn().PgConn().CopyFrom(ctx, f, copySQL)
	if err != nil {
		return 0, fmt.Errorf("COPY into %s failed: %w", table, err)
	}
	return tag.RowsAffected(), nil
}

// PrimaryKeyValues re-reads the committed key set for a table in sorted
// order. This is the authoritative source for downstream FK pools: values
// rewritten during uniqueness repair in assembly never leak forward.
func (p *Adapter) PrimaryKeyValues(ctx context.Context, schema, table, pkColumn string) ([]interface{}, error) {
	col := pgx.Identifier{pkColumn}.Sanitize()
	query, args, err := p.qb.
		Select(col).
		From(pgx.Identifier{schema, table}.Sanitize()).
		OrderBy(col).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build key query for %s: %w", table, err)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read keys from %s: %w", table, err)
	}
	defer rows.Close()

	var values []interface{}
	for rows.Next() {
		var v interface{}
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
