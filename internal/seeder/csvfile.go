package seeder

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hotelforge/seedgen/internal/types"
)

// WriteCSV materializes one table's rows as <outDir>/<table>.csv with a
// header row. Null is the empty unquoted field, which COPY in csv format
// reads back as NULL.
func WriteCSV(outDir, table string, columns []types.ColumnInfo, rows [][]interface{}) (string, error) {
	path := filepath.Join(outDir, table+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Name
	}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write header for %s: %w", table, err)
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, v := range row {
			record[i] = formatValue(columns[i], v)
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write row for %s: %w", table, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

func formatValue(col types.ColumnInfo, v interface{}) string {
	if v == nil {
		return ""
	}
	switch x := v.(type) {
	case time.Time:
		if col.IsDate() {
			return x.Format("2006-01-02")
		}
		return x.UTC().Format("2006-01-02 15:04:05+00")
	case float64:
		scale := 2
		if col.Scale > 0 {
			scale = col.Scale
		}
		return strconv.FormatFloat(x, 'f', scale, 64)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
