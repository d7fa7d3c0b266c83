package seeder

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultCounts derives a row count per table from naming heuristics:
// lookup-style tables stay tiny, transactional tables get volume.
func DefaultCounts(tables []string) map[string]int {
	counts := make(map[string]int, len(tables))
	for _, t := range tables {
		tl := strings.ToLower(t)
		switch {
		case containsAny(tl, "lookup", "type", "status", "code", "catalog", "policy", "rate_plan", "rate_calendar"):
			counts[t] = 50
		case tl == "hotel":
			counts[t] = 12
		case tl == "room":
			counts[t] = 1000
		case strings.Contains(tl, "customer"):
			counts[t] = 30_000
		case strings.Contains(tl, "booking"):
			counts[t] = 70_000
		case containsAny(tl, "payment", "invoice", "transaction", "charge"):
			counts[t] = 60_000
		case containsAny(tl, "refund", "cancellation"):
			counts[t] = 8_000
		default:
			counts[t] = 2_000
		}
	}
	return counts
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// LoadOverrides reads a table -> row count map from a YAML file.
func LoadOverrides(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read row counts file %s: %w", path, err)
	}

	overrides := make(map[string]int)
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse row counts file %s: %w", path, err)
	}
	return overrides, nil
}

// ApplyOverrides merges overrides into counts, keyed case-insensitively.
// Overrides for tables beyond the schema are ignored.
func ApplyOverrides(counts, overrides map[string]int) {
	for table, n := range overrides {
		tl := strings.ToLower(table)
		if _, exists := counts[tl]; exists {
			counts[tl] = n
		}
	}
}
