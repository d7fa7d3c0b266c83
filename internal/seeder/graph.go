package seeder

import (
	"sort"

	"github.com/hotelforge/seedgen/internal/types"
)

// LoadOrder topologically orders tables by their FK edges so every parent
// precedes its children (Kahn's algorithm). Ties break lexicographically,
// so the same schema always yields the same order — row-count heuristics
// and ordinal-based key generation depend on that stability.
//
// Self-references are skipped and tables left over from FK cycles are
// appended in lexicographic order. There is no real cycle-breaking; cyclic
// schemas load in name order and rely on nullable FK columns.
func LoadOrder(tables []string, fks []types.ForeignKey) []string {
	inScope := make(map[string]bool, len(tables))
	for _, t := range tables {
		inScope[t] = true
	}

	deps := make(map[string]map[string]bool, len(tables))
	rdeps := make(map[string]map[string]bool, len(tables))
	for _, t := range tables {
		deps[t] = make(map[string]bool)
		rdeps[t] = make(map[string]bool)
	}

	for _, fk := range fks {
		if fk.Table == fk.RefTable {
			continue
		}
		if inScope[fk.Table] && inScope[fk.RefTable] {
			deps[fk.Table][fk.RefTable] = true
			rdeps[fk.RefTable][fk.Table] = true
		}
	}

	var queue []string
	for _, t := range tables {
		if len(deps[t]) == 0 {
			queue = append(queue, t)
		}
	}
	sort.Strings(queue)

	order := make([]string, 0, len(tables))
	placed := make(map[string]bool, len(tables))

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		placed[n] = true

		for m := range rdeps[n] {
			delete(deps[m], n)
			if len(deps[m]) == 0 && !placed[m] {
				queue = append(queue, m)
			}
		}
		sort.Strings(queue)
	}

	var remaining []string
	for _, t := range tables {
		if !placed[t] {
			remaining = append(remaining, t)
		}
	}
	sort.Strings(remaining)

	return append(order, remaining...)
}
