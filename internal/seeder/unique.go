package seeder

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hotelforge/seedgen/internal/types"
)

// maxUniqueTries bounds the probabilistic retry phase before Derive forces
// a distinct value.
const maxUniqueTries = 50

// UniqueRegistry tracks values already issued for columns under a
// single-column UNIQUE constraint. NULLs never collide and are not
// recorded.
type UniqueRegistry struct {
	seen map[string]map[string]struct{}
}

func NewUniqueRegistry() *UniqueRegistry {
	return &UniqueRegistry{seen: make(map[string]map[string]struct{})}
}

// Claim records v for (table, column) and reports whether it was free.
func (r *UniqueRegistry) Claim(table, column string, v interface{}) bool {
	if v == nil {
		return true
	}
	key := table + "." + column
	set := r.seen[key]
	if set == nil {
		set = make(map[string]struct{})
		r.seen[key] = set
	}
	formatted := fmt.Sprint(v)
	if _, dup := set[formatted]; dup {
		return false
	}
	set[formatted] = struct{}{}
	return true
}

// Derive forces a distinct variant of a colliding value. Strings get a
// short random suffix within the column's length limit; integers get an
// offset derived from the row ordinal and attempt count, so the result is
// fresh even when the suffix pool is unlucky.
func Derive(col types.ColumnInfo, v interface{}, rowIdx, attempt int) interface{} {
	switch val := v.(type) {
	case string:
		suffix := shortToken()
		maxLen := col.MaxLength
		if maxLen <= 0 {
			maxLen = 255
		}
		keep := maxLen - len(suffix) - 1
		if keep < 1 {
			keep = 1
		}
		if len(val) > keep {
			val = val[:keep]
		}
		out := val + "_" + suffix
		if len(out) > maxLen {
			out = out[:maxLen]
		}
		return out
	case int:
		return val + rowIdx*1000 + attempt
	case int64:
		return val + int64(rowIdx*1000+attempt)
	default:
		return fmt.Sprintf("%v_%s", v, shortToken())
	}
}

func shortToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}
