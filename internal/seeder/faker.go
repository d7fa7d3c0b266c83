package seeder

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hotelforge/seedgen/internal/types"
)

// DataGenerator synthesizes one value at a time. It is seeded for
// reproducibility and keeps per-run side state: issued unique tokens,
// per-row location cache and non-repeating name pools.
type DataGenerator struct {
	rand      *rand.Rand
	counter   int
	seen      map[string]map[string]struct{} // manufactured-unique text per (table, column)
	locations map[string]*Location
	pools     map[string][]string // shuffled non-repeating choice pools
}

func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rand:      rand.New(rand.NewSource(seed)),
		seen:      make(map[string]map[string]struct{}),
		locations: make(map[string]*Location),
		pools:     make(map[string][]string),
	}
}

// Value produces a plausible value for the column at the given row ordinal.
// Enum membership wins over everything else; after that, name conventions
// take priority over the declared type.
func (g *DataGenerator) Value(col types.ColumnInfo, rowIdx int, enums map[string][]string) interface{} {
	name := strings.ToLower(col.Name)

	if labels, ok := enums[strings.ToLower(col.UDTName)]; ok && len(labels) > 0 {
		if col.Nullable && g.rand.Float64() < 0.03 {
			return nil
		}
		return labels[g.rand.Intn(len(labels))]
	}

	switch name {
	case "created_at", "updated_at", "loaded_at", "ingested_at":
		base := g.timestampBetween(-730, 0)
		if name == "updated_at" {
			base = base.AddDate(0, 0, g.rand.Intn(181))
		}
		return base
	}

	if col.IsDate() {
		return g.dateBetween(-730, 365)
	}

	if col.IsTimestamp() {
		return g.timestampBetween(-730, 0)
	}

	if col.IsInteger() {
		switch {
		case strings.HasSuffix(name, "_id"):
			return rowIdx
		case containsAny(name, "rating", "stars", "score"):
			return 1 + g.rand.Intn(5)
		case containsAny(name, "count", "qty", "quantity", "nights", "floor", "occupancy"):
			return 1 + g.rand.Intn(10)
		default:
			return 1 + g.rand.Intn(100000)
		}
	}

	if col.IsUUID() {
		return uuid.NewString()
	}

	if col.IsBoolean() {
		if strings.Contains(name, "is_") || strings.HasSuffix(name, "_flag") {
			return g.rand.Float64() < 0.85
		}
		return g.rand.Float64() < 0.5
	}

	if col.IsNumeric() {
		scale := col.Scale
		if scale == 0 {
			scale = 2
		}
		switch {
		case strings.Contains(name, "percent") || strings.HasSuffix(name, "pct"):
			return roundTo(g.floatBetween(0, 100), scale)
		case strings.Contains(name, "ratio") || strings.Contains(name, "fraction"):
			return roundTo(g.floatBetween(0, 1), scale)
		case col.Table == "promotion" && containsAny(name, "value", "discount"):
			return roundTo(g.floatBetween(5, 50), scale)
		case containsAny(name, "amount", "price", "rate", "cost", "fee", "total", "tax"):
			return roundTo(g.floatBetween(20, 2000), scale)
		default:
			return roundTo(g.floatBetween(0, 1000), scale)
		}
	}

	if col.IsText() {
		return g.textValue(col, rowIdx)
	}

	return nil
}

func (g *DataGenerator) textValue(col types.ColumnInfo, rowIdx int) interface{} {
	name := strings.ToLower(col.Name)
	maxLen := col.MaxLength
	if maxLen <= 0 {
		maxLen = 255
	}

	switch {
	case name == "city":
		return truncate(g.rowLocation(col.Table, rowIdx).City, maxLen)
	case name == "state":
		return truncate(g.rowLocation(col.Table, rowIdx).State, maxLen)
	case name == "country":
		return truncate(g.rowLocation(col.Table, rowIdx).Country, maxLen)
	case name == "postal_code" || name == "zipcode" || name == "zip":
		return truncate(g.rowLocation(col.Table, rowIdx).PostalCode, maxLen)
	case strings.Contains(name, "timezone"):
		return truncate(g.rowLocation(col.Table, rowIdx).Timezone, maxLen)
	case name == "address_line1" || name == "street" || name == "street1":
		return truncate(g.rowLocation(col.Table, rowIdx).Street1, maxLen)
	case name == "address_line2" || name == "street2":
		loc := g.rowLocation(col.Table, rowIdx)
		if loc.Street2 == "" && col.Nullable {
			return nil
		}
		return truncate(loc.Street2, maxLen)
	case name == "state_code" || name == "state_abbr":
		return truncate(g.rowLocation(col.Table, rowIdx).State, maxLen)
	}

	if col.Table == "hotel" && (name == "name" || name == "hotel_name") {
		brand := hotelBrands[g.rand.Intn(len(hotelBrands))]
		loc := g.rowLocation(col.Table, rowIdx)
		suffix := hotelSuffixes[g.rand.Intn(len(hotelSuffixes))]
		return truncate(fmt.Sprintf("%s %s %s", brand, loc.City, suffix), maxLen)
	}
	if col.Table == "room_type" && (name == "name" || name == "room_type_name") {
		return truncate(g.uniqueFromPool(col.Table+"."+col.Name, roomTypeNames), maxLen)
	}

	switch {
	case name == "phone" || name == "phone_number":
		return truncate(fmt.Sprintf("+1-%03d-%03d-%04d", g.rand.Intn(1000), g.rand.Intn(1000), g.rand.Intn(10000)), maxLen)
	case name == "currency" || name == "currency_code":
		return truncate(currencyCodes[g.rand.Intn(len(currencyCodes))], maxLen)
	case name == "email":
		return truncate(g.uniqueText(col.Table, col.Name, g.email), maxLen)
	case strings.HasSuffix(name, "_name") || name == "name" || name == "code":
		return truncate(g.uniqueText(col.Table, col.Name, g.uniqueWord), maxLen)
	}

	switch {
	case maxLen <= 20:
		return truncate(g.word(), maxLen)
	case maxLen <= 80:
		return truncate(g.sentence(6), maxLen)
	default:
		return truncate(g.sentence(10), maxLen)
	}
}

// uniqueText draws from produce until it yields a value not yet issued for
// (table, column). The counter-based fallback guarantees termination.
func (g *DataGenerator) uniqueText(table, column string, produce func() string) string {
	key := table + "." + column
	set := g.seen[key]
	if set == nil {
		set = make(map[string]struct{})
		g.seen[key] = set
	}

	for tries := 0; tries < maxUniqueTries; tries++ {
		v := strings.TrimSpace(produce())
		if v == "" {
			continue
		}
		if _, dup := set[v]; !dup {
			set[v] = struct{}{}
			return v
		}
	}

	g.counter++
	v := fmt.Sprintf("%s_%d_%s", strings.TrimSpace(produce()), g.counter, shortToken())
	set[v] = struct{}{}
	return v
}

// uniqueFromPool hands out values from a small curated list without repeats
// until the pool is exhausted, then falls back to suffixed variants.
func (g *DataGenerator) uniqueFromPool(key string, base []string) string {
	pool, ok := g.pools[key]
	if !ok {
		pool = append([]string(nil), base...)
		g.rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		g.pools[key] = pool
	}
	if len(pool) > 0 {
		v := pool[len(pool)-1]
		g.pools[key] = pool[:len(pool)-1]
		return v
	}
	return fmt.Sprintf("%s_%s", base[g.rand.Intn(len(base))], shortToken())
}

func (g *DataGenerator) email() string {
	g.counter++
	first := strings.ToLower(loremWords[g.rand.Intn(len(loremWords))])
	domains := []string{"example.com", "test.com", "demo.com", "mail.com"}
	return fmt.Sprintf("%s%d_%d@%s", first, g.counter, g.rand.Intn(100000), domains[g.rand.Intn(len(domains))])
}

func (g *DataGenerator) uniqueWord() string {
	w := loremWords[g.rand.Intn(len(loremWords))]
	return fmt.Sprintf("%s%s_%s", strings.ToUpper(w[:1]), w[1:], shortToken())
}

func (g *DataGenerator) word() string {
	return loremWords[g.rand.Intn(len(loremWords))]
}

func (g *DataGenerator) sentence(words int) string {
	parts := make([]string, words)
	for i := range parts {
		parts[i] = g.word()
	}
	s := strings.Join(parts, " ")
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

// timestampBetween returns a UTC timestamp offset by a uniformly random
// number of days (plus intra-day jitter) from today, bounds inclusive.
func (g *DataGenerator) timestampBetween(minDays, maxDays int) time.Time {
	days := minDays + g.rand.Intn(maxDays-minDays+1)
	return time.Now().UTC().
		AddDate(0, 0, days).
		Add(-time.Duration(g.rand.Intn(24*3600)) * time.Second)
}

func (g *DataGenerator) dateBetween(minDays, maxDays int) time.Time {
	t := time.Now().UTC().AddDate(0, 0, minDays+g.rand.Intn(maxDays-minDays+1))
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (g *DataGenerator) floatBetween(min, max float64) float64 {
	return min + g.rand.Float64()*(max-min)
}

func roundTo(v float64, scale int) float64 {
	factor := math.Pow10(scale)
	return math.Round(v*factor) / factor
}

func truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen]
	}
	return s
}
