package seeder

import "fmt"

// Curated location pool. Independent random draws for city/state/timezone
// produce nonsense combinations, so each row samples one Location and all
// geographic columns read from it.
type Location struct {
	City         string
	State        string
	Country      string
	PostalPrefix string
	Timezone     string

	// derived per row
	PostalCode string
	Street1    string
	Street2    string
}

var locationPool = []Location{
	// US, mixed timezones
	{City: "Boston", State: "MA", Country: "US", PostalPrefix: "02", Timezone: "America/New_York"},
	{City: "New York", State: "NY", Country: "US", PostalPrefix: "10", Timezone: "America/New_York"},
	{City: "Chicago", State: "IL", Country: "US", PostalPrefix: "60", Timezone: "America/Chicago"},
	{City: "Austin", State: "TX", Country: "US", PostalPrefix: "78", Timezone: "America/Chicago"},
	{City: "Denver", State: "CO", Country: "US", PostalPrefix: "80", Timezone: "America/Denver"},
	{City: "Seattle", State: "WA", Country: "US", PostalPrefix: "98", Timezone: "America/Los_Angeles"},
	{City: "San Francisco", State: "CA", Country: "US", PostalPrefix: "94", Timezone: "America/Los_Angeles"},
	{City: "San Jose", State: "CA", Country: "US", PostalPrefix: "95", Timezone: "America/Los_Angeles"},
	{City: "Miami", State: "FL", Country: "US", PostalPrefix: "33", Timezone: "America/New_York"},
	// India
	{City: "Bengaluru", State: "KA", Country: "IN", PostalPrefix: "560", Timezone: "Asia/Kolkata"},
	{City: "Hyderabad", State: "TS", Country: "IN", PostalPrefix: "500", Timezone: "Asia/Kolkata"},
	{City: "Mumbai", State: "MH", Country: "IN", PostalPrefix: "400", Timezone: "Asia/Kolkata"},
	{City: "Chennai", State: "TN", Country: "IN", PostalPrefix: "600", Timezone: "Asia/Kolkata"},
}

var hotelBrands = []string{
	"Marriott", "Hilton", "Hyatt", "Westin", "Sheraton", "Ibis", "Novotel", "Taj", "Oberoi", "Radisson",
}

var hotelSuffixes = []string{"Hotel", "Resort", "Suites", "Inn"}

var roomTypeNames = []string{
	"Standard King", "Standard Queen", "Deluxe King", "Deluxe Queen",
	"Studio", "Junior Suite", "Executive Suite", "Family Suite",
}

var streetNames = []string{
	"Main Street", "Oak Avenue", "Maple Drive", "Cedar Lane", "Park Road",
	"Lake View Boulevard", "Hillcrest Avenue", "River Road", "Sunset Drive",
	"Washington Street", "Church Street", "Elm Street", "Station Road",
}

var currencyCodes = []string{"USD", "INR"}

var loremWords = []string{
	"lorem", "ipsum", "dolor", "amet", "consectetur", "adipiscing", "tempor",
	"incididunt", "labore", "dolore", "magna", "aliqua", "veniam", "nostrud",
	"exercitation", "ullamco", "laboris", "aliquip", "commodo", "consequat",
	"voluptate", "cupidatat", "proident", "officia", "deserunt", "mollit",
	"premium", "harbor", "garden", "summit", "plaza", "meridian", "horizon",
	"crescent", "willow", "juniper", "amber", "crystal", "velvet", "laurel",
}

// rowLocation returns the location assigned to (table, row), sampling and
// caching one on first use so repeated column lookups for the same row stay
// consistent.
func (g *DataGenerator) rowLocation(table string, rowIdx int) *Location {
	key := fmt.Sprintf("%s:%d", table, rowIdx)
	if loc, ok := g.locations[key]; ok {
		return loc
	}

	loc := locationPool[g.rand.Intn(len(locationPool))]
	if loc.Country == "US" {
		loc.PostalCode = fmt.Sprintf("%s%03d", loc.PostalPrefix, g.rand.Intn(1000))
	} else if len(loc.PostalPrefix) == 3 {
		loc.PostalCode = fmt.Sprintf("%s%03d", loc.PostalPrefix, g.rand.Intn(1000))
	} else {
		loc.PostalCode = fmt.Sprintf("%s%04d", loc.PostalPrefix, g.rand.Intn(10000))
	}
	loc.Street1 = fmt.Sprintf("%d %s", 10+g.rand.Intn(9990), streetNames[g.rand.Intn(len(streetNames))])
	switch g.rand.Intn(3) {
	case 0:
		loc.Street2 = ""
	case 1:
		loc.Street2 = fmt.Sprintf("Apt %d", 1+g.rand.Intn(999))
	case 2:
		loc.Street2 = fmt.Sprintf("Suite %d", 100+g.rand.Intn(1900))
	}

	g.locations[key] = &loc
	return &loc
}
