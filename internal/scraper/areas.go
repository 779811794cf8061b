package scraper

import (
	"sort"
	"strings"
)

// areaCodes maps a lowercase city name to its RA area path.
var areaCodes = map[string]string{
	// UK
	"london":     "uk/london",
	"bristol":    "uk/bristol",
	"manchester": "uk/manchester",
	"birmingham": "uk/birmingham",
	"leeds":      "uk/leeds",
	"glasgow":    "uk/glasgow",
	"edinburgh":  "uk/edinburgh",
	"liverpool":  "uk/liverpool",
	"brighton":   "uk/brighton",
	"nottingham": "uk/nottingham",

	// Europe
	"berlin":    "de/berlin",
	"amsterdam": "nl/amsterdam",
	"paris":     "fr/paris",
	"barcelona": "es/barcelona",
	"madrid":    "es/madrid",
	"rome":      "it/rome",
	"milan":     "it/milan",
	"zurich":    "ch/zurich",
	"vienna":    "at/vienna",
	"prague":    "cz/prague",

	// North America
	"new york":      "us/newyork",
	"los angeles":   "us/losangeles",
	"chicago":       "us/chicago",
	"miami":         "us/miami",
	"detroit":       "us/detroit",
	"san francisco": "us/sanfrancisco",
	"toronto":       "ca/toronto",
	"montreal":      "ca/montreal",

	// Australia
	"melbourne": "au/melbourne",
	"sydney":    "au/sydney",

	"tokyo":        "jp/tokyo",
	"buenos aires": "ar/buenosaires",
}

// areaCities is the sorted key set, so substring fallback is deterministic.
var areaCities = func() []string {
	cities := make([]string, 0, len(areaCodes))
	for c := range areaCodes {
		cities = append(cities, c)
	}
	sort.Strings(cities)
	return cities
}()

// AreaCode returns the RA area path for a location. An exact city match wins;
// otherwise the first city that contains, or is contained in, the location is
// used. Returns "" for unsupported locations.
func AreaCode(location string) string {
	loc := strings.ToLower(strings.TrimSpace(location))
	if loc == "" {
		return ""
	}
	if code, ok := areaCodes[loc]; ok {
		return code
	}
	for _, city := range areaCities {
		if strings.Contains(loc, city) || strings.Contains(city, loc) {
			return areaCodes[city]
		}
	}
	return ""
}
