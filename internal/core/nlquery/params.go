package nlquery

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Meter types as stored in the compteurs table
const (
	MeterWater       = "EAU"
	MeterElectricity = "ELECTRICITE"
)

// DefaultTopN is the ranking size when no "top N" pattern is present
const DefaultTopN = 5

// monthEntry keeps the lookup ordered so extraction is deterministic when a
// query mentions several month names
type monthEntry struct {
	name string
	num  int
}

// French month names, with legacy unaccented spellings
var months = []monthEntry{
	{"janvier", 1}, {"février", 2}, {"fevrier", 2}, {"mars", 3}, {"avril", 4},
	{"mai", 5}, {"juin", 6}, {"juillet", 7}, {"août", 8}, {"aout", 8},
	{"septembre", 9}, {"octobre", 10}, {"novembre", 11}, {"décembre", 12}, {"decembre", 12},
}

var topRe = regexp.MustCompile(`top\s*(\d+)`)

// MeterTypeOf extracts an optional meter type filter from a normalized query.
// A water keyword takes priority over an electricity keyword; empty string
// means no filter
func MeterTypeOf(q string) string {
	if strings.Contains(q, "eau") {
		return MeterWater
	}
	if strings.Contains(q, "électricité") || strings.Contains(q, "electricite") {
		return MeterElectricity
	}
	return ""
}

// MonthOf extracts a month number from a normalized query, or reports false
// when no month name is present
func MonthOf(q string) (int, bool) {
	for _, m := range months {
		if strings.Contains(q, m.name) {
			return m.num, true
		}
	}
	return 0, false
}

// MonthName returns the accented French name for a month number, or the
// number itself when out of range
func MonthName(num int) string {
	for _, m := range months {
		if m.num == num {
			return m.name
		}
	}
	return strconv.Itoa(num)
}

// TopN extracts the N from a "top N" pattern, defaulting to DefaultTopN
func TopN(q string) int {
	m := topRe.FindStringSubmatch(q)
	if m == nil {
		return DefaultTopN
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return DefaultTopN
	}
	return n
}

// MonthRange returns the half-open interval [first of month, first of next month)
// in the local timezone
func MonthRange(year int, month int) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end = start.AddDate(0, 1, 0)
	return start, end
}

// CurrentMonth returns the year and month of now
func CurrentMonth(now time.Time) (year, month int) {
	return now.Year(), int(now.Month())
}
