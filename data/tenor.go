package data

import "strings"

type tenor struct {
	name  string
	years float64
}

// Year fractions of the supported tenors, shortest first.
var tenorTable = []tenor{
	{"1W", 7.0 / 365.0},
	{"2W", 14.0 / 365.0},
	{"1M", 1.0 / 12.0},
	{"2M", 2.0 / 12.0},
	{"3M", 3.0 / 12.0},
	{"6M", 6.0 / 12.0},
	{"9M", 9.0 / 12.0},
	{"1Y", 1.0},
	{"2Y", 2.0},
}

// NormalizeTenor trims and upper-cases a tenor label.
func NormalizeTenor(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// TenorYears returns the year fraction for a tenor label.
func TenorYears(s string) (float64, bool) {
	i := tenorIndex(s)
	if i < 0 {
		return 0, false
	}
	return tenorTable[i].years, true
}

// Tenors returns the supported tenor labels, shortest first.
func Tenors() []string {
	out := make([]string, len(tenorTable))
	for i, v := range tenorTable {
		out[i] = v.name
	}
	return out
}

// position in tenorTable, or -1
func tenorIndex(s string) int {
	s = NormalizeTenor(s)
	for i, v := range tenorTable {
		if v.name == s {
			return i
		}
	}
	return -1
}
