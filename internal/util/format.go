package util

import (
	"strconv"
	"strings"
)

// ShortFloat formats v with the fewest digits that round-trip, always
// keeping a decimal point: 42.5 -> "42.5", 42 -> "42.0".
func ShortFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
