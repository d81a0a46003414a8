package query

import (
	"strconv"
	"strings"
	"unicode"
)

// SanitizeText strips control characters from a caller-supplied filter value
// and trims surrounding whitespace. Values are always bound as query
// parameters on top of this; sanitizing keeps echoes and logs clean too.
func SanitizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// SanitizeID coerces a caller-supplied identifier to a positive integer.
// Anything that does not parse, including the "All" sentinel, reports false.
func SanitizeID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
