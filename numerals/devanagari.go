// Package numerals renders fares in regional-script digits for display.
package numerals

import (
	"strconv"
	"strings"
)

var devanagariDigits = [10]rune{'०', '१', '२', '३', '४', '५', '६', '७', '८', '९'}

// Devanagari writes n using Devanagari digits. Zero is rendered as "०".
func Devanagari(n int) string {
	return Transliterate(strconv.Itoa(n))
}

// Transliterate replaces every ASCII digit in s with its Devanagari form and
// leaves all other characters untouched
func Transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(devanagariDigits[r-'0'])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
