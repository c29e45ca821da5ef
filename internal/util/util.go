// Package util provides presentation helpers shared by the CLI and the HTTP layer.
package util

import (
	"strconv"
	"strings"
)

// FormatPrice renders a price in whole dollars with thousands separators, e.g. $1,210,000.
func FormatPrice(price int64) string {
	sign := ""
	if price < 0 {
		sign = "-"
		price = -price
	}

	digits := strconv.FormatInt(price, 10)
	var b strings.Builder
	b.WriteString(sign)
	b.WriteByte('$')
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// SanitizeFilename replaces each run of whitespace with an underscore
// and drops path separators.
func SanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return -1
		}
		return r
	}, name)
	return strings.Join(strings.Fields(name), "_")
}
