// Package cli renders dashboard views for terminals.
package cli

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var thousand = decimal.NewFromInt(1000)

var compactUnits = []struct {
	threshold int64
	suffix    string
}{
	{1_000_000_000, "B"},
	{1_000_000, "M"},
	{1_000, "K"},
}

// CompactCount abbreviates large counts with one decimal: 61500 -> "61.5K", 279000 -> "279K"
func CompactCount(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	for i, unit := range compactUnits {
		if n >= unit.threshold {
			scaled := decimal.NewFromInt(n).Div(decimal.NewFromInt(unit.threshold)).Round(1)
			// 999_950 rounds to 1000.0K; promote to the next unit
			if i > 0 && scaled.GreaterThanOrEqual(thousand) {
				unit = compactUnits[i-1]
				scaled = decimal.NewFromInt(n).Div(decimal.NewFromInt(unit.threshold)).Round(1)
			}
			return sign + trimZeroFraction(scaled.StringFixed(1)) + unit.suffix
		}
	}
	return sign + humanize.Comma(n)
}

// Thousands formats a count with separators: 12500 -> "12,500"
func Thousands(n int64) string {
	return humanize.Comma(n)
}

// Percent renders a percentage with one decimal: 4.19 -> "4.2%"
func Percent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

// SignedPercent renders a growth value, "n/a" when it is undefined
func SignedPercent(d *decimal.Decimal) string {
	if d == nil {
		return "n/a"
	}
	s := Percent(*d)
	if d.Round(1).IsPositive() {
		return "+" + s
	}
	return s
}

func trimZeroFraction(s string) string {
	return strings.TrimSuffix(s, ".0")
}
