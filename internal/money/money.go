// Package money formats and sums dollar amounts.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Sum adds dollar amounts without accumulating float error.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, _ := total.Float64()
	return f
}

// USD formats v rounded to whole dollars, e.g. "$68,450" or "-$1,200".
func USD(v float64) string {
	return format(decimal.NewFromFloat(v).Round(0), 0)
}

// USDCents formats v with two decimals, e.g. "$1,234.56".
func USDCents(v float64) string {
	return format(decimal.NewFromFloat(v).Round(2), 2)
}

// Compact formats large amounts with a k/M suffix, e.g. "$1.2M", "$340k", "$185".
func Compact(v float64) string {
	d := decimal.NewFromFloat(v)
	abs := d.Abs()
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	// The rounded value picks the suffix.
	thousand := decimal.NewFromInt(1_000)
	if whole := abs.Round(0); whole.LessThan(thousand) {
		return sign + "$" + whole.StringFixed(0)
	}
	if k := abs.Div(thousand).Round(1); k.LessThan(thousand) {
		return sign + "$" + trimZeros(k.StringFixed(1)) + "k"
	}
	return sign + "$" + trimZeros(abs.Div(decimal.NewFromInt(1_000_000)).Round(1).StringFixed(1)) + "M"
}

func trimZeros(s string) string {
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

func format(d decimal.Decimal, places int32) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	s := d.StringFixed(places)
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i:]
	}
	return sign + "$" + groupThousands(whole) + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
