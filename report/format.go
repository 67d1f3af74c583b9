// Package report renders projection results as text: number formatting,
// the day table, batch pagination and the run summary.
package report

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatNumber formats x with a fixed number of decimals and comma
// thousands separators. Halves round away from zero.
func FormatNumber(x float64, decimals int) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	if decimals < 0 {
		decimals = 0
	}

	s := decimal.NewFromFloat(x).StringFixed(int32(decimals))

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	out := sign + groupThousands(intPart)
	if hasFrac {
		out += "." + frac
	}
	return out
}

// ParseAmount reads a form amount such as "10,000" by dropping every
// character that is not a digit. Blank input is 0.
func ParseAmount(s string) float64 {
	digits := onlyDigits(s)
	if digits == "" {
		return 0
	}
	return decimal.RequireFromString(digits).InexactFloat64()
}

// FormatAmountInput normalises what a user typed into an amount field:
// non-digits are dropped, leading zeros removed and separators added.
func FormatAmountInput(s string) string {
	digits := onlyDigits(s)
	if digits == "" {
		return ""
	}
	return groupThousands(decimal.RequireFromString(digits).String())
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
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
