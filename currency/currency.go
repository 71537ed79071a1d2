// Package currency converts canonical prices to whole display-currency units.
package currency

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DisplayRate is the fixed exchange rate: one canonical unit is worth this
// many display units (1 USD ~ 1300 IQD).
const DisplayRate = 1300

// ToDisplay converts a canonical amount to display units, rounded to the
// nearest whole unit. Fractional display units do not exist. Behavior is
// undefined for non-finite input; callers must not pass one.
func ToDisplay(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(DisplayRate)).Round(0).IntPart()
}

// Format renders a display amount with thousands separators and ASCII digits.
func Format(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}
