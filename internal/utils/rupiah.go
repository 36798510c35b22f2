package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupiah renders a Rupiah amount with thousands separators for display,
// e.g. 1234500 -> "Rp 1.234.500". Rupiah has no fractional unit in this
// system; amounts are truncated to whole numbers.
func FormatRupiah(amount decimal.Decimal) string {
	whole := amount.Truncate(0)
	negative := whole.IsNegative()
	digits := whole.Abs().String()

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	b.WriteString("Rp ")

	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteString(".")
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteString(".")
		}
	}
	return b.String()
}

// FormatRupiahInt is FormatRupiah for plain integer amounts.
func FormatRupiahInt(amount int64) string {
	return FormatRupiah(decimal.NewFromInt(amount))
}
