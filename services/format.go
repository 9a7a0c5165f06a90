package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"costestimator/estimate"
)

// FormatCurrency formats an amount in US dollar notation with thousands
// separators and exactly 2 decimal places, e.g. $1,234.56 or -$5.00.
func FormatCurrency(amount decimal.Decimal) string {
	rounded := estimate.Round2(amount)
	negative := rounded.IsNegative()

	raw := rounded.Abs().StringFixed(2)
	parts := strings.SplitN(raw, ".", 2)

	result := "$" + applyThousandsGrouping(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// FormatPercent formats a percentage value that is already expressed in
// percent units, e.g. 10 becomes 10.00%.
func FormatPercent(p decimal.Decimal) string {
	return estimate.Round2(p).StringFixed(2) + "%"
}

// FormatQty formats a quantity. Whole numbers are printed without decimals;
// fractional values get 2 decimal places.
func FormatQty(qty decimal.Decimal) string {
	rounded := estimate.Round2(qty)
	if rounded.IsInteger() {
		return rounded.StringFixed(0)
	}
	return rounded.StringFixed(2)
}

// FormatAmount renders a value with exactly 2 fractional digits and no
// grouping, the form used in JSON payloads.
func FormatAmount(d decimal.Decimal) string {
	return estimate.Round2(d).StringFixed(2)
}

// applyThousandsGrouping inserts commas every 3 digits from the right.
func applyThousandsGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
