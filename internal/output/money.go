package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

var tenThousand = decimal.NewFromInt(10000)

// FormatYen formats a whole-yen amount with thousands separators, e.g. ¥1,234,567
func FormatYen(amount int64) string {
	return "¥" + groupDigits(decimal.NewFromInt(amount).StringFixed(0))
}

// FormatManYen formats amounts of at least 10,000 yen in units of 10,000 (万円),
// rounding down. Smaller amounts are shown in yen.
func FormatManYen(amount int64) string {
	d := decimal.NewFromInt(amount)
	if d.Abs().LessThan(tenThousand) {
		return groupDigits(d.StringFixed(0)) + "円"
	}
	man := d.Div(tenThousand).Truncate(0)
	return groupDigits(man.StringFixed(0)) + "万円"
}

// FormatProgramAmount describes a single program estimate.
// Services with no cash value read "No cost"; round amounts use 万円.
func FormatProgramAmount(amount int64) string {
	if amount == 0 {
		return "No cost"
	}
	d := decimal.NewFromInt(amount)
	if d.GreaterThanOrEqual(tenThousand) && d.Mod(tenThousand).IsZero() {
		return "approx. " + FormatManYen(amount)
	}
	return "approx. " + FormatYen(amount)
}

// FormatPercentage formats a decimal as a percentage with two places
func FormatPercentage(pct decimal.Decimal) string {
	return pct.StringFixed(2) + "%"
}

func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}
