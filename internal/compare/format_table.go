package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing household variants
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("HOUSEHOLD WHAT-IF COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Household: %s\n", compSet.BaseScenarioName))
	sb.WriteString(fmt.Sprintf("Reference Date: %s\n", compSet.ReferenceDate.Format("2006-01-02")))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration:  %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 25
	numWidth := 15

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Household",
		numWidth, "Annual",
		numWidth, fmt.Sprintf("%d-Year Total", compSet.ProjectionYears),
		numWidth, "Programs",
		numWidth, "Cash Programs"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s: %s\n", alt.ScenarioName, alt.Description))

			sb.WriteString(fmt.Sprintf("  Annual Support:   %s¥%s (%s%%)\n",
				tf.deltaSymbol(alt.AmountDiffFromBase),
				tf.formatYen(abs(alt.AmountDiffFromBase)),
				alt.AmountPctFromBase.StringFixed(1)))

			if alt.ProjectedDiffFromBase != 0 {
				sb.WriteString(fmt.Sprintf("  Projected Total:  %s¥%s\n",
					tf.deltaSymbol(alt.ProjectedDiffFromBase),
					tf.formatYen(abs(alt.ProjectedDiffFromBase))))
			}
			if len(alt.GainedPrograms) > 0 {
				sb.WriteString(fmt.Sprintf("  Gained:           %s\n", strings.Join(alt.GainedPrograms, ", ")))
			}
			if len(alt.LostPrograms) > 0 {
				sb.WriteString(fmt.Sprintf("  Lost:             %s\n", strings.Join(alt.LostPrograms, ", ")))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single variant row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*d %*d\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "¥"+tf.formatYen(result.TotalAnnual),
		numWidth, "¥"+tf.formatYen(result.ProjectedTotal),
		numWidth, result.EligibleCount,
		numWidth, result.CashPrograms)
}

// formatYen formats an amount for display, abbreviating to 万 (10,000) units from 10,000 up
func (tf *TableFormatter) formatYen(amount int64) string {
	d := decimal.NewFromInt(amount)
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(10000)) {
		return d.Div(decimal.NewFromInt(10000)).StringFixed(1) + "万"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns a + sign for gains; losses carry their own sign
func (tf *TableFormatter) deltaSymbol(delta int64) string {
	switch {
	case delta > 0:
		return "+"
	case delta < 0:
		return "-"
	default:
		return " "
	}
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each variant
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.AmountDiffFromBase > 0 {
			change = fmt.Sprintf("+¥%s", tf.formatYen(alt.AmountDiffFromBase))
		} else if alt.AmountDiffFromBase < 0 {
			change = fmt.Sprintf("-¥%s", tf.formatYen(abs(alt.AmountDiffFromBase)))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
