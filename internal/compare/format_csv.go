package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Household",
		"Type",
		"Children",
		"Annual Estimate",
		"Projected Total",
		"Eligible Programs",
		"Cash Programs",
		"Annual Diff from Base",
		"Annual % Change",
		"Projected Diff from Base",
		"Gained Programs",
		"Lost Programs",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		formatInt(int64(result.ChildCount)),
		formatInt(result.TotalAnnual),
		formatInt(result.ProjectedTotal),
		formatInt(int64(result.EligibleCount)),
		formatInt(int64(result.CashPrograms)),
		formatInt(result.AmountDiffFromBase),
		result.AmountPctFromBase.StringFixed(2),
		formatInt(result.ProjectedDiffFromBase),
		strings.Join(result.GainedPrograms, ";"),
		strings.Join(result.LostPrograms, ";"),
	}
}

func formatInt(i int64) string {
	return fmt.Sprintf("%d", i)
}
