package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/benefitsim/internal/calculation"
	"github.com/rgehrsitz/benefitsim/internal/catalog"
	"github.com/rgehrsitz/benefitsim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var testRef = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

func buildTestReport(t *testing.T, withPlan bool) *Report {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)

	input := domain.SimulatorInput{
		HouseholdType: domain.HouseholdSingleParent,
		Children: []domain.ChildInfo{
			{BirthDate: testRef, CareType: domain.CareHome},
			{BirthDate: time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC), CareType: domain.CareKindergarten},
		},
	}
	result, err := calculation.RunSimulation(input, c.Programs(), testRef)
	require.NoError(t, err)

	report := NewReport(input, result, []string{"Hana"})
	if withPlan {
		report.Plan, err = calculation.ProjectLifePlan(input, c.Programs(), testRef, 3)
		require.NoError(t, err)
	}
	return report
}

func TestFormatYen(t *testing.T) {
	assert.Equal(t, "¥0", FormatYen(0))
	assert.Equal(t, "¥999", FormatYen(999))
	assert.Equal(t, "¥1,000", FormatYen(1000))
	assert.Equal(t, "¥840,000", FormatYen(840000))
	assert.Equal(t, "¥12,345,678", FormatYen(12345678))
	assert.Equal(t, "¥-5,000", FormatYen(-5000))
}

func TestFormatManYen(t *testing.T) {
	assert.Equal(t, "9,999円", FormatManYen(9999))
	assert.Equal(t, "1万円", FormatManYen(10000))
	assert.Equal(t, "84万円", FormatManYen(840000))
	assert.Equal(t, "1万円", FormatManYen(19999), "rounds down")
	assert.Equal(t, "1,250万円", FormatManYen(12500000))
}

func TestFormatProgramAmount(t *testing.T) {
	assert.Equal(t, "No cost", FormatProgramAmount(0))
	assert.Equal(t, "approx. 50万円", FormatProgramAmount(500000))
	assert.Equal(t, "approx. ¥8,000", FormatProgramAmount(8000))
	assert.Equal(t, "approx. ¥126,000", FormatProgramAmount(126000))
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "12.50%", FormatPercentage(decimal.NewFromFloat(12.5)))
	assert.Equal(t, "-3.00%", FormatPercentage(decimal.NewFromInt(-3)))
}

func TestFormatterFunc(t *testing.T) {
	called := false
	var received *Report

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(report *Report) ([]byte, error) {
			called = true
			received = report
			return []byte("test output"), nil
		},
	}

	report := buildTestReport(t, false)
	out, err := formatter.Format(report)

	assert.NoError(t, err)
	assert.True(t, called, "Should call the function")
	assert.Equal(t, report, received, "Should pass the report")
	assert.Equal(t, []byte("test output"), out)
	assert.Equal(t, "test-formatter", formatter.Name())
}

func TestWriteFormatted(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(report *Report) ([]byte, error) {
			return []byte("test output content"), nil
		},
	}

	filename, err := WriteFormatted(formatter, buildTestReport(t, false), "txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "benefit_report_"))
	assert.True(t, strings.HasSuffix(filename, ".txt"))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "test output content", string(content))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "error-formatter",
		F: func(report *Report) ([]byte, error) {
			return nil, fmt.Errorf("formatter error")
		},
	}

	filename, err := WriteFormatted(formatter, buildTestReport(t, false), "txt")
	assert.Error(t, err)
	assert.Empty(t, filename)
	assert.Contains(t, err.Error(), "formatter error")
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range []string{"console", "json", "yaml", "csv", "html"} {
		f := GetFormatterByName(name)
		require.NotNil(t, f, name)
		assert.Equal(t, name, f.Name())
	}
	assert.Nil(t, GetFormatterByName("non-existent"))
	assert.Equal(t, []string{"console", "csv", "html", "json", "yaml"}, AvailableFormatters())
}

func TestFormatters_RejectEmptyReport(t *testing.T) {
	for _, name := range AvailableFormatters() {
		_, err := GetFormatterByName(name).Format(&Report{})
		assert.Error(t, err, name)
	}
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport(t, true))
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "CHILD BENEFIT ESTIMATE")
	assert.Contains(t, content, "Reference date: 2024-04-01")
	assert.Contains(t, content, "Hana")
	assert.Contains(t, content, "Child 2")
	assert.Contains(t, content, "CASH BENEFITS")
	assert.Contains(t, content, "SERVICES")
	assert.Contains(t, content, "LIFE PLAN PROJECTION")
	assert.Contains(t, content, "Also check the additional support available to single-parent families.")
}

func TestJSONFormatter(t *testing.T) {
	report := buildTestReport(t, true)

	out, err := JSONFormatter{Pretty: true}.Format(report)
	require.NoError(t, err)

	var decoded struct {
		ReferenceDate       string `json:"reference_date"`
		TotalAnnualEstimate int64  `json:"total_annual_estimate"`
		EligiblePrograms    []struct {
			Rank int    `json:"rank"`
			Slug string `json:"slug"`
		} `json:"eligible_programs"`
		Projection []struct {
			Cumulative int64 `json:"cumulative"`
		} `json:"projection"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, "2024-04-01", decoded.ReferenceDate)
	assert.Equal(t, report.Result.TotalAnnualEstimate, decoded.TotalAnnualEstimate)
	require.Len(t, decoded.EligiblePrograms, len(report.Result.EligiblePrograms))
	assert.Equal(t, 1, decoded.EligiblePrograms[0].Rank)
	assert.Equal(t, report.Result.EligiblePrograms[0].Program.Slug, decoded.EligiblePrograms[0].Slug)
	assert.Len(t, decoded.Projection, 3)

	compact, err := JSONFormatter{}.Format(report)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(compact, []byte("\n  ")))
}

func TestYAMLFormatter(t *testing.T) {
	report := buildTestReport(t, false)

	out, err := YAMLFormatter{}.Format(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, "2024-04-01", decoded["reference_date"])
	assert.NotContains(t, decoded, "projection")
}

func TestCSVFormatter(t *testing.T) {
	report := buildTestReport(t, false)

	out, err := CSVFormatter{}.Format(report)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(report.Result.EligiblePrograms)+1)

	assert.Equal(t, []string{"Rank", "Slug", "Name", "Category", "EstimatedAmount", "ReferenceDate", "ActionItems"}, records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "childbirth-lump-sum", records[1][1])
	assert.Equal(t, "500000", records[1][4])
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport(t, true))
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "<!DOCTYPE html>")
	assert.Contains(t, content, "Life plan projection")
	assert.Contains(t, content, "Hana")
}
