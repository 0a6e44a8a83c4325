package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/benefitsim/internal/domain"
)

// ConsoleFormatter renders a plain-text report for terminals
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	view, err := buildView(report)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf, "CHILD BENEFIT ESTIMATE")
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintf(&buf, "Reference date: %s\n", view.ReferenceDate)
	if view.HouseholdType != "" {
		fmt.Fprintf(&buf, "Household:      %s\n", view.HouseholdType)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "CHILDREN")
	for _, child := range view.Children {
		care := child.CareType
		if care == "" {
			care = "-"
		}
		fmt.Fprintf(&buf, "  %-12s born %s  age %-8s care %s\n", child.Name, child.BirthDate, child.Age, care)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "ESTIMATED ANNUAL TOTAL: %s (%s)\n", FormatYen(view.TotalAnnualEstimate), view.TotalLabel)
	fmt.Fprintf(&buf, "Eligible programs:      %d\n", len(view.EligiblePrograms))
	fmt.Fprintln(&buf)

	financial := report.Result.FinancialPrograms()
	services := report.Result.ServicePrograms()

	if len(financial) > 0 {
		fmt.Fprintln(&buf, "CASH BENEFITS")
		fmt.Fprintln(&buf, strings.Repeat("-", 72))
		writePrograms(&buf, financial)
	}
	if len(services) > 0 {
		fmt.Fprintln(&buf, "SERVICES")
		fmt.Fprintln(&buf, strings.Repeat("-", 72))
		writePrograms(&buf, services)
	}

	if len(view.Projection) > 0 {
		fmt.Fprintln(&buf, "LIFE PLAN PROJECTION")
		fmt.Fprintln(&buf, strings.Repeat("-", 72))
		fmt.Fprintf(&buf, "%-12s %-24s %8s %14s %14s\n", "Date", "Ages", "Programs", "Annual", "Cumulative")
		for _, y := range view.Projection {
			fmt.Fprintf(&buf, "%-12s %-24s %8d %14s %14s\n",
				y.Date, strings.Join(y.ChildAges, ", "), y.EligibleCount, FormatYen(y.TotalEstimate), FormatYen(y.Cumulative))
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "Estimates are indicative only. Confirm eligibility with the ward office.")
	return buf.Bytes(), nil
}

func writePrograms(buf *bytes.Buffer, programs []domain.EligibleProgram) {
	for _, ep := range programs {
		fmt.Fprintf(buf, "%s [%s]\n", ep.Program.Name, categoryLabel(ep.Program.Category))
		fmt.Fprintf(buf, "  Estimate: %s\n", FormatProgramAmount(ep.EstimatedAmount))
		if ep.Program.Deadline != nil && *ep.Program.Deadline != "" {
			fmt.Fprintf(buf, "  Deadline: %s\n", *ep.Program.Deadline)
		}
		for _, item := range ep.ActionItems {
			fmt.Fprintf(buf, "  • %s\n", item)
		}
		fmt.Fprintln(buf)
	}
}
