package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/benefitsim/internal/calculation"
	"github.com/rgehrsitz/benefitsim/internal/domain"
	"github.com/rgehrsitz/benefitsim/internal/output"
	"github.com/spf13/cobra"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline [household-file]",
	Short: "Project the household's benefits year by year",
	Long: `Re-run the simulation on each anniversary of the reference date as the
children grow, holding the household and catalog fixed.

Examples:
  ./benefitsim timeline household.yaml
  ./benefitsim timeline household.yaml --years 18 --windows
  ./benefitsim timeline household.yaml --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(cmd, args[0])
		if err != nil {
			return err
		}

		years, _ := cmd.Flags().GetInt("years")
		plan, err := s.engine.ProjectLifePlan(s.cfg.Input, s.ref, years)
		if err != nil {
			return err
		}
		result, err := s.engine.RunAt(s.cfg.Input, s.ref)
		if err != nil {
			return err
		}

		formatName, _ := cmd.Flags().GetString("format")
		if formatName != "table" {
			report := output.NewReport(s.cfg.Input, result, s.cfg.ChildNames)
			report.Plan = plan
			return writeReport(cmd, report)
		}

		printPlan(cmd, s, plan)
		if showWindows, _ := cmd.Flags().GetBool("windows"); showWindows {
			printWindows(cmd, calculation.ProgramWindows(result))
		}
		return nil
	},
}

func printPlan(cmd *cobra.Command, s *session, plan *calculation.LifePlan) {
	out := cmd.OutOrStdout()
	names := s.cfg.ChildNames

	fmt.Fprintf(out, "LIFE PLAN FROM %s\n", plan.ReferenceDate.Format(domain.DateLayout))
	fmt.Fprintln(out, strings.Repeat("=", 72))
	fmt.Fprintf(out, "%-12s %-28s %8s %12s %12s\n", "Date", "Ages", "Programs", "Annual", "Cumulative")
	for _, y := range plan.Years {
		ages := make([]string, len(y.ChildAges))
		for i, a := range y.ChildAges {
			if i < len(names) && names[i] != "" {
				ages[i] = fmt.Sprintf("%s %s", names[i], a)
			} else {
				ages[i] = a.String()
			}
		}
		fmt.Fprintf(out, "%-12s %-28s %8d %12s %12s\n",
			y.Date.Format(domain.DateLayout), strings.Join(ages, ", "), y.EligibleCount,
			output.FormatManYen(y.TotalEstimate), output.FormatManYen(y.Cumulative))
	}
	fmt.Fprintln(out, strings.Repeat("-", 72))
	fmt.Fprintf(out, "Total over %d years: %s (%s)\n",
		len(plan.Years), output.FormatYen(plan.CumulativeTotal), output.FormatManYen(plan.CumulativeTotal))
}

func printWindows(cmd *cobra.Command, windows []calculation.ProgramWindow) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "PROGRAM AGE WINDOWS")
	for _, w := range windows {
		fmt.Fprintf(out, "  %-40s ages %2d-%-2d %s\n", w.Name, w.MinAge, w.MaxAge, output.FormatProgramAmount(w.Amount))
	}
}

func init() {
	timelineCmd.Flags().Int("years", calculation.DefaultProjectionYears, fmt.Sprintf("Projection horizon in years (max %d)", calculation.MaxProjectionYears))
	timelineCmd.Flags().StringP("format", "f", "table", "Output format (table, console, json, yaml, csv, html)")
	timelineCmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	timelineCmd.Flags().Bool("windows", false, "Also list the age window of each eligible program")

	rootCmd.AddCommand(timelineCmd)
}
