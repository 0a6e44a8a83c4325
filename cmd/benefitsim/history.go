package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/benefitsim/internal/domain"
	"github.com/rgehrsitz/benefitsim/internal/output"
	"github.com/rgehrsitz/benefitsim/internal/store/sqlite"
	"github.com/spf13/cobra"
)

const defaultDBPath = "benefitsim.db"

// saveRun records a simulation in the database at dbPath
func saveRun(ctx context.Context, dbPath, label string, input domain.SimulatorInput, result *domain.SimulatorResult) (sqlite.Run, error) {
	store, err := sqlite.New(dbPath)
	if err != nil {
		return sqlite.Run{}, err
	}
	defer store.Close()

	return store.SaveRun(ctx, sqlite.Run{Label: label, Input: input, Result: result})
}

func openStore(cmd *cobra.Command) (*sqlite.Store, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	if !fileExists(dbPath) {
		return nil, fmt.Errorf("no run history at %s (record runs with simulate --db)", dbPath)
	}
	return sqlite.New(dbPath)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded simulation runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := store.ListRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "No runs recorded")
			return nil
		}
		fmt.Fprintf(out, "%-36s  %-16s  %-10s  %8s  %8s  %10s\n", "ID", "Recorded", "Reference", "Children", "Programs", "Annual")
		for _, r := range runs {
			fmt.Fprintf(out, "%-36s  %-16s  %-10s  %8d  %8d  %10s\n",
				r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.ReferenceDate.Format(domain.DateLayout),
				r.ChildCount, r.EligibleCount, output.FormatManYen(r.TotalAnnual))
			if r.Label != "" {
				fmt.Fprintf(out, "  %s\n", r.Label)
			}
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show the report of a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		run, err := store.GetRun(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if run.Label != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", run.Label, strings.Repeat("-", len(run.Label)))
		}
		return writeReport(cmd, output.NewReport(run.Input, run.Result, nil))
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete [run-id]",
	Short: "Delete a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.DeleteRun(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", args[0])
		return nil
	},
}

func init() {
	historyCmd.PersistentFlags().String("db", defaultDBPath, "Path to the run history database")
	historyListCmd.Flags().Int("limit", sqlite.DefaultListLimit, "Maximum number of runs to list")
	historyShowCmd.Flags().StringP("format", "f", "console", "Output format (console, json, yaml, csv, html)")
	historyShowCmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}
