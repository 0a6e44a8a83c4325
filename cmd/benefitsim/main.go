package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rgehrsitz/benefitsim/internal/calculation"
	"github.com/rgehrsitz/benefitsim/internal/catalog"
	"github.com/rgehrsitz/benefitsim/internal/config"
	"github.com/rgehrsitz/benefitsim/internal/domain"
	"github.com/rgehrsitz/benefitsim/internal/output"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "benefitsim %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

var rootCmd = &cobra.Command{
	Use:   "benefitsim",
	Short: "Child benefit eligibility calculator",
	Long: `Estimate which municipal child-related benefits a household qualifies for,
how much they are worth per year, and how that changes as the children grow.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// session is a loaded household ready to simulate
type session struct {
	cfg    *config.Configuration
	engine *calculation.SimulationEngine
	ref    time.Time
}

// newEngine builds a simulation engine over the catalog at path (built-in when empty)
func newEngine(cmd *cobra.Command, catalogPath string) (*calculation.SimulationEngine, error) {
	c, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, err
	}
	engine := calculation.NewSimulationEngine(c)
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return engine, nil
}

// loadSession reads the household file. The --catalog and --date flags win
// over the file's own settings; with neither, the built-in catalog and today are used.
func loadSession(cmd *cobra.Command, path string) (*session, error) {
	if !fileExists(path) {
		return nil, fmt.Errorf("household file not found: %s", path)
	}
	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}

	catalogPath, _ := cmd.Flags().GetString("catalog")
	if catalogPath == "" {
		catalogPath = cfg.CatalogPath
	}
	engine, err := newEngine(cmd, catalogPath)
	if err != nil {
		return nil, err
	}

	ref, err := referenceDate(cmd, cfg.ReferenceDate, engine)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, engine: engine, ref: ref}, nil
}

func referenceDate(cmd *cobra.Command, fromFile *time.Time, engine *calculation.SimulationEngine) (time.Time, error) {
	if s, _ := cmd.Flags().GetString("date"); s != "" {
		t, err := domain.ParseDate(s)
		if err != nil {
			return time.Time{}, domain.NewValidationError("date", "%s", err.Error())
		}
		return t, nil
	}
	if fromFile != nil {
		return *fromFile, nil
	}
	return engine.Now(), nil
}

func formatterFor(name string) (output.Formatter, error) {
	f := output.GetFormatterByName(name)
	if f == nil {
		return nil, fmt.Errorf("unknown format %q (available: %s)", name, strings.Join(output.AvailableFormatters(), ", "))
	}
	return f, nil
}

// writeReport renders the report to stdout, or to a timestamped file with --save
func writeReport(cmd *cobra.Command, report *output.Report) error {
	formatName, _ := cmd.Flags().GetString("format")
	f, err := formatterFor(formatName)
	if err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		ext := formatName
		if ext == "console" {
			ext = "txt"
		}
		filename, err := output.WriteFormatted(f, report, ext)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
		return nil
	}

	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [household-file]",
	Short: "Estimate the benefits a household is eligible for",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(cmd, args[0])
		if err != nil {
			return err
		}

		result, err := s.engine.RunAt(s.cfg.Input, s.ref)
		if err != nil {
			return err
		}
		report := output.NewReport(s.cfg.Input, result, s.cfg.ChildNames)

		if withPlan, _ := cmd.Flags().GetBool("plan"); withPlan {
			years, _ := cmd.Flags().GetInt("years")
			report.Plan, err = s.engine.ProjectLifePlan(s.cfg.Input, s.ref, years)
			if err != nil {
				return err
			}
		}

		if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
			label, _ := cmd.Flags().GetString("label")
			run, err := saveRun(cmd.Context(), dbPath, label, s.cfg.Input, result)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved run %s\n", run.ID)
		}

		return writeReport(cmd, report)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [household-file]",
	Short: "Validate a household file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		if cfg.CatalogPath != "" {
			if _, err := catalog.LoadFromFile(cfg.CatalogPath); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Household file is valid")
		fmt.Fprintf(out, "  Household type: %s\n", cfg.Input.HouseholdType)
		fmt.Fprintf(out, "  Children:       %d\n", len(cfg.Input.Children))
		if cfg.ReferenceDate != nil {
			fmt.Fprintf(out, "  Reference date: %s\n", cfg.ReferenceDate.Format(domain.DateLayout))
		}
		if cfg.CatalogPath != "" {
			fmt.Fprintf(out, "  Catalog:        %s\n", cfg.CatalogPath)
		}
		return nil
	},
}

var programsCmd = &cobra.Command{
	Use:   "programs [slug]",
	Short: "List the programs in the catalog, or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogPath, _ := cmd.Flags().GetString("catalog")
		c, err := catalog.Load(catalogPath)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			p, err := c.BySlug(args[0])
			if err != nil {
				return err
			}
			printProgram(cmd, p)
			return nil
		}

		for _, group := range c.Grouped() {
			if len(group) == 0 {
				continue
			}
			fmt.Fprintf(out, "%s\n", strings.ToUpper(catalog.CategoryLabels[group[0].Category]))
			for _, p := range group {
				fmt.Fprintf(out, "  %-36s %s\n", p.Slug, p.Name)
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%d programs\n", c.Len())
		return nil
	},
}

func printProgram(cmd *cobra.Command, p domain.Program) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", p.Name, p.Slug)
	fmt.Fprintf(out, "  Category: %s\n", catalog.CategoryLabels[p.Category])
	if p.Description != "" {
		fmt.Fprintf(out, "  %s\n", p.Description)
	}
	if p.Eligibility.MinAge != nil || p.Eligibility.MaxAge != nil {
		lo, hi := p.AgeWindow(0, 18)
		fmt.Fprintf(out, "  Ages:     %d-%d\n", lo, hi)
	}
	if p.Amount.Description != "" {
		fmt.Fprintf(out, "  Amount:   %s\n", p.Amount.Description)
	}
	if p.Deadline != nil && *p.Deadline != "" {
		fmt.Fprintf(out, "  Deadline: %s\n", *p.Deadline)
	}
	if p.ApplicationURL != "" {
		fmt.Fprintf(out, "  Apply:    %s\n", p.ApplicationURL)
	}
}

func init() {
	rootCmd.PersistentFlags().String("catalog", "", "Path to a program catalog YAML file (default: built-in catalog)")
	rootCmd.PersistentFlags().String("date", "", "Reference date YYYY-MM-DD (default: the household file's date, else today)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging of eligibility decisions")

	simulateCmd.Flags().StringP("format", "f", "console", "Output format (console, json, yaml, csv, html)")
	simulateCmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	simulateCmd.Flags().Bool("plan", false, "Include the year-by-year life-plan projection")
	simulateCmd.Flags().Int("years", calculation.DefaultProjectionYears, "Projection horizon in years (with --plan)")
	simulateCmd.Flags().String("db", "", "Record the run in this SQLite database")
	simulateCmd.Flags().String("label", "", "Label for the recorded run (with --db)")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(programsCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
