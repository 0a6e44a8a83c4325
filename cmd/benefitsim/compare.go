package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/benefitsim/internal/calculation"
	"github.com/rgehrsitz/benefitsim/internal/compare"
	"github.com/rgehrsitz/benefitsim/internal/transform"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [household-file]",
	Short: "Compare the household against what-if variants",
	Long: `Compare a base household against alternative households built from
templates or ad-hoc transforms, evaluated at the same reference date.

Examples:
  ./benefitsim compare household.yaml --with add_newborn,single_parent
  ./benefitsim compare household.yaml --transform set_care:care=nursery
  ./benefitsim compare household.yaml --with all_home --format csv
  ./benefitsim compare --list-templates  # Show all available templates
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if listTemplates, _ := cmd.Flags().GetBool("list-templates"); listTemplates {
			registry := transform.CreateBuiltInTemplates(time.Now())
			fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(registry))
			fmt.Fprintf(cmd.OutOrStdout(), "\nTransforms: %s\n", strings.Join(transform.NewTransformRegistry().List(), ", "))
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("household file required for comparison (use --list-templates to see available templates)")
		}

		templatesStr, _ := cmd.Flags().GetString("with")
		transforms, _ := cmd.Flags().GetStringArray("transform")
		templateNames := transform.ParseTemplateList(templatesStr)
		if len(templateNames) == 0 && len(transforms) == 0 {
			return fmt.Errorf("--with or --transform is required to build a variant (or use --list-templates)")
		}

		s, err := loadSession(cmd, args[0])
		if err != nil {
			return err
		}

		baseName, _ := cmd.Flags().GetString("base")
		years, _ := cmd.Flags().GetInt("years")
		outputFormat, _ := cmd.Flags().GetString("format")

		compSet, err := compare.NewCompareEngine(s.engine).Compare(cmd.Context(), s.cfg.Input, compare.CompareOptions{
			BaseName:      baseName,
			Templates:     templateNames,
			Transforms:    transforms,
			ReferenceDate: s.ref,
			Years:         years,
		})
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}
		compSet.ConfigPath = args[0]

		out := cmd.OutOrStdout()
		switch outputFormat {
		case "csv":
			csvOutput, err := (&compare.CSVFormatter{}).Format(compSet)
			if err != nil {
				return fmt.Errorf("failed to format CSV: %w", err)
			}
			fmt.Fprint(out, csvOutput)
		case "json":
			if err := (&compare.JSONFormatter{Pretty: true}).Write(out, compSet); err != nil {
				return fmt.Errorf("failed to format JSON: %w", err)
			}
		case "compact":
			fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(compSet))
		case "table":
			fmt.Fprint(out, (&compare.TableFormatter{}).Format(compSet))
		default:
			return fmt.Errorf("unknown format %q (available: table, compact, csv, json)", outputFormat)
		}
		return nil
	},
}

func init() {
	compareCmd.Flags().String("base", compare.DefaultBaseName, "Label for the base household")
	compareCmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	compareCmd.Flags().StringArray("transform", nil, "Transform spec name:key=value,... (repeatable, applied together as one variant)")
	compareCmd.Flags().Int("years", calculation.DefaultProjectionYears, "Projection horizon in years for cumulative totals")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	compareCmd.Flags().Bool("list-templates", false, "List all available household templates")

	rootCmd.AddCommand(compareCmd)
}
