package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/benefitsim/internal/domain"
)

// DefaultProjectionYears is used when a projection is requested without a horizon
const DefaultProjectionYears = 10

// MaxProjectionYears caps the projection horizon
const MaxProjectionYears = 25

// YearEstimate is one row of a life-plan projection
type YearEstimate struct {
	Offset        int        `json:"offset" yaml:"offset"`
	Date          time.Time  `json:"date" yaml:"date"`
	TotalEstimate int64      `json:"total_estimate" yaml:"total_estimate"`
	EligibleCount int        `json:"eligible_count" yaml:"eligible_count"`
	ChildAges     []ChildAge `json:"child_ages" yaml:"child_ages"`
	Cumulative    int64      `json:"cumulative" yaml:"cumulative"`
	ProgramSlugs  []string   `json:"programs" yaml:"programs"`
}

// LifePlan is the year-by-year projection of a household's benefits
type LifePlan struct {
	ReferenceDate   time.Time      `json:"reference_date" yaml:"reference_date"`
	Years           []YearEstimate `json:"years" yaml:"years"`
	CumulativeTotal int64          `json:"cumulative_total" yaml:"cumulative_total"`
}

// ProjectLifePlan re-runs the simulation at ref and at each of the following
// anniversaries of ref, holding the household and catalog fixed. A horizon of
// zero or less uses DefaultProjectionYears.
func ProjectLifePlan(input domain.SimulatorInput, programs []domain.Program, ref time.Time, years int) (*LifePlan, error) {
	if years <= 0 {
		years = DefaultProjectionYears
	}
	if years > MaxProjectionYears {
		return nil, fmt.Errorf("projection horizon %d exceeds maximum of %d years", years, MaxProjectionYears)
	}

	ref = civilDate(ref)
	plan := &LifePlan{
		ReferenceDate: ref,
		Years:         make([]YearEstimate, 0, years),
	}

	for offset := 0; offset < years; offset++ {
		at := ref.AddDate(offset, 0, 0)
		result, err := RunSimulation(input, programs, at)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", offset, err)
		}

		ages := make([]ChildAge, len(input.Children))
		for i, child := range input.Children {
			ages[i] = ChildAgeAt(child.BirthDate, at)
		}

		plan.CumulativeTotal += result.TotalAnnualEstimate
		plan.Years = append(plan.Years, YearEstimate{
			Offset:        offset,
			Date:          at,
			TotalEstimate: result.TotalAnnualEstimate,
			EligibleCount: len(result.EligiblePrograms),
			ChildAges:     ages,
			Cumulative:    plan.CumulativeTotal,
			ProgramSlugs:  result.Slugs(),
		})
	}

	return plan, nil
}

// ProjectLifePlan projects the household over the engine's catalog
func (e *SimulationEngine) ProjectLifePlan(input domain.SimulatorInput, ref time.Time, years int) (*LifePlan, error) {
	if e.Catalog == nil {
		return nil, fmt.Errorf("simulation engine has no catalog")
	}
	plan, err := ProjectLifePlan(input, e.Catalog.Programs(), ref, years)
	if err != nil {
		return nil, err
	}
	e.logger().Infof("projected %d years, cumulative total %d", len(plan.Years), plan.CumulativeTotal)
	return plan, nil
}

// ProgramWindow is the declared age range of an eligible program
type ProgramWindow struct {
	Slug     string          `json:"slug" yaml:"slug"`
	Name     string          `json:"name" yaml:"name"`
	Category domain.Category `json:"category" yaml:"category"`
	MinAge   int             `json:"min_age" yaml:"min_age"`
	MaxAge   int             `json:"max_age" yaml:"max_age"`
	Amount   int64           `json:"amount" yaml:"amount"`
}

// ProgramWindows lists the age window of every eligible program in result
// order. Missing bounds default to 0 and 18.
func ProgramWindows(result *domain.SimulatorResult) []ProgramWindow {
	if result == nil {
		return nil
	}
	windows := make([]ProgramWindow, 0, len(result.EligiblePrograms))
	for i := range result.EligiblePrograms {
		ep := &result.EligiblePrograms[i]
		lo, hi := ep.Program.AgeWindow(0, 18)
		windows = append(windows, ProgramWindow{
			Slug:     ep.Program.Slug,
			Name:     ep.Program.Name,
			Category: ep.Program.Category,
			MinAge:   lo,
			MaxAge:   hi,
			Amount:   ep.EstimatedAmount,
		})
	}
	return windows
}
