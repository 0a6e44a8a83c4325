package compare

import (
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/benefitsim/internal/calculation"
	"github.com/rgehrsitz/benefitsim/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single household variant with calculated metrics
type ComparisonResult struct {
	ScenarioName string                  `json:"scenarioName"`
	Description  string                  `json:"description"`
	Input        domain.SimulatorInput   `json:"-"`
	Result       *domain.SimulatorResult `json:"-"`

	// Key Metrics
	TotalAnnual    int64    `json:"totalAnnual"`
	EligibleCount  int      `json:"eligibleCount"`
	CashPrograms   int      `json:"cashPrograms"`
	ProjectedTotal int64    `json:"projectedTotal"` // cumulative over the projection horizon
	ChildCount     int      `json:"childCount"`
	Programs       []string `json:"programs"`

	// Comparison to Base
	AmountDiffFromBase    int64           `json:"amountDiffFromBase"`
	AmountPctFromBase     decimal.Decimal `json:"amountPctFromBase"`
	ProjectedDiffFromBase int64           `json:"projectedDiffFromBase"`
	GainedPrograms        []string        `json:"gainedPrograms,omitempty"`
	LostPrograms          []string        `json:"lostPrograms,omitempty"`
}

// ComparisonSet represents a collection of household comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ReferenceDate      time.Time          `json:"referenceDate"`
	ProjectionYears    int                `json:"projectionYears"`
	ConfigPath         string             `json:"configPath"`
}

// MetricsCalculator extracts key metrics from simulation results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics of one variant. plan may be nil.
func (mc *MetricsCalculator) CalculateMetrics(name string, input domain.SimulatorInput, result *domain.SimulatorResult, plan *calculation.LifePlan) ComparisonResult {
	metrics := ComparisonResult{
		ScenarioName:  name,
		Input:         input,
		Result:        result,
		TotalAnnual:   result.TotalAnnualEstimate,
		EligibleCount: len(result.EligiblePrograms),
		CashPrograms:  len(result.FinancialPrograms()),
		ChildCount:    len(input.Children),
		Programs:      result.Slugs(),
	}
	if plan != nil {
		metrics.ProjectedTotal = plan.CumulativeTotal
	}
	return metrics
}

// CalculateComparison computes the deltas between a variant and the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.AmountDiffFromBase = scenario.TotalAnnual - base.TotalAnnual
	scenario.ProjectedDiffFromBase = scenario.ProjectedTotal - base.ProjectedTotal

	scenario.AmountPctFromBase = decimal.Zero
	if base.TotalAnnual != 0 {
		scenario.AmountPctFromBase = decimal.NewFromInt(scenario.AmountDiffFromBase).
			Div(decimal.NewFromInt(base.TotalAnnual)).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	scenario.GainedPrograms = difference(scenario.Programs, base.Programs)
	scenario.LostPrograms = difference(base.Programs, scenario.Programs)

	return scenario
}

// difference returns the slugs in a that are absent from b, in a's order
func difference(a, b []string) []string {
	seen := make(map[string]bool, len(b))
	for _, s := range b {
		seen[s] = true
	}
	var out []string
	for _, s := range a {
		if !seen[s] {
			out = append(out, s)
		}
	}
	return out
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}
	base := compSet.BaseResult

	// Highest annual estimate
	best := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalAnnual > best.TotalAnnual {
			best = alt
		}
	}
	if best != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Highest Annual Support: %s adds ¥%d per year over the base household", best.ScenarioName, best.TotalAnnual-base.TotalAnnual))
	}

	// Highest cumulative estimate
	bestProjected := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.ProjectedTotal > bestProjected.ProjectedTotal {
			bestProjected = alt
		}
	}
	if bestProjected != base && compSet.ProjectionYears > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Best Over %d Years: %s adds ¥%d in total", compSet.ProjectionYears, bestProjected.ScenarioName, bestProjected.ProjectedTotal-base.ProjectedTotal))
	}

	// Programs that only become available in a variant
	for _, alt := range compSet.AlternativeResults {
		if len(alt.GainedPrograms) > 0 {
			recommendations = append(recommendations,
				fmt.Sprintf("New Programs: %s opens %s", alt.ScenarioName, strings.Join(alt.GainedPrograms, ", ")))
		}
	}

	return recommendations
}
