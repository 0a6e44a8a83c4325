package calculation

import (
	"fmt"
	"sort"
	"time"

	"github.com/rgehrsitz/benefitsim/internal/catalog"
	"github.com/rgehrsitz/benefitsim/internal/domain"
)

// SimulationEngine runs simulations against one catalog snapshot.
// The engine holds no per-call state and may be shared between goroutines.
type SimulationEngine struct {
	Catalog *catalog.Catalog
	Logger  Logger
	// Now supplies the reference date for Run. It is the only place wall-clock time enters.
	Now func() time.Time
}

// NewSimulationEngine creates an engine for the given catalog
func NewSimulationEngine(c *catalog.Catalog) *SimulationEngine {
	return &SimulationEngine{
		Catalog: c,
		Logger:  NopLogger{},
		Now:     time.Now,
	}
}

// SetLogger sets the logger; nil restores the no-op logger
func (e *SimulationEngine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Run simulates the household as of today
func (e *SimulationEngine) Run(input domain.SimulatorInput) (*domain.SimulatorResult, error) {
	return e.RunAt(input, e.Now())
}

// RunAt simulates the household as of ref
func (e *SimulationEngine) RunAt(input domain.SimulatorInput, ref time.Time) (*domain.SimulatorResult, error) {
	if e.Catalog == nil {
		return nil, fmt.Errorf("simulation engine has no catalog")
	}
	return runSimulation(input, e.Catalog.Programs(), ref, e.logger())
}

func (e *SimulationEngine) logger() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}

// RunSimulation evaluates every program for the household at ref and
// returns the eligible programs ranked by estimated amount, highest first.
// Programs with equal amounts keep their catalog order. The programs slice is
// only read.
func RunSimulation(input domain.SimulatorInput, programs []domain.Program, ref time.Time) (*domain.SimulatorResult, error) {
	return runSimulation(input, programs, ref, NopLogger{})
}

func runSimulation(input domain.SimulatorInput, programs []domain.Program, ref time.Time, log Logger) (*domain.SimulatorResult, error) {
	if err := input.Check(); err != nil {
		return nil, fmt.Errorf("invalid household: %w", err)
	}
	ref = civilDate(ref)

	eligible := make([]domain.EligibleProgram, 0, len(programs))
	for i := range programs {
		program := &programs[i]
		if !HouseholdEligible(program, input, ref) {
			log.Debugf("program %s: not eligible", program.Slug)
			continue
		}

		amount := EstimateAmount(program, input, ref)
		log.Debugf("program %s: eligible, estimate %d (%s)", program.Slug, amount, estimateLabel(program.Rules.Estimate.Kind))

		eligible = append(eligible, domain.EligibleProgram{
			Program:         program.Clone(),
			EstimatedAmount: amount,
			ActionItems:     BuildActionItems(program, input),
		})
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].EstimatedAmount > eligible[j].EstimatedAmount
	})

	var total int64
	for _, ep := range eligible {
		total += ep.EstimatedAmount
	}
	log.Infof("simulation for %d children at %s: %d programs, total %d", len(input.Children), ref.Format(domain.DateLayout), len(eligible), total)

	return &domain.SimulatorResult{
		TotalAnnualEstimate: total,
		EligiblePrograms:    eligible,
		ReferenceDate:       ref,
	}, nil
}

// civilDate drops the clock and zone from t, keeping its calendar date
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func estimateLabel(kind domain.EstimateKind) string {
	if kind == domain.EstimateUnspecified {
		return "no amount rule"
	}
	return string(kind)
}
