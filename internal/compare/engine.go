package compare

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/benefitsim/internal/calculation"
	"github.com/rgehrsitz/benefitsim/internal/domain"
	"github.com/rgehrsitz/benefitsim/internal/transform"
)

// DefaultBaseName labels the unmodified household
const DefaultBaseName = "current"

// CompareEngine orchestrates household what-if comparison.
// Templates are rebuilt per call because they are dated from the reference date.
type CompareEngine struct {
	SimEngine         *calculation.SimulationEngine
	MetricsCalculator *MetricsCalculator
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(simEngine *calculation.SimulationEngine) *CompareEngine {
	return &CompareEngine{
		SimEngine:         simEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseName   string   // Label of the base household
	Templates  []string // Template names, one variant each
	Transforms []string // Transform specs ("name:k=v,..."), applied together as one custom variant
	// ReferenceDate pins the evaluation date; zero means the engine's clock
	ReferenceDate time.Time
	Years         int // projection horizon; 0 uses calculation.DefaultProjectionYears
}

type variant struct {
	name        string
	description string
	input       domain.SimulatorInput
}

// Compare evaluates the base household and every requested variant at the same reference date
func (ce *CompareEngine) Compare(ctx context.Context, base domain.SimulatorInput, options CompareOptions) (*ComparisonSet, error) {
	if ce.SimEngine == nil {
		return nil, fmt.Errorf("compare engine has no simulation engine")
	}

	ref := options.ReferenceDate
	if ref.IsZero() {
		ref = ce.SimEngine.Now()
	}
	years := options.Years
	if years <= 0 {
		years = calculation.DefaultProjectionYears
	}
	baseName := options.BaseName
	if baseName == "" {
		baseName = DefaultBaseName
	}

	variants, err := ce.buildVariants(base, transform.CreateBuiltInTemplates(ref), options)
	if err != nil {
		return nil, err
	}

	baseResult, err := ce.evaluate(baseName, base, ref, years)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base household: %w", err)
	}

	alternatives := make([]ComparisonResult, 0, len(variants))
	for _, v := range variants {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		altResult, err := ce.evaluate(v.name, v.input, ref, years)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate variant %s: %w", v.name, err)
		}
		altResult.Description = v.description
		*altResult = ce.MetricsCalculator.CalculateComparison(*altResult, *baseResult)

		alternatives = append(alternatives, *altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         baseResult,
		AlternativeResults: alternatives,
		ReferenceDate:      baseResult.Result.ReferenceDate,
		ProjectionYears:    years,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) buildVariants(base domain.SimulatorInput, templates *transform.TemplateRegistry, options CompareOptions) ([]variant, error) {
	variants := []variant{}

	for _, name := range options.Templates {
		tmpl, ok := templates.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}

		input, err := transform.ApplyTemplate(base, tmpl)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", name, err)
		}
		variants = append(variants, variant{name: tmpl.Name, description: tmpl.Description, input: input})
	}

	if len(options.Transforms) > 0 {
		transforms := make([]transform.HouseholdTransform, 0, len(options.Transforms))
		descriptions := make([]string, 0, len(options.Transforms))
		for _, spec := range options.Transforms {
			tr, err := ce.TransformRegistry.ParseTransformSpec(spec)
			if err != nil {
				return nil, fmt.Errorf("invalid transform %q: %w", spec, err)
			}
			transforms = append(transforms, tr)
			descriptions = append(descriptions, tr.Description())
		}

		input, err := transform.ApplyTransforms(base, transforms)
		if err != nil {
			return nil, err
		}
		variants = append(variants, variant{name: "custom", description: strings.Join(descriptions, "; "), input: input})
	}

	if len(variants) == 0 {
		return nil, fmt.Errorf("no templates or transforms to compare")
	}
	return variants, nil
}

func (ce *CompareEngine) evaluate(name string, input domain.SimulatorInput, ref time.Time, years int) (*ComparisonResult, error) {
	result, err := ce.SimEngine.RunAt(input, ref)
	if err != nil {
		return nil, err
	}
	plan, err := ce.SimEngine.ProjectLifePlan(input, ref, years)
	if err != nil {
		return nil, err
	}
	metrics := ce.MetricsCalculator.CalculateMetrics(name, input, result, plan)
	return &metrics, nil
}
