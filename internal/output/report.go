package output

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/benefitsim/internal/calculation"
	"github.com/rgehrsitz/benefitsim/internal/catalog"
	"github.com/rgehrsitz/benefitsim/internal/domain"
)

// Report bundles a simulation result with the household it was computed for.
// Plan is optional.
type Report struct {
	Result     *domain.SimulatorResult
	Input      domain.SimulatorInput
	ChildNames []string
	Plan       *calculation.LifePlan
}

// NewReport builds a report; child names default to "Child N"
func NewReport(input domain.SimulatorInput, result *domain.SimulatorResult, names []string) *Report {
	return &Report{Result: result, Input: input, ChildNames: names}
}

// ChildName returns the display name of the child at position i
func (r *Report) ChildName(i int) string {
	if i < len(r.ChildNames) && r.ChildNames[i] != "" {
		return r.ChildNames[i]
	}
	return fmt.Sprintf("Child %d", i+1)
}

type childView struct {
	Name      string `json:"name" yaml:"name"`
	BirthDate string `json:"birth_date" yaml:"birth_date"`
	Age       string `json:"age" yaml:"age"`
	CareType  string `json:"care_type,omitempty" yaml:"care_type,omitempty"`
}

type programView struct {
	Rank            int      `json:"rank" yaml:"rank"`
	Slug            string   `json:"slug" yaml:"slug"`
	Name            string   `json:"name" yaml:"name"`
	Category        string   `json:"category" yaml:"category"`
	CategoryLabel   string   `json:"category_label" yaml:"category_label"`
	EstimatedAmount int64    `json:"estimated_amount" yaml:"estimated_amount"`
	AmountLabel     string   `json:"amount_label" yaml:"amount_label"`
	ApplicationURL  string   `json:"application_url,omitempty" yaml:"application_url,omitempty"`
	Deadline        string   `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	ActionItems     []string `json:"action_items" yaml:"action_items"`
}

type yearView struct {
	Date          string   `json:"date" yaml:"date"`
	ChildAges     []string `json:"child_ages" yaml:"child_ages"`
	TotalEstimate int64    `json:"total_estimate" yaml:"total_estimate"`
	EligibleCount int      `json:"eligible_count" yaml:"eligible_count"`
	Cumulative    int64    `json:"cumulative" yaml:"cumulative"`
}

type reportView struct {
	ReferenceDate       string        `json:"reference_date" yaml:"reference_date"`
	HouseholdType       string        `json:"household_type" yaml:"household_type"`
	Children            []childView   `json:"children" yaml:"children"`
	TotalAnnualEstimate int64         `json:"total_annual_estimate" yaml:"total_annual_estimate"`
	TotalLabel          string        `json:"total_label" yaml:"total_label"`
	EligiblePrograms    []programView `json:"eligible_programs" yaml:"eligible_programs"`
	Projection          []yearView    `json:"projection,omitempty" yaml:"projection,omitempty"`
	GeneratedAt         string        `json:"-" yaml:"-"`
}

func buildView(r *Report) (*reportView, error) {
	if r == nil || r.Result == nil {
		return nil, fmt.Errorf("report has no simulation result")
	}
	ref := r.Result.ReferenceDate

	view := &reportView{
		ReferenceDate:       ref.Format(domain.DateLayout),
		HouseholdType:       string(r.Input.HouseholdType),
		Children:            make([]childView, len(r.Input.Children)),
		TotalAnnualEstimate: r.Result.TotalAnnualEstimate,
		TotalLabel:          FormatManYen(r.Result.TotalAnnualEstimate),
		EligiblePrograms:    make([]programView, len(r.Result.EligiblePrograms)),
		GeneratedAt:         time.Now().Format(time.RFC1123),
	}

	for i, c := range r.Input.Children {
		view.Children[i] = childView{
			Name:      r.ChildName(i),
			BirthDate: c.BirthDate.Format(domain.DateLayout),
			Age:       calculation.FormatAge(c.BirthDate, ref),
			CareType:  string(c.CareType),
		}
	}

	for i, ep := range r.Result.EligiblePrograms {
		pv := programView{
			Rank:            i + 1,
			Slug:            ep.Program.Slug,
			Name:            ep.Program.Name,
			Category:        string(ep.Program.Category),
			CategoryLabel:   categoryLabel(ep.Program.Category),
			EstimatedAmount: ep.EstimatedAmount,
			AmountLabel:     FormatProgramAmount(ep.EstimatedAmount),
			ApplicationURL:  ep.Program.ApplicationURL,
			ActionItems:     ep.ActionItems,
		}
		if ep.Program.Deadline != nil {
			pv.Deadline = *ep.Program.Deadline
		}
		view.EligiblePrograms[i] = pv
	}

	if r.Plan != nil {
		for _, y := range r.Plan.Years {
			ages := make([]string, len(y.ChildAges))
			for i, a := range y.ChildAges {
				ages[i] = a.String()
			}
			view.Projection = append(view.Projection, yearView{
				Date:          y.Date.Format(domain.DateLayout),
				ChildAges:     ages,
				TotalEstimate: y.TotalEstimate,
				EligibleCount: y.EligibleCount,
				Cumulative:    y.Cumulative,
			})
		}
	}

	return view, nil
}

func categoryLabel(c domain.Category) string {
	if label, ok := catalog.CategoryLabels[c]; ok {
		return label
	}
	return string(c)
}
