package domain

import "time"

// EligibleProgram is one program the household qualifies for
type EligibleProgram struct {
	Program         Program  `yaml:"program" json:"program"`
	EstimatedAmount int64    `yaml:"estimated_amount" json:"estimated_amount"` // whole JPY per year
	ActionItems     []string `yaml:"action_items" json:"action_items"`
}

// SimulatorResult is the ranked output of a simulation
type SimulatorResult struct {
	TotalAnnualEstimate int64             `yaml:"total_annual_estimate" json:"total_annual_estimate"`
	EligiblePrograms    []EligibleProgram `yaml:"eligible_programs" json:"eligible_programs"`
	ReferenceDate       time.Time         `yaml:"reference_date" json:"reference_date"`
}

// FinancialPrograms returns the eligible programs with a positive estimate
func (r *SimulatorResult) FinancialPrograms() []EligibleProgram {
	out := []EligibleProgram{}
	for _, ep := range r.EligiblePrograms {
		if ep.EstimatedAmount > 0 {
			out = append(out, ep)
		}
	}
	return out
}

// ServicePrograms returns the eligible programs whose value is non-monetary
func (r *SimulatorResult) ServicePrograms() []EligibleProgram {
	out := []EligibleProgram{}
	for _, ep := range r.EligiblePrograms {
		if ep.EstimatedAmount == 0 {
			out = append(out, ep)
		}
	}
	return out
}

// Slugs returns the slugs of the eligible programs in result order
func (r *SimulatorResult) Slugs() []string {
	slugs := make([]string, 0, len(r.EligiblePrograms))
	for _, ep := range r.EligiblePrograms {
		slugs = append(slugs, ep.Program.Slug)
	}
	return slugs
}

// Find returns the eligible entry for a slug
func (r *SimulatorResult) Find(slug string) (EligibleProgram, bool) {
	for _, ep := range r.EligiblePrograms {
		if ep.Program.Slug == slug {
			return ep, true
		}
	}
	return EligibleProgram{}, false
}
