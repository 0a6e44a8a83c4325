package api

import (
	"github.com/rgehrsitz/benefitsim/internal/calculation"
	"github.com/rgehrsitz/benefitsim/internal/config"
	"github.com/rgehrsitz/benefitsim/internal/domain"
	"github.com/rgehrsitz/benefitsim/internal/output"
)

// =============================================================================
// REQUESTS
// =============================================================================

// SimulateRequest asks for the eligible programs of one household.
// ReferenceDate is YYYY-MM-DD; empty means today.
type SimulateRequest struct {
	Household     config.HouseholdSpec `json:"household"`
	ReferenceDate string               `json:"reference_date,omitempty"`
	Save          bool                 `json:"save,omitempty"`
	Label         string               `json:"label,omitempty"`
}

// TimelineRequest asks for a year-by-year projection
type TimelineRequest struct {
	Household     config.HouseholdSpec `json:"household"`
	ReferenceDate string               `json:"reference_date,omitempty"`
	Years         int                  `json:"years,omitempty"`
}

// CompareRequest asks for what-if variants of a household
type CompareRequest struct {
	Household     config.HouseholdSpec `json:"household"`
	ReferenceDate string               `json:"reference_date,omitempty"`
	BaseName      string               `json:"base_name,omitempty"`
	Templates     []string             `json:"templates,omitempty"`
	Transforms    []string             `json:"transforms,omitempty"`
	Years         int                  `json:"years,omitempty"`
}

// =============================================================================
// RESPONSES
// =============================================================================

// ProgramDTO is a catalog entry as served by the program endpoints
type ProgramDTO struct {
	domain.Program
	CategoryLabel string `json:"category_label"`
}

// EligibleProgramDTO is one ranked result row with display strings
type EligibleProgramDTO struct {
	Slug            string          `json:"slug"`
	Name            string          `json:"name"`
	Category        domain.Category `json:"category"`
	CategoryLabel   string          `json:"category_label"`
	EstimatedAmount int64           `json:"estimated_amount"`
	AmountDisplay   string          `json:"amount_display"`
	ApplicationURL  string          `json:"application_url,omitempty"`
	Deadline        *string         `json:"deadline,omitempty"`
	ActionItems     []string        `json:"action_items"`
}

// SimulateResponse is the result of POST /api/simulate
type SimulateResponse struct {
	RunID               string               `json:"run_id,omitempty"`
	ReferenceDate       string               `json:"reference_date"`
	TotalAnnualEstimate int64                `json:"total_annual_estimate"`
	TotalDisplay        string               `json:"total_display"`
	FinancialCount      int                  `json:"financial_count"`
	ServiceCount        int                  `json:"service_count"`
	EligiblePrograms    []EligibleProgramDTO `json:"eligible_programs"`
}

// TimelineResponse is the result of POST /api/simulate/timeline
type TimelineResponse struct {
	Plan    *calculation.LifePlan       `json:"plan"`
	Windows []calculation.ProgramWindow `json:"windows"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func toProgramDTO(p domain.Program) ProgramDTO {
	return ProgramDTO{Program: p, CategoryLabel: categoryLabel(p.Category)}
}

func toSimulateResponse(result *domain.SimulatorResult) SimulateResponse {
	resp := SimulateResponse{
		ReferenceDate:       result.ReferenceDate.Format(domain.DateLayout),
		TotalAnnualEstimate: result.TotalAnnualEstimate,
		TotalDisplay:        output.FormatManYen(result.TotalAnnualEstimate),
		FinancialCount:      len(result.FinancialPrograms()),
		ServiceCount:        len(result.ServicePrograms()),
		EligiblePrograms:    make([]EligibleProgramDTO, len(result.EligiblePrograms)),
	}
	for i, ep := range result.EligiblePrograms {
		resp.EligiblePrograms[i] = EligibleProgramDTO{
			Slug:            ep.Program.Slug,
			Name:            ep.Program.Name,
			Category:        ep.Program.Category,
			CategoryLabel:   categoryLabel(ep.Program.Category),
			EstimatedAmount: ep.EstimatedAmount,
			AmountDisplay:   output.FormatProgramAmount(ep.EstimatedAmount),
			ApplicationURL:  ep.Program.ApplicationURL,
			Deadline:        ep.Program.Deadline,
			ActionItems:     ep.ActionItems,
		}
	}
	return resp
}
