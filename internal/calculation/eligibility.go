package calculation

import (
	"time"

	"github.com/rgehrsitz/benefitsim/internal/domain"
)

// IsEligible decides whether a single child falls inside a program's age window at ref.
//
// A min_months override admits a child that fails the year-based minimum once
// it is old enough in months. A months_floor override rejects children younger
// than the floor even inside the declared window. The maximum is never overridden.
func IsEligible(child domain.ChildInfo, program *domain.Program, ref time.Time) bool {
	ageYears := AgeInYears(child.BirthDate, ref)
	ageMonths := AgeInMonths(child.BirthDate, ref)
	window := program.Eligibility
	override := program.Rules.Override

	if window.MinAge != nil && ageYears < *window.MinAge {
		if override.Kind == domain.OverrideMinMonths && ageMonths >= override.Months {
			return true
		}
		return false
	}
	if window.MaxAge != nil && ageYears > *window.MaxAge {
		return false
	}

	if override.Kind == domain.OverrideMonthsFloor && ageMonths < override.Months {
		return false
	}

	return true
}

// HouseholdEligible applies the household-level gates of a program.
//
// Newborn programs qualify when any child is at most NewbornWithinMonths old
// (expected children with a future birth date count) and skip the per-child
// window. Every other program needs at least one child passing IsEligible.
// Care-type and household-size gates apply on top of either rule.
func HouseholdEligible(program *domain.Program, input domain.SimulatorInput, ref time.Time) bool {
	gate := program.Rules.Household

	if gate.NewbornWithinMonths != nil {
		if !hasChildWithinMonths(input.Children, *gate.NewbornWithinMonths, ref) {
			return false
		}
	} else if !hasEligibleChild(input.Children, program, ref) {
		return false
	}

	if gate.RequireCareType != domain.CareNone && !input.HasCareType(gate.RequireCareType) {
		return false
	}

	if gate.MinChildren > 0 && len(input.Children) < gate.MinChildren {
		return false
	}

	return true
}

func hasEligibleChild(children []domain.ChildInfo, program *domain.Program, ref time.Time) bool {
	for _, child := range children {
		if IsEligible(child, program, ref) {
			return true
		}
	}
	return false
}

func hasChildWithinMonths(children []domain.ChildInfo, months int, ref time.Time) bool {
	return countWithinMonths(children, months, ref) > 0
}

func countWithinMonths(children []domain.ChildInfo, months int, ref time.Time) int {
	n := 0
	for _, child := range children {
		if AgeInMonths(child.BirthDate, ref) <= months {
			n++
		}
	}
	return n
}
