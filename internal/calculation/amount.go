package calculation

import (
	"time"

	"github.com/rgehrsitz/benefitsim/internal/domain"
)

// EstimateAmount returns the estimated annual value of a program for the
// household in whole JPY. Programs without a monetary rule estimate to 0.
// All arithmetic is integral and the result is never negative.
func EstimateAmount(program *domain.Program, input domain.SimulatorInput, ref time.Time) int64 {
	return max(estimate(program, input, ref), 0)
}

func estimate(program *domain.Program, input domain.SimulatorInput, ref time.Time) int64 {
	rule := program.Rules.Estimate

	switch rule.Kind {
	case domain.EstimateTieredMonthly:
		if rule.Tiers == nil {
			return 0
		}
		var monthly int64
		for i, child := range input.Children {
			monthly += tieredMonthly(child, i, rule.Tiers, ref)
		}
		return monthly * 12

	case domain.EstimateAgeBanded:
		var total int64
		for _, child := range input.Children {
			if !IsEligible(child, program, ref) {
				continue
			}
			total += bandAmount(rule.Bands, AgeInYears(child.BirthDate, ref))
		}
		return total

	case domain.EstimatePerInfant:
		return int64(countWithinMonths(input.Children, rule.WithinMonths, ref)) * rule.PerChild

	case domain.EstimateService:
		return 0

	default:
		return 0
	}
}

// tieredMonthly is the monthly amount for the child at input position index (0-based)
func tieredMonthly(child domain.ChildInfo, index int, tiers *domain.MonthlyTiers, ref time.Time) int64 {
	age := AgeInYears(child.BirthDate, ref)

	if age < 0 || age > tiers.MaxAge {
		return 0
	}
	if age < tiers.YoungBelowAge {
		return tiers.YoungMonthly
	}
	if index+1 >= tiers.LaterFromOrdinal {
		return tiers.LaterMonthly
	}
	return tiers.StandardMonthly
}

// bandAmount picks the first band whose upper age bound exceeds age
func bandAmount(bands []domain.AgeBand, age int) int64 {
	for _, b := range bands {
		if b.BelowAge == nil || age < *b.BelowAge {
			return b.Amount
		}
	}
	return 0
}
