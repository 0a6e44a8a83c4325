package catalog

import (
	"fmt"

	"github.com/rgehrsitz/benefitsim/internal/domain"
)

// Validate checks that a list of programs is well formed. The engine relies
// on this having been done: it never validates programs itself.
func Validate(programs []domain.Program) error {
	seen := make(map[string]int, len(programs))
	for i := range programs {
		p := &programs[i]
		if prev, dup := seen[p.Slug]; dup {
			return fmt.Errorf("program %d: duplicate slug %q (first defined at %d)", i, p.Slug, prev)
		}
		seen[p.Slug] = i

		if err := validateProgram(p); err != nil {
			return fmt.Errorf("program %d (%s) validation failed: %w", i, p.Slug, err)
		}
	}
	return nil
}

func validateProgram(p *domain.Program) error {
	if p.Slug == "" {
		return domain.NewValidationError("slug", "is required")
	}
	if p.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if !p.Category.Valid() {
		return domain.NewValidationError("category", "unknown category %q", p.Category)
	}

	el := p.Eligibility
	if el.MinAge != nil && *el.MinAge < 0 {
		return domain.NewValidationError("eligibility.min_age", "cannot be negative")
	}
	if el.MaxAge != nil && *el.MaxAge < 0 {
		return domain.NewValidationError("eligibility.max_age", "cannot be negative")
	}
	if el.MinAge != nil && el.MaxAge != nil && *el.MinAge > *el.MaxAge {
		return domain.NewValidationError("eligibility", "min_age %d exceeds max_age %d", *el.MinAge, *el.MaxAge)
	}

	if err := validateEstimate(&p.Rules.Estimate); err != nil {
		return err
	}
	if err := validateOverride(&p.Rules.Override); err != nil {
		return err
	}
	return validateHousehold(&p.Rules.Household)
}

func validateEstimate(rule *domain.EstimateRule) error {
	if !rule.Kind.Valid() {
		return domain.NewValidationError("rules.estimate.kind", "unknown kind %q", rule.Kind)
	}

	switch rule.Kind {
	case domain.EstimateTieredMonthly:
		t := rule.Tiers
		if t == nil {
			return domain.NewValidationError("rules.estimate.tiers", "required for %s", rule.Kind)
		}
		if t.MaxAge < 0 || t.YoungBelowAge < 0 {
			return domain.NewValidationError("rules.estimate.tiers", "ages cannot be negative")
		}
		if t.LaterFromOrdinal < 1 {
			return domain.NewValidationError("rules.estimate.tiers.later_from_ordinal", "must be at least 1")
		}
		if t.YoungMonthly < 0 || t.LaterMonthly < 0 || t.StandardMonthly < 0 {
			return domain.NewValidationError("rules.estimate.tiers", "monthly amounts cannot be negative")
		}

	case domain.EstimateAgeBanded:
		if len(rule.Bands) == 0 {
			return domain.NewValidationError("rules.estimate.bands", "at least one band is required")
		}
		prev := -1
		for i, b := range rule.Bands {
			if b.Amount < 0 {
				return domain.NewValidationError(fmt.Sprintf("rules.estimate.bands[%d].amount", i), "cannot be negative")
			}
			if b.BelowAge == nil {
				if i != len(rule.Bands)-1 {
					return domain.NewValidationError(fmt.Sprintf("rules.estimate.bands[%d]", i), "open-ended band must be last")
				}
				continue
			}
			if *b.BelowAge <= prev {
				return domain.NewValidationError(fmt.Sprintf("rules.estimate.bands[%d].below_age", i), "bands must be in ascending age order")
			}
			prev = *b.BelowAge
		}

	case domain.EstimatePerInfant:
		if rule.PerChild < 0 {
			return domain.NewValidationError("rules.estimate.per_child", "cannot be negative")
		}
		if rule.WithinMonths < 0 {
			return domain.NewValidationError("rules.estimate.within_months", "cannot be negative")
		}
	}
	return nil
}

func validateOverride(o *domain.EligibilityOverride) error {
	if !o.Kind.Valid() {
		return domain.NewValidationError("rules.override.kind", "unknown kind %q", o.Kind)
	}
	if o.Kind != domain.OverrideNone && o.Months <= 0 {
		return domain.NewValidationError("rules.override.months", "must be positive for %s", o.Kind)
	}
	return nil
}

func validateHousehold(h *domain.HouseholdRule) error {
	if h.NewbornWithinMonths != nil && *h.NewbornWithinMonths < 0 {
		return domain.NewValidationError("rules.household.newborn_within_months", "cannot be negative")
	}
	if !h.RequireCareType.Valid() {
		return domain.NewValidationError("rules.household.require_care_type", "unknown care type %q", h.RequireCareType)
	}
	if h.MinChildren < 0 {
		return domain.NewValidationError("rules.household.min_children", "cannot be negative")
	}
	return nil
}
