package domain

import (
	"fmt"
	"time"
)

// CareType describes how a child is cared for during the day
type CareType string

const (
	CareNone         CareType = ""
	CareHome         CareType = "home"
	CareNursery      CareType = "nursery"
	CareKindergarten CareType = "kindergarten"
	CareSchool       CareType = "school"
)

// Valid reports whether the care type is one of the known values (or absent)
func (c CareType) Valid() bool {
	switch c {
	case CareNone, CareHome, CareNursery, CareKindergarten, CareSchool:
		return true
	default:
		return false
	}
}

// HouseholdType affects the action items produced for a household, never eligibility or amounts
type HouseholdType string

const (
	HouseholdTwoParent    HouseholdType = "two-parent"
	HouseholdSingleParent HouseholdType = "single-parent"
)

// Valid reports whether the household type is known
func (h HouseholdType) Valid() bool {
	return h == HouseholdTwoParent || h == HouseholdSingleParent
}

// IncomeRange is the annual household income bracket in units of 10,000 JPY.
// Collected by the host form and carried through unchanged.
type IncomeRange string

const (
	IncomeUnder300  IncomeRange = "under-300"
	Income300To500  IncomeRange = "300-500"
	Income500To700  IncomeRange = "500-700"
	Income700To1000 IncomeRange = "700-1000"
	IncomeOver1000  IncomeRange = "over-1000"
)

// Valid reports whether the income range is known or left empty
func (r IncomeRange) Valid() bool {
	switch r {
	case "", IncomeUnder300, Income300To500, Income500To700, Income700To1000, IncomeOver1000:
		return true
	default:
		return false
	}
}

// WorkStatus is the parents' employment situation, carried through for hosts
type WorkStatus string

const (
	WorkBoth    WorkStatus = "both-working"
	WorkOne     WorkStatus = "one-working"
	WorkNeither WorkStatus = "neither"
)

// Valid reports whether the work status is known or left empty
func (w WorkStatus) Valid() bool {
	switch w {
	case "", WorkBoth, WorkOne, WorkNeither:
		return true
	default:
		return false
	}
}

// ChildInfo is one child in the household
type ChildInfo struct {
	BirthDate time.Time `yaml:"birth_date" json:"birth_date"`
	CareType  CareType  `yaml:"care_type,omitempty" json:"care_type,omitempty"`
}

// SimulatorInput is the household-level query.
//
// Children is ordered: the position of a child in this slice (not its age
// rank) selects the multi-child tier of tiered allowances. Hosts that reorder
// children for display must pass the original order back in.
type SimulatorInput struct {
	Children        []ChildInfo   `yaml:"children" json:"children"`
	HouseholdType   HouseholdType `yaml:"household_type" json:"household_type"`
	HouseholdIncome IncomeRange   `yaml:"household_income,omitempty" json:"household_income,omitempty"`
	WorkStatus      WorkStatus    `yaml:"work_status,omitempty" json:"work_status,omitempty"`
	District        string        `yaml:"district,omitempty" json:"district,omitempty"`
}

// IsSingleParent reports whether the household is a single-parent household
func (in SimulatorInput) IsSingleParent() bool {
	return in.HouseholdType == HouseholdSingleParent
}

// HasCareType reports whether any child has the given care type
func (in SimulatorInput) HasCareType(care CareType) bool {
	for _, c := range in.Children {
		if c.CareType == care {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with the receiver
func (in SimulatorInput) Clone() SimulatorInput {
	out := in
	out.Children = append([]ChildInfo(nil), in.Children...)
	return out
}

// Check verifies the engine's preconditions: a non-empty child list with
// usable birth dates. Host-level enum validation lives in the config package.
func (in SimulatorInput) Check() error {
	if len(in.Children) == 0 {
		return ErrNoChildren
	}
	for i, c := range in.Children {
		if c.BirthDate.IsZero() {
			return fmt.Errorf("child %d: %w", i+1, ErrInvalidBirthDate)
		}
	}
	return nil
}

// ParseDate parses a calendar date in YYYY-MM-DD form as a UTC midnight
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidBirthDate, s)
	}
	return t, nil
}

// DateLayout is the calendar date format used in files and on the wire
const DateLayout = "2006-01-02"
