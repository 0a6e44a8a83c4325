package calculation

import (
	"fmt"
	"time"
)

// AgeInYears returns the number of completed years between birth and ref.
// The result is negative when ref precedes the birth date.
func AgeInYears(birth, ref time.Time) int {
	years := ref.Year() - birth.Year()
	monthDiff := int(ref.Month()) - int(birth.Month())
	dayDiff := ref.Day() - birth.Day()

	if monthDiff < 0 || (monthDiff == 0 && dayDiff < 0) {
		return years - 1
	}
	return years
}

// AgeInMonths returns the number of completed calendar months between birth and ref
func AgeInMonths(birth, ref time.Time) int {
	years := ref.Year() - birth.Year()
	months := int(ref.Month()) - int(birth.Month())
	total := years*12 + months

	if ref.Day() < birth.Day() {
		return total - 1
	}
	return total
}

// ChildAge is an age split into completed years and the remaining months
type ChildAge struct {
	Years  int `json:"years" yaml:"years"`
	Months int `json:"months" yaml:"months"`
}

// ChildAgeAt returns the child's age at ref as years plus remaining months
func ChildAgeAt(birth, ref time.Time) ChildAge {
	total := AgeInMonths(birth, ref)
	years := total / 12
	months := total % 12
	if months < 0 {
		years--
		months += 12
	}
	return ChildAge{Years: years, Months: months}
}

// String renders the age compactly, e.g. "1y 3m", "5m" or "2y"
func (a ChildAge) String() string {
	switch {
	case a.Years < 0:
		return "expected"
	case a.Years == 0:
		return fmt.Sprintf("%dm", a.Months)
	case a.Months == 0:
		return fmt.Sprintf("%dy", a.Years)
	default:
		return fmt.Sprintf("%dy %dm", a.Years, a.Months)
	}
}

// FormatAge renders the age of a child born on birth as of ref
func FormatAge(birth, ref time.Time) string {
	return ChildAgeAt(birth, ref).String()
}
