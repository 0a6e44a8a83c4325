package transform

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/benefitsim/internal/domain"
)

// AddChild appends a child (born or expected) to the end of the household.
// Appending keeps the birth order of existing children, so their allowance tiers do not shift.
type AddChild struct {
	BirthDate time.Time
	CareType  domain.CareType
}

func (ac *AddChild) Name() string {
	return "add_child"
}

func (ac *AddChild) Description() string {
	return fmt.Sprintf("Add a child born %s", ac.BirthDate.Format(domain.DateLayout))
}

func (ac *AddChild) Validate(base domain.SimulatorInput) error {
	if ac.BirthDate.IsZero() {
		return NewTransformError(ac.Name(), "validate", "birth date cannot be zero", domain.ErrInvalidBirthDate)
	}
	if !ac.CareType.Valid() {
		return NewTransformError(ac.Name(), "validate", fmt.Sprintf("unknown care type %q", ac.CareType), nil)
	}
	return nil
}

func (ac *AddChild) Apply(base domain.SimulatorInput) (domain.SimulatorInput, error) {
	modified := base.Clone()
	modified.Children = append(modified.Children, domain.ChildInfo{
		BirthDate: ac.BirthDate,
		CareType:  ac.CareType,
	})
	return modified, nil
}

// RemoveChild drops the child at a 1-based position
type RemoveChild struct {
	Child int
}

func (rc *RemoveChild) Name() string {
	return "remove_child"
}

func (rc *RemoveChild) Description() string {
	return fmt.Sprintf("Remove child %d", rc.Child)
}

func (rc *RemoveChild) Validate(base domain.SimulatorInput) error {
	if rc.Child < 1 || rc.Child > len(base.Children) {
		return NewTransformError(rc.Name(), "validate", fmt.Sprintf("child %d out of range (1-%d)", rc.Child, len(base.Children)), nil)
	}
	if len(base.Children) == 1 {
		return NewTransformError(rc.Name(), "validate", "cannot remove the only child", domain.ErrNoChildren)
	}
	return nil
}

func (rc *RemoveChild) Apply(base domain.SimulatorInput) (domain.SimulatorInput, error) {
	modified := base.Clone()
	i := rc.Child - 1
	modified.Children = append(modified.Children[:i], modified.Children[i+1:]...)
	return modified, nil
}

// SetCareType changes the care type of one child (1-based), or of every child when Child is 0
type SetCareType struct {
	Child    int
	CareType domain.CareType
}

func (sc *SetCareType) Name() string {
	return "set_care"
}

func (sc *SetCareType) Description() string {
	care := string(sc.CareType)
	if care == "" {
		care = "unspecified"
	}
	if sc.Child == 0 {
		return fmt.Sprintf("Set every child's care to %s", care)
	}
	return fmt.Sprintf("Set child %d's care to %s", sc.Child, care)
}

func (sc *SetCareType) Validate(base domain.SimulatorInput) error {
	if !sc.CareType.Valid() {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("unknown care type %q", sc.CareType), nil)
	}
	if sc.Child < 0 || sc.Child > len(base.Children) {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("child %d out of range (0-%d)", sc.Child, len(base.Children)), nil)
	}
	return nil
}

func (sc *SetCareType) Apply(base domain.SimulatorInput) (domain.SimulatorInput, error) {
	modified := base.Clone()
	for i := range modified.Children {
		if sc.Child == 0 || sc.Child == i+1 {
			modified.Children[i].CareType = sc.CareType
		}
	}
	return modified, nil
}

// SetHouseholdType switches between two-parent and single-parent households
type SetHouseholdType struct {
	Type domain.HouseholdType
}

func (sh *SetHouseholdType) Name() string {
	return "set_household"
}

func (sh *SetHouseholdType) Description() string {
	return fmt.Sprintf("Set household type to %s", sh.Type)
}

func (sh *SetHouseholdType) Validate(base domain.SimulatorInput) error {
	if !sh.Type.Valid() {
		return NewTransformError(sh.Name(), "validate", fmt.Sprintf("unknown household type %q", sh.Type), nil)
	}
	return nil
}

func (sh *SetHouseholdType) Apply(base domain.SimulatorInput) (domain.SimulatorInput, error) {
	modified := base.Clone()
	modified.HouseholdType = sh.Type
	return modified, nil
}
