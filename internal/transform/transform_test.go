package transform

import (
	"errors"
	"testing"
	"time"

	"github.com/rgehrsitz/benefitsim/internal/domain"
)

// Helper function to create a basic test household
func createTestHousehold() domain.SimulatorInput {
	return domain.SimulatorInput{
		HouseholdType: domain.HouseholdTwoParent,
		Children: []domain.ChildInfo{
			{BirthDate: time.Date(2019, 5, 10, 0, 0, 0, 0, time.UTC), CareType: domain.CareKindergarten},
			{BirthDate: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), CareType: domain.CareHome},
		},
	}
}

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := createTestHousehold()

	result, err := ApplyTransforms(base, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(result.Children) != 2 {
		t.Fatalf("Expected 2 children, got %d", len(result.Children))
	}

	result.Children[0].CareType = domain.CareNursery
	if base.Children[0].CareType != domain.CareKindergarten {
		t.Error("Result should not share children with the base")
	}
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	_, err := ApplyTransforms(createTestHousehold(), []HouseholdTransform{nil})
	if err == nil {
		t.Error("Expected error for nil transform, got nil")
	}
}

func TestApplyTransforms_Sequence(t *testing.T) {
	base := createTestHousehold()
	transforms := []HouseholdTransform{
		&AddChild{BirthDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
		&SetCareType{CareType: domain.CareNursery},
		&SetHouseholdType{Type: domain.HouseholdSingleParent},
		&RemoveChild{Child: 1},
	}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(result.Children) != 2 {
		t.Fatalf("Expected 2 children, got %d", len(result.Children))
	}
	if !result.Children[1].BirthDate.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected the added child last, got %v", result.Children[1].BirthDate)
	}
	for i, c := range result.Children {
		if c.CareType != domain.CareNursery {
			t.Errorf("Child %d: expected nursery, got %q", i+1, c.CareType)
		}
	}
	if result.HouseholdType != domain.HouseholdSingleParent {
		t.Errorf("Expected single-parent, got %s", result.HouseholdType)
	}

	if len(base.Children) != 2 || base.HouseholdType != domain.HouseholdTwoParent {
		t.Error("Base household should be unchanged")
	}
}

func TestApplyTransforms_ValidationFailureStops(t *testing.T) {
	transforms := []HouseholdTransform{
		&SetHouseholdType{Type: domain.HouseholdSingleParent},
		&RemoveChild{Child: 5},
	}

	_, err := ApplyTransforms(createTestHousehold(), transforms)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	var terr *TransformError
	if !errors.As(err, &terr) {
		t.Fatalf("Expected TransformError, got %T", err)
	}
	if terr.TransformName != "remove_child" {
		t.Errorf("Expected remove_child, got %s", terr.TransformName)
	}
}

func TestAddChild(t *testing.T) {
	base := createTestHousehold()
	birth := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	tr := &AddChild{BirthDate: birth, CareType: domain.CareHome}

	if err := tr.Validate(base); err != nil {
		t.Fatalf("Expected valid, got %v", err)
	}
	result, _ := tr.Apply(base)
	if len(result.Children) != 3 || !result.Children[2].BirthDate.Equal(birth) {
		t.Errorf("Expected new child appended, got %+v", result.Children)
	}
	if tr.Description() != "Add a child born 2025-01-10" {
		t.Errorf("Unexpected description %q", tr.Description())
	}

	if err := (&AddChild{}).Validate(base); !errors.Is(err, domain.ErrInvalidBirthDate) {
		t.Errorf("Expected ErrInvalidBirthDate, got %v", err)
	}
	if err := (&AddChild{BirthDate: birth, CareType: "boarding"}).Validate(base); err == nil {
		t.Error("Expected error for unknown care type")
	}
}

func TestRemoveChild(t *testing.T) {
	base := createTestHousehold()

	result, err := (&RemoveChild{Child: 2}).Apply(base)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(result.Children) != 1 || result.Children[0].CareType != domain.CareKindergarten {
		t.Errorf("Expected only the first child left, got %+v", result.Children)
	}
	if len(base.Children) != 2 {
		t.Error("Base household should be unchanged")
	}

	for _, child := range []int{0, 3, -1} {
		if err := (&RemoveChild{Child: child}).Validate(base); err == nil {
			t.Errorf("Expected error for child %d", child)
		}
	}

	only := domain.SimulatorInput{Children: base.Children[:1]}
	if err := (&RemoveChild{Child: 1}).Validate(only); !errors.Is(err, domain.ErrNoChildren) {
		t.Errorf("Expected ErrNoChildren, got %v", err)
	}
}

func TestSetCareType(t *testing.T) {
	base := createTestHousehold()

	one := &SetCareType{Child: 2, CareType: domain.CareNursery}
	if err := one.Validate(base); err != nil {
		t.Fatalf("Expected valid, got %v", err)
	}
	result, _ := one.Apply(base)
	if result.Children[0].CareType != domain.CareKindergarten || result.Children[1].CareType != domain.CareNursery {
		t.Errorf("Expected only child 2 changed, got %+v", result.Children)
	}
	if one.Description() != "Set child 2's care to nursery" {
		t.Errorf("Unexpected description %q", one.Description())
	}

	all := &SetCareType{CareType: domain.CareNone}
	result, _ = all.Apply(base)
	for i, c := range result.Children {
		if c.CareType != domain.CareNone {
			t.Errorf("Child %d: expected care cleared, got %q", i+1, c.CareType)
		}
	}
	if all.Description() != "Set every child's care to unspecified" {
		t.Errorf("Unexpected description %q", all.Description())
	}

	if err := (&SetCareType{Child: 3, CareType: domain.CareHome}).Validate(base); err == nil {
		t.Error("Expected error for out-of-range child")
	}
	if err := (&SetCareType{CareType: "boarding"}).Validate(base); err == nil {
		t.Error("Expected error for unknown care type")
	}
}

func TestSetHouseholdType(t *testing.T) {
	base := createTestHousehold()

	if err := (&SetHouseholdType{Type: "three-parent"}).Validate(base); err == nil {
		t.Error("Expected error for unknown household type")
	}

	result, _ := (&SetHouseholdType{Type: domain.HouseholdSingleParent}).Apply(base)
	if !result.IsSingleParent() {
		t.Error("Expected single-parent household")
	}
}

func TestTransformError(t *testing.T) {
	inner := errors.New("inner")
	err := NewTransformError("add_child", "validate", "bad date", inner)

	if err.Error() != "transform add_child (validate): bad date: inner" {
		t.Errorf("Unexpected message %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("Expected error to unwrap to inner")
	}

	plain := NewTransformError("set_care", "validate", "bad care", nil)
	if plain.Error() != "transform set_care (validate): bad care" {
		t.Errorf("Unexpected message %q", plain.Error())
	}
}
