package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/benefitsim/internal/domain"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (HouseholdTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("add_child", createAddChild)
	registry.Register("remove_child", createRemoveChild)
	registry.Register("set_care", createSetCareType)
	registry.Register("set_household", createSetHouseholdType)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (HouseholdTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in sorted order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "add_child:birth_date=2025-01-10,care=home"
func (r *TransformRegistry) ParseTransformSpec(spec string) (HouseholdTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func createAddChild(params map[string]string) (HouseholdTransform, error) {
	dateStr, ok := params["birth_date"]
	if !ok {
		return nil, fmt.Errorf("add_child requires 'birth_date' parameter")
	}

	birth, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date format, expected YYYY-MM-DD: %w", err)
	}

	return &AddChild{
		BirthDate: birth,
		CareType:  domain.CareType(params["care"]),
	}, nil
}

func createRemoveChild(params map[string]string) (HouseholdTransform, error) {
	childStr, ok := params["child"]
	if !ok {
		return nil, fmt.Errorf("remove_child requires 'child' parameter")
	}

	child, err := strconv.Atoi(childStr)
	if err != nil {
		return nil, fmt.Errorf("invalid child value: %w", err)
	}

	return &RemoveChild{Child: child}, nil
}

func createSetCareType(params map[string]string) (HouseholdTransform, error) {
	care, ok := params["care"]
	if !ok {
		return nil, fmt.Errorf("set_care requires 'care' parameter")
	}

	child := 0
	if childStr, ok := params["child"]; ok && childStr != "all" {
		n, err := strconv.Atoi(childStr)
		if err != nil {
			return nil, fmt.Errorf("invalid child value: %w", err)
		}
		child = n
	}

	return &SetCareType{
		Child:    child,
		CareType: domain.CareType(care),
	}, nil
}

func createSetHouseholdType(params map[string]string) (HouseholdTransform, error) {
	t, ok := params["type"]
	if !ok {
		return nil, fmt.Errorf("set_household requires 'type' parameter")
	}

	return &SetHouseholdType{Type: domain.HouseholdType(t)}, nil
}
