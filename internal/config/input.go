package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rgehrsitz/benefitsim/internal/domain"
	"gopkg.in/yaml.v3"
)

// ChildSpec is a child as written in a household file or request body
type ChildSpec struct {
	Name      string `yaml:"name,omitempty" json:"name,omitempty"`
	BirthDate string `yaml:"birth_date" json:"birth_date"`
	CareType  string `yaml:"care_type,omitempty" json:"care_type,omitempty"`
}

// HouseholdSpec is the textual form of a household. Dates are YYYY-MM-DD strings.
type HouseholdSpec struct {
	Children        []ChildSpec `yaml:"children" json:"children"`
	HouseholdType   string      `yaml:"household_type" json:"household_type"`
	HouseholdIncome string      `yaml:"household_income,omitempty" json:"household_income,omitempty"`
	WorkStatus      string      `yaml:"work_status,omitempty" json:"work_status,omitempty"`
	District        string      `yaml:"district,omitempty" json:"district,omitempty"`
}

// HouseholdFile is the top-level layout of a household YAML file
type HouseholdFile struct {
	ReferenceDate string        `yaml:"reference_date,omitempty"`
	Catalog       string        `yaml:"catalog,omitempty"`
	Household     HouseholdSpec `yaml:"household"`
}

// Configuration is a validated household file
type Configuration struct {
	Input domain.SimulatorInput
	// ReferenceDate is nil when the file does not pin one
	ReferenceDate *time.Time
	// CatalogPath is resolved relative to the household file; empty means the built-in catalog
	CatalogPath string
	// ChildNames holds optional display names by child position
	ChildNames []string
}

// InputParser handles parsing of household files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a household configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config, err := ip.Parse(data)
	if err != nil {
		return nil, err
	}

	if config.CatalogPath != "" && !filepath.IsAbs(config.CatalogPath) {
		config.CatalogPath = filepath.Join(filepath.Dir(filename), config.CatalogPath)
	}
	return config, nil
}

// Parse decodes and validates household YAML
func (ip *InputParser) Parse(data []byte) (*Configuration, error) {
	var file HouseholdFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	input, err := ip.ValidateHousehold(&file.Household)
	if err != nil {
		return nil, fmt.Errorf("household validation failed: %w", err)
	}

	config := &Configuration{
		Input:       input,
		CatalogPath: strings.TrimSpace(file.Catalog),
		ChildNames:  childNames(file.Household.Children),
	}

	if file.ReferenceDate != "" {
		ref, err := time.Parse(domain.DateLayout, file.ReferenceDate)
		if err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w",
				domain.NewValidationError("reference_date", "expected YYYY-MM-DD, got %q", file.ReferenceDate))
		}
		config.ReferenceDate = &ref
	}

	return config, nil
}

// ValidateHousehold checks every field of the household and converts it to engine input
func (ip *InputParser) ValidateHousehold(spec *HouseholdSpec) (domain.SimulatorInput, error) {
	var input domain.SimulatorInput

	householdType := domain.HouseholdType(spec.HouseholdType)
	if householdType == "" {
		return input, domain.NewValidationError("household_type", "is required")
	}
	if !householdType.Valid() {
		return input, domain.NewValidationError("household_type", "unknown value %q", spec.HouseholdType)
	}

	income := domain.IncomeRange(spec.HouseholdIncome)
	if !income.Valid() {
		return input, domain.NewValidationError("household_income", "unknown value %q", spec.HouseholdIncome)
	}

	work := domain.WorkStatus(spec.WorkStatus)
	if !work.Valid() {
		return input, domain.NewValidationError("work_status", "unknown value %q", spec.WorkStatus)
	}

	if len(spec.Children) == 0 {
		return input, domain.ErrNoChildren
	}

	children := make([]domain.ChildInfo, 0, len(spec.Children))
	for i := range spec.Children {
		child, err := ip.validateChild(i, &spec.Children[i])
		if err != nil {
			return input, err
		}
		children = append(children, child)
	}

	input = domain.SimulatorInput{
		Children:        children,
		HouseholdType:   householdType,
		HouseholdIncome: income,
		WorkStatus:      work,
		District:        spec.District,
	}
	return input, nil
}

func (ip *InputParser) validateChild(index int, spec *ChildSpec) (domain.ChildInfo, error) {
	field := fmt.Sprintf("children[%d]", index)

	if strings.TrimSpace(spec.BirthDate) == "" {
		return domain.ChildInfo{}, fmt.Errorf("%s: %w", field, domain.ErrInvalidBirthDate)
	}
	birth, err := domain.ParseDate(strings.TrimSpace(spec.BirthDate))
	if err != nil {
		return domain.ChildInfo{}, fmt.Errorf("%s: %w", field, err)
	}

	care := domain.CareType(spec.CareType)
	if !care.Valid() {
		return domain.ChildInfo{}, domain.NewValidationError(field+".care_type", "unknown value %q", spec.CareType)
	}

	return domain.ChildInfo{BirthDate: birth, CareType: care}, nil
}

func childNames(children []ChildSpec) []string {
	names := make([]string, len(children))
	for i, c := range children {
		names[i] = c.Name
		if names[i] == "" {
			names[i] = fmt.Sprintf("Child %d", i+1)
		}
	}
	return names
}

// SpecFromInput renders engine input back into its textual form
func SpecFromInput(input domain.SimulatorInput) HouseholdSpec {
	spec := HouseholdSpec{
		Children:        make([]ChildSpec, len(input.Children)),
		HouseholdType:   string(input.HouseholdType),
		HouseholdIncome: string(input.HouseholdIncome),
		WorkStatus:      string(input.WorkStatus),
		District:        input.District,
	}
	for i, c := range input.Children {
		spec.Children[i] = ChildSpec{
			BirthDate: c.BirthDate.Format(domain.DateLayout),
			CareType:  string(c.CareType),
		}
	}
	return spec
}
