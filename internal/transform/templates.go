package transform

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/benefitsim/internal/domain"
)

// TemplateRegistry manages built-in household templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []HouseholdTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names in sorted order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates the common what-if households.
// Templates that add a child date it relative to ref.
func CreateBuiltInTemplates(ref time.Time) *TemplateRegistry {
	registry := NewTemplateRegistry()
	ref = time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)

	// Family growth
	registry.Register(Template{
		Name:        "add_newborn",
		Description: "A new child born on the reference date",
		Transforms: []HouseholdTransform{
			&AddChild{BirthDate: ref, CareType: domain.CareHome},
		},
	})

	registry.Register(Template{
		Name:        "expecting",
		Description: "A child due six months after the reference date",
		Transforms: []HouseholdTransform{
			&AddChild{BirthDate: ref.AddDate(0, 6, 0)},
		},
	})

	// Household type
	registry.Register(Template{
		Name:        "single_parent",
		Description: "The same children in a single-parent household",
		Transforms: []HouseholdTransform{
			&SetHouseholdType{Type: domain.HouseholdSingleParent},
		},
	})

	registry.Register(Template{
		Name:        "two_parent",
		Description: "The same children in a two-parent household",
		Transforms: []HouseholdTransform{
			&SetHouseholdType{Type: domain.HouseholdTwoParent},
		},
	})

	// Care arrangements
	registry.Register(Template{
		Name:        "all_nursery",
		Description: "Every child attends a nursery",
		Transforms: []HouseholdTransform{
			&SetCareType{CareType: domain.CareNursery},
		},
	})

	registry.Register(Template{
		Name:        "all_kindergarten",
		Description: "Every child attends kindergarten",
		Transforms: []HouseholdTransform{
			&SetCareType{CareType: domain.CareKindergarten},
		},
	})

	registry.Register(Template{
		Name:        "all_home",
		Description: "Every child is cared for at home",
		Transforms: []HouseholdTransform{
			&SetCareType{CareType: domain.CareHome},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base household
func ApplyTemplate(base domain.SimulatorInput, template Template) (domain.SimulatorInput, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	groups := map[string][]Template{}
	order := []string{"Family Growth", "Household Type", "Care Arrangements"}
	for _, name := range registry.List() {
		t := registry.templates[name]
		switch {
		case strings.HasPrefix(name, "all_"):
			groups["Care Arrangements"] = append(groups["Care Arrangements"], t)
		case strings.HasSuffix(name, "_parent"):
			groups["Household Type"] = append(groups["Household Type"], t)
		default:
			groups["Family Growth"] = append(groups["Family Growth"], t)
		}
	}

	for _, group := range order {
		templates := groups[group]
		if len(templates) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s:\n", group))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  benefitsim compare household.yaml --with add_newborn,all_nursery\n")
	sb.WriteString("  benefitsim compare household.yaml --transform add_child:birth_date=2025-01-10\n")

	return sb.String()
}
