package domain

// Category groups programs for display only
type Category string

const (
	CategoryMedical   Category = "medical"
	CategoryFinancial Category = "financial"
	CategoryChildcare Category = "childcare"
	CategorySupport   Category = "support"
)

// Valid reports whether the category is known
func (c Category) Valid() bool {
	switch c {
	case CategoryMedical, CategoryFinancial, CategoryChildcare, CategorySupport:
		return true
	default:
		return false
	}
}

// Residency is the area a household must live in to apply
type Residency string

const (
	ResidencyMinato Residency = "minato"
	ResidencyTokyo  Residency = "tokyo"
	ResidencyJapan  Residency = "japan"
)

// Eligibility is a program's declared eligibility window. Nil bounds are open.
type Eligibility struct {
	MinAge      *int      `yaml:"min_age" json:"min_age"`
	MaxAge      *int      `yaml:"max_age" json:"max_age"`
	IncomeLimit *int64    `yaml:"income_limit" json:"income_limit"`
	Residency   Residency `yaml:"residency" json:"residency"`
	Conditions  []string  `yaml:"conditions,omitempty" json:"conditions,omitempty"`
}

// AmountDescriptor is display metadata about the benefit amount.
// The numeric estimate comes from Rules.Estimate, never from here.
type AmountDescriptor struct {
	Type        string `yaml:"type" json:"type"` // fixed | variable | subsidy
	Value       *int64 `yaml:"value" json:"value"`
	Unit        string `yaml:"unit" json:"unit"` // yen | percent | yen-per-month
	Description string `yaml:"description" json:"description"`
}

// ApplicationStep is one step of the published application procedure
type ApplicationStep struct {
	Step        int     `yaml:"step" json:"step"`
	Title       string  `yaml:"title" json:"title"`
	Description string  `yaml:"description" json:"description"`
	Tip         *string `yaml:"tip,omitempty" json:"tip,omitempty"`
}

// RequiredDocument is a document an applicant must provide
type RequiredDocument struct {
	Name        string  `yaml:"name" json:"name"`
	ObtainHow   string  `yaml:"obtain_how" json:"obtain_how"`
	Notes       *string `yaml:"notes,omitempty" json:"notes,omitempty"`
	DownloadURL *string `yaml:"download_url,omitempty" json:"download_url,omitempty"`
}

// ApplicationMethod is a channel through which an application can be filed
type ApplicationMethod struct {
	Method      string  `yaml:"method" json:"method"` // online | counter | mail
	Label       string  `yaml:"label" json:"label"`
	Description string  `yaml:"description" json:"description"`
	URL         *string `yaml:"url,omitempty" json:"url,omitempty"`
	Address     *string `yaml:"address,omitempty" json:"address,omitempty"`
	Hours       *string `yaml:"hours,omitempty" json:"hours,omitempty"`
}

// FAQ is a question/answer pair shown with the program
type FAQ struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

// Program is one catalog entry. Programs are read-only to the engine.
type Program struct {
	Slug               string              `yaml:"slug" json:"slug"`
	Name               string              `yaml:"name" json:"name"`
	Description        string              `yaml:"description" json:"description"`
	Category           Category            `yaml:"category" json:"category"`
	Eligibility        Eligibility         `yaml:"eligibility" json:"eligibility"`
	Amount             AmountDescriptor    `yaml:"amount" json:"amount"`
	ApplicationURL     string              `yaml:"application_url" json:"application_url"`
	Deadline           *string             `yaml:"deadline" json:"deadline"`
	Notes              string              `yaml:"notes,omitempty" json:"notes,omitempty"`
	ApplicationSteps   []ApplicationStep   `yaml:"application_steps,omitempty" json:"application_steps,omitempty"`
	RequiredDocuments  []RequiredDocument  `yaml:"required_documents,omitempty" json:"required_documents,omitempty"`
	ApplicationMethods []ApplicationMethod `yaml:"application_methods,omitempty" json:"application_methods,omitempty"`
	FAQ                []FAQ               `yaml:"faq,omitempty" json:"faq,omitempty"`

	Rules       ProgramRules `yaml:"rules" json:"rules"`
	ActionItems []string     `yaml:"action_items,omitempty" json:"action_items,omitempty"`
}

// EstimateKind selects the amount formula of a program
type EstimateKind string

const (
	// EstimateUnspecified means no monetary rule is known; the estimate is 0
	EstimateUnspecified EstimateKind = ""
	// EstimateService marks publicly funded services with no cash value
	EstimateService EstimateKind = "service"
	// EstimateTieredMonthly is a per-child monthly allowance, annualized
	EstimateTieredMonthly EstimateKind = "tiered_monthly"
	// EstimateAgeBanded pays a fixed amount per eligible child, bucketed by age in years
	EstimateAgeBanded EstimateKind = "age_banded"
	// EstimatePerInfant pays a fixed amount per child within a number of months of birth
	EstimatePerInfant EstimateKind = "per_infant"
)

// Valid reports whether the kind is one the estimator understands
func (k EstimateKind) Valid() bool {
	switch k {
	case EstimateUnspecified, EstimateService, EstimateTieredMonthly, EstimateAgeBanded, EstimatePerInfant:
		return true
	default:
		return false
	}
}

// MonthlyTiers parameterizes EstimateTieredMonthly.
// Children older than MaxAge (or not yet born) receive nothing. Children
// younger than YoungBelowAge receive YoungMonthly regardless of position.
// Older children at 1-based input position >= LaterFromOrdinal receive
// LaterMonthly, the rest StandardMonthly.
type MonthlyTiers struct {
	MaxAge           int   `yaml:"max_age" json:"max_age"`
	YoungBelowAge    int   `yaml:"young_below_age" json:"young_below_age"`
	YoungMonthly     int64 `yaml:"young_monthly" json:"young_monthly"`
	LaterFromOrdinal int   `yaml:"later_from_ordinal" json:"later_from_ordinal"`
	LaterMonthly     int64 `yaml:"later_monthly" json:"later_monthly"`
	StandardMonthly  int64 `yaml:"standard_monthly" json:"standard_monthly"`
}

// AgeBand maps children younger than BelowAge years to Amount.
// A nil BelowAge matches every remaining age.
type AgeBand struct {
	BelowAge *int  `yaml:"below_age,omitempty" json:"below_age,omitempty"`
	Amount   int64 `yaml:"amount" json:"amount"`
}

// EstimateRule is the tagged amount formula of a program
type EstimateRule struct {
	Kind         EstimateKind  `yaml:"kind" json:"kind"`
	Tiers        *MonthlyTiers `yaml:"tiers,omitempty" json:"tiers,omitempty"`
	Bands        []AgeBand     `yaml:"bands,omitempty" json:"bands,omitempty"`
	PerChild     int64         `yaml:"per_child,omitempty" json:"per_child,omitempty"`
	WithinMonths int           `yaml:"within_months,omitempty" json:"within_months,omitempty"`
}

// OverrideKind selects a per-program adjustment to the age window
type OverrideKind string

const (
	OverrideNone OverrideKind = ""
	// OverrideMinMonths admits a child below MinAge once it is Months old
	OverrideMinMonths OverrideKind = "min_months"
	// OverrideMonthsFloor rejects any child younger than Months
	OverrideMonthsFloor OverrideKind = "months_floor"
)

// Valid reports whether the override kind is known
func (k OverrideKind) Valid() bool {
	switch k {
	case OverrideNone, OverrideMinMonths, OverrideMonthsFloor:
		return true
	default:
		return false
	}
}

// EligibilityOverride widens or narrows the declared age window of one program
type EligibilityOverride struct {
	Kind   OverrideKind `yaml:"kind" json:"kind"`
	Months int          `yaml:"months" json:"months"`
}

// HouseholdRule holds household-level gates evaluated by the orchestrator
type HouseholdRule struct {
	// NewbornWithinMonths, when set, replaces the per-child age window:
	// the household qualifies when any child is at most this many months old.
	NewbornWithinMonths *int `yaml:"newborn_within_months,omitempty" json:"newborn_within_months,omitempty"`
	// RequireCareType requires at least one child with this care type
	RequireCareType CareType `yaml:"require_care_type,omitempty" json:"require_care_type,omitempty"`
	// MinChildren requires the household to have at least this many children
	MinChildren int `yaml:"min_children,omitempty" json:"min_children,omitempty"`
}

// ProgramRules attaches the computation of a program to its catalog entry
type ProgramRules struct {
	Estimate  EstimateRule        `yaml:"estimate" json:"estimate"`
	Override  EligibilityOverride `yaml:"override" json:"override"`
	Household HouseholdRule       `yaml:"household" json:"household"`
}

// IsNewbornProgram reports whether eligibility is decided by the newborn gate
func (p *Program) IsNewbornProgram() bool {
	return p.Rules.Household.NewbornWithinMonths != nil
}

// AgeWindow returns the declared window with open bounds filled by the given defaults
func (p *Program) AgeWindow(defaultMin, defaultMax int) (int, int) {
	lo, hi := defaultMin, defaultMax
	if p.Eligibility.MinAge != nil {
		lo = *p.Eligibility.MinAge
	}
	if p.Eligibility.MaxAge != nil {
		hi = *p.Eligibility.MaxAge
	}
	return lo, hi
}

// Clone returns a deep copy of the program. Results and catalog accessors hand
// out clones so callers cannot reach the catalog's pointers or slices.
func (p Program) Clone() Program {
	out := p
	out.Eligibility.MinAge = clonePtr(p.Eligibility.MinAge)
	out.Eligibility.MaxAge = clonePtr(p.Eligibility.MaxAge)
	out.Eligibility.IncomeLimit = clonePtr(p.Eligibility.IncomeLimit)
	out.Eligibility.Conditions = cloneSlice(p.Eligibility.Conditions)
	out.Amount.Value = clonePtr(p.Amount.Value)
	out.Deadline = clonePtr(p.Deadline)

	if p.ApplicationSteps != nil {
		out.ApplicationSteps = make([]ApplicationStep, len(p.ApplicationSteps))
		for i, s := range p.ApplicationSteps {
			s.Tip = clonePtr(s.Tip)
			out.ApplicationSteps[i] = s
		}
	}
	if p.RequiredDocuments != nil {
		out.RequiredDocuments = make([]RequiredDocument, len(p.RequiredDocuments))
		for i, d := range p.RequiredDocuments {
			d.Notes = clonePtr(d.Notes)
			d.DownloadURL = clonePtr(d.DownloadURL)
			out.RequiredDocuments[i] = d
		}
	}
	if p.ApplicationMethods != nil {
		out.ApplicationMethods = make([]ApplicationMethod, len(p.ApplicationMethods))
		for i, m := range p.ApplicationMethods {
			m.URL = clonePtr(m.URL)
			m.Address = clonePtr(m.Address)
			m.Hours = clonePtr(m.Hours)
			out.ApplicationMethods[i] = m
		}
	}
	out.FAQ = cloneSlice(p.FAQ)

	out.Rules.Estimate.Tiers = clonePtr(p.Rules.Estimate.Tiers)
	if p.Rules.Estimate.Bands != nil {
		out.Rules.Estimate.Bands = make([]AgeBand, len(p.Rules.Estimate.Bands))
		for i, b := range p.Rules.Estimate.Bands {
			b.BelowAge = clonePtr(b.BelowAge)
			out.Rules.Estimate.Bands[i] = b
		}
	}
	out.Rules.Household.NewbornWithinMonths = clonePtr(p.Rules.Household.NewbornWithinMonths)
	out.ActionItems = cloneSlice(p.ActionItems)
	return out
}

// ClonePrograms deep-copies a program list
func ClonePrograms(programs []Program) []Program {
	if programs == nil {
		return nil
	}
	out := make([]Program, len(programs))
	for i := range programs {
		out[i] = programs[i].Clone()
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}
