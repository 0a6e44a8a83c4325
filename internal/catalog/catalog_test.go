package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/benefitsim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 17, c.Len(), "Should load every built-in program")

	allowance, err := c.BySlug("child-allowance")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryFinancial, allowance.Category)
	assert.Equal(t, domain.EstimateTieredMonthly, allowance.Rules.Estimate.Kind)
	require.NotNil(t, allowance.Rules.Estimate.Tiers)
	assert.Equal(t, int64(15000), allowance.Rules.Estimate.Tiers.YoungMonthly)

	flu, err := c.BySlug("influenza-vaccine-subsidy")
	require.NoError(t, err)
	assert.Equal(t, domain.OverrideMinMonths, flu.Rules.Override.Kind)
	assert.Equal(t, 6, flu.Rules.Override.Months)

	stay, err := c.BySlug("postnatal-care-stay")
	require.NoError(t, err)
	assert.True(t, stay.IsNewbornProgram())
}

func TestCatalog_BySlugNotFound(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	_, err = c.BySlug("does-not-exist")
	assert.True(t, errors.Is(err, domain.ErrProgramNotFound))
}

func TestCatalog_ByCategoryKeepsOrder(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	financial := c.ByCategory(domain.CategoryFinancial)
	slugs := make([]string, 0, len(financial))
	for _, p := range financial {
		slugs = append(slugs, p.Slug)
	}
	assert.Equal(t, []string{"child-allowance", "birth-childcare-grant", "childbirth-lump-sum"}, slugs)

	groups := c.Grouped()
	require.Len(t, groups, 4)
	assert.Equal(t, domain.CategoryFinancial, groups[0][0].Category)
	assert.Equal(t, domain.CategorySupport, groups[3][0].Category)
}

func TestCatalog_ProgramsReturnsCopy(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	programs := c.Programs()
	programs[0].Slug = "mutated"
	programs = programs[:1]

	again := c.Programs()
	assert.Equal(t, "child-medical-subsidy", again[0].Slug)
	assert.Equal(t, 17, len(again))
}

func TestCatalog_AccessorsReturnDeepCopies(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	p, err := c.BySlug("child-medical-subsidy")
	require.NoError(t, err)
	*p.Eligibility.MaxAge = 1
	p.ActionItems[0] = "edited"

	listed := c.Programs()
	*listed[0].Eligibility.MinAge = 9

	medical := c.ByCategory(domain.CategoryMedical)
	medical[0].Eligibility.Conditions[0] = "edited"

	again, err := c.BySlug("child-medical-subsidy")
	require.NoError(t, err)
	assert.Equal(t, 0, *again.Eligibility.MinAge)
	assert.Equal(t, 18, *again.Eligibility.MaxAge)
	assert.NotEqual(t, "edited", again.ActionItems[0])
	assert.NotEqual(t, "edited", again.Eligibility.Conditions[0])
}

func TestNew_CopiesInput(t *testing.T) {
	programs := []domain.Program{{
		Slug:        "test",
		Name:        "Test",
		Category:    domain.CategorySupport,
		Eligibility: domain.Eligibility{MaxAge: intPtr(6)},
		ActionItems: []string{"Apply"},
	}}
	c, err := New(programs)
	require.NoError(t, err)

	*programs[0].Eligibility.MaxAge = 1
	programs[0].ActionItems[0] = "edited"

	p, err := c.BySlug("test")
	require.NoError(t, err)
	assert.Equal(t, 6, *p.Eligibility.MaxAge)
	assert.Equal(t, "Apply", p.ActionItems[0])
}

func TestValidate(t *testing.T) {
	base := func() domain.Program {
		return domain.Program{
			Slug:     "test",
			Name:     "Test",
			Category: domain.CategorySupport,
		}
	}

	tests := []struct {
		name    string
		mutate  func(p *domain.Program)
		wantErr string
	}{
		{name: "valid", mutate: func(p *domain.Program) {}},
		{name: "missing slug", mutate: func(p *domain.Program) { p.Slug = "" }, wantErr: "slug"},
		{name: "unknown category", mutate: func(p *domain.Program) { p.Category = "travel" }, wantErr: "unknown category"},
		{
			name: "inverted window",
			mutate: func(p *domain.Program) {
				p.Eligibility.MinAge = intPtr(5)
				p.Eligibility.MaxAge = intPtr(2)
			},
			wantErr: "exceeds max_age",
		},
		{
			name:    "unknown estimate kind",
			mutate:  func(p *domain.Program) { p.Rules.Estimate.Kind = "lottery" },
			wantErr: "unknown kind",
		},
		{
			name:    "tiered without tiers",
			mutate:  func(p *domain.Program) { p.Rules.Estimate.Kind = domain.EstimateTieredMonthly },
			wantErr: "tiers",
		},
		{
			name: "open band not last",
			mutate: func(p *domain.Program) {
				p.Rules.Estimate = domain.EstimateRule{
					Kind:  domain.EstimateAgeBanded,
					Bands: []domain.AgeBand{{Amount: 1}, {BelowAge: intPtr(3), Amount: 2}},
				}
			},
			wantErr: "must be last",
		},
		{
			name: "override without months",
			mutate: func(p *domain.Program) {
				p.Rules.Override = domain.EligibilityOverride{Kind: domain.OverrideMonthsFloor}
			},
			wantErr: "must be positive",
		},
		{
			name:    "unknown care type gate",
			mutate:  func(p *domain.Program) { p.Rules.Household.RequireCareType = "boarding" },
			wantErr: "unknown care type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base()
			tt.mutate(&p)
			err := Validate([]domain.Program{p})
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_DuplicateSlug(t *testing.T) {
	p := domain.Program{Slug: "dup", Name: "Dup", Category: domain.CategoryMedical}
	err := Validate([]domain.Program{p, p})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate slug")
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "programs.yaml")
	doc := `programs:
  - slug: only-program
    name: Only Program
    category: support
    eligibility:
      min_age: null
      max_age: 3
      residency: japan
    amount:
      type: fixed
      value: 0
      unit: yen
      description: Free
    application_url: https://example.org
    deadline: null
    rules:
      estimate:
        kind: service
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	p, err := c.BySlug("only-program")
	require.NoError(t, err)
	assert.Nil(t, p.Eligibility.MinAge, "null min_age should stay unbounded")
	require.NotNil(t, p.Eligibility.MaxAge)
	assert.Equal(t, 3, *p.Eligibility.MaxAge)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 17, c.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
