package transform

import (
	"testing"
	"time"

	"github.com/rgehrsitz/benefitsim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var templateRef = time.Date(2024, 4, 1, 9, 30, 0, 0, time.UTC)

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates(templateRef)

	assert.Equal(t, []string{
		"add_newborn",
		"all_home",
		"all_kindergarten",
		"all_nursery",
		"expecting",
		"single_parent",
		"two_parent",
	}, registry.List())

	for _, name := range registry.List() {
		tmpl, ok := registry.Get(name)
		require.True(t, ok, name)
		assert.NotEmpty(t, tmpl.Description, name)
		assert.NotEmpty(t, tmpl.Transforms, name)
	}
}

func TestTemplateRegistry_GetCaseInsensitive(t *testing.T) {
	registry := CreateBuiltInTemplates(templateRef)

	_, ok := registry.Get("ADD_NEWBORN")
	assert.True(t, ok)

	_, ok = registry.Get("postpone_1yr")
	assert.False(t, ok)
}

func TestApplyTemplate_AddNewborn(t *testing.T) {
	registry := CreateBuiltInTemplates(templateRef)
	tmpl, _ := registry.Get("add_newborn")

	result, err := ApplyTemplate(createTestHousehold(), tmpl)
	require.NoError(t, err)

	require.Len(t, result.Children, 3)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), result.Children[2].BirthDate, "newborn is dated at midnight of the reference date")
	assert.Equal(t, domain.CareHome, result.Children[2].CareType)
}

func TestApplyTemplate_Expecting(t *testing.T) {
	registry := CreateBuiltInTemplates(templateRef)
	tmpl, _ := registry.Get("expecting")

	result, err := ApplyTemplate(createTestHousehold(), tmpl)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), result.Children[2].BirthDate)
}

func TestApplyTemplate_CareArrangements(t *testing.T) {
	registry := CreateBuiltInTemplates(templateRef)

	tests := map[string]domain.CareType{
		"all_nursery":      domain.CareNursery,
		"all_kindergarten": domain.CareKindergarten,
		"all_home":         domain.CareHome,
	}

	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			tmpl, ok := registry.Get(name)
			require.True(t, ok)

			result, err := ApplyTemplate(createTestHousehold(), tmpl)
			require.NoError(t, err)
			for _, c := range result.Children {
				assert.Equal(t, want, c.CareType)
			}
		})
	}
}

func TestApplyTemplate_SingleParent(t *testing.T) {
	registry := CreateBuiltInTemplates(templateRef)
	tmpl, _ := registry.Get("single_parent")

	base := createTestHousehold()
	result, err := ApplyTemplate(base, tmpl)
	require.NoError(t, err)

	assert.True(t, result.IsSingleParent())
	assert.Equal(t, base.Children, result.Children)
}

func TestParseTemplateList(t *testing.T) {
	assert.Nil(t, ParseTemplateList(""))
	assert.Equal(t, []string{"add_newborn", "all_nursery"}, ParseTemplateList(" add_newborn, ,all_nursery "))
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates(templateRef))

	assert.Contains(t, help, "Family Growth:")
	assert.Contains(t, help, "Household Type:")
	assert.Contains(t, help, "Care Arrangements:")
	assert.Contains(t, help, "add_newborn")

	assert.Equal(t, "No templates registered", GetTemplateHelp(NewTemplateRegistry()))
}
