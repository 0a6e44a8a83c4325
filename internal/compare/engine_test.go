package compare

import (
	"context"
	"testing"
	"time"

	"github.com/rgehrsitz/benefitsim/internal/calculation"
	"github.com/rgehrsitz/benefitsim/internal/catalog"
	"github.com/rgehrsitz/benefitsim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var compareRef = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) *CompareEngine {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	sim := calculation.NewSimulationEngine(c)
	sim.Now = func() time.Time { return compareRef }
	return NewCompareEngine(sim)
}

func toddlerHousehold() domain.SimulatorInput {
	return domain.SimulatorInput{
		HouseholdType: domain.HouseholdTwoParent,
		Children:      []domain.ChildInfo{{BirthDate: time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)}},
	}
}

func TestCompareEngine_Templates(t *testing.T) {
	engine := newTestEngine(t)

	compSet, err := engine.Compare(context.Background(), toddlerHousehold(), CompareOptions{
		Templates: []string{"add_newborn", "single_parent"},
		Years:     3,
	})
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseName, compSet.BaseScenarioName)
	assert.Equal(t, compareRef, compSet.ReferenceDate)
	assert.Equal(t, 3, compSet.ProjectionYears)
	require.NotNil(t, compSet.BaseResult)
	assert.Equal(t, int64(234000), compSet.BaseResult.TotalAnnual)
	require.Len(t, compSet.AlternativeResults, 2)

	newborn := compSet.AlternativeResults[0]
	assert.Equal(t, "add_newborn", newborn.ScenarioName)
	assert.NotEmpty(t, newborn.Description)
	assert.Equal(t, int64(840000), newborn.AmountDiffFromBase)
	assert.True(t, decimal.RequireFromString("358.97").Equal(newborn.AmountPctFromBase), "got %s", newborn.AmountPctFromBase)
	assert.ElementsMatch(t, []string{
		"childbirth-lump-sum",
		"birth-childcare-grant",
		"postnatal-care-stay",
		"postnatal-care-day",
		"postnatal-care-visit",
		"multi-child-nursery-reduction",
	}, newborn.GainedPrograms)
	assert.Empty(t, newborn.LostPrograms)
	assert.Greater(t, newborn.ProjectedDiffFromBase, int64(0))

	single := compSet.AlternativeResults[1]
	assert.Equal(t, int64(0), single.AmountDiffFromBase)
	assert.True(t, single.AmountPctFromBase.IsZero())
	assert.Empty(t, single.GainedPrograms)
	assert.Equal(t, singleParentItems(single), single.EligibleCount, "every program carries the single-parent line")

	require.NotEmpty(t, compSet.Recommendations)
	assert.Contains(t, compSet.Recommendations[0], "add_newborn")
}

// singleParentItems counts eligible programs whose last action item is the single-parent line
func singleParentItems(r ComparisonResult) int {
	n := 0
	for _, ep := range r.Result.EligiblePrograms {
		if len(ep.ActionItems) > 0 && ep.ActionItems[len(ep.ActionItems)-1] == calculation.SingleParentActionItem {
			n++
		}
	}
	return n
}

func TestCompareEngine_CustomTransforms(t *testing.T) {
	engine := newTestEngine(t)

	compSet, err := engine.Compare(context.Background(), toddlerHousehold(), CompareOptions{
		BaseName:   "today",
		Transforms: []string{"set_care:care=nursery"},
		Years:      2,
	})
	require.NoError(t, err)

	assert.Equal(t, "today", compSet.BaseScenarioName)
	require.Len(t, compSet.AlternativeResults, 1)

	custom := compSet.AlternativeResults[0]
	assert.Equal(t, "custom", custom.ScenarioName)
	assert.Equal(t, "Set every child's care to nursery", custom.Description)
	assert.Equal(t, []string{"unlicensed-nursery-subsidy"}, custom.GainedPrograms)
	assert.Equal(t, int64(0), custom.AmountDiffFromBase)
}

func TestCompareEngine_ExplicitReferenceDate(t *testing.T) {
	engine := newTestEngine(t)
	later := time.Date(2030, 4, 1, 0, 0, 0, 0, time.UTC)

	compSet, err := engine.Compare(context.Background(), toddlerHousehold(), CompareOptions{
		Templates:     []string{"add_newborn"},
		ReferenceDate: later,
		Years:         1,
	})
	require.NoError(t, err)

	assert.Equal(t, later, compSet.ReferenceDate)
	newborn := compSet.AlternativeResults[0]
	assert.Contains(t, newborn.GainedPrograms, "childbirth-lump-sum", "the template child is born on the explicit date")
}

func TestCompareEngine_Errors(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.Compare(ctx, toddlerHousehold(), CompareOptions{})
	assert.Error(t, err, "nothing to compare")

	_, err = engine.Compare(ctx, toddlerHousehold(), CompareOptions{Templates: []string{"postpone_1yr"}})
	assert.ErrorContains(t, err, "template postpone_1yr not found")

	_, err = engine.Compare(ctx, toddlerHousehold(), CompareOptions{Transforms: []string{"remove_child:child=1"}})
	assert.Error(t, err, "cannot remove the only child")

	_, err = engine.Compare(ctx, toddlerHousehold(), CompareOptions{Transforms: []string{"bogus"}})
	assert.Error(t, err)

	_, err = engine.Compare(ctx, domain.SimulatorInput{}, CompareOptions{Templates: []string{"single_parent"}})
	assert.ErrorIs(t, err, domain.ErrNoChildren)

	_, err = NewCompareEngine(nil).Compare(ctx, toddlerHousehold(), CompareOptions{Templates: []string{"all_home"}})
	assert.Error(t, err)
}

func TestCompareEngine_Canceled(t *testing.T) {
	engine := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Compare(ctx, toddlerHousehold(), CompareOptions{Templates: []string{"all_home"}})
	assert.ErrorIs(t, err, context.Canceled)
}
