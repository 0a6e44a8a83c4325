package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/benefitsim/internal/calculation"
	"github.com/rgehrsitz/benefitsim/internal/catalog"
	"github.com/rgehrsitz/benefitsim/internal/compare"
	"github.com/rgehrsitz/benefitsim/internal/config"
	"github.com/rgehrsitz/benefitsim/internal/store/sqlite"
)

var today = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T, withStore bool) http.Handler {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)

	engine := calculation.NewSimulationEngine(c)
	engine.Now = func() time.Time { return today }

	var store *sqlite.Store
	if withStore {
		store, err = sqlite.New(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
	}

	return NewRouter(NewHandler(engine, store), []string{"*"})
}

func newbornHousehold() config.HouseholdSpec {
	return config.HouseholdSpec{
		HouseholdType: "two-parent",
		Children:      []config.ChildSpec{{BirthDate: "2024-04-01", CareType: "home"}},
	}
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, false)

	rec := do(t, router, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 17, body["programs"])
}

func TestListPrograms(t *testing.T) {
	router := newTestRouter(t, false)

	rec := do(t, router, http.MethodGet, "/api/programs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	programs := decode[[]ProgramDTO](t, rec)
	require.Len(t, programs, 17)
	assert.Equal(t, "child-medical-subsidy", programs[0].Slug)
	assert.Equal(t, "Medical", programs[0].CategoryLabel)

	rec = do(t, router, http.MethodGet, "/api/programs?category=medical", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	medical := decode[[]ProgramDTO](t, rec)
	assert.Len(t, medical, 4)
	for _, p := range medical {
		assert.Equal(t, "medical", string(p.Category))
	}

	rec = do(t, router, http.MethodGet, "/api/programs?category=housing", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProgram(t *testing.T) {
	router := newTestRouter(t, false)

	rec := do(t, router, http.MethodGet, "/api/programs/child-allowance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	program := decode[ProgramDTO](t, rec)
	assert.Equal(t, "child-allowance", program.Slug)
	assert.Equal(t, "Allowances & Grants", program.CategoryLabel)

	rec = do(t, router, http.MethodGet, "/api/programs/no-such-program", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Program not found", decode[ErrorResponse](t, rec).Error)
}

func TestSimulate(t *testing.T) {
	router := newTestRouter(t, false)

	rec := do(t, router, http.MethodPost, "/api/simulate", SimulateRequest{Household: newbornHousehold()})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[SimulateResponse](t, rec)
	assert.Equal(t, "2024-04-01", resp.ReferenceDate, "defaults to the engine clock")
	assert.Equal(t, int64(840000), resp.TotalAnnualEstimate)
	assert.Equal(t, "84万円", resp.TotalDisplay)
	assert.Empty(t, resp.RunID)
	require.NotEmpty(t, resp.EligiblePrograms)
	assert.Equal(t, "childbirth-lump-sum", resp.EligiblePrograms[0].Slug)
	assert.Equal(t, "approx. 50万円", resp.EligiblePrograms[0].AmountDisplay)
	assert.Equal(t, resp.FinancialCount+resp.ServiceCount, len(resp.EligiblePrograms))
}

func TestSimulate_ExplicitReferenceDate(t *testing.T) {
	router := newTestRouter(t, false)

	rec := do(t, router, http.MethodPost, "/api/simulate", SimulateRequest{
		Household:     newbornHousehold(),
		ReferenceDate: "2026-04-01",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[SimulateResponse](t, rec)
	assert.Equal(t, "2026-04-01", resp.ReferenceDate)
	for _, ep := range resp.EligiblePrograms {
		assert.NotEqual(t, "childbirth-lump-sum", ep.Slug, "a two-year-old no longer qualifies")
	}
}

func TestSimulate_BadRequests(t *testing.T) {
	router := newTestRouter(t, false)

	tests := []struct {
		name string
		body any
	}{
		{"no children", SimulateRequest{Household: config.HouseholdSpec{HouseholdType: "two-parent"}}},
		{"bad household type", SimulateRequest{Household: config.HouseholdSpec{HouseholdType: "extended", Children: newbornHousehold().Children}}},
		{"bad birth date", SimulateRequest{Household: config.HouseholdSpec{HouseholdType: "two-parent", Children: []config.ChildSpec{{BirthDate: "April 1"}}}}},
		{"bad care type", SimulateRequest{Household: config.HouseholdSpec{HouseholdType: "two-parent", Children: []config.ChildSpec{{BirthDate: "2024-04-01", CareType: "nanny"}}}}},
		{"bad reference date", SimulateRequest{Household: newbornHousehold(), ReferenceDate: "2024/04/01"}},
		{"unknown field", map[string]any{"household": newbornHousehold(), "extra": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/api/simulate", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decode[ErrorResponse](t, rec).Details)
		})
	}
}

func TestSimulate_SaveRequiresStore(t *testing.T) {
	router := newTestRouter(t, false)

	rec := do(t, router, http.MethodPost, "/api/simulate", SimulateRequest{Household: newbornHousehold(), Save: true})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/runs", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRuns(t *testing.T) {
	router := newTestRouter(t, true)

	rec := do(t, router, http.MethodPost, "/api/simulate", SimulateRequest{Household: newbornHousehold(), Save: true, Label: "newborn"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	runID := decode[SimulateResponse](t, rec).RunID
	require.NotEmpty(t, runID)

	rec = do(t, router, http.MethodGet, "/api/runs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	runs := decode[[]sqlite.RunSummary](t, rec)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, "newborn", runs[0].Label)
	assert.Equal(t, int64(840000), runs[0].TotalAnnual)

	rec = do(t, router, http.MethodGet, "/api/runs/"+runID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	run := decode[sqlite.Run](t, rec)
	assert.Equal(t, int64(840000), run.Result.TotalAnnualEstimate)
	require.Len(t, run.Input.Children, 1)

	rec = do(t, router, http.MethodGet, "/api/runs/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/runs?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTimeline(t *testing.T) {
	router := newTestRouter(t, false)

	rec := do(t, router, http.MethodPost, "/api/simulate/timeline", TimelineRequest{Household: newbornHousehold(), Years: 3})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[TimelineResponse](t, rec)
	require.NotNil(t, resp.Plan)
	require.Len(t, resp.Plan.Years, 3)
	assert.Equal(t, int64(840000), resp.Plan.Years[0].TotalEstimate)
	assert.Equal(t, resp.Plan.Years[2].Cumulative, resp.Plan.CumulativeTotal)
	assert.NotEmpty(t, resp.Windows)

	rec = do(t, router, http.MethodPost, "/api/simulate/timeline", TimelineRequest{Household: newbornHousehold(), Years: 99})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompare(t *testing.T) {
	router := newTestRouter(t, false)

	rec := do(t, router, http.MethodPost, "/api/compare", CompareRequest{
		Household: newbornHousehold(),
		Templates: []string{"single_parent", "all_nursery"},
		Years:     2,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	compSet := decode[compare.ComparisonSet](t, rec)
	assert.Equal(t, compare.DefaultBaseName, compSet.BaseScenarioName)
	require.Len(t, compSet.AlternativeResults, 2)
	assert.Equal(t, "single_parent", compSet.AlternativeResults[0].ScenarioName)
	assert.Equal(t, int64(0), compSet.AlternativeResults[0].AmountDiffFromBase)

	rec = do(t, router, http.MethodPost, "/api/compare", CompareRequest{Household: newbornHousehold(), Templates: []string{"retire_early"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/compare", CompareRequest{Household: newbornHousehold()})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
