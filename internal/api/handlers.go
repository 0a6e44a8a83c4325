/*
Package api exposes the simulation engine over HTTP.

ENDPOINTS:

	GET  /api/programs                 List the catalog (optional ?category=)
	GET  /api/programs/{slug}          One program
	POST /api/simulate                 Eligible programs for a household
	POST /api/simulate/timeline        Year-by-year projection
	POST /api/compare                  What-if variants of a household
	GET  /api/runs                     Saved runs, newest first (optional ?limit=)
	GET  /api/runs/{id}                One saved run
	GET  /healthz                      Liveness

ERROR HANDLING:

	400: malformed body, invalid household, unknown template or transform
	404: unknown program slug or run ID
	503: run history requested without a store
	500: everything else
*/
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/rgehrsitz/benefitsim/internal/calculation"
	"github.com/rgehrsitz/benefitsim/internal/catalog"
	"github.com/rgehrsitz/benefitsim/internal/compare"
	"github.com/rgehrsitz/benefitsim/internal/config"
	"github.com/rgehrsitz/benefitsim/internal/domain"
	"github.com/rgehrsitz/benefitsim/internal/store/sqlite"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine  *calculation.SimulationEngine
	Compare *compare.CompareEngine
	Parser  *config.InputParser
	// Store is optional; without it runs are neither saved nor listed
	Store *sqlite.Store
}

// NewHandler creates a handler around a simulation engine and an optional store.
func NewHandler(engine *calculation.SimulationEngine, store *sqlite.Store) *Handler {
	return &Handler{
		Engine:  engine,
		Compare: compare.NewCompareEngine(engine),
		Parser:  config.NewInputParser(),
		Store:   store,
	}
}

// =============================================================================
// CATALOG HANDLERS
// =============================================================================

// ListPrograms returns the catalog in order, optionally filtered by category.
func (h *Handler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	programs := h.Engine.Catalog.Programs()

	if raw := r.URL.Query().Get("category"); raw != "" {
		category := domain.Category(raw)
		if !category.Valid() {
			writeError(w, http.StatusBadRequest, "Unknown category", fmt.Errorf("%q", raw))
			return
		}
		programs = h.Engine.Catalog.ByCategory(category)
	}

	dtos := make([]ProgramDTO, len(programs))
	for i, p := range programs {
		dtos[i] = toProgramDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetProgram returns a single program.
func (h *Handler) GetProgram(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	program, err := h.Engine.Catalog.BySlug(slug)
	if err != nil {
		writeError(w, http.StatusNotFound, "Program not found", err)
		return
	}
	writeJSON(w, http.StatusOK, toProgramDTO(program))
}

// =============================================================================
// SIMULATION HANDLERS
// =============================================================================

// Simulate runs the engine for one household, saving the run when asked.
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, ref, ok := h.household(w, &req.Household, req.ReferenceDate)
	if !ok {
		return
	}

	result, err := h.Engine.RunAt(input, ref)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	resp := toSimulateResponse(result)
	if req.Save {
		if h.Store == nil {
			writeError(w, http.StatusServiceUnavailable, "Run history is not enabled", nil)
			return
		}
		run, err := h.Store.SaveRun(r.Context(), sqlite.Run{Label: req.Label, Input: input, Result: result})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save run", err)
			return
		}
		resp.RunID = run.ID
	}

	writeJSON(w, http.StatusOK, resp)
}

// Timeline projects a household's benefits over the coming years.
func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	var req TimelineRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Years > calculation.MaxProjectionYears {
		writeError(w, http.StatusBadRequest, "Projection horizon too long",
			fmt.Errorf("years must be at most %d", calculation.MaxProjectionYears))
		return
	}

	input, ref, ok := h.household(w, &req.Household, req.ReferenceDate)
	if !ok {
		return
	}

	plan, err := h.Engine.ProjectLifePlan(input, ref, req.Years)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	result, err := h.Engine.RunAt(input, ref)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TimelineResponse{Plan: plan, Windows: calculation.ProgramWindows(result)})
}

// CompareHouseholds evaluates template and transform variants against the base household.
func (h *Handler) CompareHouseholds(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, ref, ok := h.household(w, &req.Household, req.ReferenceDate)
	if !ok {
		return
	}

	compSet, err := h.Compare.Compare(r.Context(), input, compare.CompareOptions{
		BaseName:      req.BaseName,
		Templates:     req.Templates,
		Transforms:    req.Transforms,
		ReferenceDate: ref,
		Years:         req.Years,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "Comparison failed", err)
		return
	}
	writeJSON(w, http.StatusOK, compSet)
}

// =============================================================================
// RUN HISTORY HANDLERS
// =============================================================================

// ListRuns returns saved runs, newest first.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "Run history is not enabled", nil)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit", fmt.Errorf("%q", raw))
			return
		}
		limit = n
	}

	runs, err := h.Store.ListRuns(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list runs", err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// GetRun returns one saved run with its input and result.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "Run history is not enabled", nil)
		return
	}

	run, err := h.Store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, sqlite.ErrRunNotFound) {
		writeError(w, http.StatusNotFound, "Run not found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load run", err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// Health reports liveness and the catalog size.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"programs": h.Engine.Catalog.Len(),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

// household validates the textual household and resolves the reference date,
// writing a 400 response and returning false on failure.
func (h *Handler) household(w http.ResponseWriter, spec *config.HouseholdSpec, refDate string) (domain.SimulatorInput, time.Time, bool) {
	input, err := h.Parser.ValidateHousehold(spec)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid household", err)
		return input, time.Time{}, false
	}

	ref := h.Engine.Now()
	if refDate != "" {
		ref, err = time.Parse(domain.DateLayout, refDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid reference_date", err)
			return input, time.Time{}, false
		}
	}
	return input, ref, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

func writeEngineError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.Is(err, domain.ErrNoChildren) || errors.Is(err, domain.ErrInvalidBirthDate) || errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, "Invalid household", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "Simulation failed", err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func categoryLabel(c domain.Category) string {
	if label, ok := catalog.CategoryLabels[c]; ok {
		return label
	}
	return string(c)
}
