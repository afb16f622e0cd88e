/*
handlers.go - HTTP API handlers for the mortgage simulation service

PURPOSE:
  Exposes the amortization engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Simulation:
    POST   /api/schedule               Compute a payment schedule
    POST   /api/impact                 Baseline vs. with-extras comparison

  Mortgage scenarios:
    GET    /api/mortgages              List saved mortgage scenarios
    POST   /api/mortgages              Save (upsert by name)
    GET    /api/mortgages/{id}         Get one
    DELETE /api/mortgages/{id}         Delete
    GET    /api/mortgages/{id}/export  Schedule detail as CSV

  Amortization scenarios:
    GET    /api/amortizations              List saved extra-payment plans
    POST   /api/amortizations              Save (upsert by name)
    GET    /api/amortizations/{id}         Get one
    DELETE /api/amortizations/{id}         Delete
    GET    /api/amortizations/{id}/compare Impact on every saved mortgage
    GET    /api/amortizations/{id}/export  Overview as CSV

  Import:
    POST   /api/import                 Import a persisted record in either
                                       the nested or the legacy flat format

  Admin:
    POST   /api/reset                  Clear all saved scenarios (testing/demo)

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store:  scenario persistence
  - Cache:  memoized comparison results
  - Logger: structured logging

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors (with per-field violations), malformed records
  - 404: Scenario not found
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/warp/mortgage-engine/cache"
	"github.com/warp/mortgage-engine/export"
	"github.com/warp/mortgage-engine/mortgage"
	"github.com/warp/mortgage-engine/scenario"
	"github.com/warp/mortgage-engine/scenario/store"
)

// compareCacheTTL bounds staleness from saves that bypass this process.
const compareCacheTTL = time.Hour

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  store.Store
	Cache  cache.Cache
	Logger *zap.Logger

	engine mortgage.Engine
}

// NewHandler creates a new handler. A nil logger disables logging.
func NewHandler(st store.Store, c cache.Cache, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Store: st, Cache: c, Logger: logger}
}

// =============================================================================
// SIMULATION HANDLERS
// =============================================================================

// CreateSchedule computes the full payment schedule for the request.
func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	loan, extras, charges, err := h.simulationInputs(req)
	if err != nil {
		h.writeDomainError(w, "Invalid simulation input", err)
		return
	}

	rows, summary, err := h.engine.Run(loan, extras, charges)
	if err != nil {
		h.writeDomainError(w, "Simulation failed", err)
		return
	}

	resp := ScheduleResponse{
		Rows:    make([]ScheduleRowDTO, len(rows)),
		Summary: toSummaryDTO(summary),
	}
	for i, row := range rows {
		resp.Rows[i] = toScheduleRowDTO(row)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ComputeImpact runs the engine with and without the extra payments.
func (h *Handler) ComputeImpact(w http.ResponseWriter, r *http.Request) {
	var req SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	loan, extras, charges, err := h.simulationInputs(req)
	if err != nil {
		h.writeDomainError(w, "Invalid simulation input", err)
		return
	}

	impact, err := h.engine.Impact(loan, charges, extras)
	if err != nil {
		h.writeDomainError(w, "Simulation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, toImpactResponse(impact))
}

// simulationInputs converts the request's records to engine inputs.
func (h *Handler) simulationInputs(req SimulationRequest) (mortgage.LoanParameters, mortgage.ExtraPaymentSet, mortgage.ServiceChargeSet, error) {
	m := req.mortgageScenario()

	loan, err := m.LoanParameters()
	if err != nil {
		return mortgage.LoanParameters{}, mortgage.ExtraPaymentSet{}, mortgage.ServiceChargeSet{}, err
	}
	charges, err := m.ServiceCharges()
	if err != nil {
		return mortgage.LoanParameters{}, mortgage.ExtraPaymentSet{}, mortgage.ServiceChargeSet{}, err
	}
	extras, err := req.amortizationScenario().ExtraPayments()
	if err != nil {
		return mortgage.LoanParameters{}, mortgage.ExtraPaymentSet{}, mortgage.ServiceChargeSet{}, err
	}
	return loan, extras, charges, nil
}

// =============================================================================
// MORTGAGE SCENARIO HANDLERS
// =============================================================================

// ListMortgages returns all saved mortgage scenarios.
func (h *Handler) ListMortgages(w http.ResponseWriter, r *http.Request) {
	scenarios, err := h.Store.ListMortgages(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to list mortgage scenarios", err)
		return
	}
	if scenarios == nil {
		scenarios = []scenario.MortgageScenario{}
	}
	writeJSON(w, http.StatusOK, scenarios)
}

// SaveMortgage saves a mortgage scenario, upserting by name.
func (h *Handler) SaveMortgage(w http.ResponseWriter, r *http.Request) {
	var s scenario.MortgageScenario
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if s.Name == "" {
		writeError(w, http.StatusBadRequest, "Scenario name is required", nil)
		return
	}

	if err := validateMortgageScenario(s); err != nil {
		h.writeDomainError(w, "Invalid mortgage scenario", err)
		return
	}

	if err := h.Store.SaveMortgage(r.Context(), &s); err != nil {
		h.writeDomainError(w, "Failed to save mortgage scenario", err)
		return
	}

	h.Logger.Info("mortgage scenario saved",
		zap.String("id", s.ID),
		zap.String("name", s.Name))
	writeJSON(w, http.StatusCreated, s)
}

// GetMortgage returns a single saved mortgage scenario.
func (h *Handler) GetMortgage(w http.ResponseWriter, r *http.Request) {
	s, err := h.Store.GetMortgage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "Failed to get mortgage scenario", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// DeleteMortgage removes a saved mortgage scenario.
func (h *Handler) DeleteMortgage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteMortgage(r.Context(), id); err != nil {
		h.writeDomainError(w, "Failed to delete mortgage scenario", err)
		return
	}
	h.Logger.Info("mortgage scenario deleted", zap.String("id", id))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// validateMortgageScenario converts the record and collects violations.
func validateMortgageScenario(s scenario.MortgageScenario) error {
	loan, err := s.LoanParameters()
	if err != nil {
		return err
	}
	charges, err := s.ServiceCharges()
	if err != nil {
		return err
	}

	violations := append(loan.Validate(), charges.Validate()...)
	if len(violations) > 0 {
		return &mortgage.ValidationError{Violations: violations}
	}
	return nil
}

// =============================================================================
// AMORTIZATION SCENARIO HANDLERS
// =============================================================================

// ListAmortizations returns all saved extra-payment plans.
func (h *Handler) ListAmortizations(w http.ResponseWriter, r *http.Request) {
	scenarios, err := h.Store.ListAmortizations(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to list amortization scenarios", err)
		return
	}
	if scenarios == nil {
		scenarios = []scenario.AmortizationScenario{}
	}
	writeJSON(w, http.StatusOK, scenarios)
}

// SaveAmortization saves an extra-payment plan, upserting by name.
func (h *Handler) SaveAmortization(w http.ResponseWriter, r *http.Request) {
	var s scenario.AmortizationScenario
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if s.Name == "" {
		writeError(w, http.StatusBadRequest, "Scenario name is required", nil)
		return
	}

	extras, err := s.ExtraPayments()
	if err != nil {
		h.writeDomainError(w, "Invalid amortization scenario", err)
		return
	}
	if violations := extras.Validate(); len(violations) > 0 {
		h.writeDomainError(w, "Invalid amortization scenario", &mortgage.ValidationError{Violations: violations})
		return
	}

	if err := h.Store.SaveAmortization(r.Context(), &s); err != nil {
		h.writeDomainError(w, "Failed to save amortization scenario", err)
		return
	}

	h.Logger.Info("amortization scenario saved",
		zap.String("id", s.ID),
		zap.String("name", s.Name))
	writeJSON(w, http.StatusCreated, s)
}

// GetAmortization returns a single saved extra-payment plan.
func (h *Handler) GetAmortization(w http.ResponseWriter, r *http.Request) {
	s, err := h.Store.GetAmortization(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "Failed to get amortization scenario", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// DeleteAmortization removes a saved extra-payment plan.
func (h *Handler) DeleteAmortization(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteAmortization(r.Context(), id); err != nil {
		h.writeDomainError(w, "Failed to delete amortization scenario", err)
		return
	}
	h.Logger.Info("amortization scenario deleted", zap.String("id", id))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// =============================================================================
// COMPARISON HANDLER
// =============================================================================

// CompareAmortization computes the impact of one extra-payment plan on
// every saved mortgage scenario. Results are cached keyed by the
// SavedAt stamps of all inputs, so a re-save changes the key and stale
// entries age out via TTL instead of explicit invalidation.
func (h *Handler) CompareAmortization(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	a, err := h.Store.GetAmortization(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "Failed to get amortization scenario", err)
		return
	}
	mortgages, err := h.Store.ListMortgages(ctx)
	if err != nil {
		h.writeDomainError(w, "Failed to list mortgage scenarios", err)
		return
	}

	key := compareCacheKey(a, mortgages)
	if h.Cache != nil {
		if cached, ok := h.Cache.Get(ctx, key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(cached))
			return
		}
	}

	rows := make([]ComparisonRowDTO, 0, len(mortgages))
	for _, m := range mortgages {
		row, err := scenario.Compare(m, *a)
		if err != nil {
			h.writeDomainError(w, fmt.Sprintf("Comparison failed for scenario %q", m.Name), err)
			return
		}
		rows = append(rows, toComparisonRowDTO(row))
	}

	if h.Cache != nil {
		if body, err := json.Marshal(rows); err == nil {
			if err := h.Cache.Set(ctx, key, string(body), compareCacheTTL); err != nil {
				h.Logger.Warn("comparison cache write failed", zap.Error(err))
			}
		}
	}
	writeJSON(w, http.StatusOK, rows)
}

func compareCacheKey(a *scenario.AmortizationScenario, mortgages []scenario.MortgageScenario) string {
	var b strings.Builder
	fmt.Fprintf(&b, "compare:%s:%d", a.ID, a.SavedAt.UnixNano())
	for _, m := range mortgages {
		fmt.Fprintf(&b, ":%s:%d", m.ID, m.SavedAt.UnixNano())
	}
	return b.String()
}

// =============================================================================
// IMPORT HANDLER
// =============================================================================

// ImportRecord accepts a persisted record in either the nested or the
// legacy flat format, migrates it if needed, and saves both halves.
func (h *Handler) ImportRecord(w http.ResponseWriter, r *http.Request) {
	var body json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	m, a, migrated, err := scenario.Normalize(body)
	if err != nil {
		h.writeDomainError(w, "Failed to import record", err)
		return
	}
	if m.Name == "" {
		writeError(w, http.StatusBadRequest, "Record name is required", nil)
		return
	}

	ctx := r.Context()
	if err := h.Store.SaveMortgage(ctx, &m); err != nil {
		h.writeDomainError(w, "Failed to save imported mortgage scenario", err)
		return
	}
	if err := h.Store.SaveAmortization(ctx, &a); err != nil {
		h.writeDomainError(w, "Failed to save imported amortization scenario", err)
		return
	}

	h.Logger.Info("record imported",
		zap.String("name", m.Name),
		zap.Bool("migrated", migrated))
	writeJSON(w, http.StatusCreated, ImportResponse{
		Mortgage:     m,
		Amortization: a,
		Migrated:     migrated,
	})
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// ResetDatabase clears all saved scenarios.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		h.writeDomainError(w, "Failed to reset database", err)
		return
	}

	h.Logger.Info("database reset")
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// EXPORT HANDLERS
// =============================================================================

// ExportOverview streams the amortization overview document as CSV.
func (h *Handler) ExportOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	a, err := h.Store.GetAmortization(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "Failed to get amortization scenario", err)
		return
	}
	mortgages, err := h.Store.ListMortgages(ctx)
	if err != nil {
		h.writeDomainError(w, "Failed to list mortgage scenarios", err)
		return
	}

	rows := make([]scenario.ComparisonRow, 0, len(mortgages))
	for _, m := range mortgages {
		row, err := scenario.Compare(m, *a)
		if err != nil {
			h.writeDomainError(w, fmt.Sprintf("Comparison failed for scenario %q", m.Name), err)
			return
		}
		rows = append(rows, row)
	}

	writeCSVHeader(w, a.Name)
	if err := export.WriteOverview(w, *a, rows); err != nil {
		h.Logger.Error("overview export failed", zap.Error(err))
	}
}

// ExportSchedule streams one mortgage scenario's payment schedule as
// CSV. An optional ?amortization={id} applies a saved extra-payment
// plan to the schedule.
func (h *Handler) ExportSchedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	m, err := h.Store.GetMortgage(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "Failed to get mortgage scenario", err)
		return
	}

	var a scenario.AmortizationScenario
	if id := r.URL.Query().Get("amortization"); id != "" {
		found, err := h.Store.GetAmortization(ctx, id)
		if err != nil {
			h.writeDomainError(w, "Failed to get amortization scenario", err)
			return
		}
		a = *found
	}

	writeCSVHeader(w, m.Name)
	if err := export.WriteSchedule(w, *m, a); err != nil {
		h.Logger.Error("schedule export failed", zap.Error(err))
	}
}

func writeCSVHeader(w http.ResponseWriter, name string) {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
	if safe == "" {
		safe = "export"
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s_%s.csv", safe, time.Now().Format("2006-01-02")))
}

// =============================================================================
// HELPERS
// =============================================================================

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

// writeDomainError maps domain errors onto HTTP statuses.
func (h *Handler) writeDomainError(w http.ResponseWriter, message string, err error) {
	var vErr *mortgage.ValidationError
	switch {
	case errors.As(err, &vErr):
		resp := ErrorResponse{Error: message, Details: vErr.Error()}
		for _, v := range vErr.Violations {
			resp.Violations = append(resp.Violations, ViolationDTO{Field: v.Field, Message: v.Message})
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, scenario.ErrMalformedRecord):
		writeError(w, http.StatusBadRequest, message, err)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Scenario not found", err)
	default:
		h.Logger.Error(message, zap.Error(err))
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
