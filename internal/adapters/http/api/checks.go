// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/deeparex/Food-monitoring-System/internal/domain/model"
)

// ChecksHandler serves the single-check operations: compliance-only,
// trustworthiness-only, and quality-only evaluation of one record.
type ChecksHandler struct {
	deps Dependencies
}

// NewChecksHandler creates a new checks handler.
func NewChecksHandler(deps Dependencies) *ChecksHandler {
	return &ChecksHandler{deps: deps}
}

// alertsResponse carries an ordered alert sequence for one trace.
type alertsResponse struct {
	TraceID string        `json:"trace_id"`
	Alerts  []model.Alert `json:"alerts"`
}

// HandleCompliance handles GET /records/{traceID}/compliance requests.
// Non-compliance is a successful response, not an error.
func (h *ChecksHandler) HandleCompliance(w http.ResponseWriter, r *http.Request) {
	traceID := chi.URLParam(r, "traceID")
	res, err := h.deps.Compliance(r.Context(), traceID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleTrustworthiness handles GET /records/{traceID}/trustworthiness
// requests. A record without an expiry date cannot be assessed and yields
// a validation error.
func (h *ChecksHandler) HandleTrustworthiness(w http.ResponseWriter, r *http.Request) {
	traceID := chi.URLParam(r, "traceID")
	alerts, err := h.deps.Trustworthiness(r.Context(), traceID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, alertsResponse{TraceID: traceID, Alerts: alerts})
}

// HandleQuality handles GET /records/{traceID}/quality requests. Findings
// are also broadcast to live subscribers by the service.
func (h *ChecksHandler) HandleQuality(w http.ResponseWriter, r *http.Request) {
	traceID := chi.URLParam(r, "traceID")
	alerts, err := h.deps.QualityAlerts(r.Context(), traceID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, alertsResponse{TraceID: traceID, Alerts: alerts})
}
