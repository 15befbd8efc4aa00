// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/deeparex/Food-monitoring-System/internal/domain/model"
)

// RecordsHandler handles record create, read, and update requests.
type RecordsHandler struct {
	deps Dependencies
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(deps Dependencies) *RecordsHandler {
	return &RecordsHandler{deps: deps}
}

// createRecordRequest mirrors the POST /records body. Derived status fields
// are deliberately absent: a client cannot set them.
type createRecordRequest struct {
	TraceID             string     `json:"trace_id"`
	Name                string     `json:"name"`
	Origin              string     `json:"origin"`
	QualityCheckDate    *time.Time `json:"quality_check_date,omitempty"`
	FreshnessExpiryDate *time.Time `json:"freshness_expiry_date,omitempty"`
	Certifications      []string   `json:"certifications,omitempty"`
	ContaminationRisk   bool       `json:"contamination_risk"`
}

func (c createRecordRequest) validate() error {
	switch {
	case strings.TrimSpace(c.TraceID) == "":
		return errors.New("missing trace_id")
	case strings.TrimSpace(c.Name) == "":
		return errors.New("missing name")
	}
	return nil
}

// HandleCreateRecord handles POST /records requests.
func (h *RecordsHandler) HandleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var req createRecordRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	rec := model.FoodRecord{
		TraceID:             req.TraceID,
		Name:                req.Name,
		Origin:              req.Origin,
		FreshnessExpiryDate: req.FreshnessExpiryDate,
		Certifications:      req.Certifications,
		ContaminationRisk:   req.ContaminationRisk,
	}
	if req.QualityCheckDate != nil {
		rec.QualityCheckDate = *req.QualityCheckDate
	} else {
		rec.QualityCheckDate = time.Now().UTC()
	}

	view, err := h.deps.CreateRecord(r.Context(), rec)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// HandleGetRecord handles GET /records/{traceID} requests.
func (h *RecordsHandler) HandleGetRecord(w http.ResponseWriter, r *http.Request) {
	traceID := chi.URLParam(r, "traceID")
	if traceID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	view, err := h.deps.GetRecord(r.Context(), traceID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleUpdateRecord handles PATCH /records/{traceID} requests. The body
// decodes with unknown fields disallowed, so an attempt to set a derived
// field (compliance_status, quality_issue_flag) or any other non-mergeable
// key is rejected rather than silently ignored.
func (h *RecordsHandler) HandleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	traceID := chi.URLParam(r, "traceID")
	if traceID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	var upd model.RecordUpdate
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if upd.Empty() {
		writeError(w, http.StatusBadRequest, "bad_request", ErrEmptyUpdate)
		return
	}

	view, err := h.deps.UpdateRecord(r.Context(), traceID, upd)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
