// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/deeparex/Food-monitoring-System/internal/adapters/repository"
	service "github.com/deeparex/Food-monitoring-System/internal/app"
	"github.com/deeparex/Food-monitoring-System/internal/domain/evaluation"
	"github.com/deeparex/Food-monitoring-System/internal/domain/model"
	"github.com/deeparex/Food-monitoring-System/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	CreateRecord(ctx context.Context, rec model.FoodRecord) (types.RecordView, error)
	GetRecord(ctx context.Context, traceID string) (types.RecordView, error)
	UpdateRecord(ctx context.Context, traceID string, upd model.RecordUpdate) (types.RecordView, error)
	Compliance(ctx context.Context, traceID string) (evaluation.ComplianceResult, error)
	Trustworthiness(ctx context.Context, traceID string) ([]model.Alert, error)
	QualityAlerts(ctx context.Context, traceID string) ([]model.Alert, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	recordsHandler *RecordsHandler
	checksHandler  *ChecksHandler
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		recordsHandler: NewRecordsHandler(deps),
		checksHandler:  NewChecksHandler(deps),
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
	}
}

// Register attaches all HTTP routes to the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", metricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/metrics", s.healthHandler.HandleMetrics)
	r.Get("/stats", metricsMiddleware(s.statsHandler.HandleStats, "stats"))

	r.Route("/records", func(r chi.Router) {
		r.Post("/", metricsMiddleware(s.recordsHandler.HandleCreateRecord, "records_create"))
		r.Route("/{traceID}", func(r chi.Router) {
			r.Get("/", metricsMiddleware(s.recordsHandler.HandleGetRecord, "records_get"))
			r.Patch("/", metricsMiddleware(s.recordsHandler.HandleUpdateRecord, "records_update"))
			r.Get("/compliance", metricsMiddleware(s.checksHandler.HandleCompliance, "check_compliance"))
			r.Get("/trustworthiness", metricsMiddleware(s.checksHandler.HandleTrustworthiness, "check_trustworthiness"))
			r.Get("/quality", metricsMiddleware(s.checksHandler.HandleQuality, "check_quality"))
		})
	})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses:
// unknown trace 404, validation gap 422, store failure 503, anything else
// 500. Evaluation findings never travel this path; they are payload.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrValidation), errors.Is(err, evaluation.ErrMissingExpiryDate):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err)
	case errors.Is(err, repository.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already_exists", err)
	case errors.Is(err, repository.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store_error", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
