// Package service provides the core record service that implements the
// dependencies required by the HTTP API: fetch or update a record, run the
// evaluator family, and fan resulting alerts out to live subscribers.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/deeparex/Food-monitoring-System/internal/adapters/broadcast"
	"github.com/deeparex/Food-monitoring-System/internal/adapters/repository"
	"github.com/deeparex/Food-monitoring-System/internal/domain/evaluation"
	"github.com/deeparex/Food-monitoring-System/internal/domain/model"
	"github.com/deeparex/Food-monitoring-System/internal/domain/types"
	"github.com/deeparex/Food-monitoring-System/pkg/logger"
	"github.com/deeparex/Food-monitoring-System/pkg/metrics"
)

// Service orchestrates record reads and updates. Every operation on a
// trace id runs inside that id's critical section: fetch, merge, evaluate,
// persist, broadcast, respond is one logical unit.
type Service struct {
	mu sync.RWMutex

	// Core components
	store       repository.Store
	broadcaster *broadcast.Broadcaster
	suite       *evaluation.Suite
	keys        *keyedMutex

	// Configuration
	requiredCerts    []string
	nearExpiryWindow time.Duration
	subscriberBuffer int
	clock            func() time.Time

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the record store backend.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithBroadcaster sets the alert broadcaster.
func WithBroadcaster(b *broadcast.Broadcaster) Option {
	return func(s *Service) {
		if b != nil {
			s.broadcaster = b
		}
	}
}

// WithRequiredCertifications sets the certification set records must carry.
func WithRequiredCertifications(certs []string) Option {
	return func(s *Service) {
		if len(certs) > 0 {
			s.requiredCerts = certs
		}
	}
}

// WithNearExpiryWindow sets the near-expiry alert horizon.
func WithNearExpiryWindow(window time.Duration) Option {
	return func(s *Service) {
		if window > 0 {
			s.nearExpiryWindow = window
		}
	}
}

// WithSubscriberBuffer sets the per-subscriber event buffer.
func WithSubscriberBuffer(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.subscriberBuffer = size
		}
	}
}

// WithClock sets the time source, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		keys:             newKeyedMutex(),
		requiredCerts:    evaluation.DefaultRequiredCertifications(),
		nearExpiryWindow: evaluation.DefaultNearExpiryWindow,
		clock:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("records")
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.logger.Info(ctx, "using in-memory record store")
	}
	if s.broadcaster == nil {
		opts := []broadcast.Option{broadcast.WithLogger(s.logger)}
		if s.subscriberBuffer > 0 {
			opts = append(opts, broadcast.WithSubscriberBuffer(s.subscriberBuffer))
		}
		s.broadcaster = broadcast.New(opts...)
	}
	s.suite = evaluation.NewSuite(
		evaluation.WithRequiredCertifications(s.requiredCerts),
		evaluation.WithNearExpiryWindow(s.nearExpiryWindow),
	)

	s.started = true
	s.logger.Info(ctx, "record service started",
		logger.Int("requiredCertifications", len(s.requiredCerts)),
		logger.Duration("nearExpiryWindow", s.nearExpiryWindow),
	)
	return nil
}

// Stop shuts the service down, cancelling every live subscription.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.broadcaster != nil {
		_ = s.broadcaster.Close()
	}
	s.started = false
	s.logger.Info(context.Background(), "record service stopped")
}

// Broadcaster exposes the alert broadcaster for subscriber transports.
func (s *Service) Broadcaster() *broadcast.Broadcaster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.broadcaster
}

// CreateRecord stores a new record, recomputing derived status before the
// write. Quality alerts found on the fresh record are broadcast.
func (s *Service) CreateRecord(ctx context.Context, rec model.FoodRecord) (types.RecordView, error) {
	if rec.TraceID == "" {
		metrics.RecordValidationFailure()
		return types.RecordView{}, fmt.Errorf("%w: trace_id required", ErrValidation)
	}

	s.keys.Lock(rec.TraceID)
	defer s.keys.Unlock(rec.TraceID)

	now := s.clock()
	rec.LastUpdated = now
	report := s.evaluate(rec, now)
	rec.ComplianceStatus = report.Compliance.Compliant
	rec.QualityIssueFlag = len(report.Quality) > 0

	stored, err := s.store.Create(ctx, rec)
	if err != nil {
		return types.RecordView{}, err
	}
	s.publishQuality(ctx, stored, report.Quality)

	s.logger.Info(ctx, "record created",
		logger.String("traceID", stored.TraceID),
		logger.Bool("compliant", stored.ComplianceStatus),
	)
	return types.RecordView{Record: stored, Evaluation: report}, nil
}

// GetRecord fetches a record and runs the full evaluator family. Derived
// status on the returned view reflects this evaluation; quality alerts are
// broadcast before the call returns.
func (s *Service) GetRecord(ctx context.Context, traceID string) (types.RecordView, error) {
	s.keys.Lock(traceID)
	defer s.keys.Unlock(traceID)

	rec, err := s.store.FindByTraceID(ctx, traceID)
	if err != nil {
		return types.RecordView{}, err
	}

	now := s.clock()
	report := s.evaluate(rec, now)
	rec.ComplianceStatus = report.Compliance.Compliant
	rec.QualityIssueFlag = len(report.Quality) > 0
	s.publishQuality(ctx, rec, report.Quality)

	return types.RecordView{Record: rec, Evaluation: report}, nil
}

// UpdateRecord merges a partial update into the stored record, bumps
// lastUpdated, re-evaluates, persists, and broadcasts quality alerts. The
// store write is the single commit point: a failed write leaves no
// observable mutation and no broadcast.
func (s *Service) UpdateRecord(ctx context.Context, traceID string, upd model.RecordUpdate) (types.RecordView, error) {
	s.keys.Lock(traceID)
	defer s.keys.Unlock(traceID)

	current, err := s.store.FindByTraceID(ctx, traceID)
	if err != nil {
		return types.RecordView{}, err
	}

	now := s.clock()
	lastUpdated := ensureAfter(current.LastUpdated, now)
	merged := current.Clone()
	upd.ApplyTo(&merged)
	merged.LastUpdated = lastUpdated

	report := s.evaluate(merged, now)
	upd.SetDerivedStatus(report.Compliance.Compliant, len(report.Quality) > 0)

	stored, err := s.store.Upsert(ctx, traceID, upd, lastUpdated)
	if err != nil {
		return types.RecordView{}, err
	}
	s.publishQuality(ctx, stored, report.Quality)

	s.logger.Debug(ctx, "record updated",
		logger.String("traceID", traceID),
		logger.Bool("compliant", stored.ComplianceStatus),
		logger.Int("qualityAlerts", len(report.Quality)),
	)
	return types.RecordView{Record: stored, Evaluation: report}, nil
}

// Compliance runs only the regulatory check.
func (s *Service) Compliance(ctx context.Context, traceID string) (evaluation.ComplianceResult, error) {
	s.keys.Lock(traceID)
	defer s.keys.Unlock(traceID)

	rec, err := s.store.FindByTraceID(ctx, traceID)
	if err != nil {
		return evaluation.ComplianceResult{}, err
	}
	metrics.RecordEvaluation(string(evaluation.CheckCompliance))
	res := s.suite.Compliance().Evaluate(rec)
	if res.Reasons == nil {
		res.Reasons = []string{}
	}
	return res, nil
}

// Trustworthiness runs only the strict freshness check. A record without
// an expiry date fails with a validation error.
func (s *Service) Trustworthiness(ctx context.Context, traceID string) ([]model.Alert, error) {
	s.keys.Lock(traceID)
	defer s.keys.Unlock(traceID)

	rec, err := s.store.FindByTraceID(ctx, traceID)
	if err != nil {
		return nil, err
	}
	metrics.RecordEvaluation(string(evaluation.CheckTrustworthiness))
	alerts, err := s.suite.Trustworthiness().Evaluate(rec, s.clock())
	if err != nil {
		metrics.RecordValidationFailure()
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	s.countAlerts(alerts)
	if alerts == nil {
		alerts = []model.Alert{}
	}
	return alerts, nil
}

// QualityAlerts runs only the permissive quality check and broadcasts any
// findings, mirroring GetRecord's publish behavior.
func (s *Service) QualityAlerts(ctx context.Context, traceID string) ([]model.Alert, error) {
	s.keys.Lock(traceID)
	defer s.keys.Unlock(traceID)

	rec, err := s.store.FindByTraceID(ctx, traceID)
	if err != nil {
		return nil, err
	}
	metrics.RecordEvaluation(string(evaluation.CheckQuality))
	alerts := s.suite.Quality().Evaluate(rec, s.clock())
	s.countAlerts(alerts)
	s.publishQuality(ctx, rec, alerts)
	if alerts == nil {
		alerts = []model.Alert{}
	}
	return alerts, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started": s.started,
	}
	if s.started {
		stats["records"] = s.store.Count(ctx)
		stats["subscribers"] = s.broadcaster.Count()
		metrics.UpdateRecordsTracked(s.store.Count(ctx))
	}
	return stats
}

// evaluate runs the full family and records evaluation metrics.
func (s *Service) evaluate(rec model.FoodRecord, now time.Time) evaluation.Report {
	report := s.suite.Evaluate(rec, now)
	metrics.RecordEvaluation(string(evaluation.CheckCompliance))
	metrics.RecordEvaluation(string(evaluation.CheckTrustworthiness))
	metrics.RecordEvaluation(string(evaluation.CheckQuality))
	s.countAlerts(report.Trustworthiness)
	s.countAlerts(report.Quality)
	return report
}

func (s *Service) countAlerts(alerts []model.Alert) {
	for _, a := range alerts {
		metrics.RecordAlertEmitted(string(a.Kind))
	}
}

// publishQuality broadcasts an alert event when quality alerts are present.
// Publishing never blocks on slow subscribers and never fails the caller.
func (s *Service) publishQuality(ctx context.Context, rec model.FoodRecord, alerts []model.Alert) {
	if len(alerts) == 0 {
		return
	}
	s.broadcaster.Publish(ctx, model.AlertEvent{
		TraceID:    rec.TraceID,
		RecordName: rec.Name,
		Alerts:     alerts,
		EmittedAt:  s.clock(),
	})
}

// ensureAfter guarantees lastUpdated strictly advances even when the wall
// clock has not moved between two accepted mutations.
func ensureAfter(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Millisecond)
}
