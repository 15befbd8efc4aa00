package evaluation

import (
	"fmt"
	"math"
	"time"

	"github.com/deeparex/Food-monitoring-System/internal/domain/model"
)

// TrustworthinessEvaluator performs the freshness and contamination safety
// check. It is the strict member of the family: a record without an expiry
// date cannot be assessed and fails with ErrMissingExpiryDate.
type TrustworthinessEvaluator struct {
	settings settings
}

// NewTrustworthinessEvaluator creates a trustworthiness evaluator.
func NewTrustworthinessEvaluator(opts ...Option) *TrustworthinessEvaluator {
	return &TrustworthinessEvaluator{settings: newSettings(opts...)}
}

// Check reports the evaluator's kind.
func (e *TrustworthinessEvaluator) Check() Check { return CheckTrustworthiness }

// Evaluate emits at most one expiry-related alert followed by an optional
// contamination alert. Hours until expiry use the floor of the fractional
// hour difference, so a record 5h30m from expiry reports 5 hours.
func (e *TrustworthinessEvaluator) Evaluate(rec model.FoodRecord, now time.Time) ([]model.Alert, error) {
	if rec.FreshnessExpiryDate == nil {
		return nil, fmt.Errorf("cannot assess freshness: %w", ErrMissingExpiryDate)
	}

	hoursUntilExpiry := int(math.Floor(rec.FreshnessExpiryDate.Sub(now).Hours()))
	windowHours := int(e.settings.nearExpiryWindow.Hours())

	var alerts []model.Alert
	switch {
	case hoursUntilExpiry < 0:
		alerts = append(alerts, model.Alert{
			Kind:    model.AlertExpired,
			Message: "freshness expiry date has passed",
		})
	case hoursUntilExpiry < windowHours:
		alerts = append(alerts, model.Alert{
			Kind:    model.AlertNearExpiry,
			Message: fmt.Sprintf("expires in %d hours", hoursUntilExpiry),
		})
	}
	if rec.ContaminationRisk {
		alerts = append(alerts, model.Alert{
			Kind:    model.AlertContaminationRisk,
			Message: "contamination risk flagged",
		})
	}
	return alerts, nil
}

// Run adapts Evaluate to the family's uniform shape.
func (e *TrustworthinessEvaluator) Run(rec model.FoodRecord, now time.Time) (Outcome, error) {
	alerts, err := e.Evaluate(rec, now)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Check: CheckTrustworthiness, Alerts: alerts}, nil
}
