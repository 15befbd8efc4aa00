package evaluation

import (
	"time"

	"github.com/deeparex/Food-monitoring-System/internal/domain/model"
)

// QualityAlertEvaluator unions contamination, expiry, and certification
// findings. It is the permissive member of the family: a record without an
// expiry date is treated as not expired rather than unassessable.
type QualityAlertEvaluator struct {
	settings settings
}

// NewQualityAlertEvaluator creates a quality-alert evaluator.
func NewQualityAlertEvaluator(opts ...Option) *QualityAlertEvaluator {
	return &QualityAlertEvaluator{settings: newSettings(opts...)}
}

// Check reports the evaluator's kind.
func (e *QualityAlertEvaluator) Check() Check { return CheckQuality }

// Evaluate emits alerts in a fixed order: contamination risk, expiry, then
// one alert per missing required certification in the required set's order.
// Re-running on an unchanged record yields an identical sequence.
func (e *QualityAlertEvaluator) Evaluate(rec model.FoodRecord, now time.Time) []model.Alert {
	var alerts []model.Alert
	if rec.ContaminationRisk {
		alerts = append(alerts, model.Alert{
			Kind:    model.AlertContaminationRisk,
			Message: "contamination risk flagged",
		})
	}
	if rec.FreshnessExpiryDate != nil && rec.FreshnessExpiryDate.Before(now) {
		alerts = append(alerts, model.Alert{
			Kind:    model.AlertExpired,
			Message: "freshness expiry date has passed",
		})
	}
	for _, req := range e.settings.required {
		if !rec.HasCertification(req) {
			alerts = append(alerts, model.Alert{
				Kind:    model.AlertMissingCertification,
				Message: "missing certification: " + req,
			})
		}
	}
	return alerts
}

// Run adapts Evaluate to the family's uniform shape.
func (e *QualityAlertEvaluator) Run(rec model.FoodRecord, now time.Time) (Outcome, error) {
	return Outcome{Check: CheckQuality, Alerts: e.Evaluate(rec, now)}, nil
}
