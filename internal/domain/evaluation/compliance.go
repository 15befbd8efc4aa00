package evaluation

import (
	"time"

	"github.com/deeparex/Food-monitoring-System/internal/domain/model"
)

// ComplianceEvaluator performs the regulatory pass/fail check: the record
// must carry every required certification and no contamination risk.
type ComplianceEvaluator struct {
	settings settings
}

// NewComplianceEvaluator creates a compliance evaluator.
func NewComplianceEvaluator(opts ...Option) *ComplianceEvaluator {
	return &ComplianceEvaluator{settings: newSettings(opts...)}
}

// Check reports the evaluator's kind.
func (e *ComplianceEvaluator) Check() Check { return CheckCompliance }

// Evaluate collects every failure reason in rule order: one reason per
// missing required certification, then one for a flagged contamination
// risk. Rules are never short-circuited.
func (e *ComplianceEvaluator) Evaluate(rec model.FoodRecord) ComplianceResult {
	var reasons []string
	for _, req := range e.settings.required {
		if !rec.HasCertification(req) {
			reasons = append(reasons, "missing "+req)
		}
	}
	if rec.ContaminationRisk {
		reasons = append(reasons, "contamination risk flagged")
	}
	return ComplianceResult{Compliant: len(reasons) == 0, Reasons: reasons}
}

// Run adapts Evaluate to the family's uniform shape.
func (e *ComplianceEvaluator) Run(rec model.FoodRecord, _ time.Time) (Outcome, error) {
	res := e.Evaluate(rec)
	return Outcome{Check: CheckCompliance, Compliance: &res}, nil
}
