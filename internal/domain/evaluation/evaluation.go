// Package evaluation implements the safety and freshness check family:
// compliance, trustworthiness, and quality alerting. Evaluators are pure
// and synchronous; findings are data, never errors. The only error an
// evaluator returns is a validation gap that makes the check impossible.
package evaluation

import (
	"time"

	"github.com/deeparex/Food-monitoring-System/internal/domain/model"
)

// Check identifies one member of the evaluator family.
type Check string

// Check kinds.
const (
	CheckCompliance      Check = "compliance"
	CheckTrustworthiness Check = "trustworthiness"
	CheckQuality         Check = "quality"
)

// DefaultNearExpiryWindow is the horizon within which a record is flagged
// as nearing expiry.
const DefaultNearExpiryWindow = 24 * time.Hour

// DefaultRequiredCertifications returns the regulatory certification set a
// compliant record must carry. Order is fixed; reasons and alerts are
// reported in this order.
func DefaultRequiredCertifications() []string {
	return []string{"FDA Approved", "FSSAI Certified", "ISO 22000"}
}

// ComplianceResult is the pass/fail outcome of the compliance check.
// Compliant is true iff Reasons is empty.
type ComplianceResult struct {
	Compliant bool     `json:"compliant"`
	Reasons   []string `json:"reasons"`
}

// Outcome is the uniform result shape shared by the family, so callers can
// run any check through the Evaluator interface without knowing its kind.
type Outcome struct {
	Check      Check
	Compliance *ComplianceResult
	Alerts     []model.Alert
}

// Evaluator is implemented by all three checks.
type Evaluator interface {
	Check() Check
	Run(rec model.FoodRecord, now time.Time) (Outcome, error)
}

// settings holds the configuration shared across the family.
type settings struct {
	required         []string
	nearExpiryWindow time.Duration
}

func newSettings(opts ...Option) settings {
	s := settings{
		required:         DefaultRequiredCertifications(),
		nearExpiryWindow: DefaultNearExpiryWindow,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Report is the combined outcome of running the whole family on a record.
// TrustworthinessIssue names the validation gap when freshness could not be
// assessed; the strict single-check path surfaces the same gap as an error.
type Report struct {
	Compliance           ComplianceResult `json:"compliance"`
	Trustworthiness      []model.Alert    `json:"trustworthiness"`
	TrustworthinessIssue string           `json:"trustworthiness_issue,omitempty"`
	Quality              []model.Alert    `json:"quality"`
}

// Suite bundles the full check family under one configuration.
type Suite struct {
	compliance *ComplianceEvaluator
	trust      *TrustworthinessEvaluator
	quality    *QualityAlertEvaluator
}

// NewSuite creates the family with shared options.
func NewSuite(opts ...Option) *Suite {
	return &Suite{
		compliance: NewComplianceEvaluator(opts...),
		trust:      NewTrustworthinessEvaluator(opts...),
		quality:    NewQualityAlertEvaluator(opts...),
	}
}

// Compliance returns the compliance member.
func (s *Suite) Compliance() *ComplianceEvaluator { return s.compliance }

// Trustworthiness returns the trustworthiness member.
func (s *Suite) Trustworthiness() *TrustworthinessEvaluator { return s.trust }

// Quality returns the quality-alert member.
func (s *Suite) Quality() *QualityAlertEvaluator { return s.quality }

// Evaluate runs all three checks. A missing expiry date fails only the
// strict trustworthiness check and is reported as a non-fatal issue here.
func (s *Suite) Evaluate(rec model.FoodRecord, now time.Time) Report {
	rep := Report{
		Compliance: s.compliance.Evaluate(rec),
		Quality:    s.quality.Evaluate(rec, now),
	}
	trust, err := s.trust.Evaluate(rec, now)
	if err != nil {
		rep.TrustworthinessIssue = err.Error()
	}
	rep.Trustworthiness = trust
	if rep.Trustworthiness == nil {
		rep.Trustworthiness = []model.Alert{}
	}
	if rep.Quality == nil {
		rep.Quality = []model.Alert{}
	}
	if rep.Compliance.Reasons == nil {
		rep.Compliance.Reasons = []string{}
	}
	return rep
}
