// Package model contains domain models passed between layers.
package model

import "time"

// FoodRecord is the unit of traceability. TraceID is the immutable primary
// key; ComplianceStatus and QualityIssueFlag are derived by the evaluators
// and never accepted from client input.
type FoodRecord struct {
	TraceID             string     `json:"trace_id"`
	Name                string     `json:"name"`
	Origin              string     `json:"origin"`
	QualityCheckDate    time.Time  `json:"quality_check_date"`
	FreshnessExpiryDate *time.Time `json:"freshness_expiry_date,omitempty"`
	Certifications      []string   `json:"certifications"`
	ContaminationRisk   bool       `json:"contamination_risk"`
	ComplianceStatus    bool       `json:"compliance_status"`
	QualityIssueFlag    bool       `json:"quality_issue_flag"`
	LastUpdated         time.Time  `json:"last_updated"`
}

// HasCertification reports whether the record carries the named certification.
func (r FoodRecord) HasCertification(name string) bool {
	for _, c := range r.Certifications {
		if c == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can hold the record outside a
// store's critical section.
func (r FoodRecord) Clone() FoodRecord {
	out := r
	if r.FreshnessExpiryDate != nil {
		t := *r.FreshnessExpiryDate
		out.FreshnessExpiryDate = &t
	}
	if r.Certifications != nil {
		out.Certifications = make([]string, len(r.Certifications))
		copy(out.Certifications, r.Certifications)
	}
	return out
}

// NormalizeCertifications collapses duplicates while keeping first-seen
// order, giving the certifications slice set semantics.
func NormalizeCertifications(certs []string) []string {
	if certs == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(certs))
	out := make([]string, 0, len(certs))
	for _, c := range certs {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
