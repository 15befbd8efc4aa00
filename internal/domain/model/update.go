package model

import "time"

// RecordUpdate is a partial update merged into a stored record. Nil fields
// leave the stored value untouched. Derived status fields are unexported so
// a decoded client body can never carry them; the service sets them after
// evaluation via SetDerivedStatus.
type RecordUpdate struct {
	Name                *string    `json:"name,omitempty"`
	Origin              *string    `json:"origin,omitempty"`
	QualityCheckDate    *time.Time `json:"quality_check_date,omitempty"`
	FreshnessExpiryDate *time.Time `json:"freshness_expiry_date,omitempty"`
	Certifications      []string   `json:"certifications,omitempty"`
	ContaminationRisk   *bool      `json:"contamination_risk,omitempty"`

	complianceStatus *bool
	qualityIssueFlag *bool
}

// Empty reports whether the update touches no client-settable field.
func (u RecordUpdate) Empty() bool {
	return u.Name == nil &&
		u.Origin == nil &&
		u.QualityCheckDate == nil &&
		u.FreshnessExpiryDate == nil &&
		u.Certifications == nil &&
		u.ContaminationRisk == nil
}

// SetDerivedStatus records evaluator-computed status so a store upsert can
// persist it alongside the client fields.
func (u *RecordUpdate) SetDerivedStatus(compliant, qualityIssue bool) {
	u.complianceStatus = &compliant
	u.qualityIssueFlag = &qualityIssue
}

// ApplyTo merges the update into rec. Certifications are replaced as a
// whole and collapsed to set semantics. LastUpdated is the caller's
// responsibility; derived fields only change when SetDerivedStatus was
// called.
func (u RecordUpdate) ApplyTo(rec *FoodRecord) {
	if u.Name != nil {
		rec.Name = *u.Name
	}
	if u.Origin != nil {
		rec.Origin = *u.Origin
	}
	if u.QualityCheckDate != nil {
		rec.QualityCheckDate = *u.QualityCheckDate
	}
	if u.FreshnessExpiryDate != nil {
		t := *u.FreshnessExpiryDate
		rec.FreshnessExpiryDate = &t
	}
	if u.Certifications != nil {
		rec.Certifications = NormalizeCertifications(u.Certifications)
	}
	if u.ContaminationRisk != nil {
		rec.ContaminationRisk = *u.ContaminationRisk
	}
	if u.complianceStatus != nil {
		rec.ComplianceStatus = *u.complianceStatus
	}
	if u.qualityIssueFlag != nil {
		rec.QualityIssueFlag = *u.qualityIssueFlag
	}
}
