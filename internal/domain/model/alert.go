package model

import "time"

// AlertKind identifies an evaluator finding.
type AlertKind string

// Alert kinds emitted by the evaluators.
const (
	AlertExpired              AlertKind = "EXPIRED"
	AlertNearExpiry           AlertKind = "NEAR_EXPIRY"
	AlertContaminationRisk    AlertKind = "CONTAMINATION_RISK"
	AlertMissingCertification AlertKind = "MISSING_CERTIFICATION"
)

// Alert is a single evaluator finding. Alerts are ephemeral: computed per
// evaluation, returned in responses or broadcast, never persisted.
type Alert struct {
	Kind    AlertKind `json:"kind"`
	Message string    `json:"message"`
}

// AlertEvent is the broadcast payload delivered to live subscribers.
// Alert order preserves evaluation order.
type AlertEvent struct {
	TraceID    string    `json:"trace_id"`
	RecordName string    `json:"record_name"`
	Alerts     []Alert   `json:"alerts"`
	EmittedAt  time.Time `json:"emitted_at"`
}
