// Package types contains caller-facing shapes shared across the application.
package types

import (
	"github.com/deeparex/Food-monitoring-System/internal/domain/evaluation"
	"github.com/deeparex/Food-monitoring-System/internal/domain/model"
)

// RecordView is the result shape returned by record reads and updates: the
// record alongside the full evaluation report. A failed safety check lives
// in Evaluation as data, never as a transport error.
type RecordView struct {
	Record     model.FoodRecord  `json:"record"`
	Evaluation evaluation.Report `json:"evaluation"`
}
