// Package repository defines the record store interface and errors.
package repository

import (
	"context"
	"time"

	"github.com/deeparex/Food-monitoring-System/internal/domain/model"
)

// Store provides persistence for traceability records keyed by trace id.
// Implementations must be safe for concurrent use; per-trace serialization
// of read-evaluate-write sequences is the service's responsibility.
type Store interface {
	// FindByTraceID returns the record for traceID.
	// Returns ErrNotFound if the trace id is unknown.
	FindByTraceID(ctx context.Context, traceID string) (model.FoodRecord, error)

	// Create stores a new record.
	// Returns ErrAlreadyExists when the trace id is taken.
	Create(ctx context.Context, rec model.FoodRecord) (model.FoodRecord, error)

	// Upsert merges the partial fields into the stored record and stamps
	// lastUpdated. Returns ErrNotFound when no record exists to update;
	// this store never creates through Upsert.
	Upsert(ctx context.Context, traceID string, fields model.RecordUpdate, lastUpdated time.Time) (model.FoodRecord, error)

	// Count returns the number of records tracked.
	Count(ctx context.Context) int
}
