package repository

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/deeparex/Food-monitoring-System/internal/domain/model"
	"github.com/deeparex/Food-monitoring-System/pkg/metrics"
)

// Default memory store configuration constants.
const defaultShardCount = 8

// MemoryStore implements Store with sharded in-memory maps. Shards reduce
// lock contention between unrelated trace ids.
type MemoryStore struct {
	shards     []*shard
	shardCount int
}

type shard struct {
	mu      sync.RWMutex
	records map[string]model.FoodRecord
}

// NewMemoryStore creates an in-memory record store with configuration options.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		shardCount: defaultShardCount,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.shards = make([]*shard, s.shardCount)
	for i := range s.shards {
		s.shards[i] = &shard{records: make(map[string]model.FoodRecord)}
	}
	return s
}

func (s *MemoryStore) shardFor(traceID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(traceID))
	return s.shards[int(h.Sum32())%s.shardCount]
}

// FindByTraceID returns a copy of the stored record.
func (s *MemoryStore) FindByTraceID(_ context.Context, traceID string) (model.FoodRecord, error) {
	sh := s.shardFor(traceID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	rec, ok := sh.records[traceID]
	if !ok {
		return model.FoodRecord{}, fmt.Errorf("trace %q: %w", traceID, ErrNotFound)
	}
	return rec.Clone(), nil
}

// Create stores a new record, normalizing certifications to set semantics.
func (s *MemoryStore) Create(ctx context.Context, rec model.FoodRecord) (model.FoodRecord, error) {
	sh := s.shardFor(rec.TraceID)
	sh.mu.Lock()
	if _, ok := sh.records[rec.TraceID]; ok {
		sh.mu.Unlock()
		return model.FoodRecord{}, fmt.Errorf("trace %q: %w", rec.TraceID, ErrAlreadyExists)
	}
	stored := rec.Clone()
	stored.Certifications = model.NormalizeCertifications(stored.Certifications)
	sh.records[rec.TraceID] = stored
	out := stored.Clone()
	sh.mu.Unlock()

	// Count takes the shard locks itself, so the gauge update happens
	// outside the critical section.
	metrics.UpdateRecordsTracked(s.Count(ctx))
	return out, nil
}

// Upsert merges fields into the stored record and stamps lastUpdated.
func (s *MemoryStore) Upsert(_ context.Context, traceID string, fields model.RecordUpdate, lastUpdated time.Time) (model.FoodRecord, error) {
	sh := s.shardFor(traceID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	rec, ok := sh.records[traceID]
	if !ok {
		return model.FoodRecord{}, fmt.Errorf("trace %q: %w", traceID, ErrNotFound)
	}
	merged := rec.Clone()
	fields.ApplyTo(&merged)
	merged.LastUpdated = lastUpdated
	sh.records[traceID] = merged
	return merged.Clone(), nil
}

// Count returns the number of records across all shards.
func (s *MemoryStore) Count(_ context.Context) int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		total += len(sh.records)
		sh.mu.RUnlock()
	}
	return total
}
