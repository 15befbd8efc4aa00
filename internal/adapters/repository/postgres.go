package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deeparex/Food-monitoring-System/internal/domain/model"
	"github.com/deeparex/Food-monitoring-System/pkg/metrics"
)

// PostgresStore implements Store on a PostgreSQL pool. Records are stored
// document-style in a single table with certifications as jsonb.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed record store.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// ConnectPostgres opens a pgx pool for the given DSN.
func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}
	return pool, nil
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS food_records (
    trace_id              text PRIMARY KEY,
    name                  text NOT NULL DEFAULT '',
    origin                text NOT NULL DEFAULT '',
    quality_check_date    timestamptz NOT NULL,
    freshness_expiry_date timestamptz,
    certifications        jsonb NOT NULL DEFAULT '[]'::jsonb,
    contamination_risk    boolean NOT NULL DEFAULT false,
    compliance_status     boolean NOT NULL DEFAULT false,
    quality_issue_flag    boolean NOT NULL DEFAULT false,
    last_updated          timestamptz NOT NULL
)`

// EnsureSchema creates the records table when it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w: %v", ErrUnavailable, err)
	}
	return nil
}

const selectColumns = `trace_id, name, origin, quality_check_date, freshness_expiry_date,
certifications, contamination_risk, compliance_status, quality_issue_flag, last_updated`

// FindByTraceID returns the record for traceID.
func (s *PostgresStore) FindByTraceID(ctx context.Context, traceID string) (model.FoodRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+selectColumns+` FROM food_records WHERE trace_id = $1`, traceID)
	return scanRecord(row, traceID)
}

// Create inserts a new record.
func (s *PostgresStore) Create(ctx context.Context, rec model.FoodRecord) (model.FoodRecord, error) {
	stored := rec.Clone()
	stored.Certifications = model.NormalizeCertifications(stored.Certifications)
	certs, err := json.Marshal(stored.Certifications)
	if err != nil {
		return model.FoodRecord{}, fmt.Errorf("marshal certifications: %w", err)
	}
	tag, err := s.pool.Exec(ctx, `
INSERT INTO food_records (`+selectColumns+`)
VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8, $9, $10)
ON CONFLICT (trace_id) DO NOTHING`,
		stored.TraceID, stored.Name, stored.Origin, stored.QualityCheckDate,
		stored.FreshnessExpiryDate, string(certs), stored.ContaminationRisk,
		stored.ComplianceStatus, stored.QualityIssueFlag, stored.LastUpdated)
	if err != nil {
		metrics.RecordStoreError()
		return model.FoodRecord{}, fmt.Errorf("create record: %w: %v", ErrUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return model.FoodRecord{}, fmt.Errorf("trace %q: %w", stored.TraceID, ErrAlreadyExists)
	}
	metrics.UpdateRecordsTracked(s.Count(ctx))
	return stored, nil
}

// Upsert merges fields into the stored record inside a transaction, holding
// a row lock so concurrent merges on the same trace cannot lose updates.
func (s *PostgresStore) Upsert(ctx context.Context, traceID string, fields model.RecordUpdate, lastUpdated time.Time) (model.FoodRecord, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		metrics.RecordStoreError()
		return model.FoodRecord{}, fmt.Errorf("begin upsert: %w: %v", ErrUnavailable, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx,
		`SELECT `+selectColumns+` FROM food_records WHERE trace_id = $1 FOR UPDATE`, traceID)
	rec, err := scanRecord(row, traceID)
	if err != nil {
		return model.FoodRecord{}, err
	}

	fields.ApplyTo(&rec)
	rec.LastUpdated = lastUpdated
	certs, err := json.Marshal(rec.Certifications)
	if err != nil {
		return model.FoodRecord{}, fmt.Errorf("marshal certifications: %w", err)
	}
	_, err = tx.Exec(ctx, `
UPDATE food_records SET
    name = $2, origin = $3, quality_check_date = $4, freshness_expiry_date = $5,
    certifications = $6::jsonb, contamination_risk = $7, compliance_status = $8,
    quality_issue_flag = $9, last_updated = $10
WHERE trace_id = $1`,
		rec.TraceID, rec.Name, rec.Origin, rec.QualityCheckDate, rec.FreshnessExpiryDate,
		string(certs), rec.ContaminationRisk, rec.ComplianceStatus, rec.QualityIssueFlag,
		rec.LastUpdated)
	if err != nil {
		metrics.RecordStoreError()
		return model.FoodRecord{}, fmt.Errorf("update record: %w: %v", ErrUnavailable, err)
	}
	if err := tx.Commit(ctx); err != nil {
		metrics.RecordStoreError()
		return model.FoodRecord{}, fmt.Errorf("commit upsert: %w: %v", ErrUnavailable, err)
	}
	return rec, nil
}

// Count returns the number of records tracked. Backend failures report zero.
func (s *PostgresStore) Count(ctx context.Context) int {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM food_records`).Scan(&n); err != nil {
		metrics.RecordStoreError()
		return 0
	}
	return n
}

// Ready verifies the backend answers queries.
func (s *PostgresStore) Ready(ctx context.Context) error {
	var one int
	if err := s.pool.QueryRow(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("store ping: %w: %v", ErrUnavailable, err)
	}
	return nil
}

func scanRecord(row pgx.Row, traceID string) (model.FoodRecord, error) {
	var (
		rec       model.FoodRecord
		certsRaw  []byte
		expiry    *time.Time
	)
	err := row.Scan(&rec.TraceID, &rec.Name, &rec.Origin, &rec.QualityCheckDate,
		&expiry, &certsRaw, &rec.ContaminationRisk, &rec.ComplianceStatus,
		&rec.QualityIssueFlag, &rec.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.FoodRecord{}, fmt.Errorf("trace %q: %w", traceID, ErrNotFound)
		}
		metrics.RecordStoreError()
		return model.FoodRecord{}, fmt.Errorf("scan record: %w: %v", ErrUnavailable, err)
	}
	rec.FreshnessExpiryDate = expiry
	if len(certsRaw) > 0 {
		if err := json.Unmarshal(certsRaw, &rec.Certifications); err != nil {
			return model.FoodRecord{}, fmt.Errorf("unmarshal certifications: %w", err)
		}
	}
	return rec, nil
}
