package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/prashu0705/green-ai-orbit/internal/model"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS regions (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		code          TEXT NOT NULL,
		carbon_factor NUMERIC(10,6) NOT NULL,
		renewable_pct INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS workloads (
		id               UUID PRIMARY KEY,
		name             TEXT NOT NULL,
		region_id        TEXT NOT NULL,
		gpu_count        INTEGER NOT NULL,
		status           TEXT NOT NULL,
		kind             TEXT NOT NULL,
		criticality      TEXT NOT NULL,
		efficiency_score INTEGER NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS audit_log (
		id      UUID PRIMARY KEY,
		ts      TIMESTAMPTZ NOT NULL,
		action  TEXT NOT NULL,
		actor   TEXT NOT NULL,
		details JSONB NOT NULL DEFAULT '{}'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_workloads_region ON workloads (region_id)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_log_ts ON audit_log (ts DESC)`,
}

const workloadColumns = `id, name, region_id, gpu_count, status, kind, criticality, efficiency_score, created_at, updated_at`

// postgresStore implements Store on a Postgres database via lib/pq.
type postgresStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgres opens the database, verifies connectivity, ensures the schema,
// and seeds the region catalog when it is empty and seeding is requested.
func NewPostgres(ctx context.Context, dsn string, seed bool, logger *slog.Logger) (Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &postgresStore{db: db, logger: logger}

	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if seed {
		if err := s.seedRegions(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}

	return s, nil
}

func (s *postgresStore) ensureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	s.logger.Info("database schema ensured")
	return nil
}

// seedRegions loads the built-in catalog once, only into an empty table.
func (s *postgresStore) seedRegions(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM regions`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count regions: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	regions := SeedRegions()
	for _, r := range regions {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO regions (id, name, code, carbon_factor, renewable_pct) VALUES ($1, $2, $3, $4, $5)`,
			r.ID, r.Name, r.Code, r.CarbonFactor, r.RenewablePct,
		)
		if err != nil {
			return fmt.Errorf("failed to seed region %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	s.logger.Info("seeded region catalog", slog.Int("count", len(regions)))
	return nil
}

func (s *postgresStore) Driver() string { return DriverPostgres }

func (s *postgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *postgresStore) Close() error {
	return s.db.Close()
}

func (s *postgresStore) ListRegions(ctx context.Context) ([]model.Region, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, code, carbon_factor, renewable_pct FROM regions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}
	defer rows.Close()

	var regions []model.Region
	for rows.Next() {
		var r model.Region
		if err := rows.Scan(&r.ID, &r.Name, &r.Code, &r.CarbonFactor, &r.RenewablePct); err != nil {
			return nil, fmt.Errorf("failed to scan region: %w", err)
		}
		regions = append(regions, r)
	}
	return regions, rows.Err()
}

func (s *postgresStore) ListWorkloads(ctx context.Context) ([]model.Workload, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+workloadColumns+` FROM workloads ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list workloads: %w", err)
	}
	defer rows.Close()

	var workloads []model.Workload
	for rows.Next() {
		w, err := scanWorkload(rows)
		if err != nil {
			return nil, err
		}
		workloads = append(workloads, w)
	}
	return workloads, rows.Err()
}

func (s *postgresStore) GetWorkload(ctx context.Context, id uuid.UUID) (model.Workload, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+workloadColumns+` FROM workloads WHERE id = $1`, id)

	w, err := scanWorkload(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Workload{}, fmt.Errorf("workload %s: %w", id, ErrWorkloadNotFound)
	}
	return w, err
}

func (s *postgresStore) CreateWorkload(ctx context.Context, w model.Workload) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO workloads (`+workloadColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		w.ID, w.Name, w.RegionID, w.GPUCount, w.Status, w.Kind, w.Criticality,
		w.EfficiencyScore, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create workload: %w", err)
	}
	return nil
}

func (s *postgresStore) UpdateWorkloadRegion(ctx context.Context, id uuid.UUID, regionID string) (model.Workload, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE workloads SET region_id = $2, updated_at = $3 WHERE id = $1 RETURNING `+workloadColumns,
		id, regionID, time.Now().UTC(),
	)

	w, err := scanWorkload(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Workload{}, fmt.Errorf("workload %s: %w", id, ErrWorkloadNotFound)
	}
	return w, err
}

func (s *postgresStore) CountWorkloadsByRegion(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT region_id, COUNT(*) FROM workloads GROUP BY region_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to count workloads: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var regionID string
		var n int
		if err := rows.Scan(&regionID, &n); err != nil {
			return nil, fmt.Errorf("failed to scan workload count: %w", err)
		}
		counts[regionID] = n
	}
	return counts, rows.Err()
}

func (s *postgresStore) AppendAudit(ctx context.Context, entry model.AuditEntry) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal audit details: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, ts, action, actor, details) VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.Timestamp, entry.Action, entry.Actor, details,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

func (s *postgresStore) ListAudit(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	query := `SELECT id, ts, action, actor, details FROM audit_log ORDER BY ts DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []model.AuditEntry
	for rows.Next() {
		var e model.AuditEntry
		var details []byte
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Action, &e.Actor, &details); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &e.Details); err != nil {
				return nil, fmt.Errorf("failed to unmarshal audit details: %w", err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkload(r rowScanner) (model.Workload, error) {
	var w model.Workload
	err := r.Scan(&w.ID, &w.Name, &w.RegionID, &w.GPUCount, &w.Status, &w.Kind,
		&w.Criticality, &w.EfficiencyScore, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Workload{}, err
		}
		return model.Workload{}, fmt.Errorf("failed to scan workload: %w", err)
	}
	return w, nil
}
