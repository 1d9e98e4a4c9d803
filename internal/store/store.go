// Package store persists regions, workloads, and the governance audit trail.
// Two drivers exist: an in-memory store for development and tests, and a
// Postgres store for durable deployments.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/prashu0705/green-ai-orbit/internal/model"
)

// Driver names accepted by New.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// ErrWorkloadNotFound is returned when a workload id has no row behind it.
var ErrWorkloadNotFound = errors.New("workload not found")

// Store defines the persistence operations the service layer relies on.
// Regions are immutable reference data seeded at startup; workloads and the
// audit trail are the mutable part.
type Store interface {
	// Driver reports which backend serves this store.
	Driver() string
	Ping(ctx context.Context) error
	Close() error

	ListRegions(ctx context.Context) ([]model.Region, error)

	ListWorkloads(ctx context.Context) ([]model.Workload, error)
	GetWorkload(ctx context.Context, id uuid.UUID) (model.Workload, error)
	CreateWorkload(ctx context.Context, w model.Workload) error
	// UpdateWorkloadRegion reassigns a workload and returns the updated row.
	UpdateWorkloadRegion(ctx context.Context, id uuid.UUID, regionID string) (model.Workload, error)
	CountWorkloadsByRegion(ctx context.Context) (map[string]int, error)

	AppendAudit(ctx context.Context, entry model.AuditEntry) error
	// ListAudit returns the newest entries first, at most limit of them.
	ListAudit(ctx context.Context, limit int) ([]model.AuditEntry, error)
}

// New builds a store for the configured driver. An empty driver selects the
// in-memory store so the service boots with no external dependencies.
func New(ctx context.Context, driver, dsn string, seed bool, logger *slog.Logger) (Store, error) {
	switch driver {
	case "", DriverMemory:
		var regions []model.Region
		if seed {
			regions = SeedRegions()
		}
		return NewMemory(regions), nil
	case DriverPostgres:
		return NewPostgres(ctx, dsn, seed, logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
