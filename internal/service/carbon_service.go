package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prashu0705/green-ai-orbit/internal/cache"
	"github.com/prashu0705/green-ai-orbit/internal/catalog"
	"github.com/prashu0705/green-ai-orbit/internal/concurrent"
	"github.com/prashu0705/green-ai-orbit/internal/config"
	"github.com/prashu0705/green-ai-orbit/internal/forecast"
	"github.com/prashu0705/green-ai-orbit/internal/metrics"
	"github.com/prashu0705/green-ai-orbit/internal/model"
	"github.com/prashu0705/green-ai-orbit/internal/opportunity"
	"github.com/prashu0705/green-ai-orbit/internal/policy"
	"github.com/prashu0705/green-ai-orbit/internal/store"
)

// Cache keys. The region catalog and generated forecasts are the only values
// worth keeping warm; everything else is cheap or must stay fresh.
const (
	cacheKeyCatalog   = "catalog"
	forecastKeyPrefix = "forecast:"
)

// ErrInvalidInput marks requests rejected by boundary validation.
var ErrInvalidInput = errors.New("invalid input")

// DefaultActor is recorded in the audit trail when the caller supplies no
// identity.
const DefaultActor = "anonymous"

// CarbonService defines the interface for carbon-aware placement operations
type CarbonService interface {
	ListRegions(ctx context.Context) ([]model.Region, error)
	RegionSummaries(ctx context.Context) ([]model.RegionSummary, error)
	RegionForecast(ctx context.Context, regionID string) (model.ForecastGrid, error)

	ListWorkloads(ctx context.Context) ([]model.Workload, error)
	GetWorkload(ctx context.Context, id uuid.UUID) (model.Workload, error)
	RegisterWorkload(ctx context.Context, actor string, w model.Workload) (model.Workload, error)
	WorkloadOpportunity(ctx context.Context, id uuid.UUID, previewRegionID string) (model.Opportunity, error)
	ShiftWorkload(ctx context.Context, actor string, id uuid.UUID, targetRegionID string) (model.ShiftResult, error)

	EvaluateAction(ctx context.Context, action string, id uuid.UUID) (policy.Decision, error)
	AuditTrail(ctx context.Context, limit int) ([]model.AuditEntry, error)
	Status(ctx context.Context) (model.ServiceStatus, error)
}

// carbonService implements CarbonService
type carbonService struct {
	store     store.Store
	cache     cache.Cache
	cfg       *config.Config
	logger    *slog.Logger
	startedAt time.Time

	// rng feeds forecast generation and is guarded because math/rand sources
	// are not safe for concurrent use.
	rngMu sync.Mutex
	rng   forecast.RandomSource
}

// NewCarbonService creates a new carbon placement service. A nil rng gets a
// time-seeded source; tests inject a fixed seed for deterministic grids.
func NewCarbonService(
	st store.Store,
	c cache.Cache,
	cfg *config.Config,
	rng forecast.RandomSource,
	logger *slog.Logger,
) CarbonService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &carbonService{
		store:     st,
		cache:     c,
		cfg:       cfg,
		logger:    logger,
		startedAt: time.Now(),
		rng:       rng,
	}
}

// loadCatalog builds the region catalog from the store, keeping it warm for
// the cache TTL. Regions are immutable reference data, so staleness within
// the TTL is harmless.
func (s *carbonService) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	return cache.Remember(s.cache, cacheKeyCatalog, s.cfg.Cache.TTL, func() (*catalog.Catalog, error) {
		regions, err := s.store.ListRegions(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list regions: %w", err)
		}
		cat, err := catalog.New(regions)
		if err != nil {
			return nil, fmt.Errorf("failed to build region catalog: %w", err)
		}
		s.logger.Debug("region catalog loaded", slog.Int("regions", cat.Len()))
		return cat, nil
	})
}

// ListRegions returns all known regions
func (s *carbonService) ListRegions(ctx context.Context) ([]model.Region, error) {
	cat, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return cat.List(), nil
}

// RegionSummaries returns every region with its intensity, placement load,
// and best upcoming forecast slot. Summaries are assembled in parallel since
// each one materializes a forecast grid.
func (s *carbonService) RegionSummaries(ctx context.Context) ([]model.RegionSummary, error) {
	cat, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.store.CountWorkloadsByRegion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count workloads: %w", err)
	}

	regions := cat.List()

	// Catalog-wide minimum; every region holding it is flagged.
	minIntensity := 0
	for i, r := range regions {
		if v := r.Intensity(); i == 0 || v < minIntensity {
			minIntensity = v
		}
	}

	results := concurrent.ParallelMap(ctx, regions, func(ctx context.Context, r model.Region) (model.RegionSummary, error) {
		summary := model.RegionSummary{
			Region:       r,
			Intensity:    r.Intensity(),
			Workloads:    counts[r.ID],
			GreenestSlot: r.Intensity() == minIntensity,
		}

		grid, err := s.RegionForecast(ctx, r.ID)
		if err != nil {
			return model.RegionSummary{}, err
		}
		if best, ok := grid.MinIntensity(); ok {
			summary.BestSlotIntensity = best
		}
		return summary, nil
	})

	summaries, err := concurrent.OrderedValues(results)
	if err != nil {
		return nil, fmt.Errorf("failed to build region summaries: %w", err)
	}
	return summaries, nil
}

// RegionForecast returns the forecast grid for a region, generating and
// caching it on first use.
func (s *carbonService) RegionForecast(ctx context.Context, regionID string) (model.ForecastGrid, error) {
	cat, err := s.loadCatalog(ctx)
	if err != nil {
		return model.ForecastGrid{}, err
	}

	region, err := cat.Get(regionID)
	if err != nil {
		return model.ForecastGrid{}, err
	}

	return cache.Remember(s.cache, forecastKeyPrefix+region.Code, s.cfg.Cache.TTL, func() (model.ForecastGrid, error) {
		days := s.cfg.ForecastDays(time.Now())

		s.rngMu.Lock()
		grid := forecast.Generate(region.Code, days, s.cfg.Forecast.Hours, s.rng)
		s.rngMu.Unlock()

		metrics.RecordForecast()
		s.logger.Debug("forecast generated",
			slog.String("region", region.ID),
			slog.String("code", region.Code),
			slog.Int("days", len(grid.Days)),
		)
		return grid, nil
	})
}

// ListWorkloads returns all registered workloads
func (s *carbonService) ListWorkloads(ctx context.Context) ([]model.Workload, error) {
	workloads, err := s.store.ListWorkloads(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workloads: %w", err)
	}
	return workloads, nil
}

// GetWorkload returns a single workload by id
func (s *carbonService) GetWorkload(ctx context.Context, id uuid.UUID) (model.Workload, error) {
	return s.store.GetWorkload(ctx, id)
}

// RegisterWorkload validates and persists a new workload after the
// governance deployment check. Refusals are written to the audit trail.
func (s *carbonService) RegisterWorkload(ctx context.Context, actor string, w model.Workload) (model.Workload, error) {
	actor = normalizeActor(actor)

	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.Status == "" {
		w.Status = model.WorkloadStatusActive
	}
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now

	if err := w.Validate(); err != nil {
		return model.Workload{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	cat, err := s.loadCatalog(ctx)
	if err != nil {
		return model.Workload{}, err
	}

	region, err := cat.Get(w.RegionID)
	if err != nil {
		return model.Workload{}, err
	}

	if decision := policy.EvaluateDeployment(w, region.Intensity()); !decision.Allowed {
		metrics.RecordPolicyViolation()
		s.audit(ctx, model.AuditActionViolationDetected, actor, map[string]any{
			"reason":    decision.Reason,
			"workload":  w.Name,
			"region_id": w.RegionID,
		})
		s.logger.Warn("workload registration refused",
			slog.String("workload", w.Name),
			slog.String("region", w.RegionID),
			slog.String("reason", decision.Reason),
		)
		return model.Workload{}, decision.Err()
	}

	if err := s.store.CreateWorkload(ctx, w); err != nil {
		return model.Workload{}, fmt.Errorf("failed to create workload: %w", err)
	}

	s.audit(ctx, model.AuditActionRegisterWorkload, actor, map[string]any{
		"workload_id": w.ID.String(),
		"workload":    w.Name,
		"region_id":   w.RegionID,
		"kind":        w.Kind,
		"criticality": w.Criticality,
	})

	s.logger.Info("workload registered",
		slog.String("workload_id", w.ID.String()),
		slog.String("workload", w.Name),
		slog.String("region", w.RegionID),
		slog.Int("gpu_count", w.GPUCount),
	)

	return w, nil
}

// WorkloadOpportunity recomputes the placement recommendation for a workload.
// An empty previewRegionID asks for the auto-suggestion over the whole
// catalog; a concrete one simulates that specific move.
func (s *carbonService) WorkloadOpportunity(ctx context.Context, id uuid.UUID, previewRegionID string) (model.Opportunity, error) {
	w, err := s.store.GetWorkload(ctx, id)
	if err != nil {
		return model.Opportunity{}, err
	}

	cat, err := s.loadCatalog(ctx)
	if err != nil {
		return model.Opportunity{}, err
	}

	// The workload's assigned region may have left the catalog; the
	// documented default intensity keeps the recommendation total.
	current := cat.IntensityRef(w.RegionID)

	preview := current
	if previewRegionID != "" && previewRegionID != w.RegionID {
		previewRegion, err := cat.Get(previewRegionID)
		if err != nil {
			return model.Opportunity{}, err
		}
		preview = previewRegion.IntensityRef()
	}

	return opportunity.Compute(current, preview, cat.Intensities()), nil
}

// ShiftWorkload reassigns a workload to the target region when that move is
// beneficial. Shifting to the current region or to a region that is not
// strictly greener is a no-op, not an error. The governance deployment rule
// applies to the new placement.
func (s *carbonService) ShiftWorkload(ctx context.Context, actor string, id uuid.UUID, targetRegionID string) (model.ShiftResult, error) {
	actor = normalizeActor(actor)

	w, err := s.store.GetWorkload(ctx, id)
	if err != nil {
		return model.ShiftResult{}, err
	}

	cat, err := s.loadCatalog(ctx)
	if err != nil {
		return model.ShiftResult{}, err
	}

	target, err := cat.Get(targetRegionID)
	if err != nil {
		return model.ShiftResult{}, err
	}

	result := model.ShiftResult{
		WorkloadID:   w.ID,
		FromRegionID: w.RegionID,
		ToRegionID:   targetRegionID,
	}

	if w.RegionID == targetRegionID {
		result.NoOp = true
		s.logger.Info("shift skipped, workload already in target region",
			slog.String("workload_id", w.ID.String()),
			slog.String("region", targetRegionID),
		)
		return result, nil
	}

	current := cat.IntensityRef(w.RegionID)
	opp := opportunity.Compute(current, target.IntensityRef(), cat.Intensities())
	if opp.AlreadyOptimal {
		result.NoOp = true
		s.logger.Info("shift skipped, nothing to gain",
			slog.String("workload_id", w.ID.String()),
			slog.String("from", w.RegionID),
			slog.String("to", targetRegionID),
		)
		return result, nil
	}

	if decision := policy.EvaluateDeployment(w, target.Intensity()); !decision.Allowed {
		metrics.RecordPolicyViolation()
		s.audit(ctx, model.AuditActionViolationDetected, actor, map[string]any{
			"reason":      decision.Reason,
			"workload_id": w.ID.String(),
			"region_id":   targetRegionID,
		})
		return model.ShiftResult{}, decision.Err()
	}

	if _, err := s.store.UpdateWorkloadRegion(ctx, id, targetRegionID); err != nil {
		return model.ShiftResult{}, fmt.Errorf("failed to shift workload: %w", err)
	}

	result.SavingsPercent = opp.SavingsPercent
	result.SavedGramsPerHour = w.HourlyEnergyKWh() * float64(current.Intensity-target.Intensity())

	metrics.RecordShift(result.SavedGramsPerHour)
	s.audit(ctx, model.AuditActionShiftWorkload, actor, map[string]any{
		"workload_id":     w.ID.String(),
		"from_region":     result.FromRegionID,
		"to_region":       result.ToRegionID,
		"savings_percent": result.SavingsPercent,
	})

	s.logger.Info("workload shifted",
		slog.String("workload_id", w.ID.String()),
		slog.String("from", result.FromRegionID),
		slog.String("to", result.ToRegionID),
		slog.Int("savings_percent", result.SavingsPercent),
	)

	return result, nil
}

// EvaluateAction answers whether a lifecycle action is permitted for a
// workload. This is a dry-run check; nothing is recorded.
func (s *carbonService) EvaluateAction(ctx context.Context, action string, id uuid.UUID) (policy.Decision, error) {
	w, err := s.store.GetWorkload(ctx, id)
	if err != nil {
		return policy.Decision{}, err
	}
	return policy.EvaluateAction(action, w), nil
}

// AuditTrail returns the newest governance events, capped to keep responses
// bounded.
func (s *carbonService) AuditTrail(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	const (
		defaultLimit = 50
		maxLimit     = 500
	)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	entries, err := s.store.ListAudit(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}

// Status reports operational state. A failing store marks the service as
// disconnected instead of erroring, so dashboards keep rendering.
func (s *carbonService) Status(ctx context.Context) (model.ServiceStatus, error) {
	status := model.ServiceStatus{
		StoreDriver:    s.store.Driver(),
		AdvisorEnabled: s.cfg.Advisor.Enabled,
		StartedAt:      s.startedAt,
		UptimeMillis:   time.Since(s.startedAt).Milliseconds(),
	}
	if s.cfg.Advisor.Enabled {
		status.AdvisorInterval = s.cfg.Advisor.Interval.Milliseconds()
	}

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("store ping failed", slog.String("error", err.Error()))
		return status, nil
	}
	status.StoreConnected = true

	if regions, err := s.store.ListRegions(ctx); err == nil {
		status.Regions = len(regions)
	}
	if workloads, err := s.store.ListWorkloads(ctx); err == nil {
		status.Workloads = len(workloads)
	}

	return status, nil
}

// audit appends a governance event, logging instead of failing the caller
// when the write does not land.
func (s *carbonService) audit(ctx context.Context, action, actor string, details map[string]any) {
	entry := model.AuditEntry{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
		Action:    action,
		Actor:     actor,
		Details:   details,
	}
	if err := s.store.AppendAudit(ctx, entry); err != nil {
		s.logger.Warn("failed to append audit entry",
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
	}
}

func normalizeActor(actor string) string {
	if actor == "" {
		return DefaultActor
	}
	return actor
}
