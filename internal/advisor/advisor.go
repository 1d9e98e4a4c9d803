// Package advisor runs periodic sweeps over all workloads, surfacing the
// placements that would save the most carbon right now. It only reports;
// acting on a recommendation stays a caller decision.
package advisor

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prashu0705/green-ai-orbit/internal/concurrent"
	"github.com/prashu0705/green-ai-orbit/internal/config"
	"github.com/prashu0705/green-ai-orbit/internal/metrics"
	"github.com/prashu0705/green-ai-orbit/internal/model"
)

// OpportunitySource supplies the workloads and recommendations the advisor
// sweeps over.
type OpportunitySource interface {
	ListWorkloads(ctx context.Context) ([]model.Workload, error)
	WorkloadOpportunity(ctx context.Context, id uuid.UUID, previewRegionID string) (model.Opportunity, error)
}

// Candidate pairs a workload with the beneficial move found for it.
type Candidate struct {
	Workload    model.Workload    `json:"workload"`
	Opportunity model.Opportunity `json:"opportunity"`
}

// Advisor periodically recomputes opportunities for every workload
type Advisor struct {
	cfg    config.AdvisorConfig
	source OpportunitySource
	logger *slog.Logger
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a new advisor
func New(cfg config.AdvisorConfig, source OpportunitySource, logger *slog.Logger) *Advisor {
	return &Advisor{
		cfg:    cfg,
		source: source,
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

// Start begins the sweep loop in a background goroutine
func (a *Advisor) Start(ctx context.Context) {
	if !a.cfg.Enabled {
		a.logger.Info("advisor is disabled")
		return
	}

	a.logger.Info("starting advisor",
		slog.Duration("interval", a.cfg.Interval),
		slog.Int("min_savings_percent", a.cfg.MinSavingsPercent),
	)

	a.wg.Add(1)
	go a.run(ctx)
}

// Stop gracefully stops the advisor
func (a *Advisor) Stop() {
	if !a.cfg.Enabled {
		return
	}

	a.logger.Info("stopping advisor")
	close(a.stopCh)
	a.wg.Wait()
	a.logger.Info("advisor stopped")
}

// run is the main sweep loop
func (a *Advisor) run(ctx context.Context) {
	defer a.wg.Done()

	ticker := time.NewTicker(a.cfg.Interval)
	defer ticker.Stop()

	a.sweepAndLog(ctx)

	for {
		select {
		case <-a.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.sweepAndLog(ctx)
		}
	}
}

func (a *Advisor) sweepAndLog(ctx context.Context) {
	candidates, err := a.Sweep(ctx)
	if err != nil {
		a.logger.Error("advisor sweep failed", slog.String("error", err.Error()))
		return
	}

	for _, c := range candidates {
		a.logger.Info("beneficial placement found",
			slog.String("workload_id", c.Workload.ID.String()),
			slog.String("workload", c.Workload.Name),
			slog.String("current_region", c.Workload.RegionID),
			slog.String("target_region", c.Opportunity.TargetRegionID),
			slog.Int("savings_percent", c.Opportunity.SavingsPercent),
		)
	}

	a.logger.Info("advisor sweep completed",
		slog.Int("candidates", len(candidates)),
	)
}

// Sweep recomputes the auto-suggestion for every workload and returns those
// whose savings reach the configured minimum, best first.
func (a *Advisor) Sweep(ctx context.Context) ([]Candidate, error) {
	workloads, err := a.source.ListWorkloads(ctx)
	if err != nil {
		return nil, err
	}

	results := concurrent.ParallelMapWithLimit(ctx, workloads, func(ctx context.Context, w model.Workload) (Candidate, error) {
		opp, err := a.source.WorkloadOpportunity(ctx, w.ID, "")
		if err != nil {
			return Candidate{}, err
		}
		return Candidate{Workload: w, Opportunity: opp}, nil
	}, a.cfg.Concurrency)

	var candidates []Candidate
	best := 0
	for _, result := range results {
		if result.Error != nil {
			// One broken workload must not hide the rest of the sweep.
			a.logger.Warn("failed to compute opportunity",
				slog.String("workload_id", workloads[result.Index].ID.String()),
				slog.String("error", result.Error.Error()),
			)
			continue
		}

		c := result.Value
		if !c.Opportunity.Actionable() || c.Opportunity.SavingsPercent < a.cfg.MinSavingsPercent {
			continue
		}
		candidates = append(candidates, c)
		if c.Opportunity.SavingsPercent > best {
			best = c.Opportunity.SavingsPercent
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Opportunity.SavingsPercent != candidates[j].Opportunity.SavingsPercent {
			return candidates[i].Opportunity.SavingsPercent > candidates[j].Opportunity.SavingsPercent
		}
		return candidates[i].Workload.Name < candidates[j].Workload.Name
	})
	metrics.SetPotentialSavings(float64(best))

	return candidates, nil
}
