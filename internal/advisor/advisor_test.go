package advisor

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prashu0705/green-ai-orbit/internal/cache"
	"github.com/prashu0705/green-ai-orbit/internal/config"
	"github.com/prashu0705/green-ai-orbit/internal/model"
	"github.com/prashu0705/green-ai-orbit/internal/service"
	"github.com/prashu0705/green-ai-orbit/internal/store"
)

func newTestSource(t *testing.T) service.CarbonService {
	t.Helper()

	st := store.NewMemory(store.SeedRegions())
	cfg := config.Default()
	svc := service.NewCarbonService(
		st,
		cache.New(time.Minute),
		cfg,
		rand.New(rand.NewSource(42)),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return svc
}

func registerWorkload(t *testing.T, svc service.CarbonService, name, regionID string) model.Workload {
	t.Helper()

	created, err := svc.RegisterWorkload(context.Background(), "advisor-test", model.Workload{
		Name:        name,
		RegionID:    regionID,
		GPUCount:    8,
		Kind:        model.WorkloadKindSmall,
		Criticality: model.CriticalityLow,
	})
	require.NoError(t, err)
	return created
}

func advisorConfig(minSavings int) config.AdvisorConfig {
	return config.AdvisorConfig{
		Enabled:           true,
		Interval:          time.Minute,
		MinSavingsPercent: minSavings,
		Concurrency:       4,
	}
}

func TestSweepFindsBeneficialMoves(t *testing.T) {
	svc := newTestSource(t)
	dirty := registerWorkload(t, svc, "llm-batch-inference", "ap-south-1")
	registerWorkload(t, svc, "embedding-service", "eu-north-1")

	adv := New(advisorConfig(10), svc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	candidates, err := adv.Sweep(context.Background())
	require.NoError(t, err)

	require.Len(t, candidates, 1, "only the dirty-region workload should surface")
	c := candidates[0]
	assert.Equal(t, dirty.ID, c.Workload.ID)
	assert.Equal(t, "eu-north-1", c.Opportunity.TargetRegionID)
	assert.Equal(t, model.OpportunityModeAuto, c.Opportunity.Mode)
	assert.GreaterOrEqual(t, c.Opportunity.SavingsPercent, 90)
}

func TestSweepHonorsMinimumSavings(t *testing.T) {
	svc := newTestSource(t)
	registerWorkload(t, svc, "llm-batch-inference", "ap-south-1")

	// ap-south-1 to eu-north-1 saves 96 percent; a floor above that hides it.
	adv := New(advisorConfig(97), svc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	candidates, err := adv.Sweep(context.Background())
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestSweepOrdersBySavings(t *testing.T) {
	svc := newTestSource(t)
	registerWorkload(t, svc, "worst-placed", "ap-south-1")
	registerWorkload(t, svc, "mid-placed", "us-west-2")

	adv := New(advisorConfig(10), svc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	candidates, err := adv.Sweep(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "worst-placed", candidates[0].Workload.Name)
	assert.Equal(t, "mid-placed", candidates[1].Workload.Name)
	assert.Greater(t, candidates[0].Opportunity.SavingsPercent, candidates[1].Opportunity.SavingsPercent)
}

func TestSweepEmptyFleet(t *testing.T) {
	svc := newTestSource(t)
	adv := New(advisorConfig(10), svc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	candidates, err := adv.Sweep(context.Background())
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestStartStopLifecycle(t *testing.T) {
	svc := newTestSource(t)
	registerWorkload(t, svc, "llm-batch-inference", "ap-south-1")

	t.Run("disabled advisor never starts", func(t *testing.T) {
		cfg := advisorConfig(10)
		cfg.Enabled = false
		adv := New(cfg, svc, slog.New(slog.NewTextHandler(io.Discard, nil)))

		adv.Start(context.Background())
		adv.Stop()
	})

	t.Run("enabled advisor stops cleanly", func(t *testing.T) {
		cfg := advisorConfig(10)
		cfg.Interval = 10 * time.Millisecond
		adv := New(cfg, svc, slog.New(slog.NewTextHandler(io.Discard, nil)))

		adv.Start(context.Background())
		time.Sleep(25 * time.Millisecond)
		adv.Stop()
	})
}
