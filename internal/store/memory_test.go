package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prashu0705/green-ai-orbit/internal/model"
)

func newWorkload(name, regionID string) model.Workload {
	now := time.Now().UTC()
	return model.Workload{
		ID:          uuid.New(),
		Name:        name,
		RegionID:    regionID,
		GPUCount:    8,
		Status:      model.WorkloadStatusActive,
		Kind:        model.WorkloadKindSmall,
		Criticality: model.CriticalityLow,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestMemoryRegions(t *testing.T) {
	s := NewMemory(SeedRegions())

	regions, err := s.ListRegions(context.Background())
	require.NoError(t, err)
	assert.Len(t, regions, len(SeedRegions()))
	assert.Equal(t, "memory", s.Driver())
}

func TestMemoryWorkloadLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(nil)

	first := newWorkload("llm-serving", "us-east-1")
	second := newWorkload("batch-embedding", "eu-north-1")

	require.NoError(t, s.CreateWorkload(ctx, first))
	require.NoError(t, s.CreateWorkload(ctx, second))

	t.Run("duplicate create fails", func(t *testing.T) {
		assert.Error(t, s.CreateWorkload(ctx, first))
	})

	t.Run("list preserves creation order", func(t *testing.T) {
		all, err := s.ListWorkloads(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, first.ID, all[0].ID)
		assert.Equal(t, second.ID, all[1].ID)
	})

	t.Run("get returns the stored workload", func(t *testing.T) {
		got, err := s.GetWorkload(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "llm-serving", got.Name)
	})

	t.Run("get unknown id", func(t *testing.T) {
		_, err := s.GetWorkload(ctx, uuid.New())
		assert.True(t, errors.Is(err, ErrWorkloadNotFound))
	})

	t.Run("region update sticks", func(t *testing.T) {
		updated, err := s.UpdateWorkloadRegion(ctx, first.ID, "eu-north-1")
		require.NoError(t, err)
		assert.Equal(t, "eu-north-1", updated.RegionID)
		assert.False(t, updated.UpdatedAt.Before(first.UpdatedAt))

		got, err := s.GetWorkload(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "eu-north-1", got.RegionID)
	})

	t.Run("update unknown id", func(t *testing.T) {
		_, err := s.UpdateWorkloadRegion(ctx, uuid.New(), "eu-north-1")
		assert.True(t, errors.Is(err, ErrWorkloadNotFound))
	})

	t.Run("counts group by region", func(t *testing.T) {
		counts, err := s.CountWorkloadsByRegion(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"eu-north-1": 2}, counts)
	})
}

func TestMemoryAuditTrail(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(nil)

	for i, action := range []string{
		model.AuditActionRegisterWorkload,
		model.AuditActionShiftWorkload,
		model.AuditActionViolationDetected,
	} {
		entry := model.AuditEntry{
			ID:        uuid.New(),
			Timestamp: time.Now().UTC().Add(time.Duration(i) * time.Second),
			Action:    action,
			Actor:     "ops@example.com",
			Details:   map[string]any{"seq": i},
		}
		require.NoError(t, s.AppendAudit(ctx, entry))
	}

	t.Run("newest first", func(t *testing.T) {
		entries, err := s.ListAudit(ctx, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, model.AuditActionViolationDetected, entries[0].Action)
		assert.Equal(t, model.AuditActionShiftWorkload, entries[1].Action)
	})

	t.Run("non-positive limit returns everything", func(t *testing.T) {
		entries, err := s.ListAudit(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})
}

func TestSeedRegionsAreValid(t *testing.T) {
	seen := make(map[string]bool)
	for _, r := range SeedRegions() {
		require.NoError(t, r.Validate())
		assert.False(t, seen[r.ID], "duplicate seed region %s", r.ID)
		seen[r.ID] = true
	}
}
