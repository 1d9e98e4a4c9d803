package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prashu0705/green-ai-orbit/internal/model"
)

// memoryStore keeps everything in process memory behind a single RWMutex.
// Workloads preserve creation order on listing.
type memoryStore struct {
	mu        sync.RWMutex
	regions   []model.Region
	workloads map[uuid.UUID]model.Workload
	order     []uuid.UUID
	audit     []model.AuditEntry
}

// NewMemory builds an in-memory store preloaded with the given regions.
func NewMemory(regions []model.Region) Store {
	return &memoryStore{
		regions:   append([]model.Region(nil), regions...),
		workloads: make(map[uuid.UUID]model.Workload),
	}
}

func (s *memoryStore) Driver() string { return DriverMemory }

func (s *memoryStore) Ping(ctx context.Context) error { return nil }

func (s *memoryStore) Close() error { return nil }

func (s *memoryStore) ListRegions(ctx context.Context) ([]model.Region, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]model.Region(nil), s.regions...), nil
}

func (s *memoryStore) ListWorkloads(ctx context.Context) ([]model.Workload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Workload, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.workloads[id])
	}
	return result, nil
}

func (s *memoryStore) GetWorkload(ctx context.Context, id uuid.UUID) (model.Workload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.workloads[id]
	if !ok {
		return model.Workload{}, fmt.Errorf("workload %s: %w", id, ErrWorkloadNotFound)
	}
	return w, nil
}

func (s *memoryStore) CreateWorkload(ctx context.Context, w model.Workload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.workloads[w.ID]; exists {
		return fmt.Errorf("workload %s already exists", w.ID)
	}
	s.workloads[w.ID] = w
	s.order = append(s.order, w.ID)
	return nil
}

func (s *memoryStore) UpdateWorkloadRegion(ctx context.Context, id uuid.UUID, regionID string) (model.Workload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.workloads[id]
	if !ok {
		return model.Workload{}, fmt.Errorf("workload %s: %w", id, ErrWorkloadNotFound)
	}
	w.RegionID = regionID
	w.UpdatedAt = time.Now().UTC()
	s.workloads[id] = w
	return w, nil
}

func (s *memoryStore) CountWorkloadsByRegion(ctx context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int, len(s.regions))
	for _, w := range s.workloads {
		counts[w.RegionID]++
	}
	return counts, nil
}

func (s *memoryStore) AppendAudit(ctx context.Context, entry model.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.audit = append(s.audit, entry)
	return nil
}

func (s *memoryStore) ListAudit(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.audit) {
		limit = len(s.audit)
	}

	result := make([]model.AuditEntry, 0, limit)
	for i := len(s.audit) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, s.audit[i])
	}
	return result, nil
}
