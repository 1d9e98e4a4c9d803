package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// WorkloadStatus represents possible workload lifecycle states
const (
	WorkloadStatusActive   = "active"
	WorkloadStatusIdle     = "idle"
	WorkloadStatusTraining = "training"
)

// WorkloadKind represents the model size class of a workload
const (
	WorkloadKindLarge     = "large"
	WorkloadKindSmall     = "small"
	WorkloadKindFineTuned = "fine-tuned"
)

// Criticality levels for governance decisions
const (
	CriticalityLow    = "low"
	CriticalityMedium = "medium"
	CriticalityHigh   = "high"
)

// Workload represents an AI model instance assigned to run in a region.
// The region reference is the only attribute the placement core mutates.
type Workload struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	RegionID        string    `json:"region_id"`
	GPUCount        int       `json:"gpu_count"`
	Status          string    `json:"status"`           // active | idle | training
	Kind            string    `json:"kind"`             // large | small | fine-tuned
	Criticality     string    `json:"criticality"`      // low | medium | high
	EfficiencyScore int       `json:"efficiency_score"` // 0-100
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Validate checks the fields external data must carry before a workload is
// admitted into the store.
func (w Workload) Validate() error {
	if w.Name == "" {
		return fmt.Errorf("workload name is required")
	}
	if w.RegionID == "" {
		return fmt.Errorf("workload %s: region id is required", w.Name)
	}
	if w.GPUCount < 0 {
		return fmt.Errorf("workload %s: gpu count must not be negative", w.Name)
	}
	switch w.Status {
	case WorkloadStatusActive, WorkloadStatusIdle, WorkloadStatusTraining:
	default:
		return fmt.Errorf("workload %s: unknown status %q", w.Name, w.Status)
	}
	switch w.Kind {
	case WorkloadKindLarge, WorkloadKindSmall, WorkloadKindFineTuned:
	default:
		return fmt.Errorf("workload %s: unknown kind %q", w.Name, w.Kind)
	}
	switch w.Criticality {
	case CriticalityLow, CriticalityMedium, CriticalityHigh:
	default:
		return fmt.Errorf("workload %s: unknown criticality %q", w.Name, w.Criticality)
	}
	if w.EfficiencyScore < 0 || w.EfficiencyScore > 100 {
		return fmt.Errorf("workload %s: efficiency score must be within 0-100", w.Name)
	}
	return nil
}

// GPUPowerKW approximates the hourly draw of one accelerator card including
// host overhead.
const GPUPowerKW = 0.7

// HourlyEnergyKWh estimates the workload's hourly energy use from its GPU
// count. Workloads without GPUs report zero; their emissions are treated as
// negligible.
func (w Workload) HourlyEnergyKWh() float64 {
	return float64(w.GPUCount) * GPUPowerKW
}

// ShiftResult represents the outcome of moving a workload to another region
type ShiftResult struct {
	WorkloadID        uuid.UUID `json:"workload_id"`
	FromRegionID      string    `json:"from_region_id"`
	ToRegionID        string    `json:"to_region_id"`
	NoOp              bool      `json:"no_op"` // workload already assigned to the target
	SavingsPercent    int       `json:"savings_percent"`
	SavedGramsPerHour float64   `json:"saved_grams_per_hour"` // estimated emission delta at current GPU draw
}
