package model

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions recorded by the governance layer
const (
	AuditActionRegisterWorkload  = "register_workload"
	AuditActionShiftWorkload     = "shift_workload"
	AuditActionViolationDetected = "violation_detected"
)

// AuditEntry is one append-only record of a governance-relevant event.
type AuditEntry struct {
	ID        uuid.UUID      `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Action    string         `json:"action"`
	Actor     string         `json:"actor"`
	Details   map[string]any `json:"details,omitempty"`
}
