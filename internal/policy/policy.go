// Package policy holds the governance rules gating workload registration and
// lifecycle actions. Rules are pure checks over typed inputs; recording
// violations and refusing requests is the caller's job.
package policy

import (
	"errors"
	"fmt"

	"github.com/prashu0705/green-ai-orbit/internal/model"
)

// DirtyIntensityThreshold classifies a region as high-carbon for governance
// purposes, in grams CO2e/kWh.
const DirtyIntensityThreshold = 400

// Lifecycle actions subject to evaluation.
const (
	ActionAutoSleep = "auto_sleep"
	ActionShift     = "shift"
)

// ErrViolation marks a request refused by governance policy. Callers wrap it
// with the decision reason.
var ErrViolation = errors.New("policy violation")

// Decision is the outcome of a policy check.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
}

// Err converts a denial into an error carrying the reason, or nil when the
// decision allows the request.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrViolation, d.Reason)
}

// EvaluateDeployment checks whether a workload may be placed in a region of
// the given intensity. High-criticality large workloads are kept out of
// high-carbon regions.
func EvaluateDeployment(w model.Workload, regionIntensity int) Decision {
	if w.Kind == model.WorkloadKindLarge &&
		w.Criticality == model.CriticalityHigh &&
		regionIntensity >= DirtyIntensityThreshold {
		return Decision{
			Reason: "high criticality large workloads cannot deploy to high-carbon regions",
		}
	}
	return allowed()
}

// EvaluateAction checks whether a lifecycle action may run against a
// workload. Auto-sleep is refused for high-criticality workloads; everything
// else is permitted.
func EvaluateAction(action string, w model.Workload) Decision {
	if action == ActionAutoSleep && w.Criticality == model.CriticalityHigh {
		return Decision{
			Reason: "high criticality workloads cannot be auto-slept",
		}
	}
	return allowed()
}

func allowed() Decision {
	return Decision{Allowed: true, Reason: "action permitted"}
}
