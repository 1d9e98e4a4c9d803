package model

// Opportunity modes distinguish who picked the candidate region
const (
	// OpportunityModeAuto means the system scanned the catalog and suggested
	// the best available region itself.
	OpportunityModeAuto = "auto"
	// OpportunityModeSimulate means the user is previewing a specific
	// alternative region.
	OpportunityModeSimulate = "simulate"
)

// Opportunity is a derived recommendation to move a workload to a lower-carbon
// region. It has no lifecycle of its own: it is recomputed from scratch on
// every input change and never persisted.
type Opportunity struct {
	TargetRegionID   string `json:"target_region_id"`
	TargetRegionName string `json:"target_region_name"`
	SavingsPercent   int    `json:"savings_percent"` // always within [0, 100)
	AlreadyOptimal   bool   `json:"already_optimal"`
	Mode             string `json:"mode"` // auto | simulate
}

// Actionable reports whether acting on the opportunity would move the
// workload somewhere better.
func (o Opportunity) Actionable() bool {
	return !o.AlreadyOptimal && o.SavingsPercent > 0
}
