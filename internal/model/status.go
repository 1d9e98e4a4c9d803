package model

import "time"

// ServiceStatus represents the current status of the placement service
type ServiceStatus struct {
	StoreDriver     string    `json:"store_driver"`     // postgres | memory
	StoreConnected  bool      `json:"store_connected"`  // whether the store answers pings
	Regions         int       `json:"regions"`          // regions currently in the catalog
	Workloads       int       `json:"workloads"`        // registered workloads
	AdvisorEnabled  bool      `json:"advisor_enabled"`  // background opportunity sweeps
	AdvisorInterval int64     `json:"advisor_interval"` // sweep interval in milliseconds (0 if disabled)
	StartedAt       time.Time `json:"started_at"`       // process start time
	UptimeMillis    int64     `json:"uptime_millis"`    // age of the process in milliseconds
}
