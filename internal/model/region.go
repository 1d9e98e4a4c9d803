package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Region represents a deployment location with its carbon profile.
// Regions are immutable reference data: created by seeding, read-only afterwards.
type Region struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Code         string          `json:"code"`          // short code, e.g. "eu-north-1"
	CarbonFactor decimal.Decimal `json:"carbon_factor"` // fractional unit; x1000 = grams CO2e/kWh
	RenewablePct int             `json:"renewable_pct"` // share of renewable energy, 0-100
}

// intensityScale converts the stored fractional carbon factor to display grams.
var intensityScale = decimal.NewFromInt(1000)

// Intensity returns the region's carbon intensity in grams CO2e per kWh,
// derived from the stored carbon factor scaled by 1000 and rounded to the
// nearest integer gram.
func (r Region) Intensity() int {
	return int(r.CarbonFactor.Mul(intensityScale).Round(0).IntPart())
}

// IntensityRef returns the slice of the region the opportunity calculator
// operates on.
func (r Region) IntensityRef() RegionIntensity {
	return RegionIntensity{
		ID:        r.ID,
		Name:      r.Name,
		Intensity: r.Intensity(),
	}
}

// Validate checks the fields external data must carry before a region is
// admitted into the catalog.
func (r Region) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("region id is required")
	}
	if r.Name == "" {
		return fmt.Errorf("region %s: name is required", r.ID)
	}
	if r.Code == "" {
		return fmt.Errorf("region %s: code is required", r.ID)
	}
	if r.CarbonFactor.IsNegative() {
		return fmt.Errorf("region %s: carbon factor must not be negative", r.ID)
	}
	if r.RenewablePct < 0 || r.RenewablePct > 100 {
		return fmt.Errorf("region %s: renewable percentage must be within 0-100", r.ID)
	}
	return nil
}

// RegionIntensity is the minimal region view consumed by the opportunity
// calculator: identity plus current intensity in grams CO2e per kWh.
type RegionIntensity struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Intensity int    `json:"intensity"`
}

// RegionSummary aggregates a region with its current placement load for the
// dashboard overview.
type RegionSummary struct {
	Region            Region `json:"region"`
	Intensity         int    `json:"intensity"`
	Workloads         int    `json:"workloads"`
	GreenestSlot      bool   `json:"greenest"`            // region holds the catalog-wide minimum intensity
	BestSlotIntensity int    `json:"best_slot_intensity"` // lowest cell in the region's upcoming forecast
}
