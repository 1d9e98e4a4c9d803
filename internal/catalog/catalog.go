// Package catalog holds the read-only region reference data and resolves
// carbon intensity lookups for the rest of the service.
package catalog

import (
	"errors"
	"fmt"

	"github.com/prashu0705/green-ai-orbit/internal/model"
)

// DefaultIntensity is the fallback carbon intensity in grams CO2e/kWh applied
// whenever a region id cannot be resolved. Every call site uses this one
// constant; callers must not invent their own default.
const DefaultIntensity = 450

// ErrRegionNotFound is returned when a region id is absent from the catalog.
var ErrRegionNotFound = errors.New("region not found")

// Catalog is an immutable snapshot of the known regions. The zero value is an
// empty catalog, which is valid: downstream components treat it as "no
// recommendation possible".
type Catalog struct {
	regions []model.Region
	byID    map[string]model.Region
}

// New builds a catalog from store rows, validating every region at the
// boundary and rejecting duplicate ids.
func New(regions []model.Region) (*Catalog, error) {
	c := &Catalog{
		regions: make([]model.Region, 0, len(regions)),
		byID:    make(map[string]model.Region, len(regions)),
	}
	for _, r := range regions {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("invalid region: %w", err)
		}
		if _, exists := c.byID[r.ID]; exists {
			return nil, fmt.Errorf("duplicate region id %s", r.ID)
		}
		c.regions = append(c.regions, r)
		c.byID[r.ID] = r
	}
	return c, nil
}

// List returns all regions in the order they were loaded. The slice is a copy;
// callers may not mutate catalog state through it.
func (c *Catalog) List() []model.Region {
	out := make([]model.Region, len(c.regions))
	copy(out, c.regions)
	return out
}

// Len returns the number of regions in the catalog.
func (c *Catalog) Len() int {
	return len(c.regions)
}

// Get returns the region with the given id.
func (c *Catalog) Get(id string) (model.Region, error) {
	r, ok := c.byID[id]
	if !ok {
		return model.Region{}, fmt.Errorf("region %s: %w", id, ErrRegionNotFound)
	}
	return r, nil
}

// IntensityOf returns the carbon intensity in grams CO2e/kWh for the region
// with the given id, derived from its stored carbon factor.
func (c *Catalog) IntensityOf(id string) (int, error) {
	r, err := c.Get(id)
	if err != nil {
		return 0, err
	}
	return r.Intensity(), nil
}

// IntensityOrDefault resolves the region's intensity, falling back to
// DefaultIntensity when the id is unknown. For call sites that must stay
// total instead of surfacing a lookup failure.
func (c *Catalog) IntensityOrDefault(id string) int {
	intensity, err := c.IntensityOf(id)
	if err != nil {
		return DefaultIntensity
	}
	return intensity
}

// IntensityRef resolves the region to the calculator view, falling back to a
// ref carrying DefaultIntensity (and the raw id as name) for unknown ids.
func (c *Catalog) IntensityRef(id string) model.RegionIntensity {
	r, err := c.Get(id)
	if err != nil {
		return model.RegionIntensity{ID: id, Name: id, Intensity: DefaultIntensity}
	}
	return r.IntensityRef()
}

// Intensities returns the calculator view of every region, in catalog order.
func (c *Catalog) Intensities() []model.RegionIntensity {
	out := make([]model.RegionIntensity, 0, len(c.regions))
	for _, r := range c.regions {
		out = append(out, r.IntensityRef())
	}
	return out
}
