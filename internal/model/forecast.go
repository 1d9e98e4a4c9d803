package model

// ForecastCell is a single (day, hour) slot of a forecast grid with its
// predicted carbon intensity in grams CO2e per kWh. Recommended marks every
// cell whose intensity equals the grid-wide minimum; ties are all marked.
type ForecastCell struct {
	Day         string `json:"day"`
	Hour        string `json:"hour"`
	Intensity   int    `json:"intensity"`
	Recommended bool   `json:"recommended"`
}

// ForecastDay is one ordered row of the grid.
type ForecastDay struct {
	Day   string         `json:"day"`
	Cells []ForecastCell `json:"cells"`
}

// ForecastGrid is a fully materialized day x hour matrix of predicted carbon
// intensities for a region. The shape follows the label sets it was generated
// from; an empty grid is valid and means no labels were supplied.
type ForecastGrid struct {
	RegionCode string        `json:"region_code"`
	Days       []ForecastDay `json:"days"`
}

// IsEmpty reports whether the grid holds no cells.
func (g ForecastGrid) IsEmpty() bool {
	for _, d := range g.Days {
		if len(d.Cells) > 0 {
			return false
		}
	}
	return true
}

// MinIntensity returns the smallest intensity across the grid. The second
// return is false for an empty grid.
func (g ForecastGrid) MinIntensity() (int, bool) {
	found := false
	min := 0
	for _, d := range g.Days {
		for _, c := range d.Cells {
			if !found || c.Intensity < min {
				min = c.Intensity
				found = true
			}
		}
	}
	return min, found
}

// RecommendedCells returns all cells flagged as the greenest slots.
func (g ForecastGrid) RecommendedCells() []ForecastCell {
	var out []ForecastCell
	for _, d := range g.Days {
		for _, c := range d.Cells {
			if c.Recommended {
				out = append(out, c)
			}
		}
	}
	return out
}
