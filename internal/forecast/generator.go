// Package forecast produces synthetic, explainable carbon intensity grids for
// a region code. The output is display data: a day x hour matrix with the
// greenest slots flagged. It is a heuristic bucket model, not a physical one.
package forecast

import (
	"math"
	"strings"
	"time"

	"github.com/prashu0705/green-ai-orbit/internal/model"
)

// Base intensities in grams CO2e/kWh per region-code bucket. The bucket is
// picked by a substring/prefix match against common region naming conventions.
const (
	BaseLowIntensity    = 120 // "eu-" prefixed and nordic regions
	BaseMediumIntensity = 300 // "west" and "central" regions
	BaseHighIntensity   = 480 // everything else
)

// Per-cell modifiers.
const (
	// NoiseAmplitude bounds the symmetric random perturbation applied to the
	// base intensity of every cell, in grams.
	NoiseAmplitude = 30
	// RenewableDiscount models the weekend-night renewable peak.
	RenewableDiscount = 0.7
	// DemandPremium models the weekday-afternoon demand peak.
	DemandPremium = 1.4
)

// Hour windows for the modifiers. An hour label is classified by its leading
// hour number; labels that do not carry one get no modifier.
const (
	nightStartHour     = 22 // inclusive
	nightEndHour       = 6  // exclusive; night is [22,24) and [0,6)
	afternoonStartHour = 12 // inclusive
	afternoonEndHour   = 18 // exclusive
)

// DefaultHours is the reference seven-slot day used when no hour labels are
// configured.
var DefaultHours = []string{"00:00", "04:00", "08:00", "12:00", "16:00", "20:00", "23:00"}

// DefaultDayCount is the reference forecast horizon in days.
const DefaultDayCount = 5

// RandomSource supplies the noise stream for cell perturbation. *math/rand.Rand
// satisfies it; tests inject a fixed-seed or scripted source.
type RandomSource interface {
	Intn(n int) int
}

// Generate builds the forecast grid for a region code over the given day and
// hour labels. It is total: any label sets are accepted, and an empty day or
// hour set yields an empty grid. Given the same rng stream it is
// deterministic.
func Generate(code string, days, hours []string, rng RandomSource) model.ForecastGrid {
	grid := model.ForecastGrid{RegionCode: code}
	if len(days) == 0 || len(hours) == 0 {
		return grid
	}

	base := BaseIntensityFor(code)
	grid.Days = make([]model.ForecastDay, 0, len(days))

	min := math.MaxInt
	for _, day := range days {
		row := model.ForecastDay{
			Day:   day,
			Cells: make([]model.ForecastCell, 0, len(hours)),
		}
		for _, hour := range hours {
			value := float64(base + noise(rng))
			switch {
			case isWeekendLabel(day) && inHourWindow(hour, nightStartHour, nightEndHour):
				value *= RenewableDiscount
			case !isWeekendLabel(day) && inHourWindow(hour, afternoonStartHour, afternoonEndHour):
				value *= DemandPremium
			}
			intensity := int(math.Round(value))
			if intensity < min {
				min = intensity
			}
			row.Cells = append(row.Cells, model.ForecastCell{
				Day:       day,
				Hour:      hour,
				Intensity: intensity,
			})
		}
		grid.Days = append(grid.Days, row)
	}

	// Flag every cell that hits the grid-wide minimum; ties are all marked.
	for di := range grid.Days {
		for ci := range grid.Days[di].Cells {
			if grid.Days[di].Cells[ci].Intensity == min {
				grid.Days[di].Cells[ci].Recommended = true
			}
		}
	}

	return grid
}

// BaseIntensityFor classifies a region code into its base intensity bucket.
// Low-carbon naming conventions win over medium ones, so "eu-west-1" lands in
// the low bucket.
func BaseIntensityFor(code string) int {
	c := strings.ToLower(code)
	switch {
	case strings.HasPrefix(c, "eu-") || strings.Contains(c, "nordic"):
		return BaseLowIntensity
	case strings.Contains(c, "west") || strings.Contains(c, "central"):
		return BaseMediumIntensity
	default:
		return BaseHighIntensity
	}
}

// DaysFrom returns n weekday labels starting at t, the way the dashboard
// renders a rolling horizon ("Thu", "Fri", "Sat", ...).
func DaysFrom(t time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	days := make([]string, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, t.AddDate(0, 0, i).Weekday().String()[:3])
	}
	return days
}

// noise draws a uniform perturbation in [-NoiseAmplitude, NoiseAmplitude].
func noise(rng RandomSource) int {
	return rng.Intn(2*NoiseAmplitude+1) - NoiseAmplitude
}

// isWeekendLabel reports whether a day label names a weekend day.
func isWeekendLabel(day string) bool {
	d := strings.ToLower(day)
	return strings.HasPrefix(d, "sat") || strings.HasPrefix(d, "sun")
}

// inHourWindow reports whether the label's leading hour number falls in the
// window [start, end), wrapping midnight when start > end.
func inHourWindow(label string, start, end int) bool {
	h, ok := labelHour(label)
	if !ok {
		return false
	}
	if start > end {
		return h >= start || h < end
	}
	return h >= start && h < end
}

// labelHour extracts the leading hour number from labels like "08:00", "8",
// or "16:30". The second return is false when the label has no usable hour.
func labelHour(label string) (int, bool) {
	s := strings.TrimSpace(label)
	n := 0
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
		if digits > 2 {
			return 0, false
		}
	}
	if digits == 0 || n > 23 {
		return 0, false
	}
	return n, true
}
