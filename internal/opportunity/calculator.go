// Package opportunity decides whether moving a workload to another region is
// worth it and by how much. The calculator is a pure function of its inputs;
// acting on the returned recommendation is the caller's business.
package opportunity

import (
	"math"

	"github.com/prashu0705/green-ai-orbit/internal/model"
)

// AutoSuggestMargin is the threshold for unsolicited suggestions: the best
// catalog region is only proposed when the current intensity exceeds the best
// one by this factor. Previewing a specific region bypasses the margin.
const AutoSuggestMargin = 1.2

// Compute evaluates a placement change for a workload sitting in current.
//
// When preview names the current region the caller is not comparing anything,
// so the whole catalog is scanned for the cheapest region and that region is
// auto-suggested if it clears AutoSuggestMargin. When preview names another
// region the caller is simulating that specific move and any strict
// improvement is reported.
//
// Compute never fails: an empty catalog or a zero current intensity degrades
// to an "already optimal" result targeting the current region.
func Compute(current, preview model.RegionIntensity, catalog []model.RegionIntensity) model.Opportunity {
	if preview.ID != current.ID {
		return simulate(current, preview)
	}
	return autoSuggest(current, catalog)
}

// autoSuggest scans the catalog for the cheapest region and proposes it when
// the current placement is worse by more than AutoSuggestMargin.
func autoSuggest(current model.RegionIntensity, catalog []model.RegionIntensity) model.Opportunity {
	best, ok := cheapest(catalog)
	if ok && float64(current.Intensity) > float64(best.Intensity)*AutoSuggestMargin {
		return model.Opportunity{
			TargetRegionID:   best.ID,
			TargetRegionName: best.Name,
			SavingsPercent:   savingsPercent(current.Intensity, best.Intensity),
			Mode:             model.OpportunityModeAuto,
		}
	}
	return model.Opportunity{
		TargetRegionID:   current.ID,
		TargetRegionName: current.Name,
		AlreadyOptimal:   true,
		Mode:             model.OpportunityModeAuto,
	}
}

// simulate compares the current placement against one explicitly previewed
// region. Equal or worse previews are reported as already optimal but still
// name the previewed region, so the caller can label what was compared.
func simulate(current, preview model.RegionIntensity) model.Opportunity {
	if preview.Intensity < current.Intensity {
		return model.Opportunity{
			TargetRegionID:   preview.ID,
			TargetRegionName: preview.Name,
			SavingsPercent:   savingsPercent(current.Intensity, preview.Intensity),
			Mode:             model.OpportunityModeSimulate,
		}
	}
	return model.Opportunity{
		TargetRegionID:   preview.ID,
		TargetRegionName: preview.Name,
		AlreadyOptimal:   true,
		Mode:             model.OpportunityModeSimulate,
	}
}

// cheapest returns the lowest-intensity region in catalog order, preferring
// the earliest entry on ties. The second return is false for an empty catalog.
func cheapest(catalog []model.RegionIntensity) (model.RegionIntensity, bool) {
	if len(catalog) == 0 {
		return model.RegionIntensity{}, false
	}
	best := catalog[0]
	for _, r := range catalog[1:] {
		if r.Intensity < best.Intensity {
			best = r
		}
	}
	return best, true
}

// savingsPercent computes round(100 * (current - candidate) / current),
// clamped to [0, 100). A non-positive current intensity yields 0 since there
// is nothing to save.
func savingsPercent(current, candidate int) int {
	if current <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(current-candidate) / float64(current)))
	if pct < 0 {
		return 0
	}
	if pct > 99 {
		return 99
	}
	return pct
}
