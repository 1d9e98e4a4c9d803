package store

import (
	"github.com/shopspring/decimal"

	"github.com/prashu0705/green-ai-orbit/internal/model"
)

// SeedRegions returns the built-in region catalog: common cloud regions with
// 2024 average grid intensities. The carbon factor is the fractional unit
// stored by the backend; multiplied by 1000 it yields grams CO2e/kWh.
func SeedRegions() []model.Region {
	return []model.Region{
		seedRegion("us-east-1", "US East (N. Virginia)", 0.386, 30),
		seedRegion("us-west-2", "US West (Oregon)", 0.180, 78),
		seedRegion("eu-west-1", "Europe (Ireland)", 0.320, 55),
		seedRegion("eu-central-1", "Europe (Frankfurt)", 0.380, 45),
		seedRegion("eu-north-1", "Europe (Stockholm)", 0.025, 95),
		seedRegion("ca-central-1", "Canada (Central)", 0.035, 92),
		seedRegion("ap-northeast-1", "Asia Pacific (Tokyo)", 0.470, 22),
		seedRegion("ap-south-1", "Asia Pacific (Mumbai)", 0.680, 12),
	}
}

func seedRegion(id, name string, factor float64, renewablePct int) model.Region {
	return model.Region{
		ID:           id,
		Name:         name,
		Code:         id,
		CarbonFactor: decimal.NewFromFloat(factor),
		RenewablePct: renewablePct,
	}
}
