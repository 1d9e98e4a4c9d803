package forecast

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatNoise pins the perturbation to zero so modifier math is exact.
type flatNoise struct{}

func (flatNoise) Intn(n int) int { return NoiseAmplitude }

func TestBaseIntensityFor(t *testing.T) {
	cases := []struct {
		code string
		want int
	}{
		{"eu-north-1", BaseLowIntensity},
		{"nordic-a", BaseLowIntensity},
		{"eu-west-1", BaseLowIntensity}, // low-carbon prefix wins over "west"
		{"us-west-2", BaseMediumIntensity},
		{"ca-central-1", BaseMediumIntensity},
		{"us-east-1", BaseHighIntensity},
		{"ap-south-1", BaseHighIntensity},
		{"", BaseHighIntensity},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BaseIntensityFor(tc.code), "code %q", tc.code)
	}
}

func TestGenerateGridShape(t *testing.T) {
	days := []string{"Mon", "Tue", "Wed"}
	hours := []string{"00:00", "08:00", "16:00"}

	grid := Generate("us-east-1", days, hours, rand.New(rand.NewSource(1)))

	require.Len(t, grid.Days, len(days))
	for di, row := range grid.Days {
		assert.Equal(t, days[di], row.Day)
		require.Len(t, row.Cells, len(hours))
		for ci, cell := range row.Cells {
			assert.Equal(t, days[di], cell.Day)
			assert.Equal(t, hours[ci], cell.Hour)
		}
	}
	assert.Equal(t, "us-east-1", grid.RegionCode)
}

func TestGenerateEmptyLabels(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.True(t, Generate("us-east-1", nil, DefaultHours, rng).IsEmpty())
	assert.True(t, Generate("us-east-1", []string{"Mon"}, nil, rng).IsEmpty())
}

func TestGenerateMarksAllMinima(t *testing.T) {
	grid := Generate("us-east-1", DaysFrom(time.Now(), DefaultDayCount), DefaultHours, rand.New(rand.NewSource(7)))

	min, ok := grid.MinIntensity()
	require.True(t, ok)

	marked := 0
	for _, row := range grid.Days {
		for _, cell := range row.Cells {
			if cell.Recommended {
				marked++
				assert.Equal(t, min, cell.Intensity, "recommended cell must hold the grid minimum")
			} else {
				assert.Greater(t, cell.Intensity, min)
			}
		}
	}
	assert.GreaterOrEqual(t, marked, 1)
	assert.Len(t, grid.RecommendedCells(), marked)
}

func TestGenerateModifierWindows(t *testing.T) {
	days := []string{"Fri", "Sat"}
	hours := []string{"00:00", "08:00", "12:00", "23:00"}

	grid := Generate("us-east-1", days, hours, flatNoise{})
	require.Len(t, grid.Days, 2)

	friday := grid.Days[0].Cells
	saturday := grid.Days[1].Cells

	// Weekday: plain base outside the afternoon window, premium inside it.
	assert.Equal(t, BaseHighIntensity, friday[0].Intensity)
	assert.Equal(t, BaseHighIntensity, friday[1].Intensity)
	assert.Equal(t, 672, friday[2].Intensity) // 480 * 1.4
	assert.Equal(t, BaseHighIntensity, friday[3].Intensity)

	// Weekend: discount on night slots only.
	assert.Equal(t, 336, saturday[0].Intensity) // 480 * 0.7
	assert.Equal(t, BaseHighIntensity, saturday[1].Intensity)
	assert.Equal(t, BaseHighIntensity, saturday[2].Intensity)
	assert.Equal(t, 336, saturday[3].Intensity)
}

func TestGenerateNoiseStaysBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 200; i++ {
		grid := Generate("ap-south-1", []string{"Mon"}, []string{"08:00"}, rng)
		got := grid.Days[0].Cells[0].Intensity
		assert.GreaterOrEqual(t, got, BaseHighIntensity-NoiseAmplitude)
		assert.LessOrEqual(t, got, BaseHighIntensity+NoiseAmplitude)
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	days := DaysFrom(time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), DefaultDayCount)

	first := Generate("eu-north-1", days, DefaultHours, rand.New(rand.NewSource(42)))
	second := Generate("eu-north-1", days, DefaultHours, rand.New(rand.NewSource(42)))
	assert.Equal(t, first, second)

	other := Generate("eu-north-1", days, DefaultHours, rand.New(rand.NewSource(43)))
	assert.NotEqual(t, first, other)
}

func TestDaysFrom(t *testing.T) {
	start := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC) // a Thursday

	assert.Equal(t, []string{"Thu", "Fri", "Sat", "Sun", "Mon"}, DaysFrom(start, 5))
	assert.Nil(t, DaysFrom(start, 0))
}

func TestLabelHour(t *testing.T) {
	cases := []struct {
		label string
		want  int
		ok    bool
	}{
		{"00:00", 0, true},
		{"8", 8, true},
		{"16:30", 16, true},
		{"23:00", 23, true},
		{"24:00", 0, false},
		{"morning", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := labelHour(tc.label)
		assert.Equal(t, tc.ok, ok, "label %q", tc.label)
		if tc.ok {
			assert.Equal(t, tc.want, got, "label %q", tc.label)
		}
	}
}
