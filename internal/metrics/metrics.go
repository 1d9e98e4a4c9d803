// Package metrics exposes Prometheus instrumentation for shift activity,
// forecast generation, and governance violations.
package metrics

import (
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	workloadShiftsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "workload_shifts_total",
			Help: "Total number of workload region shifts performed.",
		},
	)

	co2SavedGramsHourlyTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "co2_saved_grams_hourly_total",
			Help: "Cumulative estimated grams CO2e per hour saved by shifts.",
		},
	)

	forecastsGeneratedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "forecasts_generated_total",
			Help: "Total number of forecast grids generated.",
		},
	)

	policyViolationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "policy_violations_total",
			Help: "Total number of requests refused by governance policy.",
		},
	)

	potentialSavingsPercent = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "advisor_potential_savings_percent",
			Help: "Best savings percentage found by the last advisor sweep.",
		},
	)

	registered uint32
)

// Register registers all metrics with the default registry exactly once.
func Register() {
	if atomic.CompareAndSwapUint32(&registered, 0, 1) {
		prometheus.MustRegister(
			workloadShiftsTotal,
			co2SavedGramsHourlyTotal,
			forecastsGeneratedTotal,
			policyViolationsTotal,
			potentialSavingsPercent,
		)
	}
}

// Handler registers the metrics and returns the scrape endpoint handler.
func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}

// RecordShift counts a performed shift and its estimated hourly savings.
func RecordShift(savedGramsPerHour float64) {
	workloadShiftsTotal.Inc()
	if savedGramsPerHour > 0 {
		co2SavedGramsHourlyTotal.Add(savedGramsPerHour)
	}
}

// RecordForecast counts a generated forecast grid.
func RecordForecast() {
	forecastsGeneratedTotal.Inc()
}

// RecordPolicyViolation counts a governance refusal.
func RecordPolicyViolation() {
	policyViolationsTotal.Inc()
}

// SetPotentialSavings publishes the best savings the advisor currently sees.
func SetPotentialSavings(percent float64) {
	potentialSavingsPercent.Set(percent)
}
