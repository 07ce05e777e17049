// Package observability holds the Prometheus metrics recorded by the
// analyzer and the data providers.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketmind"

// Metrics holds all Prometheus metrics for the application. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	AnalysisTotal       *prometheus.CounterVec
	AnalysisErrorsTotal *prometheus.CounterVec
	AnalysisDuration    prometheus.Histogram
	Score               prometheus.Histogram

	ProviderRequestDuration *prometheus.HistogramVec

	CircuitBreakerState *prometheus.GaugeVec
}

// durationBuckets are histogram buckets for durations in seconds.
var durationBuckets = []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// scoreBuckets cover the 0..100 MarketMind Score.
var scoreBuckets = []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

// NewMetrics creates and registers all metrics against reg. A nil reg uses
// prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		AnalysisTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analysis_total",
				Help:      "Completed analyses by categorical verdict",
			},
			[]string{"verdict"},
		),
		AnalysisErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analysis_errors_total",
				Help:      "Analyses aborted by a provider failure",
			},
			[]string{"provider"},
		),
		AnalysisDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analysis_duration_seconds",
				Help:      "End-to-end duration of one analysis",
				Buckets:   durationBuckets,
			},
		),
		Score: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "score",
				Help:      "Distribution of MarketMind Scores",
				Buckets:   scoreBuckets,
			},
		),
		ProviderRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "provider_request_duration_seconds",
				Help:      "Duration of upstream provider requests",
				Buckets:   durationBuckets,
			},
			[]string{"provider", "op", "status"},
		),
		CircuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_state",
				Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
			[]string{"breaker"},
		),
	}
}

// RecordAnalysis records a completed analysis.
func (m *Metrics) RecordAnalysis(verdict string, score int, duration time.Duration) {
	if m == nil {
		return
	}
	m.AnalysisTotal.WithLabelValues(verdict).Inc()
	m.Score.Observe(float64(score))
	m.AnalysisDuration.Observe(duration.Seconds())
}

// RecordAnalysisError records an analysis aborted by provider.
func (m *Metrics) RecordAnalysisError(provider string) {
	if m == nil {
		return
	}
	m.AnalysisErrorsTotal.WithLabelValues(provider).Inc()
}

// RecordProviderRequest records one upstream request.
func (m *Metrics) RecordProviderRequest(provider, op string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.ProviderRequestDuration.WithLabelValues(provider, op, status).Observe(duration.Seconds())
}

// SetCircuitBreakerState records the state of a named breaker.
func (m *Metrics) SetCircuitBreakerState(breaker string, state int) {
	if m == nil {
		return
	}
	m.CircuitBreakerState.WithLabelValues(breaker).Set(float64(state))
}
