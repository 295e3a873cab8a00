// Package metrics exposes pipeline and HTTP metrics to Prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pdf_summarizer"

// Metrics records summary pipeline and HTTP measurements.
//
//   - pdf_summarizer_summaries_total{preset,outcome}
//   - pdf_summarizer_extraction_failures_total
//   - pdf_summarizer_input_chars{preset}
//   - pdf_summarizer_inference_duration_seconds{backend}
//   - pdf_summarizer_http_requests_total{method,route,status}
//   - pdf_summarizer_http_request_duration_seconds{method,route}
type Metrics struct {
	SummariesTotal          *prometheus.CounterVec
	ExtractionFailuresTotal prometheus.Counter
	InputChars              *prometheus.HistogramVec
	InferenceDuration       *prometheus.HistogramVec
	HTTPRequestsTotal       *prometheus.CounterVec
	HTTPRequestDuration     *prometheus.HistogramVec
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SummariesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summaries_total",
			Help:      "Summary requests by preset and outcome.",
		}, []string{"preset", "outcome"}),
		ExtractionFailuresTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_failures_total",
			Help:      "PDF documents whose text could not be extracted.",
		}),
		InputChars: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "input_chars",
			Help:      "Characters handed to the model after truncation.",
			Buckets:   []float64{100, 250, 500, 1000, 2000, 3000, 4000},
		}, []string{"preset"}),
		InferenceDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "inference_duration_seconds",
			Help:      "Time spent in a single summary generation.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 120},
		}, []string{"backend"}),
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) RecordOutcome(preset, outcome string) {
	m.SummariesTotal.WithLabelValues(preset, outcome).Inc()
}

func (m *Metrics) RecordExtractionFailure() {
	m.ExtractionFailuresTotal.Inc()
}

func (m *Metrics) ObserveInputChars(preset string, chars int) {
	m.InputChars.WithLabelValues(preset).Observe(float64(chars))
}

func (m *Metrics) ObserveInference(backend string, duration time.Duration) {
	m.InferenceDuration.WithLabelValues(backend).Observe(duration.Seconds())
}

// ObserveRequest records one served HTTP request. route is the matched
// route template, never the raw path.
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
