package metrics

import (
	"sync"

	"github.com/go-authgate/authbridge/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder is the metrics interface consumed by services and clients
type Recorder = core.Recorder

// Ensure Metrics implements Recorder interface at compile time
var _ Recorder = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Authentication Metrics
	AuthAttemptsTotal *prometheus.CounterVec
	AuthDuration      *prometheus.HistogramVec
	OAuthURLTotal     *prometheus.CounterVec

	// Session Metrics
	SessionOperationsTotal *prometheus.CounterVec

	// Upstream API Metrics
	ExternalAPICallsTotal   *prometheus.CounterVec
	ExternalAPICallDuration *prometheus.HistogramVec

	// Video Cache Metrics
	VideoCacheLookupsTotal *prometheus.CounterVec

	// HTTP Request Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init initializes metrics based on enabled flag
// If enabled=true, returns Prometheus-based Metrics
// If enabled=false, returns NoopMetrics (zero overhead)
// Uses sync.Once to ensure Prometheus metrics are only registered once
func Init(enabled bool) Recorder {
	if !enabled {
		return NewNoopMetrics()
	}

	once.Do(func() {
		defaultMetrics = initMetrics()
	})
	return defaultMetrics
}

// initMetrics creates and registers all Prometheus metrics
func initMetrics() *Metrics {
	m := &Metrics{
		// Authentication Metrics
		AuthAttemptsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_attempts_total",
				Help: "Total number of authentication attempts",
			},
			[]string{
				"modality",
				"outcome",
			}, // modality: password, signup, magic_link, otp, verify_otp, oauth_callback, pkce; outcome: success or an error kind
		),
		AuthDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "auth_duration_seconds",
				Help:    "Time taken to complete an authentication attempt",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"modality"},
		),
		OAuthURLTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_oauth_url_total",
				Help: "Total number of OAuth authorization URLs requested",
			},
			[]string{"provider", "result"},
		),

		// Session Metrics
		SessionOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "session_operations_total",
				Help: "Total number of session operations",
			},
			[]string{
				"operation",
				"result",
			}, // operation: sign_out, refresh, resolve_token, current_user
		),

		// Upstream API Metrics
		ExternalAPICallsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "external_api_calls_total",
				Help: "Total number of calls to upstream APIs",
			},
			[]string{"backend", "operation", "result"}, // backend: identity, video
		),
		ExternalAPICallDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "external_api_call_duration_seconds",
				Help:    "Time taken for upstream API calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"backend", "operation"},
		),

		// Video Cache Metrics
		VideoCacheLookupsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "video_cache_lookups_total",
				Help: "Total number of video metadata cache lookups",
			},
			[]string{"result"}, // hit, miss
		),

		// HTTP Request Metrics
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request latency in seconds",
				Buckets: []float64{
					0.001,
					0.005,
					0.010,
					0.025,
					0.050,
					0.100,
					0.250,
					0.500,
					1.0,
					2.5,
					5.0,
					10.0,
				},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Current number of HTTP requests being served",
			},
		),
	}

	return m
}
