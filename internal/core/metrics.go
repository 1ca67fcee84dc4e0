package core

import "time"

// Recorder defines the interface for recording application metrics.
// Implementations include Metrics (Prometheus-based) and NoopMetrics (no-op).
type Recorder interface {
	// Authentication
	RecordAuthAttempt(modality, outcome string, duration time.Duration)
	RecordOAuthURL(provider string, success bool)

	// Session Management
	RecordSessionOperation(operation string, success bool)

	// Upstream calls
	RecordExternalAPICall(backend, operation string, duration time.Duration, success bool)

	// Video cache
	RecordVideoCacheLookup(hit bool)
}
