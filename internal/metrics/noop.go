package metrics

import "time"

// NoopMetrics is a no-operation implementation of Recorder
// All methods are empty and do nothing, providing zero overhead when metrics are disabled
type NoopMetrics struct{}

// Ensure NoopMetrics implements Recorder interface at compile time
var _ Recorder = (*NoopMetrics)(nil)

// NewNoopMetrics creates a new no-operation metrics recorder
func NewNoopMetrics() Recorder {
	return &NoopMetrics{}
}

func (n *NoopMetrics) RecordAuthAttempt(modality, outcome string, duration time.Duration) {}
func (n *NoopMetrics) RecordOAuthURL(provider string, success bool)                      {}
func (n *NoopMetrics) RecordSessionOperation(operation string, success bool)             {}

func (n *NoopMetrics) RecordExternalAPICall(
	backend, operation string,
	duration time.Duration,
	success bool,
) {
}

func (n *NoopMetrics) RecordVideoCacheLookup(hit bool) {}
