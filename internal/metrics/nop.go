package metrics

import "github.com/calendario/shiftboard/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. This is the default when no collector is
// provided, eliminating nil checks at every record site.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordStoreMutation discards the mutation counter.
func (n *NopMetrics) RecordStoreMutation(_ /* kind */ string) {
	// No-op
}

// RecordSyncCycle discards the cycle observation.
func (n *NopMetrics) RecordSyncCycle(_ /* duration */ float64, _ /* outcome */ string) {
	// No-op
}

// RecordViolationCount discards the violation gauge.
func (n *NopMetrics) RecordViolationCount(_ /* count */ int) {
	// No-op
}

// RecordDropGesture discards the gesture counter.
func (n *NopMetrics) RecordDropGesture(_ /* operation */ string, _ /* result */ string) {
	// No-op
}
