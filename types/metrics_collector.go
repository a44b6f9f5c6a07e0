package types

// MetricsCollector receives board instrumentation events.
//
// All methods must be safe for concurrent use and must never block; the
// default implementation discards everything, and internal/metrics ships a
// Prometheus-backed collector.
type MetricsCollector interface {
	// RecordStoreMutation counts one assignment-store mutation by kind
	// ("add", "remove", "move").
	RecordStoreMutation(kind string)

	// RecordSyncCycle records one recalc+check cycle: wall-clock duration in
	// seconds and the outcome ("applied", "skipped", "recalc_error",
	// "check_error").
	RecordSyncCycle(duration float64, outcome string)

	// RecordViolationCount records the size of the violation set applied by
	// the most recent successful check.
	RecordViolationCount(count int)

	// RecordDropGesture counts one terminal event move/copy gesture by
	// operation and result ("committed", "failed", "cancelled", "rejected").
	RecordDropGesture(operation string, result string)
}
