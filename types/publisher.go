package types

// Publisher delivers violation-change notifications to an external channel.
//
// The board publishes a JSON summary whenever a check cycle changes the
// violation set. Implementations must be safe for concurrent use; publish
// failures are handled fail-soft (logged, never surfaced to the user).
//
// internal/notify provides an adapter over *nats.Conn.
type Publisher interface {
	Publish(subject string, data []byte) error
}
