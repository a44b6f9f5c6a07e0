package notify

import (
	"errors"

	"github.com/nats-io/nats.go"
)

// NATSPublisher publishes violation-change events on a NATS connection. The
// connection is borrowed: the caller owns its lifecycle and close.
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATS wraps an existing NATS connection.
func NewNATS(conn *nats.Conn) (*NATSPublisher, error) {
	if conn == nil {
		return nil, errors.New("nats connection is required")
	}

	return &NATSPublisher{conn: conn}, nil
}

// Publish sends the payload on the subject. Delivery is at-most-once;
// violation events are advisory and the next applied sync republishes the
// current set anyway.
func (p *NATSPublisher) Publish(subject string, data []byte) error {
	return p.conn.Publish(subject, data)
}
