// Package api implements the HTTP client for the board's external
// collaborators: the shift-rule engine (recalculate, check-violations) and
// the calendar event endpoints (drop, details).
//
// The rule-engine calls carry the entire board snapshot, which makes them
// idempotent; those (and the details GET) are retried a bounded number of
// times with jittered backoff on transport-level failures. The event-drop
// POST mutates server state and is never retried.
//
// Failures map onto the library error taxonomy: network errors become
// *types.TransportError, non-2xx statuses and success:false payloads become
// *types.ProtocolError.
package api
