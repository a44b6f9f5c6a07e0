package api

import "github.com/calendario/shiftboard/types"

// snapshotRequest is the shared request body of the two rule-engine calls.
type snapshotRequest struct {
	Month       string         `json:"month"`
	Assignments types.Snapshot `json:"assignments"`
}

type recalcResponse struct {
	Success   bool           `json:"success"`
	Error     string         `json:"error,omitempty"`
	Counts    map[string]int `json:"counts,omitempty"`
	OffCounts map[string]int `json:"off_counts,omitempty"`
}

// RecalcResult carries the per-employee totals from a successful
// recalculate call.
type RecalcResult struct {
	Counts    map[string]int
	OffCounts map[string]int
}

type checkResponse struct {
	Success             bool                      `json:"success"`
	Error               string                    `json:"error,omitempty"`
	Violations          []types.Violation         `json:"violations,omitempty"`
	ConsecutiveWorkInfo types.ConsecutiveWorkInfo `json:"consecutive_work_info,omitempty"`
}

// CheckResult carries the violation set (and optional consecutive-day info)
// from a successful check call.
type CheckResult struct {
	Violations          []types.Violation
	ConsecutiveWorkInfo types.ConsecutiveWorkInfo
}

type dropRequest struct {
	EventID   int    `json:"event_id"`
	NewDate   string `json:"new_date"`
	Operation string `json:"operation"`
}

type dropResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	Message    string `json:"message,omitempty"`
	NewEventID *int   `json:"new_event_id,omitempty"`
}

// DropResult carries the outcome of a confirmed move/copy. NewEventID is set
// only when the server assigned an id to a copy; the caller decides what a
// missing id means for its operation.
type DropResult struct {
	Message    string
	NewEventID *int
}

type detailsResponse struct {
	Error string `json:"error,omitempty"`
	types.EventDetails
}

// errorBody is the error envelope servers attach to non-2xx responses.
type errorBody struct {
	Error string `json:"error,omitempty"`
}
