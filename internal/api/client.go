package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/calendario/shiftboard/types"
)

// Default endpoint paths, matching the server-side route table.
const (
	DefaultRecalculatePath    = "/calendario/api/shift_counts/recalculate"
	DefaultCheckPath          = "/calendario/api/check_shift_violations"
	DefaultEventDropPath      = "/calendario/api/event/drop"
	DefaultEventDetailsFormat = "/calendario/event/%d/details"
)

// Config holds the client's endpoint and retry settings.
type Config struct {
	// BaseURL is the scheme://host[:port] prefix for every request.
	BaseURL string

	// Endpoint paths; empty fields take the defaults above.
	RecalculatePath    string
	CheckPath          string
	EventDropPath      string
	EventDetailsFormat string // printf format with one %d for the event id

	// RetryAttempts is the number of retries (beyond the first try) for
	// idempotent calls. Zero disables retrying.
	RetryAttempts int

	// RetryBase and RetryCap bound the jittered backoff between retries.
	RetryBase time.Duration
	RetryCap  time.Duration
}

// Client talks to the rule-engine and calendar endpoints.
type Client struct {
	cfg    Config
	httpc  *http.Client
	logger types.Logger
}

// New creates a client. A nil httpc falls back to a client with a 10 second
// timeout; empty path fields take the package defaults.
func New(cfg Config, httpc *http.Client, logger types.Logger) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.RecalculatePath == "" {
		cfg.RecalculatePath = DefaultRecalculatePath
	}
	if cfg.CheckPath == "" {
		cfg.CheckPath = DefaultCheckPath
	}
	if cfg.EventDropPath == "" {
		cfg.EventDropPath = DefaultEventDropPath
	}
	if cfg.EventDetailsFormat == "" {
		cfg.EventDetailsFormat = DefaultEventDetailsFormat
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = 200 * time.Millisecond
	}
	if cfg.RetryCap <= 0 {
		cfg.RetryCap = 2 * time.Second
	}

	return &Client{cfg: cfg, httpc: httpc, logger: logger}
}

// Recalculate submits the full snapshot and returns the per-employee work
// and off-day totals. Idempotent; retried on transport failures.
func (c *Client) Recalculate(ctx context.Context, month string, snap types.Snapshot) (*RecalcResult, error) {
	const op = "recalculate"

	var resp recalcResponse
	err := c.postRetry(ctx, op, c.cfg.RecalculatePath, snapshotRequest{Month: month, Assignments: snap}, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &types.ProtocolError{Op: op, Reason: serverReason(resp.Error)}
	}

	return &RecalcResult{Counts: resp.Counts, OffCounts: resp.OffCounts}, nil
}

// CheckViolations submits the full snapshot and returns the complete
// violation set. Idempotent; retried on transport failures.
func (c *Client) CheckViolations(ctx context.Context, month string, snap types.Snapshot) (*CheckResult, error) {
	const op = "check_violations"

	var resp checkResponse
	err := c.postRetry(ctx, op, c.cfg.CheckPath, snapshotRequest{Month: month, Assignments: snap}, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &types.ProtocolError{Op: op, Reason: serverReason(resp.Error)}
	}

	return &CheckResult{Violations: resp.Violations, ConsecutiveWorkInfo: resp.ConsecutiveWorkInfo}, nil
}

// DropEvent commits a move/copy of an event to a new date. Mutating: never
// retried.
func (c *Client) DropEvent(ctx context.Context, eventID int, newDate string, op types.EventOperation) (*DropResult, error) {
	const opName = "event_drop"

	var resp dropResponse
	err := c.postOnce(ctx, opName, c.cfg.EventDropPath, dropRequest{
		EventID:   eventID,
		NewDate:   newDate,
		Operation: string(op),
	}, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &types.ProtocolError{Op: opName, Reason: serverReason(resp.Error)}
	}

	return &DropResult{Message: resp.Message, NewEventID: resp.NewEventID}, nil
}

// EventDetails fetches the detail payload for one event.
func (c *Client) EventDetails(ctx context.Context, eventID int) (*types.EventDetails, error) {
	const op = "event_details"

	url := c.cfg.BaseURL + fmt.Sprintf(c.cfg.EventDetailsFormat, eventID)

	var resp detailsResponse
	if err := c.doRetry(ctx, op, http.MethodGet, url, nil, &resp); err != nil {
		return nil, err
	}

	// The details endpoint reports failures inside a 200 body.
	if resp.Error != "" {
		return nil, &types.ProtocolError{Op: op, Reason: resp.Error}
	}

	details := resp.EventDetails

	return &details, nil
}

// postRetry posts a JSON body, retrying transport-level failures with
// jittered backoff. Only used for idempotent calls.
func (c *Client) postRetry(ctx context.Context, op, path string, body, out any) error {
	return c.doRetry(ctx, op, http.MethodPost, c.cfg.BaseURL+path, body, out)
}

// doRetry issues a request, retrying retryable failures with jittered
// backoff until the configured attempts run out. Only for idempotent calls.
func (c *Client) doRetry(ctx context.Context, op, method, url string, body, out any) error {
	attempts := c.cfg.RetryAttempts
	var delay time.Duration
	for {
		err := c.do(ctx, op, method, url, body, out)
		if err == nil {
			return nil
		}
		if attempts <= 0 || !retryable(err) {
			return err
		}
		attempts--
		delay = jitterBackoff(delay, c.cfg.RetryBase, 2.0, c.cfg.RetryCap)
		c.logger.Debug("retrying request", "op", op, "delay", delay, "error", err)
		if serr := sleep(ctx, delay); serr != nil {
			return serr
		}
	}
}

func (c *Client) postOnce(ctx context.Context, op, path string, body, out any) error {
	return c.do(ctx, op, http.MethodPost, c.cfg.BaseURL+path, body, out)
}

func (c *Client) do(ctx context.Context, op, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return &types.TransportError{Op: op, URL: url, Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return &types.TransportError{Op: op, URL: url, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		// Servers usually attach {"error": ...}; fall back to the status.
		var eb errorBody
		reason := res.Status
		if json.Unmarshal(raw, &eb) == nil && eb.Error != "" {
			reason = eb.Error
		}

		return &types.ProtocolError{Op: op, StatusCode: res.StatusCode, Reason: reason}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &types.ProtocolError{Op: op, Reason: fmt.Sprintf("malformed response: %v", err)}
	}

	return nil
}

// retryable reports whether a request error is worth retrying: transport
// failures and server-side (5xx) statuses. Anything the server judged about
// the payload itself will not change on a resend.
func retryable(err error) bool {
	var te *types.TransportError
	if errors.As(err, &te) {
		return true
	}

	var pe *types.ProtocolError
	if errors.As(err, &pe) {
		return pe.StatusCode >= 500
	}

	return false
}

func serverReason(reason string) string {
	if reason == "" {
		return "unknown server error"
	}

	return reason
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
