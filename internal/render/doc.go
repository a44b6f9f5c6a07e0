// Package render turns rule-check results into board annotations: violation
// icons on day cells, consecutive-day badges on assignment chips, and the
// key/value detail rows behind an icon click.
//
// Rendering is always a full replace. The server owns the violation set; the
// renderer clears every annotation and redraws from the latest response, so
// stale icons can never survive a successful check.
package render
