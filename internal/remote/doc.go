// Package remote drives the board's server reconciliation: after every local
// mutation it ships the full assignment snapshot to the rule engine, then
// applies the returned counters and violation set back onto the view.
//
// Each round trip is a cycle. Cycles are serialized and coalesced: a trigger
// arriving while a cycle runs marks it dirty and the loop reruns once with
// whatever the snapshot looks like then, so a burst of edits costs at most
// one extra round trip. A snapshot hash short-circuits cycles whose state
// already matches the last applied result.
//
// The sync is fail-soft throughout. A failed cycle logs and leaves the last
// applied annotations standing; the server remains the single source of
// truth and the next successful cycle fully replaces them.
package remote
