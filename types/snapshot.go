package types

import (
	"sort"
	"strings"
	"time"
)

// Day and month key formats used by the board and the rule-engine endpoints.
//
// Day keys are "YYYY-MM-DD" and month keys are "YYYY-MM". These are the exact
// strings embedded in the server-rendered page (hidden input names, cell data
// attributes), so they are never reformatted on the way through.
const (
	DayKeyFormat   = "2006-01-02"
	MonthKeyFormat = "2006-01"
)

// ValidDayKey reports whether s is a well-formed "YYYY-MM-DD" day key.
func ValidDayKey(s string) bool {
	_, err := time.Parse(DayKeyFormat, s)
	return err == nil
}

// ValidMonthKey reports whether s is a well-formed "YYYY-MM" month key.
func ValidMonthKey(s string) bool {
	_, err := time.Parse(MonthKeyFormat, s)
	return err == nil
}

// Snapshot is the full day-to-employees mapping for the visible month,
// serialized as the payload of every rule-engine round-trip.
//
// A snapshot always carries the entire board state, never a delta: re-sending
// the same snapshot yields the same counts and the same violation set, which
// makes the protocol idempotent and tolerant of dropped or duplicated
// requests. Days with no assignments are present with an empty slice so the
// server sees every visible day.
type Snapshot map[string][]string

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for day, emps := range s {
		cp := make([]string, len(emps))
		copy(cp, emps)
		out[day] = cp
	}

	return out
}

// Canonical returns a deterministic single-string rendering of the snapshot:
// day keys in ascending order, each day's employees in stored (display)
// order. Used for content hashing and change detection; not a wire format.
func (s Snapshot) Canonical() string {
	days := make([]string, 0, len(s))
	for day := range s {
		days = append(days, day)
	}
	sort.Strings(days)

	var b strings.Builder
	for _, day := range days {
		b.WriteString(day)
		b.WriteByte('=')
		b.WriteString(strings.Join(s[day], ","))
		b.WriteByte(';')
	}

	return b.String()
}

// SerializeEmployees renders a day's employee list in the hidden-field wire
// format: a comma-joined list with no padding. This must stay byte-identical
// to the server-side rendering so a full page reload reconstructs the exact
// same state.
func SerializeEmployees(employees []string) string {
	return strings.Join(employees, ",")
}

// ParseEmployees parses a hidden-field value into an employee list, trimming
// whitespace and dropping empty entries. The inverse of SerializeEmployees
// for every list the store can produce.
func ParseEmployees(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
