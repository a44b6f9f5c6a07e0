package types

// Rule type tags carried in the rule-check response. These match the
// rule_type strings emitted by the server-side rule engine; anything not in
// this list renders with the generic icon rather than failing.
const (
	RuleMaxConsecutiveDays     = "max_consecutive_days"
	RuleMinStaffPerDay         = "min_staff_per_day"
	RuleForbiddenPair          = "forbidden_pair"
	RuleRequiredPair           = "required_pair"
	RuleRequiredAttribute      = "required_attribute"
	RuleSpecializedRequirement = "specialized_requirement"
)

// Violation is one rule violation reported by the check endpoint.
//
// The shape is a tagged union over RuleType: each rule type populates its own
// subset of the optional fields, and Details carries any forward-compatible
// extras the engine attaches (rendered as key/value rows in the detail view).
// Violations are server-owned: the client re-fetches and fully replaces them
// on every check, never merges.
type Violation struct {
	// Date is the day key the violation is anchored to.
	Date string `json:"date"`

	// RuleType tags which rule produced the violation.
	RuleType string `json:"rule_type"`

	// Description is the human-readable summary shown in the detail view.
	Description string `json:"description"`

	// Employee is set for single-employee rules (e.g. max_consecutive_days).
	Employee string `json:"employee,omitempty"`

	// Employees is set for pair/group rules (e.g. forbidden_pair).
	Employees []string `json:"employees,omitempty"`

	// Attribute is set for attribute-count rules (e.g. required_attribute).
	Attribute string `json:"attribute,omitempty"`

	// Details is a free-form map of extra fields for forward compatibility.
	Details map[string]any `json:"details,omitempty"`
}

// ConsecutiveWorkInfo maps employee -> day key -> consecutive-day count.
//
// The server only reports counts for employees actually working a stretch;
// chips with no matching entry are simply left unannotated. Fully replaced on
// every check, read-only on the client.
type ConsecutiveWorkInfo map[string]map[string]int
