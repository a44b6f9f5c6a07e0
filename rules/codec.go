package rules

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/calendario/shiftboard/types"
)

// Form field names of the rules page, used as the keys of the encoded
// field map.
const (
	FieldMaxConsecutiveDays = "max_consecutive_days"
	FieldMinStaffPerDay     = "min_staff_per_day"
	FieldForbiddenPairs     = "forbidden_pairs"
	FieldRequiredPairs      = "required_pairs"
	FieldEmployeeAttributes = "employee_attributes"
	FieldRequiredAttributes = "required_attributes"
	FieldDefinedAttributes  = "defined_attributes_json"
	FieldSpecialized        = "specialized_requirements_json_str"
)

// ParseFields decodes a rule set from its form-field encoding. Text codecs
// are lenient the way the form is: blank items are skipped, and what cannot
// be split is dropped rather than rejected. Only the numeric fields and the
// two JSON fields can fail.
func ParseFields(fields map[string]string) (*RuleSet, error) {
	r := NewRuleSet()

	var err error
	if r.MaxConsecutiveDays, err = parseCount(FieldMaxConsecutiveDays, fields[FieldMaxConsecutiveDays]); err != nil {
		return nil, err
	}
	if r.MinStaffPerDay, err = parseCount(FieldMinStaffPerDay, fields[FieldMinStaffPerDay]); err != nil {
		return nil, err
	}

	r.ForbiddenPairs = ParsePairs(fields[FieldForbiddenPairs])
	r.RequiredPairs = ParsePairs(fields[FieldRequiredPairs])
	r.EmployeeAttributes = ParseEmployeeAttributes(fields[FieldEmployeeAttributes])
	r.RequiredAttributes = ParseRequiredAttributes(fields[FieldRequiredAttributes])

	if raw := fields[FieldDefinedAttributes]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &r.DefinedAttributes); err != nil {
			return nil, &types.UserInputError{
				Reason: fmt.Sprintf("defined attributes is not a valid list: %v", err),
			}
		}
	}
	if raw := fields[FieldSpecialized]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &r.Specialized); err != nil {
			return nil, &types.UserInputError{
				Reason: fmt.Sprintf("specialized requirements is not a valid mapping: %v", err),
			}
		}
		if r.Specialized == nil {
			r.Specialized = make(map[string][]string)
		}
	}

	return r, nil
}

// Fields encodes the rule set back into its form-field representation. Map-
// backed fields encode in sorted key order so the output is stable.
func (r *RuleSet) Fields() (map[string]string, error) {
	defined, err := json.Marshal(sliceOrEmpty(r.DefinedAttributes))
	if err != nil {
		return nil, fmt.Errorf("encode defined attributes: %w", err)
	}
	specialized, err := json.Marshal(mapOrEmpty(r.Specialized))
	if err != nil {
		return nil, fmt.Errorf("encode specialized requirements: %w", err)
	}

	return map[string]string{
		FieldMaxConsecutiveDays: encodeCount(r.MaxConsecutiveDays),
		FieldMinStaffPerDay:     encodeCount(r.MinStaffPerDay),
		FieldForbiddenPairs:     EncodePairs(r.ForbiddenPairs),
		FieldRequiredPairs:      EncodePairs(r.RequiredPairs),
		FieldEmployeeAttributes: EncodeEmployeeAttributes(r.EmployeeAttributes),
		FieldRequiredAttributes: EncodeRequiredAttributes(r.RequiredAttributes),
		FieldDefinedAttributes:  string(defined),
		FieldSpecialized:        string(specialized),
	}, nil
}

// ParsePairs decodes "a-b,c-d". Items with no dash or a missing side are
// skipped.
func ParsePairs(raw string) []Pair {
	var pairs []Pair
	for _, item := range strings.Split(raw, ",") {
		if item == "" {
			continue
		}
		a, b, ok := strings.Cut(item, "-")
		if !ok || a == "" || b == "" {
			continue
		}
		pairs = append(pairs, Pair{A: a, B: b})
	}

	return pairs
}

// EncodePairs renders "a-b,c-d" in list order.
func EncodePairs(pairs []Pair) string {
	items := make([]string, 0, len(pairs))
	for _, p := range pairs {
		items = append(items, p.A+"-"+p.B)
	}

	return strings.Join(items, ",")
}

// ParseEmployeeAttributes decodes "alice:driver|keyholder,bob:". A trailing
// colon with nothing after it yields an employee with no attributes.
func ParseEmployeeAttributes(raw string) map[string][]string {
	out := make(map[string][]string)
	for _, item := range strings.Split(raw, ",") {
		if item == "" {
			continue
		}
		employee, attrs, _ := strings.Cut(item, ":")
		if employee == "" {
			continue
		}
		if attrs == "" {
			out[employee] = []string{}
			continue
		}
		out[employee] = strings.Split(attrs, "|")
	}

	return out
}

// EncodeEmployeeAttributes renders "alice:driver|keyholder,bob:carrier".
// Employees with no attributes are omitted, matching the form.
func EncodeEmployeeAttributes(attrs map[string][]string) string {
	employees := make([]string, 0, len(attrs))
	for employee := range attrs {
		if len(attrs[employee]) > 0 {
			employees = append(employees, employee)
		}
	}
	sort.Strings(employees)

	items := make([]string, 0, len(employees))
	for _, employee := range employees {
		items = append(items, employee+":"+strings.Join(attrs[employee], "|"))
	}

	return strings.Join(items, ",")
}

// ParseRequiredAttributes decodes "driver:2,keyholder:1". Items without a
// colon are skipped; an unparsable count falls back to zero.
func ParseRequiredAttributes(raw string) map[string]int {
	out := make(map[string]int)
	for _, item := range strings.Split(raw, ",") {
		attr, num, ok := strings.Cut(item, ":")
		if !ok || attr == "" {
			continue
		}
		n, err := strconv.Atoi(num)
		if err != nil {
			n = 0
		}
		out[attr] = n
	}

	return out
}

// EncodeRequiredAttributes renders "driver:2,keyholder:1" in sorted
// attribute order.
func EncodeRequiredAttributes(counts map[string]int) string {
	attrs := make([]string, 0, len(counts))
	for attr := range counts {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)

	items := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		items = append(items, attr+":"+strconv.Itoa(counts[attr]))
	}

	return strings.Join(items, ",")
}

// parseCount reads an optional non-negative integer field; empty means the
// rule is disabled.
func parseCount(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &types.UserInputError{
			Reason: fmt.Sprintf("%s must be a number of zero or more", field),
		}
	}

	return n, nil
}

// encodeCount renders a count field; zero (rule disabled) encodes empty.
func encodeCount(n int) string {
	if n == 0 {
		return ""
	}

	return strconv.Itoa(n)
}

func sliceOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}

func mapOrEmpty(m map[string][]string) map[string][]string {
	if m == nil {
		return map[string][]string{}
	}

	return m
}
