package rules

import (
	"fmt"

	"github.com/calendario/shiftboard/types"
)

// Pair is an unordered pair of employees. Order matters only for display;
// equality and the duplicate guard treat A-B and B-A as the same pair.
type Pair struct {
	A string
	B string
}

// equalEitherOrder reports whether two pairs name the same two employees.
func (p Pair) equalEitherOrder(q Pair) bool {
	return (p.A == q.A && p.B == q.B) || (p.A == q.B && p.B == q.A)
}

// RuleSet is the full shift-rule configuration for one board.
type RuleSet struct {
	// MaxConsecutiveDays caps how many days in a row one employee may
	// work. Zero disables the rule.
	MaxConsecutiveDays int

	// MinStaffPerDay is the staffing floor per day. Zero disables it.
	MinStaffPerDay int

	// ForbiddenPairs may never share a shift; RequiredPairs always must.
	ForbiddenPairs []Pair
	RequiredPairs  []Pair

	// EmployeeAttributes maps an employee to their attribute tags. An
	// employee may be present with no attributes, which clears them.
	EmployeeAttributes map[string][]string

	// RequiredAttributes maps an attribute to the number of assigned
	// employees per day that must carry it.
	RequiredAttributes map[string]int

	// DefinedAttributes is the catalog attribute tags are drawn from.
	DefinedAttributes []string

	// Specialized maps an event category to the employees required
	// whenever an event of that category is scheduled.
	Specialized map[string][]string
}

// NewRuleSet creates an empty rule set.
func NewRuleSet() *RuleSet {
	return &RuleSet{
		EmployeeAttributes: make(map[string][]string),
		RequiredAttributes: make(map[string]int),
		Specialized:        make(map[string][]string),
	}
}

// AddForbiddenPair adds a pair to the forbidden list.
func (r *RuleSet) AddForbiddenPair(a, b string) error {
	pair, err := r.checkPair(a, b)
	if err != nil {
		return err
	}
	r.ForbiddenPairs = append(r.ForbiddenPairs, pair)

	return nil
}

// AddRequiredPair adds a pair to the required list.
func (r *RuleSet) AddRequiredPair(a, b string) error {
	pair, err := r.checkPair(a, b)
	if err != nil {
		return err
	}
	r.RequiredPairs = append(r.RequiredPairs, pair)

	return nil
}

// checkPair validates a new pair against both lists' guards: no empties, no
// self-pair, no duplicate of an existing pair in the same list family.
func (r *RuleSet) checkPair(a, b string) (Pair, error) {
	if a == "" || b == "" {
		return Pair{}, &types.UserInputError{Reason: "both employees are required"}
	}
	if a == b {
		return Pair{}, &types.UserInputError{Reason: "cannot pair an employee with themselves"}
	}
	pair := Pair{A: a, B: b}
	for _, existing := range r.ForbiddenPairs {
		if existing.equalEitherOrder(pair) {
			return Pair{}, &types.UserInputError{Reason: "that pair is already added"}
		}
	}
	for _, existing := range r.RequiredPairs {
		if existing.equalEitherOrder(pair) {
			return Pair{}, &types.UserInputError{Reason: "that pair is already added"}
		}
	}

	return pair, nil
}

// RemoveForbiddenPair deletes a pair (matched in either order). Reports
// whether anything was removed.
func (r *RuleSet) RemoveForbiddenPair(a, b string) bool {
	var removed bool
	r.ForbiddenPairs, removed = removePair(r.ForbiddenPairs, Pair{A: a, B: b})

	return removed
}

// RemoveRequiredPair deletes a pair (matched in either order).
func (r *RuleSet) RemoveRequiredPair(a, b string) bool {
	var removed bool
	r.RequiredPairs, removed = removePair(r.RequiredPairs, Pair{A: a, B: b})

	return removed
}

func removePair(list []Pair, target Pair) ([]Pair, bool) {
	for i, p := range list {
		if p.equalEitherOrder(target) {
			return append(list[:i], list[i+1:]...), true
		}
	}

	return list, false
}

// SetEmployeeAttributes replaces the employee's attribute tags. An empty tag
// list is allowed and clears the employee's attributes while keeping the
// entry, matching the form's clear-by-reassign behavior.
func (r *RuleSet) SetEmployeeAttributes(employee string, attributes []string) error {
	if employee == "" {
		return &types.UserInputError{Reason: "employee is required"}
	}
	for _, attr := range attributes {
		if !r.attributeDefined(attr) {
			return &types.UserInputError{Reason: fmt.Sprintf("unknown attribute %q", attr)}
		}
	}
	r.EmployeeAttributes[employee] = append([]string(nil), attributes...)

	return nil
}

// RemoveEmployeeAttributes drops the employee's entry entirely.
func (r *RuleSet) RemoveEmployeeAttributes(employee string) {
	delete(r.EmployeeAttributes, employee)
}

// SetRequiredAttribute sets the per-day headcount required for an attribute.
// Re-setting an existing attribute overwrites its count.
func (r *RuleSet) SetRequiredAttribute(attribute string, count int) error {
	if attribute == "" {
		return &types.UserInputError{Reason: "attribute is required"}
	}
	if count < 0 {
		return &types.UserInputError{Reason: "count must be zero or more"}
	}
	r.RequiredAttributes[attribute] = count

	return nil
}

// RemoveRequiredAttribute drops the attribute's headcount rule.
func (r *RuleSet) RemoveRequiredAttribute(attribute string) {
	delete(r.RequiredAttributes, attribute)
}

// AddDefinedAttribute adds a new attribute name to the catalog.
func (r *RuleSet) AddDefinedAttribute(name string) error {
	if name == "" {
		return &types.UserInputError{Reason: "attribute name is required"}
	}
	if r.attributeDefined(name) {
		return &types.UserInputError{Reason: "that attribute name is already added"}
	}
	r.DefinedAttributes = append(r.DefinedAttributes, name)

	return nil
}

// RemoveDefinedAttribute drops the attribute from the catalog along with
// every reference to it: employee tags and headcount rules naming it.
func (r *RuleSet) RemoveDefinedAttribute(name string) bool {
	idx := -1
	for i, attr := range r.DefinedAttributes {
		if attr == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	r.DefinedAttributes = append(r.DefinedAttributes[:idx], r.DefinedAttributes[idx+1:]...)

	delete(r.RequiredAttributes, name)
	for employee, attrs := range r.EmployeeAttributes {
		kept := attrs[:0]
		for _, attr := range attrs {
			if attr != name {
				kept = append(kept, attr)
			}
		}
		r.EmployeeAttributes[employee] = kept
	}

	return true
}

// AddSpecializedStaff requires the employee on every event of the category.
func (r *RuleSet) AddSpecializedStaff(category, employee string) error {
	if category == "" || employee == "" {
		return &types.UserInputError{Reason: "both category and employee are required"}
	}
	for _, existing := range r.Specialized[category] {
		if existing == employee {
			return &types.UserInputError{
				Reason: fmt.Sprintf("%q is already added to the %q category", employee, category),
			}
		}
	}
	r.Specialized[category] = append(r.Specialized[category], employee)

	return nil
}

// SetSpecialized replaces the category's required staff wholesale.
func (r *RuleSet) SetSpecialized(category string, staff []string) error {
	if category == "" {
		return &types.UserInputError{Reason: "category is required"}
	}
	if len(staff) == 0 {
		return &types.UserInputError{Reason: "at least one employee is required"}
	}
	r.Specialized[category] = append([]string(nil), staff...)

	return nil
}

// RemoveSpecializedStaff drops one employee from a category's required
// staff. A category whose last employee is removed disappears entirely.
func (r *RuleSet) RemoveSpecializedStaff(category, employee string) bool {
	staff, ok := r.Specialized[category]
	if !ok {
		return false
	}

	kept := staff[:0]
	for _, existing := range staff {
		if existing != employee {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(staff) {
		return false
	}
	if len(kept) == 0 {
		delete(r.Specialized, category)
		return true
	}
	r.Specialized[category] = kept

	return true
}

// RemoveSpecialized drops the category's requirement entirely.
func (r *RuleSet) RemoveSpecialized(category string) bool {
	if _, ok := r.Specialized[category]; !ok {
		return false
	}
	delete(r.Specialized, category)

	return true
}

func (r *RuleSet) attributeDefined(name string) bool {
	for _, attr := range r.DefinedAttributes {
		if attr == name {
			return true
		}
	}

	return false
}
