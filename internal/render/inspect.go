package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/calendario/shiftboard/types"
)

// Detail is the structured content of a violation detail view: a title line
// plus label/value rows, ready for whatever surface displays it.
type Detail struct {
	Title string
	Rows  []DetailRow
}

// DetailRow is one labeled line in a violation detail view.
type DetailRow struct {
	Label string
	Value string
}

// Inspect expands a violation into its detail view. Known fields get fixed
// labels; anything in Details is appended as extra rows with humanized keys,
// in sorted key order so the output is stable.
func Inspect(v types.Violation) Detail {
	d := Detail{Title: v.Description}
	if d.Title == "" {
		d.Title = "Rule violation"
	}

	d.Rows = append(d.Rows, DetailRow{Label: "Date", Value: v.Date})
	d.Rows = append(d.Rows, DetailRow{Label: "Rule", Value: humanizeKey(v.RuleType)})
	if v.Employee != "" {
		d.Rows = append(d.Rows, DetailRow{Label: "Employee", Value: v.Employee})
	}
	if len(v.Employees) > 0 {
		d.Rows = append(d.Rows, DetailRow{Label: "Employees", Value: strings.Join(v.Employees, ", ")})
	}
	if v.Attribute != "" {
		d.Rows = append(d.Rows, DetailRow{Label: "Attribute", Value: v.Attribute})
	}

	keys := make([]string, 0, len(v.Details))
	for k := range v.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		d.Rows = append(d.Rows, DetailRow{
			Label: humanizeKey(k),
			Value: fmt.Sprintf("%v", v.Details[k]),
		})
	}

	return d
}

// humanizeKey turns a snake_case tag into a title-cased label
// ("min_staff_per_day" -> "Min Staff Per Day").
func humanizeKey(key string) string {
	parts := strings.Split(key, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}

	return strings.Join(parts, " ")
}
