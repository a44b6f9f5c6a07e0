package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calendario/shiftboard/internal/metrics"
	boardtesting "github.com/calendario/shiftboard/testing"
	"github.com/calendario/shiftboard/types"
)

func newTestRenderer(t *testing.T) (*Renderer, *boardtesting.FakeView) {
	t.Helper()
	view := boardtesting.NewFakeView()
	r := New(view, boardtesting.NewTestLogger(t), metrics.NewNop())

	return r, view
}

func TestRenderViolations_FullReplace(t *testing.T) {
	r, view := newTestRenderer(t)

	r.RenderViolations([]types.Violation{
		{Date: "2024-06-01", RuleType: types.RuleMinStaffPerDay, Description: "understaffed"},
		{Date: "2024-06-02", RuleType: types.RuleForbiddenPair, Employees: []string{"alice", "bob"}},
	})
	require.Len(t, view.Icons("2024-06-01"), 1)
	require.Len(t, view.Icons("2024-06-02"), 1)

	// A later render with a disjoint set must not leave the old icons behind.
	r.RenderViolations([]types.Violation{
		{Date: "2024-06-10", RuleType: types.RuleMaxConsecutiveDays, Employee: "alice"},
	})
	assert.Empty(t, view.Icons("2024-06-01"))
	assert.Empty(t, view.Icons("2024-06-02"))
	require.Len(t, view.Icons("2024-06-10"), 1)
	assert.Equal(t, types.IconConsecutive, view.Icons("2024-06-10")[0].Kind)
}

func TestRenderViolations_SkipsUndatedEntries(t *testing.T) {
	r, view := newTestRenderer(t)

	r.RenderViolations([]types.Violation{
		{RuleType: types.RuleMinStaffPerDay, Description: "no anchor"},
		{Date: "2024-06-01", RuleType: types.RuleMinStaffPerDay},
	})

	assert.Equal(t, []string{"2024-06-01"}, view.IconDates())
}

func TestRenderViolations_IconKinds(t *testing.T) {
	tests := []struct {
		ruleType string
		want     types.IconKind
	}{
		{types.RuleMaxConsecutiveDays, types.IconConsecutive},
		{types.RuleMinStaffPerDay, types.IconStaffing},
		{types.RuleForbiddenPair, types.IconPair},
		{types.RuleRequiredPair, types.IconPair},
		{types.RuleRequiredAttribute, types.IconAttribute},
		{types.RuleSpecializedRequirement, types.IconSpecialized},
		{"some_future_rule", types.IconGeneric},
	}

	for _, tc := range tests {
		t.Run(tc.ruleType, func(t *testing.T) {
			assert.Equal(t, tc.want, kindFor(tc.ruleType))
		})
	}
}

func TestRenderConsecutive(t *testing.T) {
	r, view := newTestRenderer(t)

	cell := boardtesting.NewFakeDayCell("2024-06-03", "alice,bob")
	view.AttachCell(cell)

	r.RenderConsecutive(types.ConsecutiveWorkInfo{
		"alice": {"2024-06-03": 4},
		"carol": {"2024-06-03": 6}, // no chip rendered: skipped
	})

	count, ok := view.Badge("alice", "2024-06-03")
	require.True(t, ok)
	assert.Equal(t, 4, count)

	_, ok = view.Badge("carol", "2024-06-03")
	assert.False(t, ok)
}

func TestRenderConsecutive_ClearsPreviousBadges(t *testing.T) {
	r, view := newTestRenderer(t)
	view.AttachCell(boardtesting.NewFakeDayCell("2024-06-03", "alice"))

	r.RenderConsecutive(types.ConsecutiveWorkInfo{"alice": {"2024-06-03": 4}})
	r.RenderConsecutive(types.ConsecutiveWorkInfo{})

	_, ok := view.Badge("alice", "2024-06-03")
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	r, view := newTestRenderer(t)
	view.AttachCell(boardtesting.NewFakeDayCell("2024-06-01", "alice"))

	r.RenderViolations([]types.Violation{{Date: "2024-06-01", RuleType: types.RuleMinStaffPerDay}})
	r.RenderConsecutive(types.ConsecutiveWorkInfo{"alice": {"2024-06-01": 3}})

	r.Clear()

	assert.Empty(t, view.IconDates())
	_, ok := view.Badge("alice", "2024-06-01")
	assert.False(t, ok)
}

func TestInspect(t *testing.T) {
	d := Inspect(types.Violation{
		Date:        "2024-06-02",
		RuleType:    types.RuleForbiddenPair,
		Description: "alice and bob may not share a shift",
		Employees:   []string{"alice", "bob"},
		Details: map[string]any{
			"zone":      "night",
			"max_count": 1,
		},
	})

	assert.Equal(t, "alice and bob may not share a shift", d.Title)
	require.Equal(t, []DetailRow{
		{Label: "Date", Value: "2024-06-02"},
		{Label: "Rule", Value: "Forbidden Pair"},
		{Label: "Employees", Value: "alice, bob"},
		{Label: "Max Count", Value: "1"},
		{Label: "Zone", Value: "night"},
	}, d.Rows)
}

func TestInspect_EmptyDescription(t *testing.T) {
	d := Inspect(types.Violation{Date: "2024-06-02", RuleType: "x"})
	assert.Equal(t, "Rule violation", d.Title)
}
