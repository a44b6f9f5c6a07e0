package render

import (
	"github.com/calendario/shiftboard/types"
)

// Renderer draws rule-check results onto an AnnotationView.
type Renderer struct {
	view    types.AnnotationView
	logger  types.Logger
	metrics types.MetricsCollector
}

// New creates a renderer over the given annotation surface.
func New(view types.AnnotationView, logger types.Logger, metrics types.MetricsCollector) *Renderer {
	return &Renderer{view: view, logger: logger, metrics: metrics}
}

// RenderViolations replaces every violation icon with the given set. Each
// violation becomes one icon on its anchor day, classified by rule type.
func (r *Renderer) RenderViolations(violations []types.Violation) {
	r.view.ClearViolationIcons()

	for _, v := range violations {
		if v.Date == "" {
			r.logger.Warn("violation without anchor date skipped", "rule_type", v.RuleType)
			continue
		}
		r.view.AddViolationIcon(v.Date, types.ViolationIcon{
			Kind:      kindFor(v.RuleType),
			Violation: v,
		})
	}

	r.metrics.RecordViolationCount(len(violations))
}

// RenderConsecutive replaces all consecutive-day badges with the given info.
// Entries for chips that are not rendered are skipped; the annotation is
// advisory and a missing chip is not an error.
func (r *Renderer) RenderConsecutive(info types.ConsecutiveWorkInfo) {
	r.view.ClearDayCountBadges()

	for employee, days := range info {
		for date, count := range days {
			if !r.view.SetDayCountBadge(employee, date, count) {
				r.logger.Debug("no chip for day-count badge",
					"employee", employee, "date", date)
			}
		}
	}
}

// Clear removes every annotation the renderer owns. Used when a check fails
// before any result was ever applied, so the board never shows annotations it
// cannot vouch for.
func (r *Renderer) Clear() {
	r.view.ClearViolationIcons()
	r.view.ClearDayCountBadges()
}

// kindFor maps a rule type tag to its icon class. Unknown tags render with
// the generic icon so a newer server never breaks an older board.
func kindFor(ruleType string) types.IconKind {
	switch ruleType {
	case types.RuleMaxConsecutiveDays:
		return types.IconConsecutive
	case types.RuleMinStaffPerDay:
		return types.IconStaffing
	case types.RuleForbiddenPair, types.RuleRequiredPair:
		return types.IconPair
	case types.RuleRequiredAttribute:
		return types.IconAttribute
	case types.RuleSpecializedRequirement:
		return types.IconSpecialized
	default:
		return types.IconGeneric
	}
}
