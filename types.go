package shiftboard

import "github.com/calendario/shiftboard/types"

// Re-export types from the types subpackage.
//
// Internal packages depend on `types` without importing the root package,
// which keeps them free of import cycles while still giving users a single
// `shiftboard.Snapshot`, `shiftboard.Violation`, etc. to work with.
type (
	Snapshot            = types.Snapshot
	Violation           = types.Violation
	ConsecutiveWorkInfo = types.ConsecutiveWorkInfo
	EventOperation      = types.EventOperation
	EventDetails        = types.EventDetails
	DragState           = types.DragState
	OpState             = types.OpState
	ViolationIcon       = types.ViolationIcon
	IconKind            = types.IconKind
)

// Re-export the view and dependency interfaces.
type (
	DayCell          = types.DayCell
	CounterView      = types.CounterView
	AnnotationView   = types.AnnotationView
	EventNode        = types.EventNode
	EventSurface     = types.EventSurface
	Notifier         = types.Notifier
	BoardView        = types.BoardView
	Logger           = types.Logger
	MetricsCollector = types.MetricsCollector
	Hooks            = types.Hooks
	Publisher        = types.Publisher
)

// Re-export the error taxonomy structs.
type (
	TransportError = types.TransportError
	ProtocolError  = types.ProtocolError
	UserInputError = types.UserInputError
)

// Re-export event operation constants.
const (
	OpMove = types.OpMove
	OpCopy = types.OpCopy
)

// Re-export gesture state constants.
const (
	DragIdle   = types.DragIdle
	DragActive = types.DragActive

	OpIdle                = types.OpIdle
	OpPendingConfirmation = types.OpPendingConfirmation
	OpCommitting          = types.OpCommitting
)

// Re-export rule type tags.
const (
	RuleMaxConsecutiveDays     = types.RuleMaxConsecutiveDays
	RuleMinStaffPerDay         = types.RuleMinStaffPerDay
	RuleForbiddenPair          = types.RuleForbiddenPair
	RuleRequiredPair           = types.RuleRequiredPair
	RuleRequiredAttribute      = types.RuleRequiredAttribute
	RuleSpecializedRequirement = types.RuleSpecializedRequirement
)
