package events

import (
	"github.com/KirkDiggler/rune-engine/internal/ability"
	"github.com/KirkDiggler/rune-engine/internal/check"
)

// BeforeCheckEvent is emitted after master abilities are evaluated and
// before any die is rolled. Listeners may add situational dice or cancel
// the check outright.
type BeforeCheckEvent struct {
	BaseEvent
	SkillID   string
	DC        int
	ExtraDice int
	Modifiers *ability.Evaluation
}

func (e *BeforeCheckEvent) Accept(v Visitor) {
	v.VisitBeforeCheckEvent(e)
}

// CheckResolvedEvent is emitted when a single check has an outcome
type CheckResolvedEvent struct {
	BaseEvent
	Result *check.Result
}

func (e *CheckResolvedEvent) Accept(v Visitor) {
	v.VisitCheckResolvedEvent(e)
}

// CooperativeResolvedEvent is emitted when a group check has an outcome.
// CombatantID is the active roller, empty for Combined checks.
type CooperativeResolvedEvent struct {
	BaseEvent
	Result *check.CooperativeResult
}

func (e *CooperativeResolvedEvent) Accept(v Visitor) {
	v.VisitCooperativeResolvedEvent(e)
}
