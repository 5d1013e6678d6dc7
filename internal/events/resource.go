package events

import (
	"github.com/KirkDiggler/rune-engine/internal/resource"
)

// ThresholdCrossedEvent is emitted once per change that moves a resource
// into a different tier
type ThresholdCrossedEvent struct {
	BaseEvent
	Change resource.Change
}

func (e *ThresholdCrossedEvent) Accept(v Visitor) {
	v.VisitThresholdCrossedEvent(e)
}

// CorruptionRiskEvent is emitted for every corruption check that drew,
// whether or not corruption was gained
type CorruptionRiskEvent struct {
	BaseEvent
	Assessment resource.Assessment
}

func (e *CorruptionRiskEvent) Accept(v Visitor) {
	v.VisitCorruptionRiskEvent(e)
}

// AetherReleasedEvent is emitted when the accumulated aetheric damage pool
// is drained
type AetherReleasedEvent struct {
	BaseEvent
	Amount int
}

func (e *AetherReleasedEvent) Accept(v Visitor) {
	v.VisitAetherReleasedEvent(e)
}
