package events

// EventType represents the type of engine event
type EventType string

// Event is the base interface for all engine events
type Event interface {
	GetType() EventType
	GetCombatantID() string
	IsCancelled() bool
	Cancel()
	Accept(visitor Visitor)
}

// BaseEvent provides common implementation for all events
type BaseEvent struct {
	Type        EventType
	CombatantID string
	Cancelled   bool
}

func (e *BaseEvent) GetType() EventType     { return e.Type }
func (e *BaseEvent) GetCombatantID() string { return e.CombatantID }
func (e *BaseEvent) IsCancelled() bool      { return e.Cancelled }
func (e *BaseEvent) Cancel()                { e.Cancelled = true }

// Visitor lets a listener handle each concrete event type without a type switch
type Visitor interface {
	// Check events
	VisitBeforeCheckEvent(*BeforeCheckEvent)
	VisitCheckResolvedEvent(*CheckResolvedEvent)
	VisitCooperativeResolvedEvent(*CooperativeResolvedEvent)

	// Resource events
	VisitThresholdCrossedEvent(*ThresholdCrossedEvent)
	VisitCorruptionRiskEvent(*CorruptionRiskEvent)
	VisitAetherReleasedEvent(*AetherReleasedEvent)
}

// BaseVisitor provides default no-op implementations
type BaseVisitor struct{}

// Check event default implementations
func (v *BaseVisitor) VisitBeforeCheckEvent(*BeforeCheckEvent)                 {}
func (v *BaseVisitor) VisitCheckResolvedEvent(*CheckResolvedEvent)             {}
func (v *BaseVisitor) VisitCooperativeResolvedEvent(*CooperativeResolvedEvent) {}

// Resource event default implementations
func (v *BaseVisitor) VisitThresholdCrossedEvent(*ThresholdCrossedEvent) {}
func (v *BaseVisitor) VisitCorruptionRiskEvent(*CorruptionRiskEvent)     {}
func (v *BaseVisitor) VisitAetherReleasedEvent(*AetherReleasedEvent)     {}
