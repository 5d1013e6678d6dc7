package events

// Event type constants
const (
	// Check Events
	EventTypeBeforeCheck         EventType = "before_check"
	EventTypeCheckResolved       EventType = "check_resolved"
	EventTypeCooperativeResolved EventType = "cooperative_resolved"

	// Resource Events
	EventTypeThresholdCrossed EventType = "threshold_crossed"
	EventTypeCorruptionRisk   EventType = "corruption_risk"
	EventTypeAetherReleased   EventType = "aether_released"
)

// Priority levels for listener order
const (
	PriorityPreCalculation  = 0   // Set base values
	PriorityAbilities       = 100 // Master abilities, specializations
	PriorityResources       = 200 // Rage, Momentum, Corruption, Resonance reactions
	PriorityNarrative       = 300 // Descriptor selection, UI
	PriorityPostCalculation = 500 // Caps, limits, audit
)
