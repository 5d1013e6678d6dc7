package events_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rune-engine/internal/ability"
	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
	"github.com/KirkDiggler/rune-engine/internal/events"
	"github.com/KirkDiggler/rune-engine/internal/resource"
)

func TestEventBus_BeforeCheckAddsDice(t *testing.T) {
	bus := events.NewBus()

	// A torch-lit room grants one situational die
	bus.Subscribe(events.EventTypeBeforeCheck, &testDiceModifier{bonus: 1, priority: events.PriorityAbilities})

	event := &events.BeforeCheckEvent{
		BaseEvent: events.BaseEvent{
			Type:        events.EventTypeBeforeCheck,
			CombatantID: "c-1",
		},
		SkillID:   "search",
		DC:        2,
		Modifiers: &ability.Evaluation{TotalDiceBonus: 2},
	}

	err := bus.Emit(event)
	require.NoError(t, err)

	assert.Equal(t, 1, event.ExtraDice)
	assert.Equal(t, 2, event.Modifiers.TotalDiceBonus, "ability bonuses are left alone")
}

func TestEventBus_Priority(t *testing.T) {
	bus := events.NewBus()

	// Track execution order
	var executionOrder []string
	record := func(name string) func(events.Event) error {
		return func(events.Event) error {
			executionOrder = append(executionOrder, name)
			return nil
		}
	}

	// Subscribe in random order
	bus.Subscribe(events.EventTypeThresholdCrossed, events.NewListener("low", events.PriorityNarrative, record("low")))
	bus.Subscribe(events.EventTypeThresholdCrossed, events.NewListener("high", events.PriorityAbilities, record("high")))
	bus.Subscribe(events.EventTypeThresholdCrossed, events.NewListener("medium", events.PriorityResources, record("medium")))
	bus.Subscribe(events.EventTypeThresholdCrossed, events.NewListener("medium-2", events.PriorityResources, record("medium-2")))

	event := &events.ThresholdCrossedEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeThresholdCrossed},
	}

	err := bus.Emit(event)
	require.NoError(t, err)

	// Lower priority number runs earlier; ties keep subscription order
	assert.Equal(t, []string{"high", "medium", "medium-2", "low"}, executionOrder)
}

func TestEventBus_Cancellation(t *testing.T) {
	bus := events.NewBus()

	var firstExecuted, secondExecuted bool

	// First listener cancels the event
	first := &testListener{
		id:       "first",
		priority: 100,
		handler: func(e events.Event) error {
			firstExecuted = true
			e.Cancel()
			return nil
		},
	}

	// Second listener should not execute
	second := &testListener{
		id:       "second",
		priority: 200,
		handler: func(e events.Event) error {
			secondExecuted = true
			return nil
		},
	}

	bus.Subscribe(events.EventTypeBeforeCheck, first)
	bus.Subscribe(events.EventTypeBeforeCheck, second)

	event := &events.BeforeCheckEvent{
		BaseEvent: events.BaseEvent{
			Type: events.EventTypeBeforeCheck,
		},
		SkillID: "lockpicking",
		DC:      3,
	}

	err := bus.Emit(event)
	require.NoError(t, err)

	assert.True(t, firstExecuted)
	assert.False(t, secondExecuted)
	assert.True(t, event.IsCancelled())
}

func TestEventBus_ListenerErrorStopsEmit(t *testing.T) {
	bus := events.NewBus()
	var laterRan bool

	bus.Subscribe(events.EventTypeCorruptionRisk, events.NewListener("broken", 0, func(events.Event) error {
		return engineerr.FailedPreconditionf("narrative table missing")
	}))
	bus.Subscribe(events.EventTypeCorruptionRisk, events.NewListener("later", 10, func(events.Event) error {
		laterRan = true
		return nil
	}))

	err := bus.Emit(&events.CorruptionRiskEvent{
		BaseEvent:  events.BaseEvent{Type: events.EventTypeCorruptionRisk, CombatantID: "c-1"},
		Assessment: resource.Assessment{TriggerKind: resource.KindRage, TriggerValue: 85},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listener broken failed")
	assert.Equal(t, engineerr.CodeFailedPrecondition, engineerr.GetCode(err))
	assert.False(t, laterRan)
}

func TestEventBus_UnsubscribeAndClear(t *testing.T) {
	bus := events.NewBus()
	calls := 0
	count := func(events.Event) error {
		calls++
		return nil
	}

	bus.Subscribe(events.EventTypeAetherReleased, events.NewListener("a", 0, count))
	bus.Subscribe(events.EventTypeAetherReleased, events.NewListener("b", 0, count))
	bus.Unsubscribe(events.EventTypeAetherReleased, "a")
	bus.Unsubscribe(events.EventTypeAetherReleased, "missing")
	assert.Equal(t, 1, bus.ListenerCount(events.EventTypeAetherReleased))

	require.NoError(t, bus.Emit(&events.AetherReleasedEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeAetherReleased},
		Amount:    12,
	}))
	assert.Equal(t, 1, calls)

	bus.Clear()
	assert.Zero(t, bus.ListenerCount(events.EventTypeAetherReleased))
}

func TestEvent_AcceptDispatchesToVisitor(t *testing.T) {
	visitor := &countingVisitor{}

	for _, e := range []events.Event{
		&events.BeforeCheckEvent{},
		&events.CheckResolvedEvent{},
		&events.CooperativeResolvedEvent{},
		&events.ThresholdCrossedEvent{},
		&events.ThresholdCrossedEvent{},
		&events.CorruptionRiskEvent{},
		&events.AetherReleasedEvent{},
	} {
		e.Accept(visitor)
	}

	assert.Equal(t, 2, visitor.thresholds)
	assert.Equal(t, 1, visitor.releases)
}

// Test helper: simple event listener
type testListener struct {
	id       string
	priority int
	handler  func(events.Event) error
}

func (l *testListener) ID() string                       { return l.id }
func (l *testListener) Priority() int                    { return l.priority }
func (l *testListener) HandleEvent(e events.Event) error { return l.handler(e) }

// Test helper: listener that grants situational dice
type testDiceModifier struct {
	bonus    int
	priority int
}

func (m *testDiceModifier) ID() string    { return "test-dice-modifier" }
func (m *testDiceModifier) Priority() int { return m.priority }
func (m *testDiceModifier) HandleEvent(e events.Event) error {
	if before, ok := e.(*events.BeforeCheckEvent); ok {
		before.ExtraDice += m.bonus
		return nil
	}
	return errors.New("unexpected event")
}

type countingVisitor struct {
	events.BaseVisitor
	thresholds int
	releases   int
}

func (v *countingVisitor) VisitThresholdCrossedEvent(*events.ThresholdCrossedEvent) { v.thresholds++ }
func (v *countingVisitor) VisitAetherReleasedEvent(*events.AetherReleasedEvent)     { v.releases++ }
