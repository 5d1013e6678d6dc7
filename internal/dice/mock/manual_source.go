package mockdice

import (
	"fmt"
	"sync"
)

// ManualSource implements dice.Source with predetermined die faces.
//
// Faces are scripted as they would appear on the die (1..n); Intn returns
// face-1. A percentile draw of 15 is therefore scripted as face 16.
type ManualSource struct {
	mu        sync.Mutex
	rolls     []int
	rollIndex int
}

// NewManualSource creates a scripted source
func NewManualSource(rolls ...int) *ManualSource {
	return &ManualSource{
		rolls: append([]int{}, rolls...),
	}
}

// SetNextRoll appends one face to the script
func (m *ManualSource) SetNextRoll(roll int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// SetRolls replaces the script
func (m *ManualSource) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append([]int{}, rolls...)
	m.rollIndex = 0
}

// Reset clears all rolls and resets the index
func (m *ManualSource) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = []int{}
	m.rollIndex = 0
}

// Remaining returns how many scripted faces have not been drawn yet
func (m *ManualSource) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rolls) - m.rollIndex
}

// Intn implements dice.Source.Intn. It panics when the script is exhausted
// or the scripted face does not fit the die, which fails the calling test.
func (m *ManualSource) Intn(n int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex >= len(m.rolls) {
		panic(fmt.Sprintf("no more predetermined rolls available (used %d of %d)", m.rollIndex, len(m.rolls)))
	}

	roll := m.rolls[m.rollIndex]
	if roll < 1 || roll > n {
		panic(fmt.Sprintf("invalid roll %d for d%d", roll, n))
	}
	m.rollIndex++
	return roll - 1
}
