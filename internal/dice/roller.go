package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Source supplies uniformly distributed integers. *math/rand.Rand satisfies it.
//
// A Source is owned by a single encounter; implementations are not required
// to be safe for concurrent use.
type Source interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// Roller rolls dice pools.
// This allows us to inject scripted implementations for testing
type Roller interface {
	// Roll rolls the pool, applying explosions and advantage as configured on it
	Roll(pool Pool) (*RollResult, error)
}
