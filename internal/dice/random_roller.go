package dice

// DefaultMaxExplosionDepth bounds each chain of exploding dice.
const DefaultMaxExplosionDepth = 10

// roller implements Roller on top of an injected Source
type roller struct {
	src               Source
	maxExplosionDepth int
}

// Option configures a Roller
type Option func(*roller)

// WithMaxExplosionDepth caps how many extra dice a single die may chain into.
// A depth of 0 disables explosions even for exploding pools.
func WithMaxExplosionDepth(depth int) Option {
	return func(r *roller) {
		if depth < 0 {
			depth = 0
		}
		r.maxExplosionDepth = depth
	}
}

// NewRoller creates a roller drawing from src
func NewRoller(src Source, opts ...Option) Roller {
	if src == nil {
		panic("dice source is required")
	}

	r := &roller{
		src:               src,
		maxExplosionDepth: DefaultMaxExplosionDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type attempt struct {
	rolls      []int
	explosions []int
	diceTotal  int
}

// Roll implements Roller.Roll.
//
// Primary dice are drawn first, then each die's explosion chain in die
// order. Under advantage or disadvantage the whole sequence runs twice and
// ties keep the first attempt.
func (r *roller) Roll(pool Pool) (*RollResult, error) {
	if err := pool.Validate(); err != nil {
		return nil, err
	}

	attempts := 1
	if pool.Advantage() != Normal {
		attempts = 2
	}

	results := make([]attempt, attempts)
	totals := make([]int, attempts)
	for i := range results {
		results[i] = r.rollOnce(pool)
		totals[i] = results[i].diceTotal + pool.Modifier()
	}

	selected := 0
	if attempts == 2 {
		switch pool.Advantage() {
		case Advantage:
			if totals[1] > totals[0] {
				selected = 1
			}
		case Disadvantage:
			if totals[1] < totals[0] {
				selected = 1
			}
		}
	}

	chosen := results[selected]
	return &RollResult{
		Pool:              pool,
		Rolls:             chosen.rolls,
		ExplosionRolls:    chosen.explosions,
		DiceTotal:         chosen.diceTotal,
		Total:             totals[selected],
		Advantage:         pool.Advantage(),
		AllRollTotals:     totals,
		SelectedRollIndex: selected,
	}, nil
}

func (r *roller) rollOnce(pool Pool) attempt {
	sides := pool.Sides()

	a := attempt{rolls: make([]int, pool.Count())}
	for i := range a.rolls {
		a.rolls[i] = r.die(sides)
		a.diceTotal += a.rolls[i]
	}

	if !pool.IsExploding() {
		return a
	}

	for _, face := range a.rolls {
		last := face
		for depth := 0; last == sides && depth < r.maxExplosionDepth; depth++ {
			last = r.die(sides)
			a.explosions = append(a.explosions, last)
			a.diceTotal += last
		}
	}

	return a
}

func (r *roller) die(sides int) int {
	return r.src.Intn(sides) + 1
}
