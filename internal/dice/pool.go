package dice

import (
	"fmt"
	"strconv"
	"strings"

	engineerr "github.com/KirkDiggler/rune-engine/internal/errors"
)

// AdvantageType controls whether a pool is rolled once or twice.
type AdvantageType int

const (
	// Normal rolls the pool once.
	Normal AdvantageType = iota
	// Advantage rolls the pool twice and keeps the higher total.
	Advantage
	// Disadvantage rolls the pool twice and keeps the lower total.
	Disadvantage
)

func (a AdvantageType) String() string {
	switch a {
	case Normal:
		return "normal"
	case Advantage:
		return "advantage"
	case Disadvantage:
		return "disadvantage"
	default:
		return fmt.Sprintf("advantage(%d)", int(a))
	}
}

// Pool describes a set of identical dice plus a flat modifier.
// A Pool is a value; the With* helpers return modified copies.
type Pool struct {
	count     int
	sides     int
	modifier  int
	advantage AdvantageType
	exploding bool
}

// NewPool creates a pool of count dice with the given number of sides.
func NewPool(count, sides, modifier int) (Pool, error) {
	p := Pool{
		count:    count,
		sides:    sides,
		modifier: modifier,
	}
	if err := p.Validate(); err != nil {
		return Pool{}, err
	}
	return p, nil
}

// MustPool is NewPool for package-level and test fixtures; it panics on a bad pool.
func MustPool(count, sides, modifier int) Pool {
	p, err := NewPool(count, sides, modifier)
	if err != nil {
		panic(err)
	}
	return p
}

// Validate reports whether the pool can be rolled.
func (p Pool) Validate() error {
	if p.sides < 2 {
		return engineerr.InvalidArgumentf("dice must have at least 2 sides, got %d", p.sides).
			WithMeta("sides", p.sides)
	}
	if p.count < 1 {
		return engineerr.InvalidArgumentf("dice count must be at least 1, got %d", p.count).
			WithMeta("count", p.count)
	}
	if p.advantage < Normal || p.advantage > Disadvantage {
		return engineerr.InvalidArgumentf("unknown advantage type %d", int(p.advantage))
	}
	return nil
}

func (p Pool) Count() int               { return p.count }
func (p Pool) Sides() int               { return p.sides }
func (p Pool) Modifier() int            { return p.modifier }
func (p Pool) Advantage() AdvantageType { return p.advantage }
func (p Pool) IsExploding() bool        { return p.exploding }

// WithAdvantage returns a copy of the pool rolled with the given advantage type.
func (p Pool) WithAdvantage(a AdvantageType) Pool {
	p.advantage = a
	return p
}

// WithExploding returns a copy of the pool with exploding dice switched on or off.
func (p Pool) WithExploding(exploding bool) Pool {
	p.exploding = exploding
	return p
}

// WithModifier returns a copy of the pool with the flat modifier replaced.
func (p Pool) WithModifier(modifier int) Pool {
	p.modifier = modifier
	return p
}

// AddDice returns a copy of the pool with n extra dice.
func (p Pool) AddDice(n int) (Pool, error) {
	if n < 0 {
		return Pool{}, engineerr.InvalidArgumentf("bonus dice cannot be negative, got %d", n)
	}
	p.count += n
	return p, nil
}

// String renders the pool in dice notation, e.g. "3d10+2!".
func (p Pool) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dd%d", p.count, p.sides)
	if p.modifier != 0 {
		fmt.Fprintf(&b, "%+d", p.modifier)
	}
	if p.exploding {
		b.WriteString("!")
	}
	if p.advantage != Normal {
		fmt.Fprintf(&b, " (%s)", p.advantage)
	}
	return b.String()
}

// ParsePool parses dice notation of the form NdS, NdS+M, NdS-M with an
// optional trailing "!" for exploding dice.
func ParsePool(notation string) (Pool, error) {
	s := strings.TrimSpace(strings.ToLower(notation))

	exploding := strings.HasSuffix(s, "!")
	s = strings.TrimSuffix(s, "!")

	modifier := 0
	if idx := strings.LastIndexAny(s, "+-"); idx > 0 {
		mod, err := strconv.Atoi(s[idx:])
		if err != nil {
			return Pool{}, engineerr.InvalidArgumentf("invalid dice string %q", notation)
		}
		modifier = mod
		s = s[:idx]
	}

	countStr, sidesStr, found := strings.Cut(s, "d")
	if !found {
		return Pool{}, engineerr.InvalidArgumentf("invalid dice string %q", notation)
	}

	count, err := strconv.Atoi(countStr)
	if err != nil {
		return Pool{}, engineerr.InvalidArgumentf("invalid dice count in %q", notation)
	}
	sides, err := strconv.Atoi(sidesStr)
	if err != nil {
		return Pool{}, engineerr.InvalidArgumentf("invalid dice size in %q", notation)
	}

	p, err := NewPool(count, sides, modifier)
	if err != nil {
		return Pool{}, err
	}
	return p.WithExploding(exploding), nil
}
