// Package dice provides the deterministic roller backing dice triggers.
package dice

import (
	"math/rand"

	apperrors "github.com/unravelhq/unravel/internal/platform/errors"
)

// ErrInvalidSides indicates a die with fewer than one side.
var ErrInvalidSides = apperrors.New(apperrors.CodeDiceInvalidSpec, "die must have at least one side")

// Roller produces die results from a seeded source.
//
// Roller is deterministic with respect to its seed: the same seed yields the
// same result stream, which keeps replays and tests reproducible.
type Roller struct {
	rng *rand.Rand
}

// NewRoller creates a roller seeded for a reproducible result stream.
func NewRoller(seed int64) *Roller {
	return &Roller{rng: rand.New(rand.NewSource(seed))}
}

// Roll returns a uniform result in [1, sides].
func (r *Roller) Roll(sides int) (int, error) {
	if sides <= 0 {
		return 0, ErrInvalidSides
	}
	return r.rng.Intn(sides) + 1, nil
}

// RollD6 returns a standard six-sided die result.
func (r *Roller) RollD6() int {
	value, _ := r.Roll(6)
	return value
}
