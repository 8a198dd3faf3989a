package loop

import (
	"math"

	"github.com/tomz197/destroid/internal/entity"
)

// ScoreLedger accumulates the score of one round. It only grows.
type ScoreLedger struct {
	value      int
	multiplier int
}

// NewScoreLedger returns an empty ledger that scales every award by multiplier.
func NewScoreLedger(multiplier int) ScoreLedger {
	return ScoreLedger{multiplier: multiplier}
}

// Add awards points scaled by the multiplier. Negative points are ignored.
func (l *ScoreLedger) Add(points int) {
	if points <= 0 {
		return
	}
	l.value += points * l.multiplier
}

// Value returns the current score.
func (l *ScoreLedger) Value() int {
	return l.value
}

// Reset zeroes the score for a new round.
func (l *ScoreLedger) Reset() {
	l.value = 0
}

// AsteroidPoints returns the unscaled award for destroying a: faster and
// smaller asteroids are worth more.
func AsteroidPoints(a *entity.Asteroid) int {
	return 1 + int(math.Round(math.Abs(a.EffectiveSpeed/(a.Size/10))))
}
