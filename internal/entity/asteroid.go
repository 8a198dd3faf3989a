package entity

import (
	"math"

	"github.com/tomz197/destroid/internal/physics"
)

var _ Entity = (*Asteroid)(nil)

// TrajectoryOffsets are the multipliers a variance index selects.
var TrajectoryOffsets = [7]float64{0, 1, -1, 2, -2, 3, -3}

// Asteroid drifts from an off-screen origin toward the point mirrored
// through the arena center, bent by a per-axis variance.
type Asteroid struct {
	id        ID
	Pos       physics.Vec
	Origin    physics.Vec
	End       physics.Vec
	Size      float64
	Speed     float64
	Rotation  float64 // degrees in [0, 360)
	Clockwise bool

	XIndex, YIndex int
	Variance       float64
	EffectiveSpeed float64 // recomputed each Update; feeds scoring

	cullDistance float64
}

// Velocity returns the per-tick delta before speed scaling.
func (a *Asteroid) Velocity() physics.Vec {
	return physics.Vec{
		X: (a.End.X - a.Origin.X) + TrajectoryOffsets[a.XIndex]*a.Variance,
		Y: (a.End.Y - a.Origin.Y) + TrajectoryOffsets[a.YIndex]*a.Variance,
	}
}

// Update advances the asteroid along its trajectory and spins it one degree.
func (a *Asteroid) Update() {
	d := a.Velocity()
	a.EffectiveSpeed = d.X*a.Speed + (d.Y*a.Speed)/2
	a.Pos = a.Pos.Add(d.Scale(a.Speed / 2))
	a.Rotate()
}

// Rotate steps the rotation by one degree, wrapping within [0, 360).
func (a *Asteroid) Rotate() {
	if a.Clockwise {
		a.Rotation++
		if a.Rotation >= 360 {
			a.Rotation -= 360
		}
		return
	}
	a.Rotation--
	if a.Rotation < 0 {
		a.Rotation += 360
	}
}

func (a *Asteroid) ID() ID { return a.id }

// Expired reports whether the asteroid is far from its origin on both axes.
func (a *Asteroid) Expired() bool {
	return math.Abs(a.Pos.X-a.Origin.X) > a.cullDistance &&
		math.Abs(a.Pos.Y-a.Origin.Y) > a.cullDistance
}

func (a *Asteroid) Bounds() physics.Box { return physics.SquareBox(a.Pos, a.Size) }
