package entity

import (
	"math"

	"github.com/tomz197/destroid/internal/physics"
)

var _ Entity = (*Projectile)(nil)

// Projectile travels along the raw (unnormalized) vector from the ship to
// the aim point, scaled by Speed.
type Projectile struct {
	id     ID
	Pos    physics.Vec
	Delta  physics.Vec
	Speed  float64
	Size   float64
	MinAbs float64 // per-component floor on |Delta|

	minCoord, maxCoord float64
}

// Update floors both delta components then advances the position.
func (p *Projectile) Update() {
	p.Delta.X = floorComponent(p.Delta.X, p.MinAbs)
	p.Delta.Y = floorComponent(p.Delta.Y, p.MinAbs)
	p.Pos = p.Pos.Add(p.Delta.Scale(p.Speed))
}

// floorComponent keeps |v| >= min, preserving sign. Zero counts as negative.
func floorComponent(v, min float64) float64 {
	if math.Abs(v) >= min {
		return v
	}
	if v <= 0 {
		return -min
	}
	return min
}

func (p *Projectile) ID() ID { return p.id }

// Expired reports whether either coordinate left the arena plus margin.
func (p *Projectile) Expired() bool {
	return !physics.InRange(p.Pos, p.minCoord, p.maxCoord)
}

func (p *Projectile) Bounds() physics.Box { return physics.SquareBox(p.Pos, p.Size) }
