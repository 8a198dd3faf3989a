package entity

import (
	"math/rand"

	"github.com/tomz197/destroid/internal/config"
	"github.com/tomz197/destroid/internal/physics"
)

// Factory creates entities with unique ids and seeded randomness.
// It is not safe for concurrent use; the engine calls it under its lock.
type Factory struct {
	cfg config.Tuning
	rng *rand.Rand
	ids IDAllocator
}

// NewFactory returns a factory whose asteroid stream is determined by seed.
func NewFactory(cfg config.Tuning, seed int64) *Factory {
	return &Factory{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// NewPlayer creates the ship at the arena center.
func (f *Factory) NewPlayer() *Player {
	return NewPlayer(f.cfg.Arena.Size, f.cfg.Player.Speed, f.cfg.Player.Size)
}

// NewProjectile creates a projectile at origin aimed at target.
// The delta is target - origin, unnormalized.
func (f *Factory) NewProjectile(origin, target physics.Vec) *Projectile {
	pc := f.cfg.Projectile
	return &Projectile{
		id:       f.ids.Next(),
		Pos:      origin,
		Delta:    target.Sub(origin),
		Speed:    pc.Speed,
		Size:     pc.Size,
		MinAbs:   pc.MinComponent,
		minCoord: -pc.CullMargin,
		maxCoord: f.cfg.Arena.Size + pc.CullMargin,
	}
}

// NewAsteroid creates an asteroid just off one side of the arena, heading
// for the point mirrored through the arena center.
func (f *Factory) NewAsteroid() *Asteroid {
	ac := f.cfg.Asteroid
	arena := f.cfg.Arena.Size

	size := ac.MinSize + f.rng.Float64()*(ac.MaxSize-ac.MinSize)

	origin := physics.Vec{X: f.rng.Float64() * arena, Y: f.rng.Float64() * arena}
	switch f.rng.Intn(4) {
	case 0:
		origin.X += arena
	case 1:
		origin.X -= arena
	case 2:
		origin.Y += arena
	default:
		origin.Y -= arena
	}

	rotation := 1 + f.rng.Float64()*359
	clockwise := f.rng.Float64() > 0.5
	xIndex := f.rng.Intn(len(TrajectoryOffsets))
	yIndex := f.rng.Intn(len(TrajectoryOffsets))
	variance := 1 + f.rng.Float64()*(ac.MaxVariance-1)

	return &Asteroid{
		id:           f.ids.Next(),
		Pos:          origin,
		Origin:       origin,
		End:          origin.Reflect(arena),
		Size:         size,
		Speed:        ac.Speed,
		Rotation:     rotation,
		Clockwise:    clockwise,
		XIndex:       xIndex,
		YIndex:       yIndex,
		Variance:     variance,
		cullDistance: ac.CullDistance,
	}
}

// NewAsteroidAt creates an asteroid with the given placement and no
// trajectory variance. Intended for scripted scenarios and tests.
func (f *Factory) NewAsteroidAt(pos, origin physics.Vec, size float64) *Asteroid {
	return &Asteroid{
		id:           f.ids.Next(),
		Pos:          pos,
		Origin:       origin,
		End:          origin.Reflect(f.cfg.Arena.Size),
		Size:         size,
		Speed:        f.cfg.Asteroid.Speed,
		Rotation:     1,
		Clockwise:    true,
		Variance:     1,
		cullDistance: f.cfg.Asteroid.CullDistance,
	}
}
