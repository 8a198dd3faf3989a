package loop

import (
	"github.com/tomz197/destroid/internal/config"
	"github.com/tomz197/destroid/internal/entity"
	"github.com/tomz197/destroid/internal/physics"
)

// ProjectileHits reports whether p lies within a's box. The projectile is
// treated as a point against the asteroid's half width.
func ProjectileHits(p *entity.Projectile, a *entity.Asteroid) bool {
	return physics.WithinExtent(p.Pos, a.Pos, a.Size/2)
}

// PlayerHit reports whether a overlaps the ship, using the larger of the
// two half widths.
func PlayerHit(pl *entity.Player, a *entity.Asteroid) bool {
	return physics.WithinExtent(pl.Pos, a.Pos, max(a.Size, pl.Size)/2)
}

// broadPhase indexes the live asteroids of a tick in a spatial grid so each
// projectile only tests nearby candidates.
type broadPhase struct {
	grid  *physics.SpatialGrid
	order []*entity.Asteroid // sorted by id; grid items index into it
}

func newBroadPhase(cfg config.Tuning) *broadPhase {
	arena := cfg.Arena.Size
	return &broadPhase{
		// Asteroids spawn up to one arena width outside the field.
		grid: physics.NewSpatialGrid(
			physics.Vec{X: -arena, Y: -arena},
			physics.Vec{X: 2 * arena, Y: 2 * arena},
			cfg.Asteroid.MaxSize,
		),
	}
}

// rebuild indexes the asteroids of s in id order.
func (b *broadPhase) rebuild(s *GameState) {
	b.grid.Clear()
	b.order = b.order[:0]
	for _, id := range entity.SortedIDs(s.Asteroids) {
		a := s.Asteroids[id]
		b.grid.Insert(a.Pos, len(b.order))
		b.order = append(b.order, a)
	}
}

// firstHit returns the lowest-id live asteroid hit by p, or nil.
func (b *broadPhase) firstHit(p *entity.Projectile, s *GameState) *entity.Asteroid {
	best := -1
	b.grid.QueryAround(p.Pos, func(i int) bool {
		if best >= 0 && i > best {
			return false
		}
		a := b.order[i]
		if s.asteroidDead(a.ID()) || !ProjectileHits(p, a) {
			return false
		}
		best = i
		return false
	})
	if best < 0 {
		return nil
	}
	return b.order[best]
}
