package loop

import (
	"github.com/tomz197/destroid/internal/entity"
)

// step advances the round by one tick. Caller holds mu and phase is
// PhasePlaying.
func (g *Game) step() {
	s := g.state
	s.Stats.Ticks++

	// ===== INPUT PHASE =====
	s.Player.Steer(g.mailbox.Take())
	s.Player.Update()
	for _, target := range g.fires {
		p := g.factory.NewProjectile(s.Player.Pos, target)
		s.Projectiles[p.ID()] = p
		s.Stats.ShotsFired++
	}
	g.fires = g.fires[:0]

	g.renderer.ClearFrame()
	g.renderer.DrawPlayer(s.Player.Pos, s.Player.Orientation)

	// ===== SPAWN PHASE =====
	if n := s.Spawn.Tick(s.Score.Value()); n > 0 {
		for range n {
			a := g.factory.NewAsteroid()
			s.Asteroids[a.ID()] = a
		}
		s.Stats.Spawned += n
		g.logger.Debug("asteroids spawned", "round", s.Stats.RoundID, "count", n, "tick", s.Stats.Ticks)
	}

	// ===== UPDATE PHASE =====
	g.updateProjectiles()
	if g.updateAsteroids() {
		return
	}

	s.sweep()
	g.renderer.DrawScore(s.Score.Value())
}

// updateProjectiles resolves hits, culls strays and moves the rest.
func (g *Game) updateProjectiles() {
	s := g.state
	g.broad.rebuild(s)

	for _, id := range entity.SortedIDs(s.Projectiles) {
		p := s.Projectiles[id]

		if a := g.broad.firstHit(p, s); a != nil {
			s.killProjectile(id)
			s.killAsteroid(a.ID())
			s.Score.Add(AsteroidPoints(a))
			s.Stats.Destroyed++
			continue
		}

		if p.Expired() {
			s.killProjectile(id)
			continue
		}

		p.Update()
		g.renderer.DrawProjectile(p.Pos)
	}
}

// updateAsteroids culls, checks the ship and moves every live asteroid.
// It returns true when an asteroid hit the ship and the round ended.
func (g *Game) updateAsteroids() bool {
	s := g.state

	for _, id := range entity.SortedIDs(s.Asteroids) {
		if s.asteroidDead(id) {
			continue
		}
		a := s.Asteroids[id]

		switch {
		case a.Expired():
			s.killAsteroid(id)
			s.Stats.Culled++
		case PlayerHit(s.Player, a):
			g.endRound()
			return true
		default:
			a.Update()
			g.renderer.DrawAsteroid(a.Pos, a.Size, a.Rotation)
		}
	}
	return false
}
