package loop

import (
	"github.com/tomz197/destroid/internal/entity"
	"github.com/tomz197/destroid/internal/physics"
)

// RoundStats summarizes one round.
type RoundStats struct {
	RoundID    string
	Ticks      uint64
	ShotsFired int
	Destroyed  int
	Spawned    int
	Culled     int
	Score      int
}

// ProjectileView is a read-only copy of a projectile.
type ProjectileView struct {
	ID    entity.ID
	Pos   physics.Vec
	Delta physics.Vec
}

// AsteroidView is a read-only copy of an asteroid.
type AsteroidView struct {
	ID       entity.ID
	Pos      physics.Vec
	Size     float64
	Rotation float64
}

// Snapshot is a consistent copy of the game taken between ticks.
// Entities are ordered by id.
type Snapshot struct {
	Phase       Phase
	Stats       RoundStats
	Player      physics.Vec
	Orientation int
	Projectiles []ProjectileView
	Asteroids   []AsteroidView
	SpawnTimer  int
	SpawnCount  int
	Restartable bool
}

// Snapshot copies the current state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.state
	snap := Snapshot{
		Phase:       g.phase,
		Stats:       g.statsLocked(),
		Player:      s.Player.Pos,
		Orientation: s.Player.Orientation,
		Projectiles: make([]ProjectileView, 0, len(s.Projectiles)),
		Asteroids:   make([]AsteroidView, 0, len(s.Asteroids)),
		SpawnTimer:  s.Spawn.Timer(),
		SpawnCount:  s.Spawn.Count(),
		Restartable: g.restartArmed,
	}
	for _, id := range entity.SortedIDs(s.Projectiles) {
		p := s.Projectiles[id]
		snap.Projectiles = append(snap.Projectiles, ProjectileView{ID: id, Pos: p.Pos, Delta: p.Delta})
	}
	for _, id := range entity.SortedIDs(s.Asteroids) {
		a := s.Asteroids[id]
		snap.Asteroids = append(snap.Asteroids, AsteroidView{ID: id, Pos: a.Pos, Size: a.Size, Rotation: a.Rotation})
	}
	return snap
}
