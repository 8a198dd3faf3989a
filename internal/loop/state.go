package loop

import (
	"github.com/tomz197/destroid/internal/config"
	"github.com/tomz197/destroid/internal/entity"
)

// Phase is the round state machine position.
type Phase int

const (
	PhaseTitle    Phase = iota // Title screen, waiting for start
	PhasePlaying               // Ticks are running
	PhaseGameOver              // Round over, waiting for restart
)

func (p Phase) String() string {
	switch p {
	case PhaseTitle:
		return "title"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// GameState holds everything one round mutates.
type GameState struct {
	Player      *entity.Player
	Projectiles map[entity.ID]*entity.Projectile
	Asteroids   map[entity.ID]*entity.Asteroid
	Score       ScoreLedger
	Spawn       SpawnController
	Stats       RoundStats

	// Kill lists, swept at the end of every tick.
	deadProjectiles map[entity.ID]struct{}
	deadAsteroids   map[entity.ID]struct{}
}

// NewGameState creates an empty round for the given tuning.
func NewGameState(cfg config.Tuning, player *entity.Player) *GameState {
	return &GameState{
		Player:          player,
		Projectiles:     make(map[entity.ID]*entity.Projectile),
		Asteroids:       make(map[entity.ID]*entity.Asteroid),
		Score:           NewScoreLedger(cfg.Score.Multiplier),
		Spawn:           NewSpawnController(cfg.Spawn.Interval),
		deadProjectiles: make(map[entity.ID]struct{}),
		deadAsteroids:   make(map[entity.ID]struct{}),
	}
}

// Reset prepares the state for a new round.
func (s *GameState) Reset(roundID string) {
	s.ClearEntities()
	s.Player.Reset()
	s.Score.Reset()
	s.Spawn.Reset()
	s.Stats = RoundStats{RoundID: roundID}
}

// ClearEntities drops every projectile and asteroid.
func (s *GameState) ClearEntities() {
	clear(s.Projectiles)
	clear(s.Asteroids)
	clear(s.deadProjectiles)
	clear(s.deadAsteroids)
}

func (s *GameState) killProjectile(id entity.ID) { s.deadProjectiles[id] = struct{}{} }

func (s *GameState) killAsteroid(id entity.ID) { s.deadAsteroids[id] = struct{}{} }

func (s *GameState) asteroidDead(id entity.ID) bool {
	_, ok := s.deadAsteroids[id]
	return ok
}

// sweep removes everything on the kill lists.
func (s *GameState) sweep() {
	for id := range s.deadProjectiles {
		delete(s.Projectiles, id)
	}
	for id := range s.deadAsteroids {
		delete(s.Asteroids, id)
	}
	clear(s.deadProjectiles)
	clear(s.deadAsteroids)
}
