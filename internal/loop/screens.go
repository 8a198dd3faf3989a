package loop

import (
	"github.com/google/uuid"

	"github.com/tomz197/destroid/internal/input"
)

// StartGame leaves the title screen and starts the first round. It only
// works once, from PhaseTitle.
func (g *Game) StartGame() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase != PhaseTitle || g.closed {
		return false
	}
	g.beginRound()
	return true
}

// EndGame ends the running round as if the ship was hit. It is a no-op
// outside PhasePlaying.
func (g *Game) EndGame() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.endRound()
}

// Restart starts a new round from the game-over screen when cmd is the
// restart command. The previous tick source is stopped and fully drained
// before the new one starts.
func (g *Game) Restart(cmd input.Command) bool {
	g.mu.Lock()
	if cmd != input.CommandRestart || g.phase != PhaseGameOver || !g.restartArmed || g.closed {
		g.mu.Unlock()
		return false
	}
	g.restartArmed = false
	prev := g.handle
	g.handle = nil
	g.generation++
	g.mu.Unlock()

	// Wait outside the lock: the old loop may be blocked on mu in tick.
	if prev != nil {
		prev.Stop()
		<-prev.Done()
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return false
	}
	g.beginRound()
	return true
}

// beginRound resets the state and starts a fresh tick source. Caller holds mu.
func (g *Game) beginRound() {
	roundID := uuid.NewString()
	g.state.Reset(roundID)
	g.fires = g.fires[:0]
	g.mailbox.Take()

	g.phase = PhasePlaying
	g.generation++
	gen := g.generation
	g.handle = g.scheduler.Start(g.ctx, func() { g.tick(gen) })

	g.logger.Info("round started", "round", roundID, "seed", g.seed)
}

// endRound tears the round down once. Caller holds mu.
func (g *Game) endRound() bool {
	if g.phase != PhasePlaying {
		return false
	}
	g.phase = PhaseGameOver

	// Non-blocking: endRound usually runs on the tick goroutine itself.
	if g.handle != nil {
		g.handle.Stop()
	}

	stats := g.statsLocked()
	g.state.ClearEntities()
	g.state.Player.Reset()
	g.fires = g.fires[:0]

	g.renderer.ShowGameOver(stats.Score)
	g.restartArmed = true

	g.logger.Info("round ended",
		"round", stats.RoundID,
		"score", stats.Score,
		"ticks", stats.Ticks,
		"destroyed", stats.Destroyed,
		"shots", stats.ShotsFired,
	)
	return true
}
