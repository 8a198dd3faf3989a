// Package loop runs a DESTROID round: the fixed-rate tick, spawning,
// collision resolution, scoring and the title/playing/game-over cycle.
package loop

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/destroid/internal/config"
	"github.com/tomz197/destroid/internal/entity"
	"github.com/tomz197/destroid/internal/input"
	"github.com/tomz197/destroid/internal/physics"
)

// fireAheadDistance is how far in front of the ship a heading shot aims.
const fireAheadDistance = 100

// Game owns one player's rounds. All state is guarded by mu, which is held
// for a whole tick and for every transition.
type Game struct {
	mu sync.Mutex

	cfg       config.Tuning
	ctx       context.Context
	logger    *log.Logger
	renderer  Renderer
	scheduler Scheduler
	seed      int64

	factory *entity.Factory
	state   *GameState
	broad   *broadPhase

	mailbox input.Mailbox
	fires   []physics.Vec

	phase        Phase
	handle       Handle
	generation   uint64 // bumped whenever the active tick source changes
	restartArmed bool
	closed       bool
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithRenderer sets the draw collaborator. The default is NopRenderer.
func WithRenderer(r Renderer) Option {
	return func(g *Game) { g.renderer = r }
}

// WithScheduler sets the tick source. The default is FixedRate at the
// configured tick rate.
func WithScheduler(s Scheduler) Option {
	return func(g *Game) { g.scheduler = s }
}

// WithSeed fixes the random seed for asteroid generation.
func WithSeed(seed int64) Option {
	return func(g *Game) { g.seed = seed }
}

// WithContext sets the parent context of every tick source.
func WithContext(ctx context.Context) Option {
	return func(g *Game) { g.ctx = ctx }
}

// NewGame creates a game on the title screen.
func NewGame(cfg config.Tuning, opts ...Option) *Game {
	g := &Game{
		cfg:       cfg,
		ctx:       context.Background(),
		logger:    log.New(io.Discard),
		renderer:  NopRenderer{},
		scheduler: FixedRate{Interval: cfg.TickInterval()},
		seed:      time.Now().UnixNano(),
		phase:     PhaseTitle,
	}
	for _, opt := range opts {
		opt(g)
	}

	g.factory = entity.NewFactory(cfg, g.seed)
	g.state = NewGameState(cfg, g.factory.NewPlayer())
	g.broad = newBroadPhase(cfg)
	g.fires = make([]physics.Vec, 0, cfg.Loop.FireQueue)
	return g
}

// Title redraws the title screen while no round has started.
func (g *Game) Title() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase == PhaseTitle {
		g.renderer.ShowTitle()
	}
}

// Move queues a movement command for the next tick. A newer command
// replaces an unread one.
func (g *Game) Move(cmd input.Command) {
	if cmd.IsMovement() {
		g.mailbox.Put(cmd)
	}
}

// Fire queues a shot from the ship toward target, in arena coordinates.
// It returns false outside a round or when the queue is full.
func (g *Game) Fire(target physics.Vec) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.queueFire(target)
}

// FireAhead queues a shot along the ship's heading.
func (g *Game) FireAhead() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	p := g.state.Player
	return g.queueFire(p.Pos.Add(p.Heading().Scale(fireAheadDistance)))
}

func (g *Game) queueFire(target physics.Vec) bool {
	if g.phase != PhasePlaying {
		return false
	}
	if len(g.fires) >= g.cfg.Loop.FireQueue {
		g.logger.Debug("fire queue full, shot dropped", "round", g.state.Stats.RoundID)
		return false
	}
	g.fires = append(g.fires, target)
	return true
}

// Step runs one tick synchronously. It is meant for Manual schedulers and
// returns false when no round is in progress.
func (g *Game) Step() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase != PhasePlaying || g.closed {
		return false
	}
	g.step()
	return true
}

// tick is the callback handed to the scheduler for generation gen.
func (g *Game) tick(gen uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.generation || g.phase != PhasePlaying {
		return
	}
	g.step()
}

// Phase returns the current round phase.
func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// Score returns the current (or final) round score.
func (g *Game) Score() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Score.Value()
}

// Stats returns the statistics of the current or last round.
func (g *Game) Stats() RoundStats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.statsLocked()
}

func (g *Game) statsLocked() RoundStats {
	stats := g.state.Stats
	stats.Score = g.state.Score.Value()
	return stats
}

// Close stops the active tick source, waits for it to exit and refuses
// further rounds.
func (g *Game) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	g.restartArmed = false
	g.generation++
	h := g.handle
	g.handle = nil
	g.mu.Unlock()

	if h != nil {
		h.Stop()
		<-h.Done()
	}
}
