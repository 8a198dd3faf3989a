package loop

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomz197/destroid/internal/config"
	"github.com/tomz197/destroid/internal/entity"
	"github.com/tomz197/destroid/internal/input"
	"github.com/tomz197/destroid/internal/physics"
)

// recordingRenderer counts draw calls.
type recordingRenderer struct {
	NopRenderer
	frames    int
	titles    int
	gameOvers []int
}

func (r *recordingRenderer) DrawScore(int)          { r.frames++ }
func (r *recordingRenderer) ShowTitle()             { r.titles++ }
func (r *recordingRenderer) ShowGameOver(score int) { r.gameOvers = append(r.gameOvers, score) }

// recordingScheduler never ticks on its own but remembers every tick
// callback so tests can fire stale ones.
type recordingScheduler struct {
	mu      sync.Mutex
	handles []*recordedHandle
}

type recordedHandle struct {
	manualHandle
	tick func()
}

func (s *recordingScheduler) Start(_ context.Context, tick func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := &recordedHandle{manualHandle: manualHandle{done: make(chan struct{})}, tick: tick}
	s.handles = append(s.handles, h)
	return h
}

func stopped(h *recordedHandle) bool {
	select {
	case <-h.Done():
		return true
	default:
		return false
	}
}

func newTestGame(t *testing.T, opts ...Option) (*Game, *recordingRenderer) {
	t.Helper()
	r := &recordingRenderer{}
	opts = append([]Option{WithScheduler(Manual{}), WithRenderer(r), WithSeed(1)}, opts...)
	return NewGame(config.Default(), opts...), r
}

func TestSpawnTiming(t *testing.T) {
	g, _ := newTestGame(t)
	if !g.StartGame() {
		t.Fatal("StartGame failed")
	}

	for i := 1; i <= 119; i++ {
		g.Step()
		if n := len(g.Snapshot().Asteroids); n != 0 {
			t.Fatalf("tick %d: %d asteroids, want 0", i, n)
		}
	}
	g.Step()
	snap := g.Snapshot()
	if len(snap.Asteroids) != 1 {
		t.Fatalf("tick 120: %d asteroids, want 1", len(snap.Asteroids))
	}
	if snap.SpawnTimer != 120 {
		t.Fatalf("timer = %d, want 120", snap.SpawnTimer)
	}
}

func TestSpawnControllerGrowsWithScore(t *testing.T) {
	c := NewSpawnController(120)
	for range 119 {
		if n := c.Tick(0); n != 0 {
			t.Fatalf("early burst of %d", n)
		}
	}
	if n := c.Tick(130); n != 2 {
		t.Fatalf("burst = %d, want 2", n)
	}
	// The burst size never shrinks.
	for range 119 {
		c.Tick(0)
	}
	if n := c.Tick(0); n != 2 {
		t.Fatalf("burst = %d after score dropped, want 2", n)
	}
}

func TestScoreLedger(t *testing.T) {
	l := NewScoreLedger(3)
	l.Add(2)
	if l.Value() != 6 {
		t.Fatalf("got %d, want 6", l.Value())
	}
	l.Add(-5)
	if l.Value() != 6 {
		t.Fatalf("score decreased to %d", l.Value())
	}
	l.Reset()
	if l.Value() != 0 {
		t.Fatalf("got %d after reset", l.Value())
	}
}

func TestAsteroidPoints(t *testing.T) {
	f := entity.NewFactory(config.Default(), 1)
	a := f.NewAsteroidAt(physics.Vec{}, physics.Vec{}, 20)
	for _, c := range []struct {
		speed float64
		want  int
	}{
		{0, 1},
		{2.9, 2}, // 2.9/2 = 1.45 -> 1
		{3.1, 3}, // 1.55 -> 2
		{-5, 4},  // |-2.5| -> 3
	} {
		a.EffectiveSpeed = c.speed
		if got := AsteroidPoints(a); got != c.want {
			t.Errorf("speed %v: got %d, want %d", c.speed, got, c.want)
		}
	}
}

func TestCollisionPredicates(t *testing.T) {
	f := entity.NewFactory(config.Default(), 1)
	a := f.NewAsteroidAt(physics.Vec{X: 100, Y: 100}, physics.Vec{}, 32)

	p := f.NewProjectile(physics.Vec{X: 100, Y: 100}, physics.Vec{X: 0, Y: 0})
	if !ProjectileHits(p, a) {
		t.Error("projectile at asteroid center should hit")
	}
	p.Pos = physics.Vec{X: 200, Y: 100}
	if ProjectileHits(p, a) {
		t.Error("projectile at (200,100) should miss")
	}

	pl := entity.NewPlayer(800, 10, 48)
	pl.Pos = physics.Vec{X: 124, Y: 100}
	if !PlayerHit(pl, a) {
		t.Error("player half width should be used when larger")
	}
	pl.Pos = physics.Vec{X: 125, Y: 100}
	if PlayerHit(pl, a) {
		t.Error("player at 25 units should miss")
	}
}

func TestProjectileDestroysAsteroid(t *testing.T) {
	g, _ := newTestGame(t)
	g.StartGame()

	a := g.factory.NewAsteroidAt(physics.Vec{X: 500, Y: 400}, physics.Vec{X: 500, Y: 400}, 64)
	g.state.Asteroids[a.ID()] = a
	if !g.Fire(physics.Vec{X: 500, Y: 400}) {
		t.Fatal("Fire rejected")
	}

	for i := 0; i < 30 && len(g.Snapshot().Asteroids) > 0; i++ {
		g.Step()
	}
	snap := g.Snapshot()
	if len(snap.Asteroids) != 0 || len(snap.Projectiles) != 0 {
		t.Fatalf("asteroids=%d projectiles=%d, want both gone", len(snap.Asteroids), len(snap.Projectiles))
	}
	if snap.Stats.Score != 3 || snap.Stats.Destroyed != 1 || snap.Stats.ShotsFired != 1 {
		t.Fatalf("stats %+v, want score 3, 1 destroyed, 1 shot", snap.Stats)
	}
	if snap.Phase != PhasePlaying {
		t.Fatalf("phase %v", snap.Phase)
	}
}

func TestLowestIDAsteroidWins(t *testing.T) {
	g, _ := newTestGame(t)
	g.StartGame()

	far := physics.Vec{X: -700, Y: -700}
	first := g.factory.NewAsteroidAt(physics.Vec{X: 600, Y: 600}, far, 64)
	second := g.factory.NewAsteroidAt(physics.Vec{X: 605, Y: 600}, far, 64)
	g.state.Asteroids[second.ID()] = second
	g.state.Asteroids[first.ID()] = first
	p := g.factory.NewProjectile(physics.Vec{X: 600, Y: 600}, physics.Vec{X: 800, Y: 800})
	g.state.Projectiles[p.ID()] = p

	g.Step()

	snap := g.Snapshot()
	if len(snap.Asteroids) != 1 || snap.Asteroids[0].ID != second.ID() {
		t.Fatalf("got %+v, want only asteroid %d left", snap.Asteroids, second.ID())
	}
	if len(snap.Projectiles) != 0 {
		t.Fatalf("projectile survived: %+v", snap.Projectiles)
	}
	if snap.Stats.Score != 3 {
		t.Fatalf("score %d, want 3", snap.Stats.Score)
	}
}

func TestAsteroidScoredOnceForTwoProjectiles(t *testing.T) {
	g, _ := newTestGame(t)
	g.StartGame()

	first := g.factory.NewProjectile(physics.Vec{X: 600, Y: 600}, physics.Vec{X: 800, Y: 800})
	second := g.factory.NewProjectile(physics.Vec{X: 601, Y: 600}, physics.Vec{X: 801, Y: 800})
	g.state.Projectiles[first.ID()] = first
	g.state.Projectiles[second.ID()] = second
	a := g.factory.NewAsteroidAt(physics.Vec{X: 600, Y: 600}, physics.Vec{X: -700, Y: -700}, 64)
	g.state.Asteroids[a.ID()] = a
	want := AsteroidPoints(a) * g.cfg.Score.Multiplier

	g.Step()

	snap := g.Snapshot()
	if snap.Stats.Score != want {
		t.Fatalf("score %d, want %d", snap.Stats.Score, want)
	}
	if snap.Stats.Destroyed != 1 {
		t.Fatalf("destroyed %d, want 1", snap.Stats.Destroyed)
	}
	if len(snap.Asteroids) != 0 {
		t.Fatalf("asteroid survived: %+v", snap.Asteroids)
	}
	if len(snap.Projectiles) != 1 || snap.Projectiles[0].ID != second.ID() {
		t.Fatalf("got %+v, want only projectile %d left", snap.Projectiles, second.ID())
	}
	if snap.Projectiles[0].Pos == (physics.Vec{X: 601, Y: 600}) {
		t.Fatal("surviving projectile did not move")
	}
}

func TestProjectileFloorAfterTick(t *testing.T) {
	g, _ := newTestGame(t)
	g.StartGame()
	targets := []physics.Vec{{X: 401, Y: 400}, {X: 400, Y: 399}, {X: 0, Y: 405}, {X: 400, Y: 400}, {X: 700, Y: 100}}
	for _, tgt := range targets {
		g.Fire(tgt)
	}
	g.Step()
	first := g.Snapshot().Projectiles
	if len(first) != len(targets) {
		t.Fatalf("got %d projectiles, want %d", len(first), len(targets))
	}
	for range 3 {
		g.Step()
	}
	later := g.Snapshot().Projectiles
	for i, p := range later {
		if abs(p.Delta.X) < 15 || abs(p.Delta.Y) < 15 {
			t.Errorf("projectile %d delta %v below floor", p.ID, p.Delta)
		}
		if p.Delta != first[i].Delta {
			t.Errorf("projectile %d delta changed %v -> %v", p.ID, first[i].Delta, p.Delta)
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestAsteroidCollisionEndsRound(t *testing.T) {
	g, r := newTestGame(t)
	g.StartGame()

	a := g.factory.NewAsteroidAt(physics.Vec{X: 410, Y: 400}, physics.Vec{X: -400, Y: 400}, 32)
	g.state.Asteroids[a.ID()] = a
	p := g.factory.NewProjectile(physics.Vec{X: 100, Y: 100}, physics.Vec{X: 0, Y: 0})
	g.state.Projectiles[p.ID()] = p
	g.state.Score.Add(4)
	framesBefore := r.frames

	g.Step()

	snap := g.Snapshot()
	if snap.Phase != PhaseGameOver {
		t.Fatalf("phase %v, want game over", snap.Phase)
	}
	if len(snap.Asteroids) != 0 || len(snap.Projectiles) != 0 {
		t.Fatal("entities not cleared")
	}
	if snap.Player != (physics.Vec{X: 400, Y: 400}) {
		t.Fatalf("player at %v, want center", snap.Player)
	}
	if len(r.gameOvers) != 1 || r.gameOvers[0] != 12 {
		t.Fatalf("ShowGameOver calls %v, want [12]", r.gameOvers)
	}
	if r.frames != framesBefore {
		t.Fatal("frame completed after the round ended")
	}
	if g.Step() {
		t.Fatal("Step ran during game over")
	}
}

func TestEndGameIdempotent(t *testing.T) {
	sched := &recordingScheduler{}
	g, r := newTestGame(t, WithScheduler(sched))

	if g.EndGame() {
		t.Fatal("EndGame succeeded from the title screen")
	}
	g.StartGame()
	if !g.EndGame() {
		t.Fatal("EndGame failed while playing")
	}
	if g.EndGame() {
		t.Fatal("second EndGame ran teardown again")
	}
	if len(r.gameOvers) != 1 {
		t.Fatalf("ShowGameOver called %d times, want 1", len(r.gameOvers))
	}
	if !stopped(sched.handles[0]) {
		t.Fatal("tick handle not stopped by EndGame")
	}

	if !g.Restart(input.CommandRestart) {
		t.Fatal("Restart failed")
	}
	if g.Restart(input.CommandRestart) {
		t.Fatal("second restart accepted")
	}
	if len(sched.handles) != 2 {
		t.Fatalf("%d handles started, want 2", len(sched.handles))
	}
}

func TestTransitionsRejected(t *testing.T) {
	g, _ := newTestGame(t)

	if g.Restart(input.CommandRestart) {
		t.Fatal("restart accepted on title screen")
	}
	if !g.StartGame() {
		t.Fatal("StartGame failed")
	}
	if g.StartGame() {
		t.Fatal("second StartGame accepted")
	}
	if g.Restart(input.CommandRestart) {
		t.Fatal("restart accepted while playing")
	}
	g.EndGame()
	if g.Restart(input.CommandStart) || g.Restart(input.CommandUp) {
		t.Fatal("restart accepted for a non-restart command")
	}
	if g.StartGame() {
		t.Fatal("StartGame accepted after game over")
	}
	if g.Fire(physics.Vec{}) {
		t.Fatal("Fire accepted during game over")
	}
	if g.Phase() != PhaseGameOver {
		t.Fatalf("phase %v", g.Phase())
	}
}

func TestRestartReplacesTickSource(t *testing.T) {
	sched := &recordingScheduler{}
	g, _ := newTestGame(t, WithScheduler(sched))
	g.StartGame()
	g.state.Score.Add(10)
	old := sched.handles[0]

	old.tick()
	if got := g.Stats().Ticks; got != 1 {
		t.Fatalf("ticks = %d, want 1", got)
	}

	g.EndGame()
	if !g.Restart(input.CommandRestart) {
		t.Fatal("Restart failed")
	}
	if len(sched.handles) != 2 {
		t.Fatalf("%d handles, want 2", len(sched.handles))
	}
	if !stopped(old) {
		t.Fatal("previous handle not stopped")
	}
	if stopped(sched.handles[1]) {
		t.Fatal("new handle already stopped")
	}

	// A late tick from the old source must not touch the new round.
	old.tick()
	stats := g.Stats()
	if stats.Ticks != 0 || stats.Score != 0 {
		t.Fatalf("stale tick mutated new round: %+v", stats)
	}
	sched.handles[1].tick()
	if g.Stats().Ticks != 1 {
		t.Fatal("current handle did not tick")
	}
}

func TestFireQueueBounded(t *testing.T) {
	g, _ := newTestGame(t)
	g.StartGame()
	accepted := 0
	for range 20 {
		if g.Fire(physics.Vec{X: 10, Y: 10}) {
			accepted++
		}
	}
	if accepted != 16 {
		t.Fatalf("accepted %d shots, want 16", accepted)
	}
	g.Step()
	if n := len(g.Snapshot().Projectiles); n != 16 {
		t.Fatalf("%d projectiles, want 16", n)
	}
	if !g.FireAhead() {
		t.Fatal("queue not drained by Step")
	}
}

func TestMoveLastWriteWins(t *testing.T) {
	g, _ := newTestGame(t)
	g.StartGame()
	g.Move(input.CommandUp)
	g.Move(input.CommandLeft)
	g.Move(input.CommandRestart) // ignored
	g.Step()
	snap := g.Snapshot()
	if snap.Player != (physics.Vec{X: 390, Y: 400}) || snap.Orientation != 270 {
		t.Fatalf("player %v facing %d, want (390,400) facing 270", snap.Player, snap.Orientation)
	}
	g.Step()
	if g.Snapshot().Player.X != 390 {
		t.Fatal("movement command applied twice")
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() Snapshot {
		g := NewGame(config.Default(), WithScheduler(Manual{}), WithSeed(99))
		g.StartGame()
		script := []input.Command{input.CommandUp, input.CommandRight, input.CommandNone, input.CommandDown}
		for i := range 1500 {
			g.Move(script[i%len(script)])
			if i%45 == 0 {
				g.Fire(physics.Vec{X: float64(i % 800), Y: float64((i * 7) % 800)})
			}
			if !g.Step() {
				break
			}
		}
		snap := g.Snapshot()
		snap.Stats.RoundID = ""
		return snap
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("runs diverged:\n%+v\n%+v", a, b)
	}
	if a.Stats.Spawned == 0 {
		t.Fatal("nothing spawned in 1500 ticks")
	}
}

func TestTitle(t *testing.T) {
	g, r := newTestGame(t)
	g.Title()
	g.StartGame()
	g.Title()
	if r.titles != 1 {
		t.Fatalf("ShowTitle called %d times, want 1", r.titles)
	}
}

func TestStepAfterClose(t *testing.T) {
	g, _ := newTestGame(t)
	g.StartGame()
	g.Close()
	if g.Step() {
		t.Fatal("Step advanced a closed game")
	}
	if ticks := g.Stats().Ticks; ticks != 0 {
		t.Fatalf("ticks = %d after Close, want 0", ticks)
	}
}

func TestCloseRefusesRounds(t *testing.T) {
	sched := &recordingScheduler{}
	g, _ := newTestGame(t, WithScheduler(sched))
	g.StartGame()
	g.EndGame()
	g.Close()
	if g.Restart(input.CommandRestart) {
		t.Fatal("restart accepted after Close")
	}
	g.Close()
}

func TestFixedRateTicksUntilStopped(t *testing.T) {
	var n atomic.Int64
	h := FixedRate{Interval: time.Millisecond}.Start(context.Background(), func() { n.Add(1) })

	deadline := time.Now().Add(2 * time.Second)
	for n.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if n.Load() < 3 {
		t.Fatalf("only %d ticks", n.Load())
	}

	h.Stop()
	h.Stop()
	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not exit")
	}
	after := n.Load()
	time.Sleep(10 * time.Millisecond)
	if n.Load() != after {
		t.Fatal("ticked after Done")
	}
}

func TestFixedRateStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := FixedRate{Interval: time.Millisecond}.Start(ctx, func() {})
	cancel()
	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("loop ignored context cancellation")
	}
}

func TestRealtimeRoundLifecycle(t *testing.T) {
	cfg := config.Default()
	cfg.Loop.TickRate = 1000
	g := NewGame(cfg, WithSeed(5))
	defer g.Close()

	g.StartGame()
	deadline := time.Now().Add(2 * time.Second)
	for g.Stats().Ticks < 5 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if g.Stats().Ticks < 5 {
		t.Fatal("fixed-rate round did not tick")
	}

	g.EndGame()
	if !g.Restart(input.CommandRestart) {
		t.Fatal("Restart failed")
	}
	for g.Stats().Ticks < 5 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase %v after restart", g.Phase())
	}
}
