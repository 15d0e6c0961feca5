package pachinko

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/pachinko-arcade/internal/config"
	"github.com/vovakirdan/pachinko-arcade/internal/sched"
)

// newQuietSession returns a session with no pegs and a spawner that never
// fires during a test, so only explicitly dropped entities move.
func newQuietSession(t *testing.T, mutate func(*config.PachinkoConfig)) *Session {
	t.Helper()
	cfg := config.DefaultPachinkoConfig()
	cfg.Spawner.DelayMs = 10_000_000
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := NewSession(cfg, 1, 60)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	s.resolver.pegs = nil
	return s
}

func stepUntil(s *Session, in Input, maxFrames int, done func([]Event) bool) bool {
	for i := 0; i < maxFrames; i++ {
		if done(s.Step(in)) {
			return true
		}
	}
	return false
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func TestBallFallsIntoBasket(t *testing.T) {
	// Ball spawned at (200, 20) with the pointer steering the basket to x=200
	s := newQuietSession(t, nil)
	e := s.Drop(KindBall, 200, 20, 0, 0)

	in := Input{TargetX: 200, HasTarget: true}
	caught := stepUntil(s, in, 300, func(evs []Event) bool { return hasEvent(evs, EventCatch) })
	if !caught {
		t.Fatalf("ball never reached the basket; entities=%d", len(s.Entities()))
	}

	if s.Score() != 10 {
		t.Errorf("score = %d, want 10", s.Score())
	}
	if s.Lives() != 3 {
		t.Errorf("lives = %d, want 3", s.Lives())
	}
	for _, live := range s.Entities() {
		if live.ID == e.ID {
			t.Error("caught ball is still live")
		}
	}
	if got := s.Basket().Y; got != 590 {
		t.Errorf("basket y = %v, want 590", got)
	}
}

func TestBombCostsLife(t *testing.T) {
	s := newQuietSession(t, nil)
	s.Drop(KindBomb, s.Basket().X, 20, 0, 0)

	hit := stepUntil(s, Input{}, 300, func(evs []Event) bool { return hasEvent(evs, EventBomb) })
	if !hit {
		t.Fatal("bomb never reached the basket")
	}
	if s.Lives() != 2 {
		t.Errorf("lives = %d, want 2", s.Lives())
	}
	if s.Score() != 0 {
		t.Errorf("score = %d, want 0", s.Score())
	}
	if s.GameOver() {
		t.Error("game over with lives left")
	}
	if !s.Effects().Shaking() {
		t.Error("bomb should start a camera shake")
	}
}

func TestGameOverOnlyAtZeroLives(t *testing.T) {
	s := newQuietSession(t, nil)

	for want := 2; want >= 0; want-- {
		s.Drop(KindBomb, s.Basket().X, 560, 0, 0)
		s.Step(Input{})
		if s.Lives() != want {
			t.Fatalf("lives = %d, want %d", s.Lives(), want)
		}
		if s.GameOver() != (want == 0) {
			t.Fatalf("GameOver = %v with %d lives", s.GameOver(), want)
		}
	}

	if s.Spawner().State() != SpawnerStopped {
		t.Error("spawner should be stopped after game over")
	}
	if s.Spawner().Timer().Active() {
		t.Error("spawner timer should be cancelled after game over")
	}
	if s.PendingTimers() != 0 {
		t.Errorf("pending timers = %d, want 0", s.PendingTimers())
	}
}

func TestSameFrameEventsAfterGameOver(t *testing.T) {
	s := newQuietSession(t, func(c *config.PachinkoConfig) { c.Gameplay.Lives = 1 })

	x := s.Basket().X
	s.Drop(KindBomb, x, 560, 0, 0)
	s.Drop(KindBomb, x, 560, 0, 0)
	s.Drop(KindBall, x, 560, 0, 0)

	events := s.Step(Input{})
	if !hasEvent(events, EventGameOver) {
		t.Fatal("expected game over event")
	}
	if s.Lives() != 0 {
		t.Errorf("lives = %d, want 0", s.Lives())
	}
	if s.Score() != 0 {
		t.Errorf("score = %d, catches after game over must not count", s.Score())
	}
	if s.Stats().Bombs != 1 {
		t.Errorf("bombs counted = %d, want 1", s.Stats().Bombs)
	}
}

func TestNoChangesAfterGameOver(t *testing.T) {
	s := newQuietSession(t, func(c *config.PachinkoConfig) { c.Gameplay.Lives = 1 })

	s.Drop(KindBall, 100, 100, 30, 0)
	s.Drop(KindBomb, s.Basket().X, 560, 0, 0)
	s.Step(Input{})
	if !s.GameOver() {
		t.Fatal("expected game over")
	}

	before := s.Snapshot()
	for i := 0; i < 120; i++ {
		s.Step(Input{TargetX: 50, HasTarget: true, Dir: 1})
	}
	after := s.Snapshot()

	if before.Hash() != after.Hash() {
		t.Errorf("state changed after game over: %+v -> %+v", before, after)
	}
	if s.Drop(KindBall, 10, 10, 0, 0) != nil {
		t.Error("Drop should be ignored after game over")
	}
	if s.Stats().Spawned != 2 {
		t.Errorf("spawned = %d, want 2", s.Stats().Spawned)
	}
}

func TestMissPrunedWithinOneFrame(t *testing.T) {
	s := newQuietSession(t, nil)
	s.Drop(KindBall, 50, 629, 0, 100)

	events := s.Step(Input{})
	if !hasEvent(events, EventMiss) {
		t.Fatalf("expected miss event, got %v", events)
	}
	if len(s.Entities()) != 0 {
		t.Errorf("entities = %d, want 0", len(s.Entities()))
	}
	if s.Score() != 0 || s.Lives() != 3 {
		t.Errorf("miss changed score/lives: %d/%d", s.Score(), s.Lives())
	}
	if s.Stats().Missed != 1 {
		t.Errorf("missed = %d, want 1", s.Stats().Missed)
	}
}

func TestRestart(t *testing.T) {
	s := newQuietSession(t, func(c *config.PachinkoConfig) { c.Gameplay.Lives = 1 })

	s.Drop(KindBall, s.Basket().X, 560, 0, 0)
	s.Step(Input{})
	s.Drop(KindBomb, s.Basket().X, 560, 0, 0)
	s.Drop(KindBall, 100, 100, 0, 0)
	s.Step(Input{})
	if !s.GameOver() || s.Score() != 10 {
		t.Fatalf("setup failed: gameOver=%v score=%d", s.GameOver(), s.Score())
	}
	lastID := s.Spawner().NextID()

	s.Step(Input{Restart: true})

	if s.GameOver() {
		t.Error("restart should leave game over")
	}
	if s.Score() != 0 || s.Lives() != 1 {
		t.Errorf("score/lives after restart = %d/%d, want 0/1", s.Score(), s.Lives())
	}
	if len(s.Entities()) != 0 {
		t.Errorf("entities after restart = %d", len(s.Entities()))
	}
	if len(s.Effects().Items()) != 0 {
		t.Error("effects should be cleared on restart")
	}
	if s.Spawner().State() != SpawnerActive || s.PendingTimers() != 1 {
		t.Errorf("spawner not re-armed: state=%v timers=%d", s.Spawner().State(), s.PendingTimers())
	}
	if e := s.Drop(KindBall, 10, 10, 0, 0); e == nil || e.ID < lastID {
		t.Error("entity IDs must keep increasing across restarts")
	}
}

func TestRestartIgnoredWhilePlaying(t *testing.T) {
	s := newQuietSession(t, nil)
	s.Drop(KindBall, s.Basket().X, 560, 0, 0)
	s.Step(Input{})
	s.Step(Input{Restart: true})
	if s.Score() != 10 {
		t.Errorf("score = %d, restart input must not reset a running game", s.Score())
	}
}

func TestSpawnerTiming(t *testing.T) {
	cfg := config.DefaultPachinkoConfig()
	s, err := NewSession(cfg, 42, 60)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 60; i++ {
		s.Step(Input{})
	}
	if got := s.Stats().Spawned; got != 0 {
		t.Fatalf("spawned %d before the first second elapsed", got)
	}

	s.Step(Input{})
	if got := s.Stats().Spawned; got != 1 {
		t.Fatalf("spawned = %d after one second, want 1", got)
	}

	e := s.Entities()[0]
	if e.Body.X() < 50 || e.Body.X() > 750 {
		t.Errorf("spawn x = %v, want within [50, 750]", e.Body.X())
	}
	if e.Body.Y() < 20 || e.Body.Y() > 21 {
		t.Errorf("spawn y = %v, want just below 20", e.Body.Y())
	}
	if e.Body.Radius != 15 {
		t.Errorf("radius = %v, want 15", e.Body.Radius)
	}
}

func TestEntityIDsUnique(t *testing.T) {
	s, err := NewSession(config.DefaultPachinkoConfig(), 3, 60)
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[uint64]bool)
	for i := 0; i < 60*20; i++ {
		s.Step(Input{TargetX: float64(i % 800), HasTarget: true})
		if s.GameOver() {
			s.Step(Input{Restart: true})
		}
		var prev uint64
		for _, e := range s.Entities() {
			if e.ID <= prev {
				t.Fatalf("entity IDs not increasing: %d after %d", e.ID, prev)
			}
			prev = e.ID
			seen[e.ID] = true
		}
	}
	if len(seen) == 0 {
		t.Fatal("no entities spawned in 20 seconds")
	}
}

func TestSpawnerDistribution(t *testing.T) {
	cfg := config.DefaultPachinkoConfig().Spawner
	clock := sched.New()

	var spawned []*Entity
	sp := NewSpawner(cfg, 800, rand.New(rand.NewSource(7)), clock, func(e *Entity) {
		spawned = append(spawned, e)
	})
	sp.Start()

	const n = 2000
	for i := 0; i < n; i++ {
		clock.Advance(time.Second)
	}
	if len(spawned) != n {
		t.Fatalf("spawned %d, want %d", len(spawned), n)
	}

	bombs := 0
	for _, e := range spawned {
		if e.Body.X() < 50 || e.Body.X() > 750 {
			t.Fatalf("x = %v out of range", e.Body.X())
		}
		switch e.Kind {
		case KindBomb:
			bombs++
			if e.Body.Vel.X() != 0 {
				t.Fatalf("bomb vx = %v, want 0", e.Body.Vel.X())
			}
			if e.Body.Bounce < 0.5 || e.Body.Bounce >= 0.7 {
				t.Fatalf("bomb bounce = %v", e.Body.Bounce)
			}
		case KindBall:
			vx := e.Body.Vel.X()
			if vx < -50 || vx > 50 || vx != float64(int(vx)) {
				t.Fatalf("ball vx = %v, want integer in [-50, 50]", vx)
			}
			if e.Body.Bounce < 0.7 || e.Body.Bounce >= 0.9 {
				t.Fatalf("ball bounce = %v", e.Body.Bounce)
			}
		}
	}

	ratio := float64(bombs) / n
	if ratio < 0.25 || ratio > 0.35 {
		t.Errorf("bomb ratio = %.3f, want about 0.3", ratio)
	}

	sp.Stop()
	clock.Advance(10 * time.Second)
	if len(spawned) != n {
		t.Errorf("spawner kept spawning after Stop")
	}

	sp.Start()
	clock.Advance(time.Second)
	if len(spawned) != n+1 {
		t.Errorf("spawner did not resume after Start")
	}
}

func TestPegBounce(t *testing.T) {
	cfg := config.DefaultPachinkoConfig()
	cfg.Spawner.DelayMs = 10_000_000
	s, err := NewSession(cfg, 1, 60)
	if err != nil {
		t.Fatal(err)
	}

	peg := s.Pegs()[0]
	s.Drop(KindBall, peg.Pos.X(), peg.Pos.Y()-40, 0, 0)

	bounced := stepUntil(s, Input{}, 60, func(evs []Event) bool { return hasEvent(evs, EventBounce) })
	if !bounced {
		t.Fatal("ball never bounced off the peg")
	}
	if s.Score() != 0 || s.Lives() != 3 {
		t.Errorf("bounce changed score/lives: %d/%d", s.Score(), s.Lives())
	}
	e := s.Entities()[0]
	if e.Body.Vel.Y() >= 0 {
		t.Errorf("vy after bounce = %v, want upward", e.Body.Vel.Y())
	}
	if len(s.Effects().Items()) == 0 {
		t.Error("bounce should emit effects")
	}
}

func TestSideWalls(t *testing.T) {
	s := newQuietSession(t, nil)
	s.Drop(KindBall, 20, 100, -200, 0)

	hit := stepUntil(s, Input{}, 30, func(evs []Event) bool { return hasEvent(evs, EventWall) })
	if !hit {
		t.Fatal("ball never hit the left wall")
	}
	e := s.Entities()[0]
	if e.Body.Vel.X() <= 0 {
		t.Errorf("vx after wall = %v, want positive", e.Body.Vel.X())
	}
	if e.Body.X() < e.Body.Radius {
		t.Errorf("ball left the field: x=%v", e.Body.X())
	}
}

func TestBasketSmoothingAndClamp(t *testing.T) {
	b := NewBasket(config.DefaultPachinkoConfig().Basket, 800, 600)
	if b.X != 400 {
		t.Fatalf("basket starts at %v, want 400", b.X)
	}

	b.SetTarget(0)
	if b.TargetX != 62.5 {
		t.Errorf("target clamped to %v, want 62.5", b.TargetX)
	}
	b.Update()
	if b.X != 332.5 {
		t.Errorf("x after one frame = %v, want 332.5", b.X)
	}

	b.SetTarget(1000)
	if b.TargetX != 737.5 {
		t.Errorf("target clamped to %v, want 737.5", b.TargetX)
	}
}

func TestKeyboardMovesBasket(t *testing.T) {
	s := newQuietSession(t, nil)
	start := s.Basket().X
	for i := 0; i < 30; i++ {
		s.Step(Input{Dir: -1})
	}
	if s.Basket().X >= start {
		t.Errorf("basket did not move left: %v -> %v", start, s.Basket().X)
	}
}

func TestNewSessionErrors(t *testing.T) {
	cfg := config.DefaultPachinkoConfig()
	cfg.Grid.Rows = 0
	if _, err := NewSession(cfg, 1, 60); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("rows=0: err = %v, want ErrInvalidConfig", err)
	}

	cfg = config.DefaultPachinkoConfig()
	cfg.Grid.StartY = 590
	if _, err := NewSession(cfg, 1, 60); !errors.Is(err, ErrInvalidGrid) {
		t.Errorf("off-field grid: err = %v, want ErrInvalidGrid", err)
	}

	if _, err := NewSession(config.DefaultPachinkoConfig(), 1, 0); err == nil {
		t.Error("expected error for zero tick rate")
	}
}

func TestDifficultyShortensSpawnDelay(t *testing.T) {
	cfg := config.DefaultPachinkoConfig()
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = 1

	s, err := NewSession(cfg, 1, 60)
	if err != nil {
		t.Fatal(err)
	}
	s.Step(Input{})
	if got := s.Spawner().Timer().Delay(); got != 500*time.Millisecond {
		t.Errorf("spawn delay = %v, want 500ms at max difficulty", got)
	}
	if got := s.Spawner().BombChance(); got <= cfg.Spawner.BombChance {
		t.Errorf("bomb chance = %v, want above base", got)
	}
}
