package launcher

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/pachinko-arcade/internal/core"
	"github.com/vovakirdan/pachinko-arcade/internal/registry"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	if g.Err() != nil {
		t.Fatalf("Reset: %v", g.Err())
	}
	return g
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestLaunchTowardPointer(t *testing.T) {
	g := newTestGame(t)

	// Straight right of the launch point (400, 50)
	g.AimAt(700, 50)
	g.Launch()

	balls := g.Balls()
	if len(balls) != 1 {
		t.Fatalf("balls = %d, want 1", len(balls))
	}
	b := balls[0]
	if b.X() != 400 || b.Y() != 50 {
		t.Errorf("ball starts at (%v, %v), want (400, 50)", b.X(), b.Y())
	}
	if !near(b.Vel.X(), 300) || !near(b.Vel.Y(), 0) {
		t.Errorf("velocity = %v, want (300, 0)", b.Vel)
	}
}

func TestGravityPerFrame(t *testing.T) {
	g := newTestGame(t)
	g.AimAt(400, 500) // straight down
	g.Launch()
	g.Step(core.NewInputFrame())

	// 0.2 px/frame^2 and 5 px/frame at 60 FPS
	b := g.Balls()[0]
	if !near(b.Vel.Y(), 300+12) {
		t.Errorf("vy after one frame = %v, want 312", b.Vel.Y())
	}
	if !near(b.Y(), 50+312.0/60) {
		t.Errorf("y after one frame = %v, want %v", b.Y(), 50+312.0/60)
	}
}

func TestWallBounce(t *testing.T) {
	g := newTestGame(t)
	g.cfg.Physics.LaunchSpeed = 1000
	g.AimAt(0, 50) // straight left
	g.Launch()

	for i := 0; i < 120; i++ {
		g.Step(core.NewInputFrame())
		if len(g.Balls()) == 1 && g.Balls()[0].Vel.X() > 0 {
			if g.Balls()[0].X() < g.Balls()[0].Radius {
				t.Fatalf("ball left the field: x=%v", g.Balls()[0].X())
			}
			return
		}
	}
	t.Fatal("ball never bounced off the left wall")
}

func TestLandedBallsScore(t *testing.T) {
	g := newTestGame(t)
	launch := core.NewInputFrame()
	launch.Set(core.ActionLaunch)
	g.Step(launch)

	for i := 0; i < 600 && len(g.Balls()) > 0; i++ {
		g.Step(core.NewInputFrame())
	}
	if len(g.Balls()) != 0 {
		t.Fatal("ball never left through the floor")
	}
	if g.State().Score != 1 {
		t.Errorf("score = %d, want 1", g.State().Score)
	}
	if g.State().GameOver {
		t.Error("launcher never ends")
	}
}

func TestMaxBalls(t *testing.T) {
	g := newTestGame(t)
	limit := g.cfg.Launcher.MaxBalls
	for i := 0; i < limit+5; i++ {
		g.Launch()
	}
	if len(g.Balls()) != limit {
		t.Errorf("balls = %d, want %d", len(g.Balls()), limit)
	}
	if g.RunStats()["launched"] != limit+5 {
		t.Errorf("launched = %d, want %d", g.RunStats()["launched"], limit+5)
	}
}

func TestAimKeys(t *testing.T) {
	g := newTestGame(t)
	start := g.Aim()

	left := core.NewInputFrame()
	left.Set(core.ActionLeft)
	for i := 0; i < 10; i++ {
		g.Step(left)
	}
	if g.Aim() <= start {
		t.Errorf("left should swing the aim toward pi: %v -> %v", start, g.Aim())
	}

	for i := 0; i < 1000; i++ {
		g.Step(left)
	}
	if g.Aim() != math.Pi {
		t.Errorf("aim should clamp at pi, got %v", g.Aim())
	}
}

func TestPointerClickLaunches(t *testing.T) {
	g := newTestGame(t)
	click := core.NewInputFrame()
	click.PressPointer(70, 20)
	g.Step(click)

	if len(g.Balls()) != 1 {
		t.Fatalf("balls = %d, want 1", len(g.Balls()))
	}
	v := g.Balls()[0].Vel
	if v.X() <= 0 || v.Y() <= 0 {
		t.Errorf("ball should head down and right, got %v", v)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t)
	g.Launch()
	g.Step(core.NewInputFrame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	if !strings.ContainsRune(out, CannonChar) || !strings.ContainsRune(out, BallChar) {
		t.Errorf("cannon or ball missing:\n%s", out)
	}
	if !strings.Contains(screen.Row(0), "Launched: 1") {
		t.Errorf("HUD = %q", screen.Row(0))
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("launcher") {
		t.Fatal("launcher not registered")
	}
}

func TestResizeKeepsBalls(t *testing.T) {
	g := newTestGame(t)
	g.AimAt(400, 500)
	g.Launch()
	g.Step(core.NewInputFrame())

	g.Resize(160, 48)
	if len(g.Balls()) != 1 {
		t.Fatalf("balls = %d after resize, want 1", len(g.Balls()))
	}
	g.Step(core.NewInputFrame())
	if len(g.Balls()) != 1 || g.State().Score != 0 {
		t.Errorf("run changed on resize: balls %d, state %+v", len(g.Balls()), g.State())
	}

	// Click straight below the launcher on the wider screen
	click := core.NewInputFrame()
	click.PressPointer(80, 40)
	g.Step(click)
	if len(g.Balls()) != 2 {
		t.Fatalf("balls = %d, want 2", len(g.Balls()))
	}
	if v := g.Balls()[1].Vel; v.Y() <= 0 || math.Abs(v.X()) > 0.05*v.Y() {
		t.Errorf("velocity = %v, want straight down", v)
	}
}
