// Package launcher implements the gravity launcher toy: click (or aim with
// the arrow keys and press Space) to fire a ball from the top of the field.
// Balls fall under gravity, bounce off the side and top walls, and count as
// landed when they drop through the floor. There is no game over.
package launcher

import (
	"fmt"
	"math"

	"github.com/vovakirdan/pachinko-arcade/internal/config"
	"github.com/vovakirdan/pachinko-arcade/internal/core"
	"github.com/vovakirdan/pachinko-arcade/internal/physics"
	"github.com/vovakirdan/pachinko-arcade/internal/registry"
)

// Visual characters for rendering
const (
	CannonChar = '▼'
	BallChar   = '●'
	AimChar    = '·'
	WallChar   = '│'
	CeilChar   = '─'
)

const (
	minScreenW = 30
	minScreenH = 12
	aimDots    = 6
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game implements the launcher logic.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.LauncherConfig
	view    core.Viewport
	err     error

	balls    []physics.Body
	aim      float64 // Radians; 0 points right, pi/2 straight down
	launched int
	landed   int
	bounces  int
	ticks    int
	dt       float64

	paused         bool
	screenTooSmall bool
}

// New creates a new launcher instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "launcher"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Gravity Launcher"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.err = nil
	g.balls = g.balls[:0]
	g.aim = math.Pi / 2
	g.launched = 0
	g.landed = 0
	g.bounces = 0
	g.ticks = 0
	g.paused = false
	g.dt = runtime.FrameSeconds()
	g.screenTooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH

	cfg, err := config.LoadLauncher(configPath)
	if err != nil {
		g.err = err
		return
	}
	g.cfg = cfg
	g.view = fieldView(cfg.Field, runtime.ScreenW, runtime.ScreenH)
}

// Resize refits the field to a new screen size; balls in flight are kept.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW, g.runtime.ScreenH = width, height
	g.screenTooSmall = width < minScreenW || height < minScreenH
	if g.err == nil {
		g.view = fieldView(g.cfg.Field, width, height)
	}
}

func fieldView(field config.FieldConfig, width, height int) core.Viewport {
	return core.NewViewport(field.Width, field.Height, core.NewRect(0, 1, width, height-1))
}

// Err returns the setup error, if any.
func (g *Game) Err() error {
	return g.err
}

// origin returns the launch point.
func (g *Game) origin() (float64, float64) {
	return g.cfg.Field.Width / 2, g.cfg.Launcher.Y
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.err != nil || g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.ticks++

	// Keys sweep the aim across the lower half circle
	if in.Has(core.ActionLeft) {
		g.aim = core.ClampF(g.aim+g.cfg.Launcher.AimSpeed*g.dt, 0, math.Pi)
	}
	if in.Has(core.ActionRight) {
		g.aim = core.ClampF(g.aim-g.cfg.Launcher.AimSpeed*g.dt, 0, math.Pi)
	}

	if in.Pointer.Moved {
		x, y := g.view.ToWorld(in.Pointer.X, in.Pointer.Y)
		g.AimAt(x, y)
	}
	if in.Pointer.Down || in.Has(core.ActionLaunch) {
		g.Launch()
	}

	g.update()
	return core.StepResult{State: g.State()}
}

// AimAt points the cannon at world position (x, y).
func (g *Game) AimAt(x, y float64) {
	ox, oy := g.origin()
	if x == ox && y == oy {
		return
	}
	g.aim = math.Atan2(y-oy, x-ox)
}

// Launch fires a ball along the current aim. The oldest ball is dropped once
// MaxBalls are in flight.
func (g *Game) Launch() {
	ox, oy := g.origin()
	v := physics.FromAngle(g.aim, g.cfg.Physics.LaunchSpeed)
	ball := physics.NewBody(ox, oy, v.X(), v.Y(), g.cfg.Launcher.BallRadius, g.cfg.Physics.Bounce)

	if len(g.balls) >= g.cfg.Launcher.MaxBalls {
		copy(g.balls, g.balls[1:])
		g.balls = g.balls[:len(g.balls)-1]
	}
	g.balls = append(g.balls, ball)
	g.launched++
}

// update integrates every ball, bounces it off the walls and removes the
// ones that fell through the floor.
func (g *Game) update() {
	w, h := g.cfg.Field.Width, g.cfg.Field.Height
	walls := physics.Walls{Left: true, Right: true, Top: true}

	live := g.balls[:0]
	for _, b := range g.balls {
		b.Integrate(g.cfg.Physics.Gravity, g.dt)
		if physics.BounceWalls(&b, w, h, walls) {
			g.bounces++
		}
		if b.Y()-b.Radius > h {
			g.landed++
			continue
		}
		live = append(live, b)
	}
	g.balls = live
}

// Balls returns the balls in flight. The slice is owned by the game.
func (g *Game) Balls() []physics.Body {
	return g.balls
}

// Aim returns the current aim angle in radians.
func (g *Game) Aim() float64 {
	return g.aim
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		dst.DrawTextCentered(dst.Height()/2-1, "Cannot start "+g.Title())
		dst.DrawTextCentered(dst.Height()/2+1, g.err.Error())
		return
	}
	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	r := g.view.Screen
	for y := r.Y; y < r.Bottom(); y++ {
		dst.SetColor(r.X, y, WallChar, core.ColorGray)
		dst.SetColor(r.Right()-1, y, WallChar, core.ColorGray)
	}
	for x := r.X + 1; x < r.Right()-1; x++ {
		dst.SetColor(x, r.Y, CeilChar, core.ColorGray)
	}

	// Aim guide
	ox, oy := g.origin()
	step := g.cfg.Field.Height / 20
	for i := 1; i <= aimDots; i++ {
		d := physics.FromAngle(g.aim, step*float64(i))
		x, y := g.view.ToCell(ox+d.X(), oy+d.Y())
		dst.SetColor(x, y, AimChar, core.ColorGray)
	}

	for _, b := range g.balls {
		x, y := g.view.ToCell(b.X(), b.Y())
		dst.SetColor(x, y, BallChar, core.ColorCyan)
	}

	cx, cy := g.view.ToCell(ox, oy)
	dst.SetColor(cx, cy, CannonChar, core.ColorGold)

	dst.DrawText(1, 0, fmt.Sprintf(" Landed: %d  Launched: %d ", g.landed, g.launched))
	title := " " + g.Title() + " "
	dst.DrawText(dst.Width()-len(title)-1, 0, title)

	if g.paused {
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	}
}

// State returns the current game state. The launcher never ends.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.landed,
		Paused: g.paused,
	}
}

// RunStats reports run counters for the runs table.
func (g *Game) RunStats() map[string]int {
	return map[string]int{
		"launched": g.launched,
		"landed":   g.landed,
		"bounces":  g.bounces,
		"ticks":    g.ticks,
	}
}

// Register the game with the registry
func init() {
	registry.Register("launcher", func() registry.Game {
		return New()
	})
}
