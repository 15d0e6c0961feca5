// Package pachinko implements the pegboard catch games: items fall through a
// staggered grid of pegs and the player moves a basket to catch balls and
// dodge bombs. Two layouts are registered, "pachinko" and "peggle".
package pachinko

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/pachinko-arcade/internal/config"
	"github.com/vovakirdan/pachinko-arcade/internal/core"
	"github.com/vovakirdan/pachinko-arcade/internal/registry"
)

// Visual characters for rendering
const (
	PegChar       = 'o'
	BallChar      = '●'
	BombChar      = '◉'
	ParticleChar  = '·'
	FlashChar     = '✦'
	ExplosionChar = '✸'
	BasketFloor   = '▁'
	BasketLeft    = '\\'
	BasketRight   = '/'
	WallChar      = '│'
	HeartChar     = '♥'
)

// Minimum terminal size for a readable board.
const (
	minScreenW = 40
	minScreenH = 16
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// Game adapts a Session to the arcade platform: it maps cell input to world
// coordinates and draws the board into the screen buffer.
type Game struct {
	variant string
	title   string

	runtime core.RuntimeConfig
	session *Session
	view    core.Viewport
	err     error
	paused  bool

	screenTooSmall bool
}

// New creates the classic 6x10 pachinko board.
func New() *Game {
	return &Game{variant: "pachinko", title: "Pachinko"}
}

// NewPeggle creates the denser 8x12 board.
func NewPeggle() *Game {
	return &Game{variant: "peggle", title: "Peggle Drop"}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.variant
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the config and starts a new session. A config error leaves the
// game in an error state that is rendered instead of the board.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false
	g.err = nil
	g.session = nil

	g.screenTooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH

	cfg, err := config.LoadPachinko(g.variant, configPath)
	if err != nil {
		g.err = err
		return
	}
	if difficultyPreset != "" {
		config.ApplyPachinkoPreset(&cfg, difficultyPreset)
	}

	session, err := NewSession(cfg, runtime.Seed, tickRate(runtime))
	if err != nil {
		g.err = err
		return
	}
	g.session = session
	g.view = boardView(cfg.Field, runtime.ScreenW, runtime.ScreenH)
}

// Resize fits the board to a new screen size. The world is fixed, so the
// running session is kept.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW, g.runtime.ScreenH = width, height
	g.screenTooSmall = width < minScreenW || height < minScreenH
	if g.session != nil {
		g.view = boardView(g.session.Config().Field, width, height)
	}
}

// boardView maps the field below the HUD row.
func boardView(field config.FieldConfig, width, height int) core.Viewport {
	return core.NewViewport(field.Width, field.Height, core.NewRect(0, 1, width, height-1))
}

func tickRate(runtime core.RuntimeConfig) int {
	if runtime.TickRate <= 0 {
		return 60
	}
	return runtime.TickRate
}

// Err returns the setup error, if any.
func (g *Game) Err() error {
	return g.err
}

// Session returns the running session, or nil after a setup error.
func (g *Game) Session() *Session {
	return g.session
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil || g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !g.session.GameOver() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.session.Step(g.translate(in))
	return core.StepResult{State: g.State()}
}

// translate converts platform input to session input.
func (g *Game) translate(in core.InputFrame) Input {
	var out Input
	if in.Pointer.Moved {
		x, _ := g.view.ToWorld(in.Pointer.X, in.Pointer.Y)
		out.TargetX = x
		out.HasTarget = true
	}
	if in.Has(core.ActionLeft) {
		out.Dir--
	}
	if in.Has(core.ActionRight) {
		out.Dir++
	}
	out.Restart = in.Pointer.Down ||
		in.Has(core.ActionRestart) ||
		in.Has(core.ActionLaunch) ||
		in.Has(core.ActionConfirm)
	return out
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		g.renderError(dst)
		return
	}
	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	s := g.session
	dst.SetOffset(s.Effects().ShakeOffset())

	g.drawWalls(dst)
	g.drawPegs(dst)
	g.drawEntities(dst)
	g.drawBasket(dst)
	g.drawEffects(dst)

	dst.SetOffset(0, 0)
	g.drawHUD(dst)

	if g.paused {
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	}
	if s.GameOver() {
		dst.DrawMessageBox("GAME OVER",
			fmt.Sprintf("Score: %d  |  Click, R or Space to restart", s.Score()))
	}
}

func (g *Game) renderError(dst *core.Screen) {
	dst.DrawTextCentered(dst.Height()/2-1, "Cannot start "+g.title)
	msg := g.err.Error()
	if w := dst.Width() - 2; w > 0 && len(msg) > w {
		msg = msg[:w]
	}
	x := (dst.Width() - len(msg)) / 2
	dst.DrawTextColor(x, dst.Height()/2+1, msg, core.ColorRed)
}

func (g *Game) drawWalls(dst *core.Screen) {
	r := g.view.Screen
	for y := r.Y; y < r.Bottom(); y++ {
		dst.SetColor(r.X, y, WallChar, core.ColorGray)
		dst.SetColor(r.Right()-1, y, WallChar, core.ColorGray)
	}
}

func (g *Game) drawPegs(dst *core.Screen) {
	for _, p := range g.session.Pegs() {
		x, y := g.view.ToCell(p.Pos.X(), p.Pos.Y())
		dst.SetColor(x, y, PegChar, core.ColorYellow)
	}
}

func (g *Game) drawEntities(dst *core.Screen) {
	for _, e := range g.session.Entities() {
		x, y := g.view.ToCell(e.Body.X(), e.Body.Y())
		if e.Kind == KindBomb {
			dst.SetColor(x, y, BombChar, core.ColorRed)
		} else {
			dst.SetColor(x, y, BallChar, core.ColorCyan)
		}
	}
}

func (g *Game) drawBasket(dst *core.Screen) {
	box := g.session.Basket().Box()
	left, y := g.view.ToCell(box.Left(), box.Center.Y())
	right, _ := g.view.ToCell(box.Right(), box.Center.Y())
	if right <= left {
		right = left + 1
	}

	color := core.ColorBrown
	for _, e := range g.session.Effects().Items() {
		if e.Kind == EffectCatchFlash {
			color = core.ColorBrightWhite
			break
		}
	}

	dst.SetColor(left, y, BasketLeft, color)
	for x := left + 1; x < right; x++ {
		dst.SetColor(x, y, BasketFloor, color)
	}
	dst.SetColor(right, y, BasketRight, color)
}

func (g *Game) drawEffects(dst *core.Screen) {
	for _, e := range g.session.Effects().Items() {
		x, y := g.view.ToCell(e.Pos.X(), e.Pos.Y())
		switch e.Kind {
		case EffectParticle:
			dst.SetColor(x, y, ParticleChar, core.ColorOrange)
		case EffectPegFlash:
			dst.SetColor(x, y, FlashChar, core.ColorBrightWhite)
		case EffectExplosion:
			drawBlast(dst, x, y, 1+int(2*e.Progress()), blastColor(e.Progress()))
		case EffectBigExplosion:
			drawBlast(dst, x, y, 1+int(5*e.Progress()), blastColor(e.Progress()))
		}
	}
}

// drawBlast draws a ring of blast glyphs of the given cell radius.
// Cells are roughly twice as tall as wide, so the ring is stretched horizontally.
func drawBlast(dst *core.Screen, cx, cy, r int, c core.Color) {
	for dy := -r; dy <= r; dy++ {
		for dx := -2 * r; dx <= 2*r; dx++ {
			d := dx*dx/4 + dy*dy
			if d <= r*r && d >= (r-1)*(r-1) {
				dst.SetColor(cx+dx, cy+dy, ExplosionChar, c)
			}
		}
	}
}

func blastColor(progress float64) core.Color {
	switch {
	case progress < 0.33:
		return core.ColorBrightYellow
	case progress < 0.66:
		return core.ColorOrange
	default:
		return core.ColorBrightRed
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	s := g.session
	dst.DrawText(1, 0, fmt.Sprintf(" Score: %d ", s.Score()))

	lives := strings.Repeat(string(HeartChar), s.Lives())
	dst.DrawText(16, 0, "Lives:")
	dst.DrawTextColor(23, 0, lives, core.ColorBrightRed)

	title := " " + g.title + " "
	dst.DrawText(dst.Width()-len([]rune(title))-1, 0, title)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Paused: g.paused}
	}
	return core.GameState{
		Score:    g.session.Score(),
		Lives:    g.session.Lives(),
		GameOver: g.session.GameOver(),
		Paused:   g.paused,
	}
}

// RunStats reports run counters for the runs table.
func (g *Game) RunStats() map[string]int {
	if g.session == nil {
		return nil
	}
	st := g.session.Stats()
	return map[string]int{
		"spawned": st.Spawned,
		"caught":  st.Caught,
		"bombs":   st.Bombs,
		"missed":  st.Missed,
		"bounces": st.Bounces,
		"ticks":   st.Ticks,
	}
}

// Register both layouts with the registry
func init() {
	registry.Register("pachinko", func() registry.Game {
		return New()
	})
	registry.Register("peggle", func() registry.Game {
		return NewPeggle()
	})
}
