package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pachinko-arcade/internal/core"
	"github.com/vovakirdan/pachinko-arcade/internal/storage"
)

// finiteGame ends after overAt steps; a pointer press restarts it.
type finiteGame struct {
	overAt int
	steps  int
	resets int
	seeds  []int64
	last   core.InputFrame
}

func (g *finiteGame) ID() string    { return "finite" }
func (g *finiteGame) Title() string { return "Finite" }

func (g *finiteGame) Reset(cfg core.RuntimeConfig) {
	g.steps = 0
	g.resets++
	g.seeds = append(g.seeds, cfg.Seed)
}

func (g *finiteGame) Step(in core.InputFrame) core.StepResult {
	g.last = in.Clone()
	over := g.steps >= g.overAt
	if over && in.Pointer.Down {
		g.steps = 0
		over = false
	}
	if !over {
		g.steps++
	}
	return core.StepResult{State: g.State()}
}

func (g *finiteGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "finite") }

func (g *finiteGame) State() core.GameState {
	return core.GameState{Score: g.steps * 10, GameOver: g.steps >= g.overAt}
}

func (g *finiteGame) RunStats() map[string]int {
	return map[string]int{"caught": g.steps}
}

func newTestModel(t *testing.T, g *finiteGame) (Model, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "tui.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 60, Seed: 7}
	m := NewModel(g, store, cfg).WithPlayer("dave")
	m.Init()
	return m, store
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelRecordsRunOnGameOver(t *testing.T) {
	g := &finiteGame{overAt: 6}
	m, store := newTestModel(t, g)

	for range 20 {
		m = send(m, TickMsg{})
	}
	if !m.GameState().GameOver {
		t.Fatal("game should be over")
	}

	runs, err := store.RecentRuns("finite", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(runs))
	}
	r := runs[0]
	if r.Score != 60 || r.Player != "dave" || r.Seed != 7 || r.Stats["caught"] != 6 {
		t.Errorf("unexpected run: %+v", r)
	}
	// Five ticks of play before the game-over tick
	if r.Duration.Milliseconds() != 83 {
		t.Errorf("duration = %v", r.Duration)
	}

	hs, _ := store.HighScore("finite")
	if hs != 60 {
		t.Errorf("high score = %d, want 60", hs)
	}
}

func TestModelGameRestartRecordsNewRun(t *testing.T) {
	g := &finiteGame{overAt: 2}
	m, store := newTestModel(t, g)

	for range 5 {
		m = send(m, TickMsg{})
	}
	m = send(m, tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	for range 5 {
		m = send(m, TickMsg{})
	}

	runs, _ := store.RecentRuns("finite", 10)
	if len(runs) != 2 {
		t.Errorf("runs = %d, want 2", len(runs))
	}
}

func TestModelRestartKeyReseeds(t *testing.T) {
	g := &finiteGame{overAt: 1}
	m, _ := newTestModel(t, g)

	m = send(m, TickMsg{})
	m = send(m, runeKey('r'))
	m = send(m, TickMsg{})

	if g.resets != 2 {
		t.Fatalf("resets = %d, want 2", g.resets)
	}
	if g.seeds[1] == 7 {
		t.Error("restart should pick a new seed")
	}
	if m.GameState().GameOver {
		t.Error("state should be fresh after restart")
	}
}

func TestModelForwardsInput(t *testing.T) {
	g := &finiteGame{overAt: 100}
	m, _ := newTestModel(t, g)

	m = send(m, runeKey('a'))
	m = send(m, tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionMotion})
	m = send(m, TickMsg{})

	if !g.last.Has(core.ActionLeft) {
		t.Error("left not forwarded")
	}
	if !g.last.Pointer.Moved || g.last.Pointer.X != 3 || g.last.Pointer.Y != 2 {
		t.Errorf("pointer = %+v", g.last.Pointer)
	}

	// The frame is cleared after each tick
	m = send(m, TickMsg{})
	if g.last.Has(core.ActionLeft) || g.last.Pointer.Moved {
		t.Error("input replayed on the next tick")
	}
}

func TestModelBackOnlyWhenOver(t *testing.T) {
	g := &finiteGame{overAt: 3}
	m, _ := newTestModel(t, g)

	m = send(m, TickMsg{})
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back should be ignored while playing")
	}

	for range 5 {
		m = send(m, TickMsg{})
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back should leave a finished game")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, &finiteGame{overAt: 3})
	m = send(m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty when quitting")
	}
}

// resizableFinite keeps its run when the window changes.
type resizableFinite struct {
	finiteGame
	sizes [][2]int
}

func (g *resizableFinite) Resize(w, h int) {
	g.sizes = append(g.sizes, [2]int{w, h})
}

func TestModelResize(t *testing.T) {
	t.Run("resizer keeps the run", func(t *testing.T) {
		g := &resizableFinite{finiteGame: finiteGame{overAt: 100}}
		m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 60, Seed: 7})
		m.Init()
		for range 3 {
			m = send(m, TickMsg{})
		}

		m = send(m, tea.WindowSizeMsg{Width: 1 << 20, Height: 1 << 20})
		if g.resets != 1 {
			t.Errorf("resets = %d, want 1", g.resets)
		}
		if len(g.sizes) != 1 || g.sizes[0] != [2]int{core.MaxScreenW, core.MaxScreenH} {
			t.Errorf("Resize calls = %v, want clamped size", g.sizes)
		}
		m = send(m, TickMsg{})
		if got := m.GameState().Score; got != 40 {
			t.Errorf("score = %d, want 40", got)
		}
	})

	t.Run("other games restart", func(t *testing.T) {
		g := &finiteGame{overAt: 100}
		m, _ := newTestModel(t, g)
		m = send(m, TickMsg{})
		m = send(m, tea.WindowSizeMsg{Width: 60, Height: 20})
		if g.resets != 2 {
			t.Errorf("resets = %d, want 2", g.resets)
		}
	})
}
