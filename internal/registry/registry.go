// Package registry keeps the set of playable games. Game packages register a
// factory from init(), so the platform can list and create games by ID
// without importing them directly.
package registry

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/pachinko-arcade/internal/core"
)

// ErrUnknownGame is returned by Create for IDs nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is a self-contained simulation driven one fixed tick at a time.
// Implementations hold no terminal or network state; the platform maps input,
// owns timing and displays whatever Render draws.
type Game interface {
	// ID is the stable identifier used by the CLI and score storage.
	ID() string

	// Title is the display name shown in menus.
	Title() string

	// Reset starts a fresh run for the given screen size, tick rate and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick with that tick's input.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame into dst.
	Render(dst *core.Screen)

	// State reports score, lives and the paused/game-over flags.
	State() core.GameState
}

// StatsReporter is implemented by games that track per-run counters
// (items caught, balls launched, ...). The platform stores them with the run.
type StatsReporter interface {
	RunStats() map[string]int
}

// RunStats returns the game's run counters, or nil if it does not report any.
func RunStats(g Game) map[string]int {
	if r, ok := g.(StatsReporter); ok {
		return r.RunStats()
	}
	return nil
}

// Resizer is implemented by games whose world does not depend on the screen.
// The platform calls Resize on a window change instead of restarting the run.
type Resizer interface {
	Resize(width, height int)
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

type entry struct {
	title   string
	factory Factory
}

var (
	mu    sync.RWMutex
	games = map[string]entry{}
)

// Register adds a game under id. The title is read from one throwaway
// instance. Registering the same id twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := games[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	games[id] = entry{title: f().Title(), factory: f}
}

// List returns all registered games ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(games))
	for id, e := range games {
		out = append(out, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(out, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Create returns a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := games[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := games[id]
	return ok
}
