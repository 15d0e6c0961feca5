package web

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pachinko-arcade/internal/core"
	"github.com/vovakirdan/pachinko-arcade/internal/registry"
	"github.com/vovakirdan/pachinko-arcade/internal/storage"
)

// Session drives one game for one connection. It is not safe for
// concurrent use; the connection loop owns it.
type Session struct {
	game    registry.Game
	config  core.RuntimeConfig
	screen  *core.Screen
	frame   core.InputFrame
	state   core.GameState
	store   *storage.Store
	logger  *log.Logger
	player  string
	tick    int
	runTick int // tick the current run started at
	saved   bool
}

// NewSession resets game with cfg and returns a session ready to tick.
func NewSession(game registry.Game, cfg core.RuntimeConfig, store *storage.Store, logger *log.Logger, player string) *Session {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	game.Reset(cfg)
	return &Session{
		game:   game,
		config: cfg,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		frame:  core.NewInputFrame(),
		state:  game.State(),
		store:  store,
		logger: logger,
		player: player,
	}
}

// Apply queues a client message for the next tick.
func (s *Session) Apply(msg InputMessage) bool {
	if msg.Type == MsgResize {
		if msg.Cols <= 0 || msg.Rows <= 0 || msg.Cols > core.MaxScreenW || msg.Rows > core.MaxScreenH {
			return false
		}
		s.config.ScreenW, s.config.ScreenH = msg.Cols, msg.Rows
		s.screen.Resize(msg.Cols, msg.Rows)
		if r, ok := s.game.(registry.Resizer); ok {
			r.Resize(msg.Cols, msg.Rows)
		} else if !s.state.GameOver {
			s.game.Reset(s.config)
			s.runTick = s.tick
		}
		return true
	}
	return applyInput(msg, &s.frame)
}

// Tick advances the game one frame and renders it.
func (s *Session) Tick() FrameMessage {
	wasOver := s.state.GameOver
	s.state = s.game.Step(s.frame).State
	s.frame.Clear()
	s.tick++

	if wasOver && !s.state.GameOver {
		s.saved = false
		s.runTick = s.tick
	}
	if s.state.GameOver && !s.saved {
		s.record()
		s.saved = true
	}

	s.game.Render(s.screen)
	rows := make([]string, s.screen.Height())
	for y := range rows {
		rows[y] = strings.TrimRight(s.screen.Row(y), " ")
	}

	return FrameMessage{
		Type:   MsgFrame,
		Tick:   s.tick,
		Screen: rows,
		State:  stateMessage(s.state),
	}
}

// State returns the state after the last tick.
func (s *Session) State() core.GameState {
	return s.state
}

func (s *Session) record() {
	if s.store == nil {
		return
	}
	ticks := s.tick - s.runTick
	_, err := s.store.RecordRun(storage.Run{
		GameID:   s.game.ID(),
		Player:   s.player,
		Seed:     s.config.Seed,
		Score:    s.state.Score,
		Stats:    registry.RunStats(s.game),
		Duration: time.Duration(ticks) * time.Second / time.Duration(max(s.config.TickRate, 1)),
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("could not record run", "game", s.game.ID(), "player", s.player, "error", err)
	}
}
