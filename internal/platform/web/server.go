// Package web serves arcade games to browsers over WebSocket.
// Each connection runs its own game; the server only moves input and frames.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/pachinko-arcade/internal/core"
	"github.com/vovakirdan/pachinko-arcade/internal/registry"
	"github.com/vovakirdan/pachinko-arcade/internal/storage"
)

const (
	writeWait    = 2 * time.Second
	inputBacklog = 64
	maxMsgSize   = 1024
)

// Config holds configuration for the WebSocket server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// TickRate is the simulation rate of every session.
	TickRate int

	// Cols and Rows size the screen until the client sends a resize.
	Cols int
	Rows int
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:  ":8080",
		TickRate: 60,
		Cols:     80,
		Rows:     24,
	}
}

// Server hosts the WebSocket endpoint.
type Server struct {
	config   Config
	store    *storage.Store
	logger   *log.Logger
	upgrader websocket.Upgrader
	http     *http.Server
	done     chan struct{} // closed by Shutdown; hijacked conns outlive http.Server
	stopOnce sync.Once
}

// NewServer creates a server. store may be nil, in which case runs are not recorded.
func NewServer(cfg Config, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "arcade-web",
		})
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.Cols <= 0 || cfg.Rows <= 0 {
		cfg.Cols, cfg.Rows = 80, 24
	}
	cfg.Cols, cfg.Rows = core.ClampScreenSize(cfg.Cols, cfg.Rows)

	s := &Server{
		config: cfg,
		store:  store,
		logger: logger,
		done:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the HTTP routes:
//
//	GET /games        - registered games as JSON
//	GET /play/{game}  - WebSocket game session (?player=name)
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /games", s.handleGames)
	mux.HandleFunc("GET /play/{game}", s.handlePlay)
	return mux
}

type gameInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (s *Server) handleGames(w http.ResponseWriter, _ *http.Request) {
	games := registry.List()
	out := make([]gameInfo, len(games))
	for i, g := range games {
		out[i] = gameInfo{ID: g.ID, Title: g.Title}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.logger.Warn("could not write game list", "error", err)
	}
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("game")
	game, err := registry.Create(gameID)
	if err != nil {
		http.Error(w, "unknown game", http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	player := r.URL.Query().Get("player")
	s.logger.Info("session started", "game", gameID, "player", player, "remote", r.RemoteAddr)

	cfg := core.RuntimeConfig{
		ScreenW:  s.config.Cols,
		ScreenH:  s.config.Rows,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	sess := NewSession(game, cfg, s.store, s.logger, player)

	err = s.run(r.Context(), conn, sess)
	s.logger.Info("session ended", "game", gameID, "player", player, "remote", r.RemoteAddr, "error", err)
}

// run ticks the session until the client goes away. Client input arrives
// through a channel and is drained at the start of each tick.
func (s *Server) run(ctx context.Context, conn *websocket.Conn, sess *Session) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inputs := make(chan InputMessage, inputBacklog)
	readErr := make(chan error, 1)
	go func() {
		readErr <- readLoop(ctx, conn, inputs)
		cancel()
	}()

	go func() {
		select {
		case <-s.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(s.config.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			select {
			case err := <-readErr:
				return err
			default:
				return ctx.Err()
			}
		case <-ticker.C:
		}

	drain:
		for {
			select {
			case msg := <-inputs:
				if !sess.Apply(msg) {
					s.logger.Debug("ignored client message", "type", msg.Type, "action", msg.Action)
				}
			default:
				break drain
			}
		}

		frame := sess.Tick()
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return err
		}
		if err := conn.WriteJSON(frame); err != nil {
			return err
		}
	}
}

// readLoop decodes client messages until the connection fails.
// Messages beyond the backlog are dropped rather than blocking the reader.
func readLoop(ctx context.Context, conn *websocket.Conn, inputs chan<- InputMessage) error {
	conn.SetReadLimit(maxMsgSize)
	for {
		var msg InputMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
		select {
		case inputs <- msg:
		case <-ctx.Done():
			return nil
		default:
		}
	}
}

// ListenAndServe serves until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting WebSocket server", "address", s.config.Address)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and closes done, which ends every
// play loop. http.Server.Shutdown does not track hijacked WebSocket
// connections, so it only waits for plain HTTP requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.done) })
	return s.http.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}
