// Package web serves the arcade to browsers: a landing page listing the games,
// a play page per game and a WebSocket that streams rendered frames while
// receiving key commands.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/registry"
	"github.com/vovakirdan/mini-arcade/internal/storage"
)

// DefaultPlayer is recorded for browser scores without a ?player= name.
const DefaultPlayer = "web"

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Config holds configuration for the web server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// TickRate is the simulation rate for every session.
	TickRate int

	// ScreenW and ScreenH size the character grid sent to browsers.
	ScreenW int
	ScreenH int

	// LogOutput receives server logs. Defaults to stderr.
	LogOutput io.Writer
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:  ":8080",
		TickRate: 60,
		ScreenW:  80,
		ScreenH:  24,
	}
}

// Server is the browser front end.
type Server struct {
	config   Config
	store    *storage.Store
	logger   *log.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux
	sessions chan struct{} // closed on shutdown
}

// NewServer creates a web server. store may be nil, in which case scores
// are neither shown nor saved.
func NewServer(cfg Config, store *storage.Store) *Server {
	def := DefaultConfig()
	if cfg.TickRate <= 0 {
		cfg.TickRate = def.TickRate
	}
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	if cfg.LogOutput == nil {
		cfg.LogOutput = os.Stderr
	}

	s := &Server{
		config: cfg,
		store:  store,
		logger: log.NewWithOptions(cfg.LogOutput, log.Options{
			ReportTimestamp: true,
			Prefix:          "arcade-web",
		}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		mux:      http.NewServeMux(),
		sessions: make(chan struct{}),
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /play/{game}", s.handlePlay)
	s.mux.HandleFunc("GET /ws/{game}", s.handleWS)
	s.mux.HandleFunc("GET /api/scores/{game}", s.handleScores)
	return s
}

// Handler returns the HTTP handler with request logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// logRequests logs each request after it completes.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr, "took", time.Since(start))
	})
}

type indexEntry struct {
	ID        string
	Title     string
	HighScore int
}

// handleIndex renders the landing page.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	games := registry.List()
	entries := make([]indexEntry, 0, len(games))
	for _, g := range games {
		e := indexEntry{ID: g.ID, Title: g.Title}
		if s.store != nil {
			if high, err := s.store.HighScore(g.ID); err == nil {
				e.HighScore = high
			}
		}
		entries = append(entries, e)
	}

	s.render(w, "index.html", map[string]any{"Games": entries})
}

// control is one on-screen button; Action is sent as a Command.
type control struct {
	Label  string
	Action string
}

// padRows lay out the touch controls under each game, row by row.
var padRows = map[string][][]control{
	"blocks": {
		{{"↻", "rotate"}, {"DROP", "drop"}},
		{{"←", "left"}, {"↓", "down"}, {"→", "right"}},
	},
	"snake": {
		{{"↑", "up"}},
		{{"←", "left"}, {"↓", "down"}, {"→", "right"}},
	},
}

// controlsFor returns the pad for gameID followed by pause and restart.
// Unknown games get a plain arrow pad.
func controlsFor(gameID string) [][]control {
	rows, ok := padRows[gameID]
	if !ok {
		rows = padRows["snake"]
	}
	out := append([][]control{}, rows...)
	return append(out, []control{{"Pause", "pause"}, {"Restart", "restart"}})
}

// handlePlay renders the page that hosts one game.
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	info, ok := registry.Lookup(r.PathValue("game"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	s.render(w, "play.html", map[string]any{
		"ID":       info.ID,
		"Title":    info.Title,
		"Player":   playerName(r),
		"Controls": controlsFor(info.ID),
	})
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("template failed", "template", name, "error", err)
	}
}

// handleScores returns the top scores for a game as JSON.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("game")
	if !registry.Exists(gameID) {
		http.NotFound(w, r)
		return
	}

	type scoreJSON struct {
		Player string    `json:"player"`
		Score  int       `json:"score"`
		Date   time.Time `json:"date"`
	}
	out := []scoreJSON{}
	if s.store != nil {
		entries, err := s.store.TopScores(gameID, 10)
		if err != nil {
			s.logger.Error("cannot load scores", "game", gameID, "error", err)
			http.Error(w, "cannot load scores", http.StatusInternalServerError)
			return
		}
		for _, e := range entries {
			out = append(out, scoreJSON{Player: e.Player, Score: e.Score, Date: e.CreatedAt})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck // Client may have gone away
	json.NewEncoder(w).Encode(out)
}

// handleWS upgrades the connection and runs a game session on it.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("game")
	game, err := registry.Create(gameID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	cfg := core.RuntimeConfig{
		ScreenW:  s.config.ScreenW,
		ScreenH:  s.config.ScreenH,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	var store scoreSaver
	if s.store != nil {
		store = s.store
	}

	id := uuid.NewString()
	player := playerName(r)
	sess := newSession(id, player, game, conn, store, s.logger, cfg)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		select {
		case <-s.sessions:
			cancel()
		case <-ctx.Done():
		}
	}()

	s.logger.Info("session started", "session", id, "player", player, "game", gameID, "remote", r.RemoteAddr)
	if err := sess.run(ctx); err != nil {
		s.logger.Warn("session failed", "session", id, "error", err)
	}
	s.logger.Info("session ended", "session", id, "player", player, "game", gameID)
}

// playerName reads ?player= and falls back to DefaultPlayer.
func playerName(r *http.Request) string {
	name := strings.TrimSpace(r.URL.Query().Get("player"))
	if name == "" {
		return DefaultPlayer
	}
	if len(name) > 32 {
		name = name[:32]
	}
	return name
}

// Serve accepts connections on l until ctx is cancelled, then shuts down.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(l)
	}()
	s.logger.Info("starting web server", "address", l.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	close(s.sessions) // hijacked WebSocket connections are not tracked by Shutdown

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return nil
}

// ListenAndServe listens on the configured address and blocks until
// SIGINT or SIGTERM.
func (s *Server) ListenAndServe() error {
	l, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("web: listen %s: %w", s.config.Address, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx, l)
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}
