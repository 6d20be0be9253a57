package web

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/registry"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 512
	// Capacity of the reader channel and of the loop's pending queue.
	commandBuffer = 32
)

// scoreSaver persists finished games.
type scoreSaver interface {
	SaveScore(gameID, player string, score int) (int64, error)
}

// session is one browser playing one game. The run loop goroutine is the
// only owner of the game and the only writer on the connection.
type session struct {
	id       string
	player   string
	game     registry.Game
	conn     *websocket.Conn
	store    scoreSaver
	logger   *log.Logger
	cfg      core.RuntimeConfig
	screen   *core.Screen
	commands chan core.Action
}

func newSession(id, player string, game registry.Game, conn *websocket.Conn, store scoreSaver, logger *log.Logger, cfg core.RuntimeConfig) *session {
	return &session{
		id:       id,
		player:   player,
		game:     game,
		conn:     conn,
		store:    store,
		logger:   logger,
		cfg:      cfg,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		commands: make(chan core.Action, commandBuffer),
	}
}

// readPump decodes commands from the browser until the connection fails.
// Unknown or malformed commands are dropped.
func (s *session) readPump(cancel context.CancelFunc) {
	defer cancel()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("read failed", "session", s.id, "error", err)
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(message, &cmd); err != nil {
			s.logger.Debug("bad command", "session", s.id, "error", err)
			continue
		}
		action := core.ParseAction(cmd.Action)
		if action == core.ActionNone {
			continue
		}

		select {
		case s.commands <- action:
		default:
			// Loop is behind; drop rather than block the reader.
		}
	}
}

// run drives the game until ctx is cancelled, the browser disconnects or
// the player quits. Ticks and commands are handled on this goroutine only.
// Each command gets its own tick so repeated presses are not merged.
func (s *session) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.readPump(cancel)

	s.game.Reset(s.cfg)

	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.TickRate))
	defer ticker.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	input := core.NewInputFrame()
	var queue []core.Action // one command is applied per tick
	var last []byte
	saved := false

	if err := s.push(&last); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			s.close()
			return nil

		case action := <-s.commands:
			if action == core.ActionQuit {
				s.close()
				return nil
			}
			if len(queue) < commandBuffer {
				queue = append(queue, action)
			}

		case <-ping.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}

		case <-ticker.C:
			input.Clear()
			if len(queue) > 0 {
				input.Set(queue[0])
				queue = queue[1:]
			}
			st := s.game.Step(input).State

			if !st.GameOver {
				saved = false
			} else if !saved {
				saved = true
				s.finish(st)
			}

			if err := s.push(&last); err != nil {
				return err
			}
		}
	}
}

// finish records a completed game.
func (s *session) finish(st core.GameState) {
	s.logger.Info("game over", "session", s.id, "player", s.player, "game", s.game.ID(), "score", st.Score)
	if s.store == nil || st.Score <= 0 {
		return
	}
	if _, err := s.store.SaveScore(s.game.ID(), s.player, st.Score); err != nil {
		s.logger.Warn("could not save score", "session", s.id, "error", err)
	}
}

// push renders the game and sends the frame if it differs from the last one.
func (s *session) push(last *[]byte) error {
	s.game.Render(s.screen)
	data, err := json.Marshal(buildFrame(s.game.ID(), s.game.State(), s.screen))
	if err != nil {
		return err
	}
	if string(data) == string(*last) {
		return nil
	}
	*last = data

	s.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		if errors.Is(err, websocket.ErrCloseSent) {
			return nil
		}
		return err
	}
	return nil
}

// close sends a normal close frame and drops the connection.
func (s *session) close() {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	//nolint:errcheck // Best-effort goodbye
	s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	s.conn.Close()
}
