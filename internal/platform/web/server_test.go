package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/registry"
	"github.com/vovakirdan/mini-arcade/internal/storage"

	_ "github.com/vovakirdan/mini-arcade/internal/games/blocks"
	_ "github.com/vovakirdan/mini-arcade/internal/games/snake"
)

// tallyGame scores one point per Step that carries a left command.
type tallyGame struct{ lefts int }

func (g *tallyGame) ID() string               { return "tally" }
func (g *tallyGame) Title() string            { return "Tally" }
func (g *tallyGame) Reset(core.RuntimeConfig) { g.lefts = 0 }
func (g *tallyGame) State() core.GameState    { return core.GameState{Score: g.lefts} }

func (g *tallyGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, fmt.Sprintf("lefts=%d", g.lefts))
}

func (g *tallyGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionLeft) {
		g.lefts++
	}
	return core.StepResult{State: g.State()}
}

func init() {
	registry.Register("tally", func() registry.Game { return &tallyGame{} })
}

func newTestServer(t *testing.T, store *storage.Store) *httptest.Server {
	t.Helper()
	cfg := DefaultConfig()
	cfg.LogOutput = io.Discard
	srv := httptest.NewServer(NewServer(cfg, store).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var f Frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return f
}

func TestIndexListsGames(t *testing.T) {
	srv := newTestServer(t, nil)

	code, body := get(t, srv.URL+"/")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	for _, want := range []string{`href="/play/blocks"`, `href="/play/snake"`, "Block Game", "Snake"} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}
}

func TestPlayPage(t *testing.T) {
	srv := newTestServer(t, nil)

	code, body := get(t, srv.URL+"/play/snake?player=ann")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if !strings.Contains(body, `"snake"`) || !strings.Contains(body, `"ann"`) {
		t.Error("play page should embed the game id and player")
	}

	if code, _ := get(t, srv.URL+"/play/nope"); code != http.StatusNotFound {
		t.Errorf("unknown game status = %d, want 404", code)
	}
	if code, _ := get(t, srv.URL+"/missing"); code != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", code)
	}
}

func TestPlayPageControls(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		game    string
		want    []string
		notWant []string
	}{
		{"blocks", []string{"rotate", "drop", "left", "down", "right", "pause", "restart"}, []string{"up"}},
		{"snake", []string{"up", "left", "down", "right", "pause", "restart"}, []string{"rotate", "drop"}},
	}
	for _, tt := range tests {
		t.Run(tt.game, func(t *testing.T) {
			_, body := get(t, srv.URL+"/play/"+tt.game)
			if !strings.Contains(body, `id="pad"`) {
				t.Fatal("play page has no button pad")
			}
			for _, a := range tt.want {
				if !strings.Contains(body, `data-action="`+a+`"`) {
					t.Errorf("missing %q button", a)
				}
			}
			for _, a := range tt.notWant {
				if strings.Contains(body, `data-action="`+a+`"`) {
					t.Errorf("unexpected %q button", a)
				}
			}
		})
	}
}

func TestWebSocketStreamsFrames(t *testing.T) {
	srv := newTestServer(t, nil)
	conn := dial(t, srv, "/ws/blocks")

	f := readFrame(t, conn)
	if f.Game != "blocks" {
		t.Errorf("game = %q, want blocks", f.Game)
	}
	if len(f.Rows) != DefaultConfig().ScreenH {
		t.Errorf("rows = %d, want %d", len(f.Rows), DefaultConfig().ScreenH)
	}
	if f.GameOver || f.Paused {
		t.Errorf("fresh game: %+v", f)
	}

	colored := false
	for _, row := range f.Rows {
		for _, c := range row {
			if c.Color != "" {
				colored = true
			}
		}
	}
	if !colored {
		t.Error("falling piece should carry a color")
	}
}

func TestWebSocketCommands(t *testing.T) {
	srv := newTestServer(t, nil)
	conn := dial(t, srv, "/ws/snake")
	readFrame(t, conn)

	// Unknown and malformed commands are ignored.
	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(Command{Action: "jump"}); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(Command{Action: "pause"}); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if f := readFrame(t, conn); f.Paused {
			return
		}
	}
	t.Error("never saw a paused frame")
}

func TestWebSocketRepeatedCommandsAreNotMerged(t *testing.T) {
	srv := newTestServer(t, nil)
	conn := dial(t, srv, "/ws/tally")
	readFrame(t, conn)

	for range 3 {
		if err := conn.WriteJSON(Command{Action: "left"}); err != nil {
			t.Fatal(err)
		}
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if f := readFrame(t, conn); f.Score == 3 {
			return
		} else if f.Score > 3 {
			t.Fatalf("score = %d, want 3", f.Score)
		}
	}
	t.Error("three left commands should give three moves")
}

func TestWebSocketQuitCloses(t *testing.T) {
	srv := newTestServer(t, nil)
	conn := dial(t, srv, "/ws/snake")
	readFrame(t, conn)

	if err := conn.WriteJSON(Command{Action: "quit"}); err != nil {
		t.Fatal(err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				t.Errorf("err = %v, want normal close", err)
			}
			return
		}
	}
}

func TestWebSocketUnknownGame(t *testing.T) {
	srv := newTestServer(t, nil)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/nope"

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("dial should fail for an unknown game")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("resp = %v, want 404", resp)
	}
}

func TestScoresAPI(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()
	if _, err := store.SaveScore("snake", "ann", 30); err != nil {
		t.Fatal(err)
	}

	srv := newTestServer(t, store)
	code, body := get(t, srv.URL+"/api/scores/snake")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}

	var scores []struct {
		Player string `json:"player"`
		Score  int    `json:"score"`
	}
	if err := json.Unmarshal([]byte(body), &scores); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(scores) != 1 || scores[0].Player != "ann" || scores[0].Score != 30 {
		t.Errorf("scores = %+v", scores)
	}

	if _, body := get(t, srv.URL+"/"); !strings.Contains(body, "best 30") {
		t.Error("landing page should show the high score")
	}
}

func TestServeShutdown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.LogOutput = io.Discard
	s := NewServer(cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, l) }()

	url := "ws://" + l.Addr().String() + "/ws/blocks"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	readFrame(t, conn)

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
