package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/storage"

	_ "github.com/vovakirdan/mini-arcade/internal/games/blocks"
	_ "github.com/vovakirdan/mini-arcade/internal/games/snake"
)

// scriptedGame ends after a fixed number of steps and restarts on R.
type scriptedGame struct {
	steps    int
	endAfter int
	score    int
	resets   int
	lastIn   core.InputFrame
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.steps = 0
	g.resets++
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.lastIn = in.Clone()
	if in.Has(core.ActionRestart) && g.steps >= g.endAfter {
		g.Reset(core.RuntimeConfig{})
		return core.StepResult{State: g.State()}
	}
	g.steps++
	return core.StepResult{State: g.State()}
}

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "scripted")
}

func (g *scriptedGame) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.steps >= g.endAfter}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func tick(t *testing.T, m GameModel) GameModel {
	t.Helper()
	next, _ := m.Update(TickMsg{})
	return next.(GameModel)
}

func press(t *testing.T, m GameModel, msg tea.KeyMsg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(GameModel)
}

func TestGameModelSavesScoreOnce(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{endAfter: 2, score: 70}

	var finished int
	m := NewGameModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60}, "alice")
	m.OnGameOver(func(core.GameState) { finished++ })
	m.Init()

	for i := 0; i < 5; i++ {
		m = tick(t, m)
	}

	scores, err := store.TopScores("scripted", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 70 || scores[0].Player != "alice" {
		t.Errorf("scores = %+v", scores)
	}
	if finished != 1 {
		t.Errorf("game over callback ran %d times, want 1", finished)
	}
}

func TestGameModelRestartSavesAgain(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{endAfter: 1, score: 10}

	m := NewGameModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10}, "")
	m.Init()
	m = tick(t, m)

	m = press(t, m, runeKey('r'))
	m = tick(t, m)
	if m.State().GameOver {
		t.Fatal("restart should start a new game")
	}
	m = tick(t, m)

	scores, _ := store.TopScores("scripted", 10)
	if len(scores) != 2 {
		t.Fatalf("saved %d scores, want 2", len(scores))
	}
	if scores[0].Player != storage.DefaultPlayer {
		t.Errorf("player = %q, want %q", scores[0].Player, storage.DefaultPlayer)
	}
}

func TestGameModelInputReachesGame(t *testing.T) {
	game := &scriptedGame{endAfter: 100}
	m := NewGameModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10}, "")
	m.Init()

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = tick(t, m)
	if !game.lastIn.Has(core.ActionLeft) {
		t.Error("left key should reach the game on the next tick")
	}

	m = tick(t, m)
	if !game.lastIn.Empty() {
		t.Error("input frame should be cleared after each tick")
	}
}

func TestGameModelBackToMenu(t *testing.T) {
	game := &scriptedGame{endAfter: 1}
	m := NewGameModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10}, "")
	m.Init()

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back should be ignored while playing")
	}

	m = tick(t, m)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back after game over should return to the menu")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := NewGameModel(&scriptedGame{endAfter: 5}, nil, core.RuntimeConfig{}, "")
	next, cmd := m.Update(runeKey('q'))
	if !next.(GameModel).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if next.(GameModel).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestRenderScreenPlain(t *testing.T) {
	scr := core.NewScreen(5, 2)
	scr.DrawText(0, 0, "hello")
	scr.DrawText(0, 1, "world")

	if got := RenderScreen(scr); got != "hello\nworld" {
		t.Errorf("RenderScreen = %q", got)
	}
}

func TestRenderScreenColored(t *testing.T) {
	scr := core.NewScreen(4, 1)
	scr.DrawTextColored(0, 0, "ab", core.ColorRed)
	scr.DrawText(2, 0, "cd")

	if got := RenderScreen(scr); !strings.Contains(got, "ab") || !strings.HasSuffix(got, "cd") {
		t.Errorf("RenderScreen = %q", got)
	}
}

func TestSessionModelFlow(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60}
	m := NewSessionModel(nil, cfg, "bob", nil)

	if _, err := uuid.Parse(m.SessionID()); err != nil {
		t.Fatalf("session id %q is not a uuid: %v", m.SessionID(), err)
	}

	// Tab opens the scoreboard, Esc comes back.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(SessionModel)
	if m.screen != screenScoreboard {
		t.Fatalf("screen = %v, want scoreboard", m.screen)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(SessionModel)
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", m.screen)
	}

	// Enter on the first entry starts that game.
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SessionModel)
	if m.screen != screenGame {
		t.Fatalf("screen = %v, want game", m.screen)
	}
	if cmd == nil {
		t.Error("starting a game should schedule a tick")
	}
	if m.quitting {
		t.Error("selecting a game must not end the session")
	}
	if !strings.Contains(m.View(), "Score") {
		t.Error("game view should show the HUD")
	}
}

func TestMenuListsGames(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	view := m.View()
	for _, want := range []string{"Block Game", "Snake", "High Scores"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q", want)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	menu := next.(MenuModel)
	if menu.Selected() == nil || menu.Selected().GameID != "snake" {
		t.Errorf("selected = %+v, want snake", menu.Selected())
	}
}
