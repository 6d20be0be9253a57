package snake

import (
	"strings"
	"testing"

	"github.com/vovakirdan/mini-arcade/internal/core"
)

func newTestGame(seed int64) *Game {
	g := New()
	g.Reset(core.RuntimeConfig{
		Seed:     seed,
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	})
	return g
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed should produce identical snapshots
	g1 := newTestGame(12345)
	g2 := newTestGame(12345)

	input := core.NewInputFrame()
	for i := 0; i < 300; i++ {
		input.Clear()
		switch i {
		case 20:
			input.Set(core.ActionDown)
		case 60:
			input.Set(core.ActionRight)
		case 120:
			input.Set(core.ActionUp)
		}

		g1.Step(input)
		g2.Step(input)
	}

	if s1, s2 := g1.Snapshot(), g2.Snapshot(); s1 != s2 {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
}

func TestMoveEveryTicks(t *testing.T) {
	g := newTestGame(1)
	if got := g.moveEvery(); got != 9 {
		t.Fatalf("moveEvery = %d, want 9", got)
	}

	empty := core.NewInputFrame()
	for i := 0; i < 8; i++ {
		g.Step(empty)
	}
	if g.engine.Head() != Start {
		t.Fatalf("snake moved early to %v", g.engine.Head())
	}
	g.Step(empty)
	if want := Start.Add(core.Right); g.engine.Head() != want {
		t.Errorf("head = %v, want %v", g.engine.Head(), want)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := newTestGame(42)

	input := core.NewInputFrame()
	input.Set(core.ActionLeft)
	g.Step(input)
	if g.pending != (core.Point{}) {
		t.Error("Should not queue a reversal from Right to Left")
	}

	input.Clear()
	input.Set(core.ActionDown)
	g.Step(input)
	if g.pending != core.Down {
		t.Errorf("Expected queued heading Down, got %s", HeadingName(g.pending))
	}
}

func TestTwoTurnsInOnePeriodCannotReverse(t *testing.T) {
	g := newTestGame(42)
	every := g.moveEvery()

	// Heading right: Up then Left before the next move.
	for _, a := range []core.Action{core.ActionUp, core.ActionLeft} {
		input := core.NewInputFrame()
		input.Set(a)
		g.Step(input)
	}
	empty := core.NewInputFrame()
	for i := 2; i < every; i++ {
		g.Step(empty)
	}

	if g.engine.GameOver() {
		t.Fatal("two quick turns reversed the snake into itself")
	}
	if g.engine.Heading() != core.Up {
		t.Errorf("heading = %s, want up", HeadingName(g.engine.Heading()))
	}
	if want := Start.Add(core.Up); g.engine.Head() != want {
		t.Errorf("head = %v, want %v", g.engine.Head(), want)
	}
}

func TestIllegalKeyDoesNotMaskLegalOne(t *testing.T) {
	g := newTestGame(42)
	g.engine.SetHeading(core.Down)

	input := core.NewInputFrame()
	input.Set(core.ActionUp)
	input.Set(core.ActionLeft)
	g.Step(input)

	if g.pending != core.Left {
		t.Errorf("queued = %s, want left", HeadingName(g.pending))
	}
}

func TestRestart(t *testing.T) {
	g := newTestGame(7)

	input := core.NewInputFrame()
	input.Set(core.ActionUp)
	for i := 0; i < 200 && !g.State().GameOver; i++ {
		g.Step(input)
	}
	if !g.State().GameOver {
		t.Fatal("heading up should hit the top wall")
	}
	if g.Snapshot().State != StateGameOver {
		t.Errorf("state = %s", g.Snapshot().State)
	}

	input.Clear()
	input.Set(core.ActionRestart)
	g.Step(input)

	if g.State().GameOver {
		t.Error("restart should start a new game")
	}
	if g.engine.Head() != Start || g.engine.Len() != 1 {
		t.Errorf("snake not reset: %v", g.engine.Path())
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(5)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)

	empty := core.NewInputFrame()
	for i := 0; i < 50; i++ {
		g.Step(empty)
	}
	if g.engine.Head() != Start {
		t.Error("snake moved while paused")
	}
	if g.Snapshot().State != StatePaused {
		t.Errorf("state = %s, want paused", g.Snapshot().State)
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 333, ScreenW: 10, ScreenH: 5})

	if !g.tooSmall {
		t.Error("Game should detect window is too small")
	}
	if snap := g.Snapshot(); snap.State != StatePausedSmall {
		t.Errorf("State should be paused_small_window, got %s", snap.State)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(444)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	content := screen.String()
	if !strings.Contains(content, "Snake") {
		t.Error("HUD should contain 'Snake'")
	}
	if !strings.Contains(content, "▓▓") {
		t.Error("snake head should be drawn")
	}
	if !strings.Contains(content, "()") {
		t.Error("food should be drawn")
	}
}

func TestGameID(t *testing.T) {
	g := New()
	if g.ID() != "snake" || g.Title() != "Snake" {
		t.Errorf("ID/Title = %s/%s", g.ID(), g.Title())
	}
}

func TestResizeKeepsSnake(t *testing.T) {
	g := newTestGame(8)
	g.engine.path = []core.Point{{X: 3, Y: 3}, {X: 2, Y: 3}}

	g.Resize(20, 10)
	if !g.tooSmall {
		t.Fatal("expected too small")
	}
	g.Resize(80, 24)
	if g.tooSmall || g.engine.Len() != 2 {
		t.Errorf("tooSmall=%v len=%d", g.tooSmall, g.engine.Len())
	}
}
