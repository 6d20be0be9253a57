package snake

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/vovakirdan/mini-arcade/internal/core"
)

// fixedRNG always returns the same index, clamped to n.
type fixedRNG int

func (r fixedRNG) Intn(n int) int {
	return min(int(r), n-1)
}

func newTestEngine() *Engine {
	e := NewEngine(rand.New(rand.NewSource(1)))
	e.ResetGame()
	return e
}

func TestResetGame(t *testing.T) {
	e := newTestEngine()

	if got := e.Path(); !slices.Equal(got, []core.Point{{X: 5, Y: 5}}) {
		t.Errorf("path = %v, want [(5,5)]", got)
	}
	if e.Heading() != core.Right {
		t.Errorf("heading = %v, want right", e.Heading())
	}
	if !e.Running() || e.GameOver() || e.Score() != 0 {
		t.Errorf("running=%v gameOver=%v score=%d", e.Running(), e.GameOver(), e.Score())
	}
	if f := e.Food(); !f.In(GridSize, GridSize) || f == Start {
		t.Errorf("food at %v", f)
	}
}

func TestEatFood(t *testing.T) {
	e := newTestEngine()
	e.food = core.Point{X: 6, Y: 5}

	e.Tick()

	want := []core.Point{{X: 6, Y: 5}, {X: 5, Y: 5}}
	if got := e.Path(); !slices.Equal(got, want) {
		t.Errorf("path = %v, want %v", got, want)
	}
	if e.Score() != 10 {
		t.Errorf("score = %d, want 10", e.Score())
	}
	if slices.Contains(e.Path(), e.Food()) {
		t.Errorf("new food %v placed on the snake", e.Food())
	}
}

func TestMoveWithoutFood(t *testing.T) {
	e := newTestEngine()
	e.path = []core.Point{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}}
	e.food = core.Point{X: 0, Y: 0}

	e.Tick()

	want := []core.Point{{X: 6, Y: 5}, {X: 5, Y: 5}, {X: 4, Y: 5}}
	if got := e.Path(); !slices.Equal(got, want) {
		t.Errorf("path = %v, want %v", got, want)
	}
}

func TestOutOfBounds(t *testing.T) {
	tests := []struct {
		name    string
		path    []core.Point
		heading core.Point
	}{
		{"top", []core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}, core.Up},
		{"left", []core.Point{{X: 0, Y: 3}}, core.Left},
		{"right", []core.Point{{X: GridSize - 1, Y: 3}}, core.Right},
		{"bottom", []core.Point{{X: 7, Y: GridSize - 1}}, core.Down},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			e.path = slices.Clone(tt.path)
			e.heading = tt.heading

			e.Tick()

			if !e.GameOver() || e.Running() {
				t.Fatalf("gameOver=%v running=%v", e.GameOver(), e.Running())
			}
			if got := e.Path(); !slices.Equal(got, tt.path) {
				t.Errorf("path changed to %v", got)
			}
		})
	}
}

func TestSelfCollision(t *testing.T) {
	e := newTestEngine()
	e.path = []core.Point{
		{X: 5, Y: 5}, // Head
		{X: 5, Y: 6},
		{X: 6, Y: 6},
		{X: 6, Y: 5},
		{X: 6, Y: 4},
	}
	e.food = core.Point{X: 0, Y: 0}

	e.Tick()

	if !e.GameOver() {
		t.Error("moving into the body should end the game")
	}
}

func TestTailCountsAsBody(t *testing.T) {
	e := newTestEngine()
	// Square loop: the head moves onto the cell the tail occupies.
	e.path = []core.Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}}
	e.food = core.Point{X: 0, Y: 0}

	e.Tick()

	if !e.GameOver() {
		t.Error("head entering the tail cell should end the game")
	}
}

func TestSetHeading(t *testing.T) {
	tests := []struct {
		name string
		h    core.Point
		want bool
	}{
		{"reverse", core.Left, false},
		{"same", core.Right, true},
		{"up", core.Up, true},
		{"down", core.Down, true},
		{"diagonal", core.Point{X: 1, Y: 1}, false},
		{"zero", core.Point{}, false},
		{"long", core.Point{X: 2, Y: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			if got := e.SetHeading(tt.h); got != tt.want {
				t.Errorf("SetHeading(%v) = %v, want %v", tt.h, got, tt.want)
			}
			want := core.Right
			if tt.want {
				want = tt.h
			}
			if e.Heading() != want {
				t.Errorf("heading = %v, want %v", e.Heading(), want)
			}
		})
	}
}

func TestSetHeadingWhenStopped(t *testing.T) {
	e := NewEngine(fixedRNG(0))
	if e.SetHeading(core.Up) {
		t.Error("idle engine should reject headings")
	}

	e.ResetGame()
	e.path = []core.Point{{X: 0, Y: 0}}
	e.heading = core.Up
	e.Tick()
	if e.SetHeading(core.Right) {
		t.Error("finished game should reject headings")
	}
}

func TestPlaceFoodFullGrid(t *testing.T) {
	e := NewEngine(fixedRNG(0))
	e.ResetGame()

	e.path = e.path[:0]
	for y := range GridSize {
		for x := range GridSize {
			e.path = append(e.path, core.Point{X: x, Y: y})
		}
	}
	e.PlaceFood()
	if e.Food() != NoFood {
		t.Errorf("food = %v, want NoFood", e.Food())
	}

	e.path = e.path[1:]
	e.PlaceFood()
	if e.Food() != (core.Point{X: 0, Y: 0}) {
		t.Errorf("food = %v, want the single free cell", e.Food())
	}
}

func TestRandomPlayInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	headings := []core.Point{core.Up, core.Down, core.Left, core.Right}

	for game := 0; game < 20; game++ {
		e := NewEngine(r)
		e.ResetGame()

		for step := 0; step < 1000 && !e.GameOver(); step++ {
			e.SetHeading(headings[r.Intn(len(headings))])
			before, score := e.Len(), e.Score()

			e.Tick()
			if e.GameOver() {
				break
			}

			switch grown := e.Score() > score; {
			case grown && e.Len() != before+1:
				t.Fatalf("length %d -> %d after eating", before, e.Len())
			case !grown && e.Len() != before:
				t.Fatalf("length %d -> %d without food", before, e.Len())
			}

			path := e.Path()
			seen := make(map[core.Point]bool, len(path))
			for _, p := range path {
				if !p.In(GridSize, GridSize) {
					t.Fatalf("segment %v outside the grid", p)
				}
				if seen[p] {
					t.Fatalf("duplicate segment %v", p)
				}
				seen[p] = true
			}
			if seen[e.Food()] {
				t.Fatalf("food %v on the snake", e.Food())
			}
		}
	}
}
