package snake

import "github.com/vovakirdan/mini-arcade/internal/core"

// Grid and scoring constants.
const (
	GridSize      = 20
	PointsPerFood = 10
)

// Start is where the snake's single segment appears on reset.
var Start = core.Point{X: 5, Y: 5}

// NoFood marks the food as absent when every cell is taken by the snake.
var NoFood = core.Point{X: -1, Y: -1}

// Engine is the grid crawler state machine. The path lists the snake's
// segments head first.
type Engine struct {
	rng      core.RNG
	path     []core.Point
	food     core.Point
	heading  core.Point
	score    int
	gameOver bool
	running  bool
}

// NewEngine creates an idle engine. Call ResetGame to begin.
func NewEngine(rng core.RNG) *Engine {
	return &Engine{
		rng:     rng,
		path:    []core.Point{Start},
		food:    NoFood,
		heading: core.Right,
	}
}

// ResetGame puts a one-segment snake at the start cell heading right
// and places fresh food.
func (e *Engine) ResetGame() {
	e.path = []core.Point{Start}
	e.heading = core.Right
	e.score = 0
	e.gameOver = false
	e.running = true
	e.PlaceFood()
}

// occupied reports whether p is on the path.
func (e *Engine) occupied(p core.Point) bool {
	for _, seg := range e.path {
		if seg == p {
			return true
		}
	}
	return false
}

// PlaceFood moves the food to a uniformly chosen cell off the path.
// With no free cell left the food becomes NoFood.
func (e *Engine) PlaceFood() {
	free := make([]core.Point, 0, GridSize*GridSize-len(e.path))
	for y := range GridSize {
		for x := range GridSize {
			p := core.Point{X: x, Y: y}
			if !e.occupied(p) {
				free = append(free, p)
			}
		}
	}

	if len(free) == 0 {
		e.food = NoFood
		return
	}
	e.food = free[e.rng.Intn(len(free))]
}

// SetHeading changes direction for the next tick. It returns false and
// leaves the heading alone when the game is not running, h is not a unit
// heading, or h would reverse the snake onto itself.
func (e *Engine) SetHeading(h core.Point) bool {
	if !e.running || !h.IsUnit() || h.IsOpposite(e.heading) {
		return false
	}
	e.heading = h
	return true
}

// Tick moves the snake one cell. Leaving the grid or touching any segment
// ends the game with the path untouched.
func (e *Engine) Tick() {
	if !e.running || e.gameOver {
		return
	}

	head := e.path[0].Add(e.heading)
	if !head.In(GridSize, GridSize) || e.occupied(head) {
		e.gameOver = true
		e.running = false
		return
	}

	e.path = append([]core.Point{head}, e.path...)
	if head == e.food {
		e.score += PointsPerFood
		e.PlaceFood()
		return
	}
	e.path = e.path[:len(e.path)-1]
}

// Path returns a copy of the segments, head first.
func (e *Engine) Path() []core.Point {
	out := make([]core.Point, len(e.path))
	copy(out, e.path)
	return out
}

// Head returns the first segment.
func (e *Engine) Head() core.Point { return e.path[0] }

// Len returns the number of segments.
func (e *Engine) Len() int { return len(e.path) }

// Food returns the food cell, or NoFood.
func (e *Engine) Food() core.Point { return e.food }

// Heading returns the current direction of travel.
func (e *Engine) Heading() core.Point { return e.heading }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// GameOver reports whether the snake has crashed.
func (e *Engine) GameOver() bool { return e.gameOver }

// Running reports whether the tick loop should keep going.
func (e *Engine) Running() bool { return e.running }
