package blocks

import "github.com/vovakirdan/mini-arcade/internal/core"

// Board dimensions and scoring.
const (
	Rows          = 20
	Cols          = 10
	PointsPerLine = 100
)

// Board holds committed cells. The zero color marks an empty cell.
type Board [Rows][Cols]core.Color

// Empty is the color of an unoccupied board cell.
const Empty = core.ColorDefault

// SpawnPosition is where every new piece appears.
var SpawnPosition = core.Point{X: Cols/2 - 1, Y: 0}

// rowFull reports whether row y has no empty cell.
func (b *Board) rowFull(y int) bool {
	for _, c := range b[y] {
		if c == Empty {
			return false
		}
	}
	return true
}

// removeRow deletes row y, shifts everything above it down by one
// and inserts an empty row at the top.
func (b *Board) removeRow(y int) {
	for row := y; row > 0; row-- {
		b[row] = b[row-1]
	}
	b[0] = [Cols]core.Color{}
}

// Engine is the falling-block state machine. All commands are silent no-ops
// when they would be illegal; game over is reported through GameOver.
type Engine struct {
	rng      core.RNG
	board    Board
	piece    Piece
	active   bool
	pos      core.Point
	score    int
	lines    int
	gameOver bool
	running  bool
}

// NewEngine creates an idle engine drawing pieces from rng.
// Call StartGame to begin.
func NewEngine(rng core.RNG) *Engine {
	return &Engine{rng: rng}
}

// StartGame clears the board and score and spawns the first piece.
func (e *Engine) StartGame() {
	e.board = Board{}
	e.score = 0
	e.lines = 0
	e.gameOver = false
	e.SpawnPiece()
	e.running = true
}

// SpawnPiece replaces the current piece with a uniformly random catalog piece
// at the spawn position.
func (e *Engine) SpawnPiece() {
	e.piece = NewPiece(Kind(e.rng.Intn(KindCount)))
	e.pos = SpawnPosition
	e.active = true
}

// Collides reports whether shape placed at pos would leave the side walls,
// reach the floor, or overlap a committed cell. Rows above the board are
// only bounded horizontally.
func (e *Engine) Collides(shape Shape, pos core.Point) bool {
	for _, c := range shape.Cells() {
		x, y := pos.X+c.X, pos.Y+c.Y
		if x < 0 || x >= Cols || y >= Rows {
			return true
		}
		if y >= 0 && e.board[y][x] != Empty {
			return true
		}
	}
	return false
}

// CommitPiece merges the current piece into the board, clears full rows and
// spawns the next piece. Returns the number of rows cleared.
func (e *Engine) CommitPiece() int {
	if !e.active {
		return 0
	}

	for _, c := range e.piece.Shape.Cells() {
		x, y := e.pos.X+c.X, e.pos.Y+c.Y
		if y >= 0 {
			e.board[y][x] = e.piece.Color
		}
	}

	cleared := 0
	for y := Rows - 1; y >= 0; y-- {
		if e.board.rowFull(y) {
			e.board.removeRow(y)
			cleared++
			y++ // rows shifted down; look at this index again
		}
	}
	e.lines += cleared
	e.score += cleared * PointsPerLine

	e.SpawnPiece()
	if e.Collides(e.piece.Shape, e.pos) {
		e.active = false
		e.gameOver = true
		e.running = false
	}
	return cleared
}

// playable reports whether commands currently apply.
func (e *Engine) playable() bool {
	return e.active && e.running && !e.gameOver
}

// MoveDown drops the piece one row, committing it if it cannot fall further.
func (e *Engine) MoveDown() {
	if !e.playable() {
		return
	}
	next := e.pos.Add(core.Down)
	if e.Collides(e.piece.Shape, next) {
		e.CommitPiece()
		return
	}
	e.pos = next
}

// MoveHorizontal shifts the piece one column; dir < 0 is left, dir > 0 right.
func (e *Engine) MoveHorizontal(dir int) {
	if !e.playable() || dir == 0 {
		return
	}
	step := core.Right
	if dir < 0 {
		step = core.Left
	}
	next := e.pos.Add(step)
	if !e.Collides(e.piece.Shape, next) {
		e.pos = next
	}
}

// Rotate turns the piece clockwise in place. There is no wall kick: a
// rotation that would collide is dropped.
func (e *Engine) Rotate() {
	if !e.playable() {
		return
	}
	rotated := e.piece.Shape.Rotated()
	if !e.Collides(rotated, e.pos) {
		e.piece.Shape = rotated
	}
}

// HardDrop slides the piece to the lowest free row and commits it.
// Returns the number of rows the piece fell.
func (e *Engine) HardDrop() int {
	if !e.playable() {
		return 0
	}
	fell := 0
	for !e.Collides(e.piece.Shape, e.pos.Add(core.Down)) {
		e.pos = e.pos.Add(core.Down)
		fell++
	}
	e.CommitPiece()
	return fell
}

// Board returns a copy of the committed cells.
func (e *Engine) Board() Board {
	return e.board
}

// Piece returns the falling piece and whether one is active.
func (e *Engine) Piece() (Piece, bool) {
	return e.piece, e.active
}

// Position returns the falling piece's origin.
func (e *Engine) Position() core.Point {
	return e.pos
}

// Cells returns the committed board with the falling piece overlaid.
// Overlay cells outside the visible board are skipped.
func (e *Engine) Cells() Board {
	cells := e.board
	if !e.active {
		return cells
	}
	for _, c := range e.piece.Shape.Cells() {
		p := e.pos.Add(c)
		if p.In(Cols, Rows) {
			cells[p.Y][p.X] = e.piece.Color
		}
	}
	return cells
}

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Lines returns the number of rows cleared this game.
func (e *Engine) Lines() int { return e.lines }

// GameOver reports whether a spawned piece had no room.
func (e *Engine) GameOver() bool { return e.gameOver }

// Running reports whether the run loop should keep ticking.
func (e *Engine) Running() bool { return e.running }
