package blocks

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick   uint64
	Score  int
	Lines  int
	Piece  string // Kind letter of the falling piece, "" when none
	PieceX int
	PieceY int
	Filled int // committed cells on the board
	State  GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.engine.GameOver():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	snap := Snapshot{
		Tick:  g.tick,
		Score: g.engine.Score(),
		Lines: g.engine.Lines(),
		State: state,
	}
	if piece, ok := g.engine.Piece(); ok {
		pos := g.engine.Position()
		snap.Piece = piece.Kind.String()
		snap.PieceX = pos.X
		snap.PieceY = pos.Y
	}
	board := g.engine.Board()
	for y := range Rows {
		for x := range Cols {
			if board[y][x] != Empty {
				snap.Filled++
			}
		}
	}
	return snap
}
