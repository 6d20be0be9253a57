package snake

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
	Tick      uint64
	Score     int
	SnakeLen  int
	HeadX     int
	HeadY     int
	Dir       string
	FoodX     int
	FoodY     int
	MoveEvery int
	State     GameStateType
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

	head, food := g.engine.Head(), g.engine.Food()
	return Snapshot{
		Tick:      g.tick,
		Score:     g.engine.Score(),
		SnakeLen:  g.engine.Len(),
		HeadX:     head.X,
		HeadY:     head.Y,
		Dir:       HeadingName(g.engine.Heading()),
		FoodX:     food.X,
		FoodY:     food.Y,
		MoveEvery: g.moveEvery(),
		State:     state,
	}
}
