// Package snake implements the grid crawler: a snake on a 20x20 grid that
// grows when it eats and dies on the walls or its own body.
package snake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/mini-arcade/internal/config"
	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/registry"
)

// GameID is the registry identifier for the snake game.
const GameID = "snake"

const (
	cellW     = 2
	hudHeight = 2
	fieldW    = GridSize*cellW + 2
	fieldH    = GridSize + 2
)

var (
	// configPath stores the custom config path set via CLI
	configPath string
	// difficultyPreset stores the difficulty preset set via CLI
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game adapts Engine to the platform's fixed-tick loop.
type Game struct {
	engine     *Engine
	rng        *rand.Rand
	difficulty *config.DifficultyManager
	period     time.Duration
	tickRate   int
	tick       uint64
	moveTicker int        // Counts ticks until next move
	pending    core.Point // Heading for the next move, zero if none

	// Screen dimensions
	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

// New creates a new Snake game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	gameCfg, err := config.LoadSnake(configPath)
	if err != nil {
		gameCfg = config.DefaultSnakeConfig()
	}
	config.ApplyPreset(&gameCfg.Difficulty, difficultyPreset)

	g.difficulty = config.NewDifficultyManager(gameCfg.Difficulty)
	g.period = time.Duration(gameCfg.Timing.TickMS) * time.Millisecond
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.tick = 0
	g.moveTicker = 0
	g.pending = core.Point{}
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tooSmall = g.screenW < fieldW || g.screenH < fieldH+hudHeight

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.engine = NewEngine(g.rng)
	g.engine.ResetGame()
}

// Resize follows a terminal resize without restarting the game.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.tooSmall = width < fieldW || height < fieldH+hudHeight
}

// Engine exposes the underlying state machine.
func (g *Game) Engine() *Engine {
	return g.engine
}

// moveEvery returns how many ticks pass between snake moves.
func (g *Game) moveEvery() int {
	interval := g.difficulty.Interval(g.period, g.engine.Score(), int(g.tick))
	return core.TicksFor(interval, g.tickRate)
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) && g.engine.GameOver() {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate,
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !g.engine.GameOver() {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall || !g.engine.Running() {
		return core.StepResult{State: g.State()}
	}

	g.processInput(input)

	g.moveTicker++
	if g.moveTicker >= g.moveEvery() {
		g.moveTicker = 0
		if g.pending != (core.Point{}) {
			g.engine.SetHeading(g.pending)
			g.pending = core.Point{}
		}
		g.engine.Tick()
	}

	return core.StepResult{State: g.State()}
}

// processInput queues the first heading in input that is legal against the
// heading of the last move. A later legal key in the same move period
// replaces the queued one.
func (g *Game) processInput(input core.InputFrame) {
	for _, k := range headingKeys {
		if !input.Has(k.action) || k.heading.IsOpposite(g.engine.Heading()) {
			continue
		}
		g.pending = k.heading
		return
	}
}

var headingKeys = [...]struct {
	action  core.Action
	heading core.Point
}{
	{core.ActionUp, core.Up},
	{core.ActionDown, core.Down},
	{core.ActionLeft, core.Left},
	{core.ActionRight, core.Right},
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.engine.Score(),
		GameOver: g.engine.GameOver(),
		Paused:   g.paused,
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	hud := fmt.Sprintf(" Snake | Score: %d | Length: %d", g.engine.Score(), g.engine.Len())
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	if g.tooSmall {
		dst.DrawOverlay("Window too small", fmt.Sprintf("Need %dx%d", fieldW, fieldH+hudHeight))
		return
	}

	originX := max((dst.Width()-fieldW)/2, 0)
	field := core.NewRect(originX, hudHeight, fieldW, fieldH)
	dst.DrawBox(field)

	x0, y0 := field.X+1, field.Y+1
	cellAt := func(p core.Point) (int, int) {
		return x0 + p.X*cellW, y0 + p.Y
	}

	if food := g.engine.Food(); food != NoFood {
		x, y := cellAt(food)
		dst.DrawTextColored(x, y, "()", core.ColorRed)
	}
	for i, seg := range g.engine.Path() {
		x, y := cellAt(seg)
		glyph := "██"
		if i == 0 {
			glyph = "▓▓" // Head
		}
		dst.DrawTextColored(x, y, glyph, core.ColorGreen)
	}

	switch {
	case g.engine.GameOver():
		dst.DrawOverlay("Game Over", fmt.Sprintf("Score: %d  R: play again", g.engine.Score()))
	case g.paused:
		dst.DrawOverlay("Paused", "Press P to continue")
	}
}

// HeadingName returns a readable name for a unit heading.
func HeadingName(h core.Point) string {
	switch h {
	case core.Up:
		return "up"
	case core.Down:
		return "down"
	case core.Left:
		return "left"
	case core.Right:
		return "right"
	default:
		return "unknown"
	}
}
