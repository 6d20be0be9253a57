// Package blocks implements the falling-block puzzle: pieces drop onto a
// 20x10 board, full rows are cleared for points, and the game ends when a new
// piece has no room to spawn.
package blocks

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/mini-arcade/internal/config"
	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/registry"
)

// GameID is the registry identifier for the block game.
const GameID = "blocks"

// Layout of the play field on screen. Each board cell is two characters wide.
const (
	cellW      = 2
	hudHeight  = 2
	fieldW     = Cols*cellW + 2 // board plus frame
	fieldH     = Rows + 2
	panelW     = 18
	panelGap   = 2
	emptyGlyph = " ."
	blockGlyph = "██"
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
	gravity    time.Duration
	tickRate   int
	tick       uint64
	fallTicker int // ticks since the last gravity step

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

// New creates a new block game.
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
	return "Block Game"
}

// Reset starts a fresh game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	gameCfg, err := config.LoadBlocks(configPath)
	if err != nil {
		gameCfg = config.DefaultBlocksConfig()
	}
	config.ApplyPreset(&gameCfg.Difficulty, difficultyPreset)

	g.difficulty = config.NewDifficultyManager(gameCfg.Difficulty)
	g.gravity = time.Duration(gameCfg.Timing.GravityMS) * time.Millisecond
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.tick = 0
	g.fallTicker = 0
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tooSmall = g.screenW < fieldW || g.screenH < fieldH+hudHeight

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.engine = NewEngine(g.rng)
	g.engine.StartGame()
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

// gravityEvery returns how many ticks pass between gravity steps.
func (g *Game) gravityEvery() int {
	interval := g.difficulty.Interval(g.gravity, g.engine.Score(), int(g.tick))
	return core.TicksFor(interval, g.tickRate)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionRestart) && g.engine.GameOver() {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate,
		})
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.engine.GameOver() {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall || !g.engine.Running() {
		return core.StepResult{State: g.State()}
	}

	// Commands apply before gravity so a tick never interleaves with them.
	g.processInput(in)

	g.fallTicker++
	if g.fallTicker >= g.gravityEvery() {
		g.fallTicker = 0
		g.engine.MoveDown()
	}

	return core.StepResult{State: g.State()}
}

// processInput maps platform actions to engine commands.
func (g *Game) processInput(in core.InputFrame) {
	if in.Has(core.ActionUp) {
		g.engine.Rotate()
	}
	if in.Has(core.ActionLeft) {
		g.engine.MoveHorizontal(-1)
	}
	if in.Has(core.ActionRight) {
		g.engine.MoveHorizontal(1)
	}
	if in.Has(core.ActionDown) {
		g.engine.MoveDown()
	}
	if in.Has(core.ActionDrop) {
		g.engine.HardDrop()
		g.fallTicker = 0
	}
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

	hud := fmt.Sprintf(" Block Game | Score: %d | Lines: %d", g.engine.Score(), g.engine.Lines())
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	if g.tooSmall {
		dst.DrawOverlay("Window too small", fmt.Sprintf("Need %dx%d", fieldW, fieldH+hudHeight))
		return
	}

	originX := (dst.Width() - fieldW - panelGap - panelW) / 2
	if originX < 0 {
		originX = 0
	}
	field := core.NewRect(originX, hudHeight, fieldW, fieldH)
	dst.DrawBox(field)
	g.renderBoard(dst, field.X+1, field.Y+1)
	g.renderPanel(dst, field.Right()+panelGap, field.Y+1)

	switch {
	case g.engine.GameOver():
		dst.DrawOverlay("Game Over", fmt.Sprintf("Score: %d  R: play again", g.engine.Score()))
	case g.paused:
		dst.DrawOverlay("Paused", "Press P to continue")
	}
}

// renderBoard draws committed cells plus the falling piece.
func (g *Game) renderBoard(dst *core.Screen, x0, y0 int) {
	cells := g.engine.Cells()
	for y := range Rows {
		for x := range Cols {
			sx := x0 + x*cellW
			if c := cells[y][x]; c != Empty {
				dst.DrawTextColored(sx, y0+y, blockGlyph, c)
			} else {
				dst.DrawTextColored(sx, y0+y, emptyGlyph, core.ColorGray)
			}
		}
	}
}

// renderPanel draws the score panel and key help beside the board.
func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	if x+panelW > dst.Width() {
		return
	}
	lines := []string{
		fmt.Sprintf("Score  %d", g.engine.Score()),
		fmt.Sprintf("Lines  %d", g.engine.Lines()),
		"",
		"←/→    move",
		"↓      soft drop",
		"↑      rotate",
		"Space  drop",
		"P      pause",
		"Q      quit",
	}
	if g.difficulty.IsEnabled() {
		ms := g.difficulty.Interval(g.gravity, g.engine.Score(), int(g.tick)).Milliseconds()
		lines = append(lines[:2], append([]string{fmt.Sprintf("Speed  %dms", ms)}, lines[2:]...)...)
	}
	for i, line := range lines {
		dst.DrawText(x, y+i, line)
	}
}
