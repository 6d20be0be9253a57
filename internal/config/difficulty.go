package config

import (
	"math"
	"time"
)

// Progression types understood by DifficultyManager.
const (
	ProgressByScore = "score"
	ProgressByTime  = "time"
	ProgressNone    = "none"
)

// DifficultyManager turns a DifficultyConfig into step periods that shrink
// as the player scores.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = math.Max(0, math.Min(1, cfg.InitialLevel))
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled reports whether the level moves with score or time.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressNone
}

// Level is the difficulty in [InitialLevel, 1]. It climbs linearly until the
// progression counter reaches MaxAt.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	start := d.cfg.InitialLevel
	if !d.IsEnabled() {
		return start
	}

	var counter int
	switch d.cfg.Progression.Type {
	case ProgressByScore:
		counter = score
	case ProgressByTime:
		counter = ticks
	default:
		return start
	}

	progress := 1.0
	if maxAt := d.cfg.Progression.MaxAt; maxAt > 0 {
		progress = math.Min(1, math.Max(0, float64(counter)/float64(maxAt)))
	}
	return start + progress*(1-start)
}

// Interval divides base by the speed-up at the current level. At level 1 the
// speed-up is 1+SpeedMultiplier. The result is at least one millisecond.
func (d *DifficultyManager) Interval(base time.Duration, score int, ticks int) time.Duration {
	speedUp := 1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier
	if speedUp <= 0 {
		return base
	}
	return max(time.Duration(float64(base)/speedUp), time.Millisecond)
}
