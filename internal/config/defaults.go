package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// defaultProgression is shared by both games: score-driven, off until a preset enables it.
func defaultProgression(maxAt int, mult float64) DifficultyConfig {
	return DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.0,
		Progression: ProgressionConfig{
			Type:  ProgressByScore,
			MaxAt: maxAt,
		},
		Scaling: ScalingConfig{
			SpeedMultiplier: mult,
		},
	}
}

// DefaultBlocksConfig returns the default block game configuration.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Timing:     BlocksTiming{GravityMS: 500},
		Difficulty: defaultProgression(5000, 3.0),
	}
}

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Timing:     SnakeTiming{TickMS: 150},
		Difficulty: defaultProgression(500, 1.5),
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "blocks":
		return defaultBlocksYAML
	case "snake":
		return defaultSnakeYAML
	default:
		return nil
	}
}
