package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBlocks loads the block game configuration.
// Search order: customPath -> ~/.arcade/configs/blocks.yaml -> ./configs/blocks.yaml -> embedded default
func LoadBlocks(customPath string) (BlocksConfig, error) {
	cfg, err := load("blocks.yaml", customPath, defaultBlocksYAML, DefaultBlocksConfig())
	if err != nil {
		return cfg, err
	}
	if cfg.Timing.GravityMS <= 0 {
		cfg.Timing.GravityMS = DefaultBlocksConfig().Timing.GravityMS
	}
	return cfg, nil
}

// LoadSnake loads the snake configuration.
// Search order: customPath -> ~/.arcade/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
func LoadSnake(customPath string) (SnakeConfig, error) {
	cfg, err := load("snake.yaml", customPath, defaultSnakeYAML, DefaultSnakeConfig())
	if err != nil {
		return cfg, err
	}
	if cfg.Timing.TickMS <= 0 {
		cfg.Timing.TickMS = DefaultSnakeConfig().Timing.TickMS
	}
	return cfg, nil
}

// load resolves one config file following the search order above.
// Fields missing from a file keep the values from fallback.
func load[T any](filename, customPath string, embedded []byte, fallback T) (T, error) {
	// Try custom path first
	if customPath != "" {
		cfg := fallback
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{
		userConfigPath(filename),
		filepath.Join("configs", filename),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := fallback
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := fallback
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback, nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// WriteDefault writes the embedded default config for gameID to path, or to
// ~/.arcade/configs/<game>.yaml when path is empty. An existing file is left
// alone and reported as an error wrapping fs.ErrExist.
func WriteDefault(gameID, path string) (string, error) {
	data := GetDefaultYAML(gameID)
	if data == nil {
		return "", fmt.Errorf("config: no default config for %q", gameID)
	}
	if path == "" {
		path = userConfigPath(gameID + ".yaml")
		if path == "" {
			return "", fmt.Errorf("config: cannot locate home directory")
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("config: cannot create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("config: cannot create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("config: cannot write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("config: cannot write %s: %w", path, err)
	}
	return path, nil
}
