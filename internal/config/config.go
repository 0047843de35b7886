// Package config holds the game settings and their yaml persistence. The
// board treats the values as immutable once a grid is populated; changing
// them takes effect on the next populate.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all Lucky Thirteen settings.
type Config struct {
	// Game rules
	Game GameConfig `yaml:"game"`

	// Audio output
	Audio AudioConfig `yaml:"audio"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`
}

// GameConfig sets the board shape and the winning sum.
type GameConfig struct {
	BoardSize int `yaml:"board_size"` // side length of the square grid
	Target    int `yaml:"target"`     // the sum selections must reach
}

// AudioConfig selects the sound library and voice pack.
type AudioConfig struct {
	SoundsDir   string  `yaml:"sounds_dir"`   // root of the sound library
	Voice       string  `yaml:"voice"`        // active voice pack name
	MusicVolume float64 `yaml:"music_volume"` // 0.0 to 1.0
	Muted       bool    `yaml:"muted"`
}

// UIConfig configures the terminal presentation.
type UIConfig struct {
	Theme string `yaml:"theme"` // "light" or "dark"
}

// DefaultConfig returns the settings a fresh install starts with.
func DefaultConfig() *Config {
	return &Config{
		Game: GameConfig{
			BoardSize: 4,
			Target:    13,
		},
		Audio: AudioConfig{
			SoundsDir:   "sounds",
			MusicVolume: 0.5,
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(dir, "lucky-thirteen", "config.yaml"), nil
}

// Load reads the config at path, fills gaps with defaults and applies env
// overrides. A missing file is not an error; it yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as yaml, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// applyEnvOverrides lets the environment win over the file. Useful for
// pointing a test run or a packaged build at a different sound library.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LUCKY_SOUNDS_DIR"); v != "" {
		c.Audio.SoundsDir = v
	}
	if v := os.Getenv("LUCKY_VOICE"); v != "" {
		c.Audio.Voice = v
	}
	if v := os.Getenv("LUCKY_BOARD_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Game.BoardSize = n
		}
	}
	if v := os.Getenv("LUCKY_TARGET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Game.Target = n
		}
	}
}

// Validate rejects settings that would make the board invariants
// unsatisfiable. Called at load time so a bad file fails before a session
// starts rather than mid-game.
func (c *Config) Validate() error {
	if c.Game.BoardSize < 2 {
		return fmt.Errorf("game.board_size must be at least 2, got %d", c.Game.BoardSize)
	}
	if c.Game.Target < 1 {
		return fmt.Errorf("game.target must be at least 1, got %d", c.Game.Target)
	}
	if c.Audio.MusicVolume < 0 || c.Audio.MusicVolume > 1 {
		return fmt.Errorf("audio.music_volume must be within [0,1], got %g", c.Audio.MusicVolume)
	}
	switch c.UI.Theme {
	case "", "light", "dark":
	default:
		return fmt.Errorf("ui.theme must be light or dark, got %q", c.UI.Theme)
	}
	return nil
}
