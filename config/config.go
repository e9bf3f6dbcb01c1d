// Package config loads game settings from YAML over embedded defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"term-snake/game/types"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrUnknownDifficulty is returned for a difficulty name with no preset.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulty preset names.
const (
	Free   = "free"
	Easy   = "easy"
	Medium = "medium"
	Hard   = "hard"
)

// Config holds all game configuration.
type Config struct {
	Scores       ScoresConfig       `yaml:"scores"`
	Game         GameConfig         `yaml:"game"`
	Difficulties DifficultiesConfig `yaml:"difficulties"`
	Audio        AudioConfig        `yaml:"audio"`
	Glyphs       GlyphsConfig       `yaml:"glyphs"`
	Log          LogConfig          `yaml:"log"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScoresConfig locates the high-score file.
type ScoresConfig struct {
	File string `yaml:"file"`
	Top  int    `yaml:"top"` // entries shown on the high-score screen
}

// GameConfig holds rules shared by every mode.
type GameConfig struct {
	InitialLength  int              `yaml:"initial_length"`
	EatEffectLimit time.Duration    `yaml:"eat_effect_limit"`
	Free           DifficultyConfig `yaml:"free"`
}

// DifficultyConfig is one speed/border preset.
type DifficultyConfig struct {
	Tick      time.Duration `yaml:"tick"`
	HasBorder bool          `yaml:"has_border"`
}

// DifficultiesConfig holds the presets offered in Vs Computer mode.
type DifficultiesConfig struct {
	Easy   DifficultyConfig `yaml:"easy"`
	Medium DifficultyConfig `yaml:"medium"`
	Hard   DifficultyConfig `yaml:"hard"`
}

// AudioConfig selects the sound backend and its assets.
type AudioConfig struct {
	Backend     string  `yaml:"backend"`
	AssetsDir   string  `yaml:"assets_dir"`
	Eat         string  `yaml:"eat"`
	GameOver    string  `yaml:"game_over"`
	Theme       string  `yaml:"theme"`
	EatVolume   float64 `yaml:"eat_volume"`
	ThemeVolume float64 `yaml:"theme_volume"`
}

// GlyphsConfig holds the characters drawn for the snake and food.
type GlyphsConfig struct {
	Head string `yaml:"head"`
	Body string `yaml:"body"`
	Food string `yaml:"food"`
}

// LogConfig controls the log file. An empty file disables logging.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// DerivedConfig holds values computed from the loaded configuration.
type DerivedConfig struct {
	Head, Body, Food rune
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only fields present in the file are overwritten.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Scores.File == "" {
		return errors.New("config: scores.file must not be empty")
	}
	if c.Scores.Top <= 0 {
		return fmt.Errorf("config: scores.top must be positive, got %d", c.Scores.Top)
	}
	if c.Game.InitialLength < 1 {
		return fmt.Errorf("config: game.initial_length must be at least 1, got %d", c.Game.InitialLength)
	}
	for _, name := range []string{Free, Easy, Medium, Hard} {
		d, _ := c.preset(name)
		if d.Tick <= 0 {
			return fmt.Errorf("config: %s tick must be positive, got %s", name, d.Tick)
		}
	}
	switch c.Audio.Backend {
	case "raylib", "ebiten", "none":
	default:
		return fmt.Errorf("config: audio.backend %q is not one of raylib, ebiten, none", c.Audio.Backend)
	}
	for field, glyph := range map[string]string{"head": c.Glyphs.Head, "body": c.Glyphs.Body, "food": c.Glyphs.Food} {
		if utf8.RuneCountInString(glyph) != 1 {
			return fmt.Errorf("config: glyphs.%s must be a single character, got %q", field, glyph)
		}
	}
	return nil
}

func (c *Config) computeDerived() {
	c.Derived.Head, _ = utf8.DecodeRuneInString(c.Glyphs.Head)
	c.Derived.Body, _ = utf8.DecodeRuneInString(c.Glyphs.Body)
	c.Derived.Food, _ = utf8.DecodeRuneInString(c.Glyphs.Food)
}

func (c *Config) preset(name string) (DifficultyConfig, bool) {
	switch name {
	case Free:
		return c.Game.Free, true
	case Easy:
		return c.Difficulties.Easy, true
	case Medium:
		return c.Difficulties.Medium, true
	case Hard:
		return c.Difficulties.Hard, true
	default:
		return DifficultyConfig{}, false
	}
}

// Difficulty returns the named preset.
func (c *Config) Difficulty(name string) (types.Difficulty, error) {
	d, ok := c.preset(name)
	if !ok {
		return types.Difficulty{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, name)
	}
	return types.Difficulty{Name: name, Tick: d.Tick, HasBorder: d.HasBorder}, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
