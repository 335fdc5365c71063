// Package config provides YAML-based game configuration loading and
// difficulty presets for the tetris engine.
package config

import (
	"errors"
	"fmt"
	"time"
)

// TetrisConfig contains all configuration for the falling-block game.
type TetrisConfig struct {
	Board       BoardConfig       `yaml:"board"`
	Speed       SpeedConfig       `yaml:"speed"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Input       InputConfig       `yaml:"input"`
	Rotation    RotationConfig    `yaml:"rotation"`
	Pieces      PiecesConfig      `yaml:"pieces"`
	Player      PlayerConfig      `yaml:"player"`
	Persistence PersistenceConfig `yaml:"persistence"`
}

// BoardConfig defines the playfield dimensions.
type BoardConfig struct {
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`
}

// SpeedConfig defines gravity timing and its step-wise progression.
type SpeedConfig struct {
	Enabled        bool `yaml:"enabled"`          // false keeps the base interval for the whole game
	BaseIntervalMs int  `yaml:"base_interval_ms"` // gravity interval at game start
	DecrementMs    int  `yaml:"decrement_ms"`     // subtracted each time a threshold is crossed
	MinIntervalMs  int  `yaml:"min_interval_ms"`  // floor for the gravity interval
	Threshold      int  `yaml:"threshold"`        // first score threshold
	ThresholdStep  int  `yaml:"threshold_step"`   // added to the threshold when crossed
}

// ScoringConfig defines points awarded for cleared lines.
type ScoringConfig struct {
	PointsPerLine int `yaml:"points_per_line"`
}

// InputConfig defines held-key repeat timing.
type InputConfig struct {
	SoftDropIntervalMs int `yaml:"soft_drop_interval_ms"`
}

// RotationConfig lists the offsets tried, in order, when a rotation collides.
type RotationConfig struct {
	Kicks []KickConfig `yaml:"kicks"`
}

// KickConfig is a single (dx, dy) rotation offset. Positive dy moves down.
type KickConfig struct {
	DX int `yaml:"dx"`
	DY int `yaml:"dy"`
}

// PiecesConfig selects the piece randomizer.
type PiecesConfig struct {
	Randomizer string `yaml:"randomizer"` // "bag" or "uniform"
}

// PlayerConfig defines player name rules.
type PlayerConfig struct {
	MaxNameLength int `yaml:"max_name_length"`
}

// PersistenceConfig defines score collaborator timeouts.
type PersistenceConfig struct {
	FetchTimeoutMs  int `yaml:"fetch_timeout_ms"`
	SubmitTimeoutMs int `yaml:"submit_timeout_ms"`
}

// Randomizer names.
const (
	RandomizerBag     = "bag"
	RandomizerUniform = "uniform"
)

// BaseInterval returns the starting gravity interval.
func (s SpeedConfig) BaseInterval() time.Duration {
	return time.Duration(s.BaseIntervalMs) * time.Millisecond
}

// Decrement returns the interval reduction applied per threshold.
func (s SpeedConfig) Decrement() time.Duration {
	return time.Duration(s.DecrementMs) * time.Millisecond
}

// MinInterval returns the gravity interval floor.
func (s SpeedConfig) MinInterval() time.Duration {
	return time.Duration(s.MinIntervalMs) * time.Millisecond
}

// SoftDropInterval returns the soft drop repeat interval.
func (i InputConfig) SoftDropInterval() time.Duration {
	return time.Duration(i.SoftDropIntervalMs) * time.Millisecond
}

// FetchTimeout returns the high score fetch timeout.
func (p PersistenceConfig) FetchTimeout() time.Duration {
	return time.Duration(p.FetchTimeoutMs) * time.Millisecond
}

// SubmitTimeout returns the score submit timeout.
func (p PersistenceConfig) SubmitTimeout() time.Duration {
	return time.Duration(p.SubmitTimeoutMs) * time.Millisecond
}

// Validate reports every invalid setting.
func (c TetrisConfig) Validate() error {
	var errs []error
	if c.Board.Rows < 4 || c.Board.Columns < 4 {
		errs = append(errs, fmt.Errorf("board must be at least 4x4, got %dx%d", c.Board.Rows, c.Board.Columns))
	}
	if c.Speed.BaseIntervalMs <= 0 {
		errs = append(errs, errors.New("speed.base_interval_ms must be positive"))
	}
	if c.Speed.MinIntervalMs <= 0 || c.Speed.MinIntervalMs > c.Speed.BaseIntervalMs {
		errs = append(errs, errors.New("speed.min_interval_ms must be positive and not above base_interval_ms"))
	}
	if c.Speed.DecrementMs < 0 {
		errs = append(errs, errors.New("speed.decrement_ms must not be negative"))
	}
	if c.Speed.Enabled && (c.Speed.Threshold <= 0 || c.Speed.ThresholdStep <= 0) {
		errs = append(errs, errors.New("speed.threshold and speed.threshold_step must be positive"))
	}
	if c.Scoring.PointsPerLine < 0 {
		errs = append(errs, errors.New("scoring.points_per_line must not be negative"))
	}
	if c.Input.SoftDropIntervalMs <= 0 {
		errs = append(errs, errors.New("input.soft_drop_interval_ms must be positive"))
	}
	if len(c.Rotation.Kicks) == 0 {
		errs = append(errs, errors.New("rotation.kicks must list at least one offset"))
	}
	switch c.Pieces.Randomizer {
	case RandomizerBag, RandomizerUniform:
	default:
		errs = append(errs, fmt.Errorf("pieces.randomizer %q is not one of bag, uniform", c.Pieces.Randomizer))
	}
	if c.Player.MaxNameLength <= 0 {
		errs = append(errs, errors.New("player.max_name_length must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty converts a flag value into a preset. Empty means no preset.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}
