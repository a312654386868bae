// Package config provides YAML-based rules configuration and difficulty
// presets for the tetris engine.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/engine"
)

// ErrInvalidConfig is returned by Validate for values the engine cannot run with.
var ErrInvalidConfig = errors.New("config: invalid tetris config")

// TetrisConfig contains all tunable rules of a tetris game.
type TetrisConfig struct {
	Board    BoardConfig    `yaml:"board"`
	Rotation RotationConfig `yaml:"rotation"`
	Gravity  GravityConfig  `yaml:"gravity"`
	Scoring  ScoringConfig  `yaml:"scoring"`
}

// BoardConfig sets the playfield size in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RotationConfig controls wall kicks.
type RotationConfig struct {
	WallKicks bool `yaml:"wall_kicks"`
	// Kicks overrides the kick list as [dx, dy] pairs. The first pair must
	// be [0, 0]. Empty means the built-in list.
	Kicks [][2]int `yaml:"kicks,omitempty"`
}

// GravityConfig defines the drop interval curve.
type GravityConfig struct {
	Base            time.Duration `yaml:"base"`
	LevelStep       time.Duration `yaml:"level_step"`
	Min             time.Duration `yaml:"min"`
	SoftDropMax     time.Duration `yaml:"soft_drop_max"`
	SoftDropDivisor int           `yaml:"soft_drop_divisor"`
	LinesPerLevel   int           `yaml:"lines_per_level"`
}

// ScoringConfig defines the point awards.
type ScoringConfig struct {
	// LineScores[n-1] is the base award for clearing n rows, times level.
	LineScores      []int `yaml:"line_scores"`
	HardDropPerCell int   `yaml:"hard_drop_per_cell"`
}

// DefaultTetrisConfig mirrors the engine defaults.
func DefaultTetrisConfig() TetrisConfig {
	rules := engine.DefaultRules()
	return TetrisConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
		},
		Rotation: RotationConfig{
			WallKicks: true,
		},
		Gravity: GravityConfig{
			Base:            rules.BaseInterval,
			LevelStep:       rules.LevelStep,
			Min:             rules.MinInterval,
			SoftDropMax:     rules.SoftDropMax,
			SoftDropDivisor: rules.SoftDropDivisor,
			LinesPerLevel:   rules.LinesPerLevel,
		},
		Scoring: ScoringConfig{
			LineScores:      append([]int(nil), rules.LineScores...),
			HardDropPerCell: rules.HardDropPerCell,
		},
	}
}

// Validate checks the config before it reaches the engine.
func (c TetrisConfig) Validate() error {
	if c.Board.Width < 4 || c.Board.Height < 4 {
		return fmt.Errorf("%w: board must be at least 4x4, got %dx%d", ErrInvalidConfig, c.Board.Width, c.Board.Height)
	}
	if len(c.Rotation.Kicks) > 0 && c.Rotation.Kicks[0] != [2]int{0, 0} {
		return fmt.Errorf("%w: first kick must be [0, 0]", ErrInvalidConfig)
	}
	if err := c.Rules().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Rules converts the gravity and scoring sections to engine rules.
func (c TetrisConfig) Rules() engine.Rules {
	return engine.Rules{
		LineScores:      append([]int(nil), c.Scoring.LineScores...),
		HardDropPerCell: c.Scoring.HardDropPerCell,
		LinesPerLevel:   c.Gravity.LinesPerLevel,
		BaseInterval:    c.Gravity.Base,
		LevelStep:       c.Gravity.LevelStep,
		MinInterval:     c.Gravity.Min,
		SoftDropMax:     c.Gravity.SoftDropMax,
		SoftDropDivisor: c.Gravity.SoftDropDivisor,
	}
}

// KickList returns the kick offsets the engine should try.
func (c TetrisConfig) KickList() []engine.Offset {
	if !c.Rotation.WallKicks {
		return engine.NoKicks
	}
	if len(c.Rotation.Kicks) == 0 {
		return engine.DefaultKicks
	}
	kicks := make([]engine.Offset, len(c.Rotation.Kicks))
	for i, k := range c.Rotation.Kicks {
		kicks[i] = engine.Offset{X: k[0], Y: k[1]}
	}
	return kicks
}

// EngineOptions builds session options for one game.
func (c TetrisConfig) EngineOptions(seed int64) engine.Options {
	return engine.Options{
		Width:  c.Board.Width,
		Height: c.Board.Height,
		Seed:   seed,
		Kicks:  c.KickList(),
		Rules:  c.Rules(),
	}
}
