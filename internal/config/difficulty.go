package config

import (
	"fmt"
	"strings"
	"time"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the accepted preset names.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParseDifficulty parses a preset name. An empty name means normal.
func ParseDifficulty(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
}

// ApplyTetrisPreset scales the gravity curve for a preset. The game still
// starts at level 1; only how fast pieces fall changes. Normal leaves the
// config untouched.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gravity.Base = scale(cfg.Gravity.Base, 4, 3)
		cfg.Gravity.LevelStep = scale(cfg.Gravity.LevelStep, 3, 4)
		cfg.Gravity.Min = scale(cfg.Gravity.Min, 3, 2)
	case DifficultyHard:
		cfg.Gravity.Base = scale(cfg.Gravity.Base, 2, 3)
		cfg.Gravity.LevelStep = scale(cfg.Gravity.LevelStep, 3, 4)
		cfg.Gravity.Min = scale(cfg.Gravity.Min, 2, 3)
	}
	if cfg.Gravity.Base < cfg.Gravity.Min {
		cfg.Gravity.Base = cfg.Gravity.Min
	}
}

// scale returns d*num/den rounded down to whole milliseconds.
func scale(d time.Duration, num, den int64) time.Duration {
	return (d * time.Duration(num) / time.Duration(den)).Truncate(time.Millisecond)
}
