package engine

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidOptions is returned by NewSession when the rules cannot produce a
// playable game (empty score table, non-positive intervals and so on).
var ErrInvalidOptions = errors.New("engine: invalid session options")

// Rules holds the scoring table and the gravity curve.
type Rules struct {
	// LineScores[n-1] is the base award for clearing n rows at once. The
	// award is multiplied by the current level.
	LineScores []int

	// HardDropPerCell is the bonus per row descended by a hard drop.
	HardDropPerCell int

	// LinesPerLevel is how many cleared lines advance the level by one.
	LinesPerLevel int

	// BaseInterval is the gravity interval at level 1. Each further level
	// shortens it by LevelStep until MinInterval is reached.
	BaseInterval time.Duration
	LevelStep    time.Duration
	MinInterval  time.Duration

	// While soft drop is held, gravity runs at
	// min(SoftDropMax, interval/SoftDropDivisor).
	SoftDropMax     time.Duration
	SoftDropDivisor int
}

// DefaultRules returns the classic scoring table (100/300/500/800) and a
// gravity curve starting at 900ms, 80ms faster per level, floored at 120ms.
func DefaultRules() Rules {
	return Rules{
		LineScores:      []int{100, 300, 500, 800},
		HardDropPerCell: 2,
		LinesPerLevel:   10,
		BaseInterval:    900 * time.Millisecond,
		LevelStep:       80 * time.Millisecond,
		MinInterval:     120 * time.Millisecond,
		SoftDropMax:     30 * time.Millisecond,
		SoftDropDivisor: 4,
	}
}

// Validate checks that the rules describe a playable game.
func (r Rules) Validate() error {
	switch {
	case len(r.LineScores) == 0:
		return fmt.Errorf("%w: empty line score table", ErrInvalidOptions)
	case r.HardDropPerCell < 0:
		return fmt.Errorf("%w: negative hard drop bonus", ErrInvalidOptions)
	case r.LinesPerLevel <= 0:
		return fmt.Errorf("%w: lines per level must be positive", ErrInvalidOptions)
	case r.MinInterval <= 0:
		return fmt.Errorf("%w: min interval must be positive", ErrInvalidOptions)
	case r.BaseInterval < r.MinInterval:
		return fmt.Errorf("%w: base interval %v below min interval %v", ErrInvalidOptions, r.BaseInterval, r.MinInterval)
	case r.LevelStep <= 0:
		return fmt.Errorf("%w: level step must be positive", ErrInvalidOptions)
	case r.SoftDropMax <= 0 || r.SoftDropDivisor <= 0:
		return fmt.Errorf("%w: soft drop timing must be positive", ErrInvalidOptions)
	}
	for i, s := range r.LineScores {
		if s < 0 {
			return fmt.Errorf("%w: negative score for %d rows", ErrInvalidOptions, i+1)
		}
	}
	return nil
}

// LineClearPoints returns the award for clearing rows rows at level.
// Clears larger than the table score like the last entry.
func (r Rules) LineClearPoints(rows, level int) int {
	if rows <= 0 {
		return 0
	}
	idx := rows - 1
	if idx >= len(r.LineScores) {
		idx = len(r.LineScores) - 1
	}
	return r.LineScores[idx] * level
}

// LevelFor returns the level reached after clearing lines lines.
func (r Rules) LevelFor(lines int) int {
	if lines < 0 {
		lines = 0
	}
	return 1 + lines/r.LinesPerLevel
}

// DropInterval returns the gravity interval at level.
func (r Rules) DropInterval(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	d := r.BaseInterval - time.Duration(level-1)*r.LevelStep
	if d < r.MinInterval {
		return r.MinInterval
	}
	return d
}

// SoftDropInterval returns the gravity interval at level while soft drop is
// held.
func (r Rules) SoftDropInterval(level int) time.Duration {
	d := r.DropInterval(level) / time.Duration(r.SoftDropDivisor)
	if d > r.SoftDropMax {
		d = r.SoftDropMax
	}
	if d <= 0 {
		d = time.Millisecond
	}
	return d
}
