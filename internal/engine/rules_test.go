package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRulesAreValid(t *testing.T) {
	assert.NoError(t, DefaultRules().Validate())
}

func TestRulesValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Rules)
	}{
		{"empty score table", func(r *Rules) { r.LineScores = nil }},
		{"negative score", func(r *Rules) { r.LineScores = []int{100, -1} }},
		{"negative hard drop bonus", func(r *Rules) { r.HardDropPerCell = -2 }},
		{"zero lines per level", func(r *Rules) { r.LinesPerLevel = 0 }},
		{"zero min interval", func(r *Rules) { r.MinInterval = 0 }},
		{"base below min", func(r *Rules) { r.BaseInterval = 50 * time.Millisecond }},
		{"zero level step", func(r *Rules) { r.LevelStep = 0 }},
		{"zero soft drop max", func(r *Rules) { r.SoftDropMax = 0 }},
		{"zero soft drop divisor", func(r *Rules) { r.SoftDropDivisor = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := DefaultRules()
			tc.mutate(&r)
			assert.ErrorIs(t, r.Validate(), ErrInvalidOptions)
		})
	}
}

func TestLineClearPoints(t *testing.T) {
	r := DefaultRules()
	tests := []struct {
		rows, level, want int
	}{
		{0, 1, 0},
		{1, 1, 100},
		{2, 1, 300},
		{3, 1, 500},
		{4, 1, 800},
		{1, 3, 300},
		{4, 2, 1600},
		{5, 1, 800},
		{6, 2, 1600},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, r.LineClearPoints(tc.rows, tc.level), "rows %d level %d", tc.rows, tc.level)
	}
}

func TestLevelFor(t *testing.T) {
	r := DefaultRules()
	assert.Equal(t, 1, r.LevelFor(0))
	assert.Equal(t, 1, r.LevelFor(9))
	assert.Equal(t, 2, r.LevelFor(10))
	assert.Equal(t, 3, r.LevelFor(29))
	assert.Equal(t, 1, r.LevelFor(-5))
}

func TestDropIntervalCurve(t *testing.T) {
	r := DefaultRules()

	assert.Equal(t, 900*time.Millisecond, r.DropInterval(1))
	assert.Equal(t, 820*time.Millisecond, r.DropInterval(2))
	assert.Equal(t, 900*time.Millisecond, r.DropInterval(0), "levels below 1 use level 1")

	prev := r.DropInterval(1)
	level := 2
	for ; r.DropInterval(level) > r.MinInterval; level++ {
		assert.Less(t, r.DropInterval(level), prev, "level %d", level)
		prev = r.DropInterval(level)
	}
	assert.Equal(t, 120*time.Millisecond, r.DropInterval(level))
	assert.Equal(t, 120*time.Millisecond, r.DropInterval(level+50))
}

func TestSoftDropInterval(t *testing.T) {
	r := DefaultRules()

	assert.Equal(t, 30*time.Millisecond, r.SoftDropInterval(1))
	assert.Equal(t, 30*time.Millisecond, r.SoftDropInterval(100), "120ms/4 is exactly the cap")

	for level := 1; level < 30; level++ {
		assert.LessOrEqual(t, r.SoftDropInterval(level), r.DropInterval(level), "level %d", level)
		assert.Positive(t, r.SoftDropInterval(level), "level %d", level)
	}

	r.SoftDropMax = time.Second
	assert.Equal(t, 225*time.Millisecond, r.SoftDropInterval(1))
}
