package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogShapesAreTetrominoes(t *testing.T) {
	for _, k := range Kinds() {
		for rot := 0; rot < 4; rot++ {
			shape := ShapeOf(k, rot)
			seen := make(map[Offset]bool, 4)
			for _, off := range shape {
				assert.GreaterOrEqual(t, off.X, 0, "%s rot %d", k, rot)
				assert.Less(t, off.X, 4, "%s rot %d", k, rot)
				assert.GreaterOrEqual(t, off.Y, 0, "%s rot %d", k, rot)
				assert.Less(t, off.Y, 4, "%s rot %d", k, rot)
				seen[off] = true
			}
			require.Len(t, seen, 4, "%s rot %d has overlapping cells", k, rot)
		}
	}
}

func TestShapeOfReducesRotation(t *testing.T) {
	tests := []struct {
		name     string
		rotation int
		want     int
	}{
		{"four wraps to zero", 4, 0},
		{"five wraps to one", 5, 1},
		{"minus one is three", -1, 3},
		{"minus six is two", -6, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, k := range Kinds() {
				assert.Equal(t, ShapeOf(k, tc.want), ShapeOf(k, tc.rotation), "kind %s", k)
			}
		})
	}
}

func TestOShapeIsRotationInvariant(t *testing.T) {
	base := ShapeOf(KindO, 0)
	for rot := 1; rot < 4; rot++ {
		assert.Equal(t, base, ShapeOf(KindO, rot))
	}
}

func TestSpawnOrientationSilhouettes(t *testing.T) {
	// Every kind enters with its lowest cells on box row 2, so a piece
	// anchored at SpawnRow touches board row 0.
	for _, k := range Kinds() {
		maxY := 0
		for _, off := range ShapeOf(k, 0) {
			if off.Y > maxY {
				maxY = off.Y
			}
		}
		assert.Equal(t, 2, maxY, "kind %s", k)
	}

	assert.Equal(t, Shape{{0, 2}, {1, 2}, {2, 2}, {3, 2}}, ShapeOf(KindI, 0), "I spawns flat")
	assert.Equal(t, Shape{{2, 0}, {2, 1}, {2, 2}, {2, 3}}, ShapeOf(KindI, 1), "I turns upright in column 2")
}

func TestKindColorsAndNames(t *testing.T) {
	colors := make(map[any]Kind)
	names := make(map[string]bool)
	for _, k := range Kinds() {
		require.True(t, k.Valid())
		if prev, dup := colors[k.Color()]; dup {
			t.Errorf("kinds %s and %s share a color", prev, k)
		}
		colors[k.Color()] = k
		names[k.String()] = true
	}
	assert.Len(t, names, kindCount)
	assert.False(t, KindNone.Valid())
	assert.Equal(t, ".", KindNone.String())
	assert.Equal(t, Shape{}, ShapeOf(Kind(200), 0))
}
