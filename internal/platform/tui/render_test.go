package tui

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestPaletteRenderPlainProfile(t *testing.T) {
	// A renderer writing to a non-terminal has no colour support.
	p := NewPalette(lipgloss.NewRenderer(io.Discard))
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawTextColored(2, 0, "cd", core.ColorBlue)
	s.DrawText(0, 1, "plain")

	assert.Equal(t, s.String(), p.Render(s))
}

func TestPaletteStyleFallback(t *testing.T) {
	p := NewPalette(lipgloss.NewRenderer(io.Discard))
	assert.Equal(t, "x", p.Style(core.Color(200)).Render("x"))
}

func TestRenderEmptyScreen(t *testing.T) {
	assert.Empty(t, RenderScreen(core.NewScreen(0, 0)))
}
