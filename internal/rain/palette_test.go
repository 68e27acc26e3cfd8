package rain

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matrix_rain/internal/terminal"
)

func TestGradientIndex(t *testing.T) {
	tests := []struct {
		row, head, want int
	}{
		{9, 10, 50},
		{10, 10, 50}, // clamped from 51
		{5, 10, 46},
		{0, 60, 0},
		{0, 51, 0},
		{0, 50, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GradientIndex(tt.row, tt.head, 50), "row=%d head=%d", tt.row, tt.head)
	}

	prev := GradientIndex(100, 100, 50)
	for dist := 0; dist <= 80; dist++ {
		got := GradientIndex(100-dist, 100, 50)
		require.LessOrEqual(t, got, prev, "distance %d", dist)
		require.GreaterOrEqual(t, got, 0)
		require.LessOrEqual(t, got, 50)
		prev = got
	}
}

func TestNewPaletteGradient(t *testing.T) {
	surface := newFakeSurface(10, 10)
	surface.canChange = true

	palette, err := NewPalette(surface, GradientShades, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	assert.True(t, palette.Gradient())
	assert.Equal(t, GradientShades, palette.Shades())

	// white, black and every shade
	assert.Len(t, surface.colors, GradientShades+3)
	darkest := surface.colors[gradientBase]
	brightest := surface.colors[gradientBase+GradientShades]
	assert.InDelta(t, 0, darkest.G, 1e-9)
	assert.InDelta(t, 1, brightest.G, 1e-9)
	assert.InDelta(t, 0, brightest.R, 1e-9)

	for i := 1; i <= GradientShades; i++ {
		lo := surface.colors[gradientBase+terminal.ColorID(i-1)]
		hi := surface.colors[gradientBase+terminal.ColorID(i)]
		assert.Greater(t, hi.G, lo.G, "shade %d", i)
		pair := surface.pairs[palette.ShadePair(i)]
		assert.Equal(t, [2]terminal.ColorID{gradientBase + terminal.ColorID(i), terminal.ColorBlack}, pair)
	}
	assert.Equal(t, [2]terminal.ColorID{terminal.ColorWhite, terminal.ColorBlack}, surface.pairs[headPair])
}

func TestNewPaletteFallback(t *testing.T) {
	surface := newFakeSurface(10, 10)

	palette, err := NewPalette(surface, GradientShades, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	assert.False(t, palette.Gradient())
	assert.Empty(t, surface.colors)
	assert.Equal(t, [2]terminal.ColorID{terminal.ColorGreen, terminal.ColorBlack}, surface.pairs[greenPair])
}

func TestNewPaletteDefineFailureFallsBack(t *testing.T) {
	var logs bytes.Buffer
	surface := newFakeSurface(10, 10)
	surface.canChange = true
	surface.defineErr = errors.New("palette locked")

	palette, err := NewPalette(surface, GradientShades, slog.New(slog.NewTextHandler(&logs, nil)))
	require.NoError(t, err)
	assert.False(t, palette.Gradient())
	assert.Contains(t, logs.String(), "gradient colors unavailable")
	assert.Contains(t, logs.String(), "palette locked")
	assert.Contains(t, surface.pairs, greenPair)
}
