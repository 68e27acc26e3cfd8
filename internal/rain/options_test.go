package rain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matrix_rain/internal/terminal"
)

func TestNewOptions(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		want       Options
	}{
		{"standard terminal", 24, 80, Options{Head: HeadStandout, MaxSpeed: 1, MaxStreams: 40}},
		{"tall terminal", 60, 200, Options{Head: HeadStandout, MaxSpeed: 3, MaxStreams: 100}},
		{"single column", 25, 1, Options{Head: HeadStandout, MaxSpeed: 2, MaxStreams: 1}},
		{"empty terminal", 0, 0, Options{Head: HeadStandout, MaxSpeed: 1, MaxStreams: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewOptions(tt.rows, tt.cols)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, got.Validate())
		})
	}
}

func TestHeadStyleToggle(t *testing.T) {
	opts := NewOptions(24, 80)
	original := opts.Head

	opts.ToggleHead()
	assert.Equal(t, HeadBold, opts.Head)
	assert.Equal(t, terminal.AttrBold, opts.Head.Attr())

	opts.ToggleHead()
	assert.Equal(t, original, opts.Head)
	assert.Equal(t, terminal.AttrStandout, opts.Head.Attr())
}

func TestHeadStyleString(t *testing.T) {
	assert.Equal(t, "standout", HeadStandout.String())
	assert.Equal(t, "bold", HeadBold.String())
	assert.Equal(t, "HeadStyle(9)", HeadStyle(9).String())
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{"zero speed", Options{MaxSpeed: 0, MaxStreams: 1}, "max speed"},
		{"negative streams", Options{MaxSpeed: 1, MaxStreams: -1}, "max streams"},
		{"unknown head", Options{Head: 7, MaxSpeed: 1}, "head style"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig(24, 80)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 40*time.Millisecond, cfg.FrameInterval)

	cfg.FrameInterval = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig(24, 80)
	cfg.Options.MaxSpeed = 0
	assert.Error(t, cfg.Validate())
}
