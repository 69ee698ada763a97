package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestSetDebugRestoresBaseLevel(t *testing.T) {
	opts := DefaultOptions()
	opts.Console = false
	opts.Level = "warn"
	l := New(opts)

	assert.False(t, l.DebugEnabled())
	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.SetDebug(false)
	assert.False(t, l.DebugEnabled())
	assert.Equal(t, zapcore.WarnLevel, l.level.Level())
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshview.log")
	opts := DefaultOptions()
	opts.Console = false
	opts.FilePath = path
	opts.Prefix = "test"

	l := New(opts)
	l.Infof("loaded %d meshes", 3)
	l.Debugf("hidden")
	l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "loaded 3 meshes")
	assert.Contains(t, out, "test")
	assert.False(t, strings.Contains(out, "hidden"))
}

func TestOrNop(t *testing.T) {
	l := OrNop(nil)
	require.NotNil(t, l)
	l.Infof("ignored")
	assert.False(t, l.DebugEnabled())
}
