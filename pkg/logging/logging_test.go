package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logPath := filepath.Join(t.TempDir(), "quicken", "quicken.log")

			SetupLogger(tt.verbosity, logPath)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			_, err := os.Stat(logPath)
			assert.NoError(t, err, "log file was not created at %s", logPath)
		})
	}
}

func TestSetupLoggerWithoutFile(t *testing.T) {
	SetupLogger(0, "")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestOrNop(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	got := OrNop(&logger)
	got.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")

	// nil falls back to a logger that discards everything
	nop := OrNop(nil)
	nop.Error().Msg("dropped")
	assert.Equal(t, zerolog.Disabled, nop.GetLevel())
}

func TestLogOperationStart(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.WarnLevel) })

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := LogOperationStart(logger, "parse")
	done()

	output := buf.String()
	require.Contains(t, output, "Operation started")
	assert.Contains(t, output, "Operation completed")
	assert.Contains(t, output, "parse")
	assert.Contains(t, output, "duration")
}
