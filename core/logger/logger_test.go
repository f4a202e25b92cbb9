package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("ProductionDefaults", func(t *testing.T) {
		log, err := New(&Config{Level: "info", Format: "json"})
		require.NoError(t, err)
		defer log.Sync()

		assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
		assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	})

	t.Run("DebugConsole", func(t *testing.T) {
		log, err := New(&Config{Level: "debug", Format: "console"})
		require.NoError(t, err)
		defer log.Sync()

		assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
	})
}
