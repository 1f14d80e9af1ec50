package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/spec-kit/rentcar-service/internal/config"
)

func TestNewLogger_Levels(t *testing.T) {
	app := config.AppConfig{Name: "rentcar-service", Env: "test"}

	logger, err := NewLogger(config.LoggerConfig{Level: "WARN"}, app)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = NewLogger(config.LoggerConfig{Level: "chatty", Format: "console"}, app)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
