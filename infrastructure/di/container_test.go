package di

import (
	"testing"

	"catalog-backend/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestProvideLogger_HonorsConfiguredLevel(t *testing.T) {
	logger, err := ProvideLogger(&config.Config{Environment: "production", LogLevel: "warn"})
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestProvideLogger_RejectsUnknownLevel(t *testing.T) {
	_, err := ProvideLogger(&config.Config{Environment: "development", LogLevel: "verbose"})
	assert.Error(t, err)
}
