package di

import (
	"testing"

	"onboarding_poll_system/configs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_WithoutLoki(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		debug       bool
	}{
		{name: "dev", environment: "dev", debug: true},
		{name: "prod", environment: "prod", debug: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(configs.Logger{AppName: "polls"}, configs.App{Environment: tt.environment}, "poll_bot")
			require.NotNil(t, logger)
			assert.Equal(t, tt.debug, logger.Desugar().Core().Enabled(zapcore.DebugLevel))
		})
	}
}
