package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPollSchedulerConfig_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "dev")
	t.Setenv("TELEGRAM_POLL_BOT_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost/polls")

	config, err := LoadPollSchedulerConfig()
	require.NoError(t, err)

	assert.True(t, config.App.IsDevEnvironment())
	assert.Equal(t, 30*time.Minute, config.Polls.IdleTimeout)
	assert.Equal(t, 5, config.Polls.PageSize)
	assert.Equal(t, 12*time.Hour, config.Polls.AdminCacheTTL)
	assert.Equal(t, 5*24*time.Hour, config.Polls.PlannedDayTTL)
	assert.Equal(t, "0 1 * * *", config.Schedule.PlanDays)
	assert.Equal(t, 1000, config.Logger.BatchMaxSize)
	assert.Equal(t, 10*time.Second, config.Logger.BatchMaxWait)
}

func TestLoadPollBotConfig_MissingToken(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("DATABASE_URL", "postgres://localhost/polls")
	t.Setenv("TELEGRAM_POLL_BOT_TOKEN", "")

	_, err := LoadPollBotConfig()
	assert.Error(t, err)
}

func TestLoadToolConfig_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("DATABASE_URL", "postgres://localhost/polls")
	t.Setenv("POLL_IDLE_TIMEOUT", "45m")

	config, err := LoadToolConfig()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, config.Polls.IdleTimeout)
	assert.False(t, config.App.IsDevEnvironment())
}
