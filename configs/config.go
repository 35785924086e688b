package configs

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type PollBotConfig struct {
	App    App
	Bot    Bot
	DB     DB
	Logger Logger
	Polls  Polls
}

type PollSchedulerConfig struct {
	App      App
	Bot      Bot
	DB       DB
	Logger   Logger
	Polls    Polls
	Schedule Schedule
}

// ToolConfig is shared by the one-shot maintenance binaries.
type ToolConfig struct {
	App    App
	DB     DB
	Logger Logger
	Polls  Polls
}

func LoadPollBotConfig() (PollBotConfig, error) {
	var config PollBotConfig

	if err := load(&config); err != nil {
		return PollBotConfig{}, err
	}

	return config, nil
}

func LoadPollSchedulerConfig() (PollSchedulerConfig, error) {
	var config PollSchedulerConfig

	if err := load(&config); err != nil {
		return PollSchedulerConfig{}, err
	}

	return config, nil
}

func LoadToolConfig() (ToolConfig, error) {
	var config ToolConfig

	if err := load(&config); err != nil {
		return ToolConfig{}, err
	}

	return config, nil
}

func load(config any) error {
	// a missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	if err := env.Parse(config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	return nil
}
