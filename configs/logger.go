package configs

import "time"

type Logger struct {
	AppName      string        `env:"LOGGER_APP_NAME" envDefault:"onboarding_poll_system"`
	URL          string        `env:"LOKI_URL"`
	BatchMaxSize int           `env:"LOKI_BATCH_MAX_SIZE" envDefault:"1000"`
	BatchMaxWait time.Duration `env:"LOKI_BATCH_MAX_WAIT" envDefault:"10s"`
}
