package configs

import "time"

type Bot struct {
	Token         string        `env:"TELEGRAM_POLL_BOT_TOKEN,notEmpty"`
	UpdateTimeout int           `env:"TELEGRAM_BOT_UPDATE_TIMEOUT" envDefault:"60"`
	SendRate      float64       `env:"TELEGRAM_BOT_SEND_RATE" envDefault:"25"`
	SendBurst     int           `env:"TELEGRAM_BOT_SEND_BURST" envDefault:"5"`
	SendTimeout   time.Duration `env:"TELEGRAM_BOT_SEND_TIMEOUT" envDefault:"10s"`
}
