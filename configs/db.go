package configs

import "time"

type DB struct {
	URL               string        `env:"DATABASE_URL,notEmpty"`
	MigrationsDir     string        `env:"DATABASE_MIGRATIONS_DIR" envDefault:"migrations"`
	ConnectRetryLimit time.Duration `env:"DATABASE_CONNECT_RETRY_LIMIT" envDefault:"1m"`
}
