package configs

type App struct {
	Environment string `env:"ENVIRONMENT,notEmpty"`
	TimeZone    string `env:"TIME_ZONE" envDefault:"Europe/Moscow"`
	HealthPort  int    `env:"HEALTH_PORT" envDefault:"8080"`
}

func (c App) IsDevEnvironment() bool {
	return c.Environment == "dev"
}
