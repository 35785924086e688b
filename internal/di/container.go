package di

import (
	"context"

	"onboarding_poll_system/configs"

	zaploki "github.com/paul-milne/zap-loki"
	"go.uber.org/zap"
)

// NewLogger ships logs to Loki when LOKI_URL is set. Every line is labelled with the binary and the environment.
func NewLogger(config configs.Logger, app configs.App, binary string) *zap.SugaredLogger {
	zapConfig := zap.NewProductionConfig()
	if app.IsDevEnvironment() {
		zapConfig = zap.NewDevelopmentConfig()
	}

	var logger *zap.Logger
	if config.URL == "" {
		logger = zap.Must(zapConfig.Build())
	} else {
		lokiConfig := zaploki.Config{
			Url:          config.URL,
			BatchMaxSize: config.BatchMaxSize,
			BatchMaxWait: config.BatchMaxWait,
			Labels: map[string]string{
				"app":         config.AppName,
				"binary":      binary,
				"environment": app.Environment,
			},
		}
		logger = zap.Must(zaploki.New(context.Background(), lokiConfig).WithCreateLogger(zapConfig))
	}

	return logger.With(zap.String("binary", binary)).Sugar()
}
