package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"onboarding_poll_system/configs"
	"onboarding_poll_system/internal/cache"
	"onboarding_poll_system/internal/db"
	"onboarding_poll_system/internal/db/repositories"
	"onboarding_poll_system/internal/di"
	tgbot "onboarding_poll_system/internal/tg_bot"
	"onboarding_poll_system/internal/tg_bot/commands"
	"onboarding_poll_system/internal/tg_bot/handlers"
)

func main() {
	config, err := configs.LoadPollBotConfig()
	logger := di.NewLogger(config.Logger, config.App, "poll_bot")
	defer logger.Sync()

	if err != nil {
		logger.Fatalw("failed to load config", "error", err)
	}
	logger.Info("config loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting db")
	database, err := db.StartDB(config.DB, logger)
	if err != nil {
		logger.Fatalw("failed to start db", "error", err)
	}
	defer database.Close()
	logger.Info("db started")

	logger.Info("creating bot")
	api, err := tgbot.NewAPI(config.Bot, config.App.IsDevEnvironment())
	if err != nil {
		logger.Fatalw("failed to create bot", "error", err)
	}
	logger.Info("bot created")

	graph, err := di.NewServices(
		repositories.NewStore(database),
		cache.New(10*time.Minute),
		tgbot.NewNotifier(api, config.Bot, logger),
		config.App,
		config.Polls,
		logger,
	)
	if err != nil {
		logger.Fatalw("failed to initialize services", "error", err)
	}

	handler := handlers.NewPollBotCommandHandler(
		logger,
		[]commands.Command{
			commands.NewStartCommand(graph.Employees, logger),
			commands.NewPollsCommand(graph.Delivery, logger),
			commands.NewStartPollCommand(graph.Tracker, logger),
			commands.NewAnswerCommand(graph.Tracker, logger),
			commands.NewContinuePollCommand(graph.Tracker, logger),
			commands.NewCancelPollCommand(graph.Tracker, logger),
		},
	)

	tgbot.NewBot(api, config.Bot, handler, logger).Start(ctx)
}
