package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"onboarding_poll_system/configs"
	"onboarding_poll_system/internal/cache"
	"onboarding_poll_system/internal/db"
	"onboarding_poll_system/internal/db/repositories"
	"onboarding_poll_system/internal/di"
	"onboarding_poll_system/internal/scheduler"
	tgbot "onboarding_poll_system/internal/tg_bot"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := configs.LoadPollSchedulerConfig()
	logger := di.NewLogger(config.Logger, config.App, "poll_scheduler")
	defer logger.Sync()

	if err != nil {
		logger.Fatalw("failed to load config", "error", err)
	}
	logger.Info("config loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	location, err := time.LoadLocation(config.App.TimeZone)
	if err != nil {
		logger.Fatalw("failed to load time zone", "error", err)
	}

	logger.Info("starting db")
	database, err := db.StartDB(config.DB, logger)
	if err != nil {
		logger.Fatalw("failed to start db", "error", err)
	}
	defer database.Close()
	logger.Info("db started")

	api, err := tgbot.NewAPI(config.Bot, config.App.IsDevEnvironment())
	if err != nil {
		logger.Fatalw("failed to create bot", "error", err)
	}

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

	g, ctx := errgroup.WithContext(ctx)

	s, err := scheduler.New(ctx, location, scheduler.Jobs(config.Schedule, graph), logger)
	if err != nil {
		logger.Fatalw("failed to schedule jobs", "error", err)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.App.HealthPort),
		Handler:           newHealthHandler(s),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		s.StartAsync()
		logger.Infow("scheduler started", "jobs", len(s.Jobs()))

		<-ctx.Done()
		s.Stop()
		logger.Info("scheduler stopped")
		return nil
	})

	g.Go(func() error {
		logger.Infow("health server started", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatalw("scheduler exited", "error", err)
	}
}
