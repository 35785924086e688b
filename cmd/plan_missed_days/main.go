package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"onboarding_poll_system/configs"
	"onboarding_poll_system/internal/cache"
	"onboarding_poll_system/internal/db"
	"onboarding_poll_system/internal/db/repositories"
	"onboarding_poll_system/internal/di"
	"onboarding_poll_system/internal/services"
)

// maxDays bounds a single catch-up run.
const maxDays = 366

func main() {
	from := flag.String("from", "", "first day to plan, YYYY-MM-DD (default yesterday)")
	to := flag.String("to", "", "last day to plan, YYYY-MM-DD (default today)")
	flag.Parse()

	config, err := configs.LoadToolConfig()
	logger := di.NewLogger(config.Logger, config.App, "plan_missed_days")
	defer logger.Sync()

	if err != nil {
		logger.Fatalw("failed to load config", "error", err)
	}

	database, err := db.StartDB(config.DB, logger)
	if err != nil {
		logger.Fatalw("failed to start db", "error", err)
	}
	defer database.Close()

	graph, err := di.NewServices(
		repositories.NewStore(database),
		cache.New(time.Minute),
		di.NewLogNotifier(logger),
		config.App,
		config.Polls,
		logger,
	)
	if err != nil {
		logger.Fatalw("failed to initialize services", "error", err)
	}

	days, err := dayRange(*from, *to, services.Day(graph.Clock.Now()))
	if err != nil {
		logger.Fatalw("invalid day range", "error", err)
	}

	ctx := context.Background()
	total := 0
	for _, day := range days {
		created, err := graph.Scheduler.PlanDay(ctx, day)
		if err != nil {
			logger.Fatalw("failed to plan day", "day", day.Format(time.DateOnly), "error", err)
		}
		total += created
	}

	logger.Infow("missed days planned", "days", len(days), "created", total)
}

// dayRange expands the flags into the days to plan, yesterday and today when both are empty.
func dayRange(from, to string, today time.Time) ([]time.Time, error) {
	first, last := today.AddDate(0, 0, -1), today

	if from != "" {
		day, err := time.ParseInLocation(time.DateOnly, from, today.Location())
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		first = day
	}
	if to != "" {
		day, err := time.ParseInLocation(time.DateOnly, to, today.Location())
		if err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
		last = day
	}

	if last.Before(first) {
		return nil, errors.New("to is before from")
	}

	var days []time.Time
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
		if len(days) > maxDays {
			return nil, fmt.Errorf("range is longer than %d days", maxDays)
		}
	}
	return days, nil
}
