// Package scheduler registers the periodic poll passes with gocron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"onboarding_poll_system/configs"
	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/di"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Job is one periodic pass. Run reports how many records it touched.
type Job struct {
	Name string
	Cron string
	Run  func(ctx context.Context) (int, error)
}

func Jobs(config configs.Schedule, graph *di.Services) []Job {
	deliver := func(targets ...delivery) func(ctx context.Context) (int, error) {
		return func(ctx context.Context) (int, error) {
			total := 0
			for _, target := range targets {
				sent, err := graph.Delivery.Deliver(ctx, target.pollType, target.bucket)
				if err != nil {
					return total, err
				}
				total += sent
			}
			return total, nil
		}
	}

	return []Job{
		{Name: "plan_days", Cron: config.PlanDays, Run: func(ctx context.Context) (int, error) {
			return graph.Scheduler.PlanDays(ctx)
		}},
		{Name: "morning_delivery", Cron: config.MorningDelivery, Run: deliver(
			delivery{models.PollTypeOnboarding, models.TimeOfDayMorning},
			delivery{models.PollTypeFeedback, ""},
			delivery{models.PollTypeIntermediateFeedback, ""},
		)},
		{Name: "evening_delivery", Cron: config.EveningDelivery, Run: deliver(
			delivery{models.PollTypeOnboarding, models.TimeOfDayEvening},
		)},
		{Name: "offboarding_delivery", Cron: config.OffboardingDelivery, Run: deliver(
			delivery{models.PollTypeOffboarding, ""},
		)},
		{Name: "idle_sweep", Cron: config.IdleSweep, Run: graph.Reconciler.FreezeIdle},
		{Name: "frozen_reset", Cron: config.FrozenReset, Run: graph.Reconciler.ResetFrozen},
		{Name: "expire_sweep", Cron: config.ExpireSweep, Run: func(ctx context.Context) (int, error) {
			return graph.Reconciler.ExpireOverdue(ctx)
		}},
		{Name: "admin_expired_summary", Cron: config.AdminExpiredSummary, Run: func(ctx context.Context) (int, error) {
			return 0, graph.Reconciler.NotifyAdminsAboutExpired(ctx)
		}},
		{Name: "expired_reminder", Cron: config.ExpiredReminder, Run: graph.Reconciler.RemindExpired},
		{Name: "employee_status_update", Cron: config.EmployeeStatusUpdate, Run: graph.Employees.UpdateStatuses},
		{Name: "template_generation", Cron: config.TemplateGeneration, Run: func(ctx context.Context) (int, error) {
			return graph.Generator.Extend(ctx, 0)
		}},
	}
}

type delivery struct {
	pollType models.PollType
	bucket   models.TimeOfDay
}

// New builds a scheduler in the given location. A job never overlaps with its own previous run.
func New(ctx context.Context, location *time.Location, jobs []Job, logger *zap.SugaredLogger) (*gocron.Scheduler, error) {
	s := gocron.NewScheduler(location)
	s.SingletonModeAll()

	for _, job := range jobs {
		job := job
		if _, err := s.Cron(job.Cron).Tag(job.Name).Do(func() { run(ctx, job, logger) }); err != nil {
			return nil, fmt.Errorf("failed to schedule %s with %q: %w", job.Name, job.Cron, err)
		}
		logger.Infow("job scheduled", "job", job.Name, "cron", job.Cron)
	}

	return s, nil
}

func run(ctx context.Context, job Job, logger *zap.SugaredLogger) {
	logger = logger.With("job", job.Name, "run_id", uuid.NewString())
	started := time.Now()

	affected, err := job.Run(ctx)
	if err != nil {
		logger.Errorw("job failed", "affected", affected, "error", err)
		return
	}

	logger.Infow("job finished", "affected", affected, "duration", time.Since(started))
}
