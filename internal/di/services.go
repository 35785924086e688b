package di

import (
	"fmt"
	"time"

	"onboarding_poll_system/configs"
	"onboarding_poll_system/internal/blueprints"
	"onboarding_poll_system/internal/cache"
	"onboarding_poll_system/internal/db/repositories"
	"onboarding_poll_system/internal/services"

	"go.uber.org/zap"
)

// Services is the service graph shared by the bot, the scheduler and the maintenance tools.
type Services struct {
	Clock      services.Clock
	Admins     *services.AdminDirectory
	Rollup     *services.OnboardingRollup
	Tracker    *services.PollTracker
	Scheduler  *services.Scheduler
	Delivery   *services.Delivery
	Reconciler *services.Reconciler
	Polls      *services.PollService
	Generator  *services.TemplateGenerator
	Employees  *services.EmployeeService
	Projects   *services.ProjectService
}

func NewServices(
	store repositories.Store,
	c cache.Cache,
	notifier services.Notifier,
	app configs.App,
	polls configs.Polls,
	logger *zap.SugaredLogger,
) (*Services, error) {
	location, err := time.LoadLocation(app.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %q: %w", app.TimeZone, err)
	}

	blueprint, err := blueprints.Load(polls.BlueprintPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load project blueprint: %w", err)
	}

	clock := services.NewClock(location)
	admins := services.NewAdminDirectory(store, c, polls.AdminCacheTTL)
	rollup := services.NewOnboardingRollup(clock)
	recorder := services.NewAnswerRecorder(clock, admins, notifier, logger)
	tracker := services.NewPollTracker(store, clock, recorder, rollup, logger)
	scheduler := services.NewScheduler(store, c, rollup, clock, polls.PlannedDayTTL, logger)
	delivery := services.NewDelivery(store, clock, notifier, polls.PageSize, logger)
	generator := services.NewTemplateGenerator(store, clock, polls.FeedbackStepDays, polls.IntermediateStepDays, logger)

	return &Services{
		Clock:      clock,
		Admins:     admins,
		Rollup:     rollup,
		Tracker:    tracker,
		Scheduler:  scheduler,
		Delivery:   delivery,
		Reconciler: services.NewReconciler(store, tracker, rollup, admins, notifier, clock, polls.IdleTimeout, logger),
		Polls:      services.NewPollService(store, clock, rollup, delivery, logger),
		Generator:  generator,
		Employees: services.NewEmployeeService(
			store, clock, scheduler, generator, rollup, admins, notifier, polls.AdaptedAfterDays, logger,
		),
		Projects: services.NewProjectService(store, clock, rollup, blueprint, logger),
	}, nil
}
