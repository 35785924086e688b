package configs

import "time"

type Polls struct {
	IdleTimeout          time.Duration `env:"POLL_IDLE_TIMEOUT" envDefault:"30m"`
	PageSize             int           `env:"POLL_LIST_PAGE_SIZE" envDefault:"5"`
	AdminCacheTTL        time.Duration `env:"POLL_ADMIN_CACHE_TTL" envDefault:"12h"`
	PlannedDayTTL        time.Duration `env:"POLL_PLANNED_DAY_TTL" envDefault:"120h"`
	AdaptedAfterDays     int           `env:"POLL_ADAPTED_AFTER_DAYS" envDefault:"90"`
	FeedbackStepDays     int           `env:"POLL_FEEDBACK_STEP_DAYS" envDefault:"90"`
	IntermediateStepDays int           `env:"POLL_INTERMEDIATE_STEP_DAYS" envDefault:"30"`
	BlueprintPath        string        `env:"POLL_PROJECT_BLUEPRINT" envDefault:"blueprints/project_onboarding.yaml"`
}
