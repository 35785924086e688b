package configs

type Schedule struct {
	PlanDays             string `env:"SCHEDULE_PLAN_DAYS" envDefault:"0 1 * * *"`
	MorningDelivery      string `env:"SCHEDULE_MORNING_DELIVERY" envDefault:"0 10 * * 1-5"`
	EveningDelivery      string `env:"SCHEDULE_EVENING_DELIVERY" envDefault:"0 17 * * 1-5"`
	OffboardingDelivery  string `env:"SCHEDULE_OFFBOARDING_DELIVERY" envDefault:"30 10 * * 1-5"`
	IdleSweep            string `env:"SCHEDULE_IDLE_SWEEP" envDefault:"*/5 * * * *"`
	FrozenReset          string `env:"SCHEDULE_FROZEN_RESET" envDefault:"0 23 * * *"`
	ExpireSweep          string `env:"SCHEDULE_EXPIRE_SWEEP" envDefault:"5 0 * * *"`
	AdminExpiredSummary  string `env:"SCHEDULE_ADMIN_EXPIRED_SUMMARY" envDefault:"0 11 * * 1"`
	ExpiredReminder      string `env:"SCHEDULE_EXPIRED_REMINDER" envDefault:"0 12 * * 1,4"`
	EmployeeStatusUpdate string `env:"SCHEDULE_EMPLOYEE_STATUS_UPDATE" envDefault:"30 0 * * *"`
	TemplateGeneration   string `env:"SCHEDULE_TEMPLATE_GENERATION" envDefault:"0 2 * * *"`
}
