package services

import (
	"context"
	"fmt"
	"time"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/db/repositories"

	"go.uber.org/zap"
)

var templateMessages = map[models.UserType]string{
	models.UserTypeEmployee: "Привет! Сегодня %d-й месяц, как ты работаешь с нами) Ответь, пожалуйста на несколько вопросов.",
	models.UserTypeCurator:  "Здравствуйте! Уже %d-й месяц с Вами работает {}. Ответьте, пожалуйста, на несколько вопросов",
}

// TemplateGenerator keeps the recurring feedback series long enough for the longest tenure.
type TemplateGenerator struct {
	store            repositories.Store
	clock            Clock
	feedbackStep     int
	intermediateStep int
	logger           *zap.SugaredLogger
}

func NewTemplateGenerator(store repositories.Store, clock Clock, feedbackStep, intermediateStep int, logger *zap.SugaredLogger) *TemplateGenerator {
	return &TemplateGenerator{
		store:            store,
		clock:            clock,
		feedbackStep:     feedbackStep,
		intermediateStep: intermediateStep,
		logger:           logger,
	}
}

// Extend clones the last template of every series until the oldest employee's tenure is covered.
// With employeeID set the tenure of that employee is used instead.
func (g *TemplateGenerator) Extend(ctx context.Context, employeeID int64) (int, error) {
	tenure, err := g.tenure(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	if tenure <= 0 {
		return 0, nil
	}

	total := 0
	for _, pollType := range []models.PollType{models.PollTypeFeedback, models.PollTypeIntermediateFeedback} {
		for _, audience := range []models.UserType{models.UserTypeEmployee, models.UserTypeCurator} {
			created, err := g.extendSeries(ctx, pollType, audience, tenure)
			if err != nil {
				return total, fmt.Errorf("failed to extend %s templates for %s: %w", pollType, audience, err)
			}
			total += created
		}
	}

	if total > 0 {
		g.logger.Infow("generated templates", "count", total, "tenure_days", tenure)
	}
	return total, nil
}

// NextOffsets lists the offsets that follow last until tenure is covered.
// Intermediate feedback skips the offsets taken by the quarterly feedback.
func NextOffsets(last, tenure, step int, skipQuarters bool) []int {
	if step <= 0 {
		return nil
	}

	var offsets []int
	for offset := last; tenure > offset; {
		offset += step
		if skipQuarters && offset%90 == 0 {
			continue
		}
		offsets = append(offsets, offset)
	}
	return offsets
}

func (g *TemplateGenerator) extendSeries(ctx context.Context, pollType models.PollType, audience models.UserType, tenure int) (int, error) {
	templates, err := g.store.Templates().GetTemplates(ctx, repositories.TemplateFilter{
		PollTypes:   []models.PollType{pollType},
		IntendedFor: audience,
		Subject:     subjectPtr(models.NoSubject()),
	})
	if err != nil {
		return 0, err
	}
	if len(templates) == 0 {
		return 0, nil
	}

	last := templates[len(templates)-1]
	number := 0
	for _, template := range templates {
		if template.PollNumber > number {
			number = template.PollNumber
		}
	}

	step := g.feedbackStep
	skipQuarters := false
	if pollType == models.PollTypeIntermediateFeedback {
		step = g.intermediateStep
		skipQuarters = true
	}

	created := 0
	for _, offset := range NextOffsets(last.DaysAfterHire, tenure, step, skipQuarters) {
		number++
		month := offset / 30

		template, err := g.store.Templates().CreateTemplate(ctx, &models.PollTemplate{
			Title:         fmt.Sprintf("%d-й месяц", month),
			Message:       fmt.Sprintf(templateMessages[audience], month),
			DaysAfterHire: offset,
			TimeOfDay:     models.TimeOfDayMorning,
			IntendedFor:   audience,
			PollType:      pollType,
			PollNumber:    number,
		})
		if err != nil {
			return created, err
		}

		if err := CloneQuestionGraph(ctx, g.store, last.ID, template.ID); err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}

func (g *TemplateGenerator) tenure(ctx context.Context, employeeID int64) (int, error) {
	filter := repositories.EmployeeFilter{}
	if employeeID != 0 {
		filter.IDs = []int64{employeeID}
	}

	employees, err := g.store.Employees().GetMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to get employees: %w", err)
	}

	var oldest *time.Time
	for _, employee := range employees {
		if employee.DateOfEmployment == nil {
			continue
		}
		if oldest == nil || employee.DateOfEmployment.Before(*oldest) {
			oldest = employee.DateOfEmployment
		}
	}
	if oldest == nil {
		return 0, nil
	}

	return daysBetween(*oldest, today(g.clock)), nil
}
