package services_test

import (
	"context"
	"testing"
	"time"

	"onboarding_poll_system/internal/cache"
	"onboarding_poll_system/internal/db/memory"
	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/services"
	mock_services "onboarding_poll_system/internal/services/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var now = time.Date(2024, time.June, 10, 10, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return services.Day(now).AddDate(0, 0, offset)
}

func dayPtr(offset int) *time.Time {
	d := day(offset)
	return &d
}

type fixture struct {
	t        *testing.T
	ctx      context.Context
	store    *memory.Store
	clock    services.Clock
	notifier *mock_services.MockNotifier

	rollup     *services.OnboardingRollup
	tracker    *services.PollTracker
	scheduler  *services.Scheduler
	delivery   *services.Delivery
	reconciler *services.Reconciler
	polls      *services.PollService
	generator  *services.TemplateGenerator
	employees  *services.EmployeeService
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	logger := zap.NewNop().Sugar()
	store := memory.NewStore()
	clock := services.NewFixedClock(now)
	notifier := mock_services.NewMockNotifier(ctrl)
	c := cache.New(time.Minute)

	admins := services.NewAdminDirectory(store, c, time.Hour)
	rollup := services.NewOnboardingRollup(clock)
	recorder := services.NewAnswerRecorder(clock, admins, notifier, logger)
	tracker := services.NewPollTracker(store, clock, recorder, rollup, logger)
	scheduler := services.NewScheduler(store, c, rollup, clock, 120*time.Hour, logger)
	delivery := services.NewDelivery(store, clock, notifier, 5, logger)
	reconciler := services.NewReconciler(store, tracker, rollup, admins, notifier, clock, 30*time.Minute, logger)
	generator := services.NewTemplateGenerator(store, clock, 90, 30, logger)

	return &fixture{
		t:          t,
		ctx:        context.Background(),
		store:      store,
		clock:      clock,
		notifier:   notifier,
		rollup:     rollup,
		tracker:    tracker,
		scheduler:  scheduler,
		delivery:   delivery,
		reconciler: reconciler,
		polls:      services.NewPollService(store, clock, rollup, delivery, logger),
		generator:  generator,
		employees:  services.NewEmployeeService(store, clock, scheduler, generator, rollup, admins, notifier, 90, logger),
	}
}

func (f *fixture) employee(role models.EmployeeRole, chatID int64, hired *time.Time) *models.Employee {
	employee := &models.Employee{
		FullName:         "Иван Петров",
		Role:             role,
		TelegramNickname: "ivan",
		RegistrationCode: uuid.NewString(),
		DateOfEmployment: hired,
	}
	if chatID != 0 {
		employee.TelegramUserID = models.Int64Ptr(chatID)
	}

	employee, err := f.store.Employees().Create(f.ctx, employee)
	require.NoError(f.t, err)
	return employee
}

type templateSpec struct {
	pollType     models.PollType
	audience     models.UserType
	number       int
	offset       int
	timeOfDay    models.TimeOfDay
	subject      models.SubjectRef
	isDeleted    bool
	withQuestion bool
}

func (f *fixture) template(spec templateSpec) *models.PollTemplate {
	if spec.pollType == "" {
		spec.pollType = models.PollTypeOnboarding
	}
	if spec.audience == "" {
		spec.audience = models.UserTypeEmployee
	}
	if spec.timeOfDay == "" {
		spec.timeOfDay = models.TimeOfDayMorning
	}
	if spec.number == 0 {
		spec.number = 1
	}

	template := &models.PollTemplate{
		Title:         "Опрос",
		Message:       "Привет, ответь на вопросы о {}",
		DaysAfterHire: spec.offset,
		TimeOfDay:     spec.timeOfDay,
		IntendedFor:   spec.audience,
		PollType:      spec.pollType,
		PollNumber:    spec.number,
		IsDeleted:     spec.isDeleted,
	}
	template.SetSubject(spec.subject)

	template, err := f.store.Templates().CreateTemplate(f.ctx, template)
	require.NoError(f.t, err)

	if spec.withQuestion {
		f.question(template.ID, models.QuestionTypeFinish, "Спасибо!")
	}
	return template
}

func (f *fixture) question(templateID int64, questionType models.QuestionType, text string) *models.Question {
	question, err := f.store.Templates().CreateQuestion(f.ctx, &models.Question{
		TemplateID: templateID,
		Text:       text,
		Type:       questionType,
	})
	require.NoError(f.t, err)
	return question
}

func (f *fixture) edge(from, to *models.Question, tokens ...models.AnswerToken) {
	for _, token := range tokens {
		_, err := f.store.Templates().CreateCondition(f.ctx, &models.QuestionCondition{
			QuestionID:         to.ID,
			PreviousQuestionID: from.ID,
			AnswerCondition:    token,
		})
		require.NoError(f.t, err)
	}
}

// graph builds the template [Q1 numbers, Q2 message, Q3 finish] with
// Q1 -1,2,3-> Q2, Q1 -4,5-> Q3 and Q2 -some_text-> Q3.
func (f *fixture) graph(spec templateSpec) (*models.PollTemplate, []*models.Question) {
	template := f.template(spec)

	q1 := f.question(template.ID, models.QuestionTypeNumbers, "Оцени свой день от 1 до 5")
	q2 := f.question(template.ID, models.QuestionTypeMessage, "Что пошло не так?")
	q3 := f.question(template.ID, models.QuestionTypeFinish, "Спасибо!")

	f.edge(q1, q2, models.AnswerTokenOne, models.AnswerTokenTwo, models.AnswerTokenThree)
	f.edge(q1, q3, models.AnswerTokenFour, models.AnswerTokenFive)
	f.edge(q2, q3, models.AnswerTokenSomeText)

	return template, []*models.Question{q1, q2, q3}
}

func (f *fixture) instance(employee *models.Employee, template *models.PollTemplate, target *int64, planned *time.Time, status models.PollInstanceStatus) *models.PollInstance {
	instance, err := f.store.PollInstances().Create(f.ctx, &models.PollInstance{
		EmployeeID:       employee.ID,
		TargetEmployeeID: target,
		TemplateID:       template.ID,
		Status:           status,
		DatePlannedAt:    planned,
		TimePlannedAt:    template.TimeOfDay,
	})
	require.NoError(f.t, err)
	return instance
}

func (f *fixture) reload(instance *models.PollInstance) *models.PollInstance {
	reloaded, err := f.store.PollInstances().GetOne(f.ctx, instance.ID)
	require.NoError(f.t, err)
	return reloaded
}

func (f *fixture) reloadEmployee(employee *models.Employee) *models.Employee {
	reloaded, err := f.store.Employees().GetOne(f.ctx, employee.ID)
	require.NoError(f.t, err)
	return reloaded
}

func (f *fixture) answers(instance *models.PollInstance) []*models.Answer {
	answers, err := f.store.Answers().GetMany(f.ctx, instance.ID)
	require.NoError(f.t, err)
	return answers
}
