//go:build integration

package repositories_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"onboarding_poll_system/configs"
	"onboarding_poll_system/internal/db"
	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/db/repositories"

	"github.com/go-pg/pg/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Run with: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/db/repositories/
func startStore(t *testing.T) repositories.Store {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	database, err := db.StartDB(configs.DB{
		URL:               url,
		MigrationsDir:     "../../../migrations",
		ConnectRetryLimit: 10 * time.Second,
	}, zap.NewNop().Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	truncate(t, database)
	return repositories.NewStore(database)
}

func truncate(t *testing.T, database *pg.DB) {
	_, err := database.Exec(`TRUNCATE answers, poll_instances, question_conditions, questions, poll_templates,
		curator_links, project_assignments, projects, employees RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

type seed struct {
	employee *models.Employee
	curator  *models.Employee
	template *models.PollTemplate
	question *models.Question
	instance *models.PollInstance
}

func seedPoll(t *testing.T, ctx context.Context, store repositories.Store) seed {
	employee, err := store.Employees().Create(ctx, &models.Employee{
		FullName:         "Иван Петров",
		Role:             models.EmployeeRoleEmployee,
		RegistrationCode: uuid.NewString(),
	})
	require.NoError(t, err)

	curator, err := store.Employees().Create(ctx, &models.Employee{
		FullName:         "Анна Смирнова",
		Role:             models.EmployeeRoleCurator,
		RegistrationCode: uuid.NewString(),
	})
	require.NoError(t, err)

	template, err := store.Templates().CreateTemplate(ctx, &models.PollTemplate{
		Title:       "Опрос",
		Message:     "Привет",
		TimeOfDay:   models.TimeOfDayMorning,
		IntendedFor: models.UserTypeEmployee,
		PollType:    models.PollTypeOnboarding,
		PollNumber:  1,
	})
	require.NoError(t, err)

	question, err := store.Templates().CreateQuestion(ctx, &models.Question{
		TemplateID: template.ID,
		Text:       "Все хорошо?",
		Type:       models.QuestionTypeYesNo,
	})
	require.NoError(t, err)

	day := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	instance, err := store.PollInstances().Create(ctx, &models.PollInstance{
		EmployeeID:    employee.ID,
		TemplateID:    template.ID,
		Status:        models.PollInstanceStatusInProgress,
		DatePlannedAt: &day,
		TimePlannedAt: models.TimeOfDayMorning,
	})
	require.NoError(t, err)

	return seed{employee: employee, curator: curator, template: template, question: question, instance: instance}
}

func TestAnswerRepository_UpsertOverwritesKey(t *testing.T) {
	ctx := context.Background()
	store := startStore(t)
	s := seedPoll(t, ctx, store)

	answer := func(text string, token models.AnswerToken, target *int64) {
		_, err := store.Answers().Upsert(ctx, &models.Answer{
			EmployeeID:       s.employee.ID,
			TargetEmployeeID: target,
			QuestionID:       s.question.ID,
			PollInstanceID:   s.instance.ID,
			Answer:           text,
			Token:            token,
		})
		require.NoError(t, err)
	}

	answer("Да", models.AnswerTokenYes, nil)
	answer("Нет", models.AnswerTokenNo, nil)

	answers, err := store.Answers().GetMany(ctx, s.instance.ID)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "Нет", answers[0].Answer)
	assert.Equal(t, models.AnswerTokenNo, answers[0].Token)

	answer("Да", models.AnswerTokenYes, models.Int64Ptr(s.curator.ID))

	answers, err = store.Answers().GetMany(ctx, s.instance.ID)
	require.NoError(t, err)
	assert.Len(t, answers, 2)

	last, err := store.Answers().GetLast(ctx, s.instance.ID)
	require.NoError(t, err)
	assert.Equal(t, s.curator.ID, *last.TargetEmployeeID)
}

func TestPollInstanceRepository_CreateIfAbsent(t *testing.T) {
	ctx := context.Background()
	store := startStore(t)
	s := seedPoll(t, ctx, store)

	request := func(target *int64) *models.PollInstance {
		return &models.PollInstance{
			EmployeeID:       s.employee.ID,
			TargetEmployeeID: target,
			TemplateID:       s.template.ID,
			Status:           models.PollInstanceStatusNotStarted,
		}
	}

	created, err := store.PollInstances().CreateIfAbsent(ctx, request(nil))
	require.NoError(t, err)
	assert.False(t, created)

	created, err = store.PollInstances().CreateIfAbsent(ctx, request(models.Int64Ptr(s.curator.ID)))
	require.NoError(t, err)
	assert.True(t, created)

	_, err = store.PollInstances().Create(ctx, request(nil))
	assert.ErrorIs(t, err, repositories.ErrAlreadyExists)

	unchanged, err := store.PollInstances().GetOne(ctx, s.instance.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PollInstanceStatusInProgress, unchanged.Status)
}

func TestPollInstanceRepository_DeleteManyCascades(t *testing.T) {
	ctx := context.Background()
	store := startStore(t)
	s := seedPoll(t, ctx, store)

	_, err := store.Answers().Upsert(ctx, &models.Answer{
		EmployeeID:     s.employee.ID,
		QuestionID:     s.question.ID,
		PollInstanceID: s.instance.ID,
		Answer:         "Да",
		Token:          models.AnswerTokenYes,
	})
	require.NoError(t, err)

	s.employee.OnboardingStatusID = models.Int64Ptr(s.instance.ID)
	s.employee.Session = &models.InterviewSession{PollInstanceID: s.instance.ID, QuestionID: s.question.ID}
	_, err = store.Employees().Update(ctx, s.employee)
	require.NoError(t, err)

	deleted, err := store.PollInstances().DeleteMany(ctx, repositories.PollInstanceFilter{
		InvolvingEmployeeID: s.employee.ID,
		IncludeArchived:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	employee, err := store.Employees().GetOne(ctx, s.employee.ID)
	require.NoError(t, err)
	assert.Nil(t, employee.OnboardingStatusID)
	assert.Equal(t, s.instance.ID, employee.Session.PollInstanceID)

	answers, err := store.Answers().GetMany(ctx, s.instance.ID)
	require.NoError(t, err)
	assert.Empty(t, answers)
}

func TestStore_RunInTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store := startStore(t)
	s := seedPoll(t, ctx, store)

	rollback := errors.New("rollback")
	err := store.RunInTransaction(ctx, func(tx repositories.Store) error {
		s.instance.IsArchived = true
		if _, err := tx.PollInstances().Update(ctx, s.instance); err != nil {
			return err
		}
		return rollback
	})
	assert.ErrorIs(t, err, rollback)

	instance, err := store.PollInstances().GetOne(ctx, s.instance.ID)
	require.NoError(t, err)
	assert.False(t, instance.IsArchived)
}
