package services_test

import (
	"testing"
	"time"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const chatID int64 = 100

func TestPollTracker_BranchingToCompletion(t *testing.T) {
	f := newFixture(t)
	employee := f.employee(models.EmployeeRoleEmployee, chatID, dayPtr(-7))
	template, q := f.graph(templateSpec{pollType: models.PollTypeFeedback})
	instance := f.instance(employee, template, nil, dayPtr(0), models.PollInstanceStatusNotStarted)

	step, err := f.tracker.Start(f.ctx, chatID, instance.ID)
	require.NoError(t, err)
	assert.Equal(t, q[0].ID, step.Question.ID)
	assert.Equal(t, models.PollInstanceStatusInProgress, step.Instance.Status)
	require.NotNil(t, step.Instance.StartedAt)

	session := f.reloadEmployee(employee).Session
	require.NotNil(t, session)
	assert.Equal(t, models.InterviewSession{PollInstanceID: instance.ID, QuestionID: q[0].ID}, *session)

	step, err = f.tracker.Answer(f.ctx, chatID, instance.ID, q[0].ID, "3")
	require.NoError(t, err)
	assert.Equal(t, q[1].ID, step.Question.ID)
	assert.False(t, step.Completed)

	step, err = f.tracker.Answer(f.ctx, chatID, instance.ID, q[1].ID, "fine")
	require.NoError(t, err)
	assert.True(t, step.Completed)
	assert.Equal(t, q[2].ID, step.Question.ID)

	instance = f.reload(instance)
	assert.Equal(t, models.PollInstanceStatusCompleted, instance.Status)
	assert.NotNil(t, instance.CompletedAt)

	employee = f.reloadEmployee(employee)
	assert.Nil(t, employee.Session)
	assert.Equal(t, models.RiskStatusObservable, employee.RiskStatus)
	require.NotNil(t, employee.OnboardingStatusID)
	assert.Equal(t, instance.ID, *employee.OnboardingStatusID)

	answers := f.answers(instance)
	require.Len(t, answers, 2)
	assert.Equal(t, models.AnswerTokenThree, answers[0].Token)
	assert.True(t, answers[0].RequiresAttention)
	assert.Equal(t, "fine", answers[1].Answer)
	assert.Equal(t, models.AnswerTokenSomeText, answers[1].Token)
}

func TestPollTracker_HighScoreSkipsFollowUp(t *testing.T) {
	f := newFixture(t)
	employee := f.employee(models.EmployeeRoleEmployee, chatID, dayPtr(-7))
	template, q := f.graph(templateSpec{})
	instance := f.instance(employee, template, nil, dayPtr(0), models.PollInstanceStatusNotStarted)

	_, err := f.tracker.Start(f.ctx, chatID, instance.ID)
	require.NoError(t, err)

	step, err := f.tracker.Answer(f.ctx, chatID, instance.ID, q[0].ID, "5")
	require.NoError(t, err)
	assert.True(t, step.Completed)

	employee = f.reloadEmployee(employee)
	assert.Equal(t, models.RiskStatusNoProblem, employee.RiskStatus)
	assert.False(t, f.answers(instance)[0].RequiresAttention)
}

func TestPollTracker_AttentionNotifiesAdmins(t *testing.T) {
	f := newFixture(t)
	f.employee(models.EmployeeRoleAdmin, 900, nil)
	employee := f.employee(models.EmployeeRoleEmployee, chatID, dayPtr(-7))
	template, q := f.graph(templateSpec{})
	instance := f.instance(employee, template, nil, dayPtr(0), models.PollInstanceStatusNotStarted)

	f.notifier.EXPECT().Broadcast(gomock.Any(), []int64{900}, gomock.Any()).Times(1)

	_, err := f.tracker.Start(f.ctx, chatID, instance.ID)
	require.NoError(t, err)

	_, err = f.tracker.Answer(f.ctx, chatID, instance.ID, q[0].ID, "2")
	require.NoError(t, err)
}

func TestPollTracker_CuratorAnswerMarksTarget(t *testing.T) {
	f := newFixture(t)
	curator := f.employee(models.EmployeeRoleCurator, chatID, dayPtr(-300))
	employee := f.employee(models.EmployeeRoleEmployee, 0, dayPtr(-7))

	template := f.template(templateSpec{audience: models.UserTypeCurator})
	q1 := f.question(template.ID, models.QuestionTypeYesNo, "Сотрудник на связи?")
	q2 := f.question(template.ID, models.QuestionTypeFinish, "Спасибо!")
	f.edge(q1, q2, models.AnswerTokenYes, models.AnswerTokenNo)

	instance := f.instance(curator, template, models.Int64Ptr(employee.ID), dayPtr(0), models.PollInstanceStatusNotStarted)

	_, err := f.tracker.Start(f.ctx, chatID, instance.ID)
	require.NoError(t, err)

	step, err := f.tracker.Answer(f.ctx, chatID, instance.ID, q1.ID, "Нет")
	require.NoError(t, err)
	assert.True(t, step.Completed)

	assert.Equal(t, models.RiskStatusObservable, f.reloadEmployee(employee).RiskStatus)
	assert.Equal(t, models.RiskStatusNoProblem, f.reloadEmployee(curator).RiskStatus)

	answers := f.answers(instance)
	require.Len(t, answers, 1)
	assert.Equal(t, employee.ID, *answers[0].TargetEmployeeID)
	assert.Equal(t, "Нет", answers[0].Answer)
}

func TestPollTracker_StartRules(t *testing.T) {
	f := newFixture(t)
	employee := f.employee(models.EmployeeRoleEmployee, chatID, dayPtr(-7))
	other := f.employee(models.EmployeeRoleEmployee, 200, dayPtr(-7))

	project := models.ProjectSubject(1)
	first, _ := f.graph(templateSpec{number: 1, subject: project})
	second, _ := f.graph(templateSpec{number: 2, subject: project, offset: 7})

	firstInstance := f.instance(employee, first, nil, dayPtr(-7), models.PollInstanceStatusNotStarted)
	secondInstance := f.instance(employee, second, nil, dayPtr(0), models.PollInstanceStatusNotStarted)
	foreign := f.instance(other, first, nil, dayPtr(-7), models.PollInstanceStatusNotStarted)

	_, err := f.tracker.Start(f.ctx, 555, firstInstance.ID)
	assert.ErrorIs(t, err, services.ErrEmployeeNotRegistered)

	_, err = f.tracker.Start(f.ctx, chatID, foreign.ID)
	assert.ErrorIs(t, err, services.ErrPollNotFound)

	_, err = f.tracker.Start(f.ctx, chatID, secondInstance.ID)
	assert.ErrorIs(t, err, services.ErrOutOfSequence)
	reason, ok := services.Reason(err)
	assert.True(t, ok)
	assert.Equal(t, "Прежде чем начать этот опрос, необходимо завершить предыдущий", reason)

	_, err = f.tracker.Start(f.ctx, chatID, firstInstance.ID)
	require.NoError(t, err)

	_, err = f.tracker.Start(f.ctx, chatID, firstInstance.ID)
	assert.ErrorIs(t, err, services.ErrPollNotStartable)

	_, err = f.tracker.ForceComplete(f.ctx, firstInstance.ID)
	require.NoError(t, err)

	_, err = f.tracker.Start(f.ctx, chatID, firstInstance.ID)
	assert.ErrorIs(t, err, services.ErrPollCompleted)

	_, err = f.tracker.Start(f.ctx, chatID, secondInstance.ID)
	assert.NoError(t, err)
}

func TestPollTracker_StartWithOpenSession(t *testing.T) {
	f := newFixture(t)
	employee := f.employee(models.EmployeeRoleEmployee, chatID, dayPtr(-7))
	first, _ := f.graph(templateSpec{pollType: models.PollTypeFeedback})
	second, _ := f.graph(templateSpec{pollType: models.PollTypeOffboarding})

	one := f.instance(employee, first, nil, dayPtr(0), models.PollInstanceStatusNotStarted)
	two := f.instance(employee, second, nil, dayPtr(0), models.PollInstanceStatusNotStarted)

	_, err := f.tracker.Start(f.ctx, chatID, one.ID)
	require.NoError(t, err)

	_, err = f.tracker.Start(f.ctx, chatID, two.ID)
	assert.ErrorIs(t, err, services.ErrSessionOpen)
	assert.Equal(t, models.PollInstanceStatusNotStarted, f.reload(two).Status)
}

func TestPollTracker_AdminCreatedBypassesSequence(t *testing.T) {
	f := newFixture(t)
	employee := f.employee(models.EmployeeRoleEmployee, chatID, dayPtr(-7))
	first, _ := f.graph(templateSpec{number: 1})
	second, _ := f.graph(templateSpec{number: 2})

	f.instance(employee, first, nil, dayPtr(-7), models.PollInstanceStatusExpired)

	instance, err := f.store.PollInstances().Create(f.ctx, &models.PollInstance{
		EmployeeID:     employee.ID,
		TemplateID:     second.ID,
		DatePlannedAt:  dayPtr(0),
		CreatedByAdmin: true,
	})
	require.NoError(t, err)

	_, err = f.tracker.Start(f.ctx, chatID, instance.ID)
	assert.NoError(t, err)
}

func TestPollTracker_ExpiredPollCanBeStarted(t *testing.T) {
	f := newFixture(t)
	employee := f.employee(models.EmployeeRoleEmployee, chatID, dayPtr(-7))
	template, q := f.graph(templateSpec{})
	instance := f.instance(employee, template, nil, dayPtr(-3), models.PollInstanceStatusExpired)

	step, err := f.tracker.Start(f.ctx, chatID, instance.ID)
	require.NoError(t, err)
	assert.Equal(t, q[0].ID, step.Question.ID)
	assert.Equal(t, models.PollInstanceStatusInProgress, f.reload(instance).Status)
}

func TestPollTracker_AnswerRules(t *testing.T) {
	f := newFixture(t)
	employee := f.employee(models.EmployeeRoleEmployee, chatID, dayPtr(-7))
	template, q := f.graph(templateSpec{})
	instance := f.instance(employee, template, nil, dayPtr(0), models.PollInstanceStatusNotStarted)

	_, err := f.tracker.Answer(f.ctx, chatID, instance.ID, q[0].ID, "3")
	assert.ErrorIs(t, err, services.ErrPollNotActive)

	_, err = f.tracker.Start(f.ctx, chatID, instance.ID)
	require.NoError(t, err)

	_, err = f.tracker.Answer(f.ctx, chatID, instance.ID, q[1].ID, "text")
	assert.ErrorIs(t, err, services.ErrStaleQuestion)

	_, err = f.tracker.Answer(f.ctx, chatID, instance.ID, q[0].ID, "7")
	assert.ErrorIs(t, err, services.ErrInvalidAnswer)
	reason, _ := services.Reason(err)
	assert.Equal(t, "Выбери ответ на клавиатуре ☝️", reason)

	assert.Empty(t, f.answers(instance))
}

func TestPollTracker_MissingEdgeCompletes(t *testing.T) {
	f := newFixture(t)
	employee := f.employee(models.EmployeeRoleEmployee, chatID, dayPtr(-7))
	template := f.template(templateSpec{})
	q1 := f.question(template.ID, models.QuestionTypeYesNo, "Все хорошо?")
	instance := f.instance(employee, template, nil, dayPtr(0), models.PollInstanceStatusNotStarted)

	_, err := f.tracker.Start(f.ctx, chatID, instance.ID)
	require.NoError(t, err)

	step, err := f.tracker.Answer(f.ctx, chatID, instance.ID, q1.ID, "yes")
	require.NoError(t, err)
	assert.True(t, step.Completed)
	assert.Nil(t, step.Question)
	assert.Equal(t, models.PollInstanceStatusCompleted, f.reload(instance).Status)
}

// inProgress puts the instance into in_progress with the first question answered.
func (f *fixture) inProgress(employee *models.Employee, instance *models.PollInstance, q []*models.Question, startedAt time.Time) {
	instance = f.reload(instance)
	instance.Status = models.PollInstanceStatusInProgress
	instance.StartedAt = &startedAt
	_, err := f.store.PollInstances().Update(f.ctx, instance)
	require.NoError(f.t, err)

	_, err = f.store.Answers().Upsert(f.ctx, &models.Answer{
		EmployeeID:     employee.ID,
		QuestionID:     q[0].ID,
		PollInstanceID: instance.ID,
		Answer:         "3",
		Token:          models.AnswerTokenThree,
		CreatedAt:      startedAt,
	})
	require.NoError(f.t, err)

	employee = f.reloadEmployee(employee)
	employee.Session = &models.InterviewSession{PollInstanceID: instance.ID, QuestionID: q[1].ID}
	_, err = f.store.Employees().Update(f.ctx, employee)
	require.NoError(f.t, err)
}

func TestPollTracker_FreezeAndResumeFromLastAnswer(t *testing.T) {
	f := newFixture(t)
	employee := f.employee(models.EmployeeRoleEmployee, chatID, dayPtr(-7))
	template, q := f.graph(templateSpec{})
	instance := f.instance(employee, template, nil, dayPtr(0), models.PollInstanceStatusNotStarted)

	startedAt := now.Add(-45 * time.Minute)
	f.inProgress(employee, instance, q, startedAt)

	f.notifier.EXPECT().PingContinue(gomock.Any(), chatID, gomock.Any()).Times(1)

	frozen, err := f.reconciler.FreezeIdle(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, frozen)

	instance = f.reload(instance)
	assert.Equal(t, models.PollInstanceStatusInFrozen, instance.Status)
	assert.Len(t, f.answers(instance), 1)

	step, err := f.tracker.Resume(f.ctx, chatID, instance.ID)
	require.NoError(t, err)
	assert.Equal(t, q[1].ID, step.Question.ID)

	instance = f.reload(instance)
	assert.Equal(t, models.PollInstanceStatusInProgress, instance.Status)
	require.NotNil(t, instance.StartedAt)
	assert.True(t, startedAt.Equal(*instance.StartedAt))
	assert.Len(t, f.answers(instance), 1)

	session := f.reloadEmployee(employee).Session
	require.NotNil(t, session)
	assert.Equal(t, q[1].ID, session.QuestionID)
}

func TestPollTracker_FreezeIdleSkipsRecentPolls(t *testing.T) {
	f := newFixture(t)
	employee := f.employee(models.EmployeeRoleEmployee, chatID, dayPtr(-7))
	template, q := f.graph(templateSpec{})
	instance := f.instance(employee, template, nil, dayPtr(0), models.PollInstanceStatusNotStarted)

	f.inProgress(employee, instance, q, now.Add(-10*time.Minute))

	frozen, err := f.reconciler.FreezeIdle(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, frozen)
	assert.Equal(t, models.PollInstanceStatusInProgress, f.reload(instance).Status)
}

func TestPollTracker_LateAnswerOnFrozenPoll(t *testing.T) {
	f := newFixture(t)
	employee := f.employee(models.EmployeeRoleEmployee, chatID, dayPtr(-7))
	template, q := f.graph(templateSpec{})
	instance := f.instance(employee, template, nil, dayPtr(0), models.PollInstanceStatusNotStarted)

	f.inProgress(employee, instance, q, now.Add(-45*time.Minute))
	_, err := f.tracker.Freeze(f.ctx, instance.ID)
	require.NoError(t, err)

	step, err := f.tracker.Answer(f.ctx, chatID, instance.ID, q[1].ID, "все сложно")
	require.NoError(t, err)
	assert.True(t, step.Completed)
	assert.Equal(t, models.PollInstanceStatusCompleted, f.reload(instance).Status)
}

func TestPollTracker_ResumeWithoutAnswersStartsOver(t *testing.T) {
	f := newFixture(t)
	employee := f.employee(models.EmployeeRoleEmployee, chatID, dayPtr(-7))
	template, q := f.graph(templateSpec{})
	instance := f.instance(employee, template, nil, dayPtr(0), models.PollInstanceStatusNotStarted)

	_, err := f.tracker.Start(f.ctx, chatID, instance.ID)
	require.NoError(t, err)
	_, err = f.tracker.Freeze(f.ctx, instance.ID)
	require.NoError(t, err)

	step, err := f.tracker.Resume(f.ctx, chatID, instance.ID)
	require.NoError(t, err)
	assert.Equal(t, q[0].ID, step.Question.ID)
}

func TestPollTracker_Cancel(t *testing.T) {
	tests := []struct {
		name     string
		planned  *time.Time
		expected models.PollInstanceStatus
	}{
		{name: "planned today", planned: dayPtr(0), expected: models.PollInstanceStatusNotStarted},
		{name: "planned in the past", planned: dayPtr(-2), expected: models.PollInstanceStatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			employee := f.employee(models.EmployeeRoleEmployee, chatID, dayPtr(-7))
			template, q := f.graph(templateSpec{})
			instance := f.instance(employee, template, nil, tt.planned, models.PollInstanceStatusNotStarted)

			f.inProgress(employee, instance, q, now.Add(-time.Minute))
			_, err := f.store.Answers().Upsert(f.ctx, &models.Answer{
				EmployeeID:     employee.ID,
				QuestionID:     q[1].ID,
				PollInstanceID: instance.ID,
				Answer:         "плохо",
				Token:          models.AnswerTokenSomeText,
				CreatedAt:      now,
			})
			require.NoError(t, err)
			require.Len(t, f.answers(instance), 2)

			cancelled, err := f.tracker.Cancel(f.ctx, chatID)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cancelled.Status)

			instance = f.reload(instance)
			assert.Equal(t, tt.expected, instance.Status)
			assert.Nil(t, instance.StartedAt)
			assert.Empty(t, f.answers(instance))

			employee = f.reloadEmployee(employee)
			assert.Nil(t, employee.Session)
			require.NotNil(t, employee.OnboardingStatusID)
			assert.Equal(t, instance.ID, *employee.OnboardingStatusID)
		})
	}
}

func TestPollTracker_CancelWithoutSession(t *testing.T) {
	f := newFixture(t)
	f.employee(models.EmployeeRoleEmployee, chatID, dayPtr(-7))

	_, err := f.tracker.Cancel(f.ctx, chatID)
	assert.ErrorIs(t, err, services.ErrNoOpenSession)
}

func TestPollTracker_ForceCompleteWithoutAnswers(t *testing.T) {
	f := newFixture(t)
	employee := f.employee(models.EmployeeRoleEmployee, chatID, dayPtr(-7))
	template, _ := f.graph(templateSpec{})
	instance := f.instance(employee, template, nil, dayPtr(-1), models.PollInstanceStatusExpired)

	completed, err := f.tracker.ForceComplete(f.ctx, instance.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PollInstanceStatusCompleted, completed.Status)
	assert.NotNil(t, completed.StartedAt)
	assert.NotNil(t, completed.CompletedAt)
	assert.Empty(t, f.answers(instance))

	_, err = f.tracker.ForceComplete(f.ctx, instance.ID)
	assert.ErrorIs(t, err, services.ErrPollCompleted)
}

func TestReconciler_ResetFrozen(t *testing.T) {
	f := newFixture(t)
	employee := f.employee(models.EmployeeRoleEmployee, chatID, dayPtr(-7))
	template, q := f.graph(templateSpec{})
	instance := f.instance(employee, template, nil, dayPtr(-1), models.PollInstanceStatusNotStarted)

	f.inProgress(employee, instance, q, now.Add(-2*time.Hour))
	_, err := f.tracker.Freeze(f.ctx, instance.ID)
	require.NoError(t, err)

	reset, err := f.reconciler.ResetFrozen(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, reset)

	instance = f.reload(instance)
	assert.Equal(t, models.PollInstanceStatusExpired, instance.Status)
	assert.Nil(t, instance.StartedAt)
	assert.Empty(t, f.answers(instance))
	assert.Nil(t, f.reloadEmployee(employee).Session)
}

func TestPollTracker_AnswerTextFollowsSession(t *testing.T) {
	f := newFixture(t)
	employee := f.employee(models.EmployeeRoleEmployee, chatID, dayPtr(-7))
	template, q := f.graph(templateSpec{pollType: models.PollTypeFeedback})
	instance := f.instance(employee, template, nil, dayPtr(0), models.PollInstanceStatusNotStarted)

	_, err := f.tracker.AnswerText(f.ctx, chatID, "hello")
	assert.ErrorIs(t, err, services.ErrNoOpenSession)

	_, err = f.tracker.Start(f.ctx, chatID, instance.ID)
	require.NoError(t, err)

	step, err := f.tracker.AnswerText(f.ctx, chatID, "3")
	require.NoError(t, err)
	assert.Equal(t, q[1].ID, step.Question.ID)

	step, err = f.tracker.AnswerText(f.ctx, chatID, "всё хорошо")
	require.NoError(t, err)
	assert.True(t, step.Completed)
	assert.Equal(t, "всё хорошо", f.answers(instance)[1].Answer)
}
