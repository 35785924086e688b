package services_test

import (
	"context"
	"strings"
	"testing"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDelivery_InviteOrSummary(t *testing.T) {
	f := newFixture(t)
	single := f.employee(models.EmployeeRoleEmployee, 100, dayPtr(-7))
	several := f.employee(models.EmployeeRoleEmployee, 200, dayPtr(-7))
	unregistered := f.employee(models.EmployeeRoleEmployee, 0, dayPtr(-7))

	first := f.template(templateSpec{pollType: models.PollTypeFeedback, number: 1, withQuestion: true})
	second := f.template(templateSpec{pollType: models.PollTypeFeedback, number: 2, withQuestion: true})
	evening := f.template(templateSpec{pollType: models.PollTypeFeedback, number: 3, timeOfDay: models.TimeOfDayEvening, withQuestion: true})

	invited := f.instance(single, first, nil, dayPtr(0), models.PollInstanceStatusNotStarted)
	f.instance(single, evening, nil, dayPtr(0), models.PollInstanceStatusNotStarted)
	f.instance(several, first, nil, dayPtr(-1), models.PollInstanceStatusNotStarted)
	f.instance(several, second, nil, dayPtr(0), models.PollInstanceStatusNotStarted)
	f.instance(unregistered, first, nil, dayPtr(0), models.PollInstanceStatusNotStarted)

	gomock.InOrder(
		f.notifier.EXPECT().
			Invite(gomock.Any(), int64(100), gomock.Any(), "Привет, ответь на вопросы о {}\n\n(Обратная связь)").
			Do(func(_ context.Context, _ int64, instance *models.PollInstance, _ string) {
				assert.Equal(t, invited.ID, instance.ID)
			}),
		f.notifier.EXPECT().
			Summarize(gomock.Any(), int64(200), "У вас есть 2 непройденных опроса обратной связи", services.ListQuery{
				PollType:  models.PollTypeFeedback,
				TimeOfDay: models.TimeOfDayMorning,
			}),
	)

	recipients, err := f.delivery.Deliver(f.ctx, models.PollTypeFeedback, models.TimeOfDayMorning)
	require.NoError(t, err)
	assert.Equal(t, 2, recipients)
}

func TestDelivery_FuturePollsAreNotDelivered(t *testing.T) {
	f := newFixture(t)
	employee := f.employee(models.EmployeeRoleEmployee, chatID, dayPtr(-7))
	template := f.template(templateSpec{withQuestion: true})
	f.instance(employee, template, nil, dayPtr(1), models.PollInstanceStatusNotStarted)

	recipients, err := f.delivery.Deliver(f.ctx, models.PollTypeOnboarding, "")
	require.NoError(t, err)
	assert.Zero(t, recipients)
}

func TestDelivery_InvitationNamesProjectAndTarget(t *testing.T) {
	f := newFixture(t)
	project := f.project("Альфа")
	curator := f.employee(models.EmployeeRoleCurator, 200, dayPtr(-300))
	employee := f.employee(models.EmployeeRoleEmployee, 0, dayPtr(-1))
	employee.FullName = "Анна Смирнова"
	_, err := f.store.Employees().Update(f.ctx, employee)
	require.NoError(t, err)

	template := f.template(templateSpec{audience: models.UserTypeCurator, subject: models.ProjectSubject(project.ID), withQuestion: true})
	instance := f.instance(curator, template, models.Int64Ptr(employee.ID), dayPtr(0), models.PollInstanceStatusNotStarted)

	f.notifier.EXPECT().Invite(gomock.Any(), int64(200), gomock.Any(), "Привет, ответь на вопросы о Анна Смирнова\n\n(Проект: Альфа)")

	require.NoError(t, f.delivery.InviteNow(f.ctx, f.reload(instance)))
}

func TestDelivery_ListPendingPages(t *testing.T) {
	f := newFixture(t)
	employee := f.employee(models.EmployeeRoleEmployee, chatID, dayPtr(-7))

	for number := 1; number <= 7; number++ {
		template := f.template(templateSpec{pollType: models.PollTypeFeedback, number: number, withQuestion: true})
		status := models.PollInstanceStatusNotStarted
		if number%2 == 0 {
			status = models.PollInstanceStatusExpired
		}
		f.instance(employee, template, nil, dayPtr(-number), status)
	}
	completed := f.template(templateSpec{pollType: models.PollTypeFeedback, number: 8, withQuestion: true})
	f.instance(employee, completed, nil, dayPtr(0), models.PollInstanceStatusCompleted)
	future := f.template(templateSpec{pollType: models.PollTypeFeedback, number: 9, withQuestion: true})
	f.instance(employee, future, nil, dayPtr(3), models.PollInstanceStatusNotStarted)

	page, err := f.delivery.ListPending(f.ctx, chatID, services.ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Instances, 5)
	assert.False(t, page.HasPrev)
	assert.True(t, page.HasNext)
	assert.Equal(t, 1, page.Instances[0].Template.PollNumber)

	page, err = f.delivery.ListPending(f.ctx, chatID, services.ListQuery{Page: 1})
	require.NoError(t, err)
	require.Len(t, page.Instances, 2)
	assert.True(t, page.HasPrev)
	assert.False(t, page.HasNext)
	assert.Equal(t, 7, page.Instances[1].Template.PollNumber)

	page, err = f.delivery.ListPending(f.ctx, chatID, services.ListQuery{PollType: models.PollTypeOnboarding})
	require.NoError(t, err)
	assert.Empty(t, page.Instances)
}

func TestInvitationText(t *testing.T) {
	instance := &models.PollInstance{
		Template: &models.PollTemplate{
			Message:  "Как прошел первый день?",
			PollType: models.PollTypeOnboarding,
		},
	}

	assert.Equal(t, "Как прошел первый день?", services.InvitationText(instance, ""))

	instance.Template.PollType = models.PollTypeOffboarding
	assert.True(t, strings.HasSuffix(services.InvitationText(instance, ""), "(Оффбординг)"))
}
