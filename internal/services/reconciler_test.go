package services_test

import (
	"context"
	"strconv"
	"testing"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestReconciler_ExpireOverdue(t *testing.T) {
	f := newFixture(t)
	employee := f.employee(models.EmployeeRoleEmployee, chatID, dayPtr(-7))

	yesterday := f.template(templateSpec{number: 1, withQuestion: true})
	today := f.template(templateSpec{number: 2, withQuestion: true})
	intermediate := f.template(templateSpec{pollType: models.PollTypeIntermediateFeedback, withQuestion: true})

	overdue := f.instance(employee, yesterday, nil, dayPtr(-1), models.PollInstanceStatusNotStarted)
	current := f.instance(employee, today, nil, dayPtr(0), models.PollInstanceStatusNotStarted)
	skipped := f.instance(employee, intermediate, nil, dayPtr(-1), models.PollInstanceStatusNotStarted)

	expired, err := f.reconciler.ExpireOverdue(f.ctx, models.PollTypeOnboarding)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	assert.Equal(t, models.PollInstanceStatusExpired, f.reload(overdue).Status)
	assert.Equal(t, models.PollInstanceStatusNotStarted, f.reload(current).Status)
	assert.Equal(t, models.PollInstanceStatusNotStarted, f.reload(skipped).Status)

	employee = f.reloadEmployee(employee)
	require.NotNil(t, employee.OnboardingStatusID)
	assert.Equal(t, overdue.ID, *employee.OnboardingStatusID)

	expired, err = f.reconciler.ExpireOverdue(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)
	assert.Equal(t, models.PollInstanceStatusExpired, f.reload(skipped).Status)
}

func TestReconciler_NotifyAdminsAboutExpired(t *testing.T) {
	f := newFixture(t)
	f.employee(models.EmployeeRoleAdmin, 900, nil)
	employee := f.employee(models.EmployeeRoleEmployee, chatID, dayPtr(-7))

	template := f.template(templateSpec{withQuestion: true})
	instance := f.instance(employee, template, nil, dayPtr(-2), models.PollInstanceStatusExpired)

	intermediate := f.template(templateSpec{pollType: models.PollTypeIntermediateFeedback, withQuestion: true})
	hidden := f.instance(employee, intermediate, nil, dayPtr(-2), models.PollInstanceStatusExpired)

	f.notifier.EXPECT().Broadcast(gomock.Any(), []int64{900}, gomock.Any()).Do(func(_ context.Context, _ []int64, text string) {
		assert.Contains(t, text, "Иван Петров")
		assert.Contains(t, text, "(ID: "+strconv.FormatInt(instance.ID, 10)+")")
		assert.NotContains(t, text, "(ID: "+strconv.FormatInt(hidden.ID, 10)+")")
		assert.Contains(t, text, "08.06.2024")
	})

	require.NoError(t, f.reconciler.NotifyAdminsAboutExpired(f.ctx))
}

func TestReconciler_NotifyAdminsWithoutExpiredPolls(t *testing.T) {
	f := newFixture(t)
	f.employee(models.EmployeeRoleAdmin, 900, nil)

	require.NoError(t, f.reconciler.NotifyAdminsAboutExpired(f.ctx))
}

func TestReconciler_RemindExpired(t *testing.T) {
	f := newFixture(t)
	employee := f.employee(models.EmployeeRoleEmployee, chatID, dayPtr(-7))
	silent := f.employee(models.EmployeeRoleEmployee, 0, dayPtr(-7))

	for number := 1; number <= 3; number++ {
		template := f.template(templateSpec{number: number, withQuestion: true})
		f.instance(employee, template, nil, dayPtr(-number), models.PollInstanceStatusExpired)
		f.instance(silent, template, nil, dayPtr(-number), models.PollInstanceStatusExpired)
	}

	f.notifier.EXPECT().Summarize(gomock.Any(), chatID, "У вас есть 3 просроченных опроса", services.ListQuery{})

	reminded, err := f.reconciler.RemindExpired(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, reminded)
}
