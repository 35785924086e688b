package services

import (
	"context"
	"fmt"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/db/repositories"
)

// rollupPriority lists the statuses that win over a completed history, most urgent first.
var rollupPriority = []models.PollInstanceStatus{
	models.PollInstanceStatusExpired,
	models.PollInstanceStatusInFrozen,
	models.PollInstanceStatusInProgress,
	models.PollInstanceStatusNotStarted,
}

// SelectOnboardingStatus picks the instance that represents the employee. Instances must be
// ordered by planned date; the earliest instance of the most urgent status wins, otherwise the last one.
func SelectOnboardingStatus(instances []*models.PollInstance) *models.PollInstance {
	if len(instances) == 0 {
		return nil
	}

	for _, status := range rollupPriority {
		for _, instance := range instances {
			if instance.Status == status {
				return instance
			}
		}
	}

	return instances[len(instances)-1]
}

type OnboardingRollup struct {
	clock Clock
}

func NewOnboardingRollup(clock Clock) *OnboardingRollup {
	return &OnboardingRollup{clock: clock}
}

// Recompute refreshes the cached onboarding status pointer of the employee.
func (r *OnboardingRollup) Recompute(ctx context.Context, store repositories.Store, employeeID int64) error {
	day := today(r.clock)

	instances, err := store.PollInstances().GetMany(ctx, repositories.PollInstanceFilter{
		EmployeeID:        employeeID,
		PersonalOnly:      true,
		ExcludePollTypes:  []models.PollType{models.PollTypeIntermediateFeedback},
		PlannedOnOrBefore: &day,
		OrderBy:           repositories.OrderByPlannedDate,
	})
	if err != nil {
		return fmt.Errorf("failed to get poll instances: %w", err)
	}

	employee, err := store.Employees().GetOne(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to get employee %d: %w", employeeID, err)
	}

	var pointer *int64
	if selected := SelectOnboardingStatus(instances); selected != nil {
		pointer = models.Int64Ptr(selected.ID)
	}

	if samePointer(employee.OnboardingStatusID, pointer) {
		return nil
	}

	employee.OnboardingStatusID = pointer
	if _, err := store.Employees().Update(ctx, employee); err != nil {
		return fmt.Errorf("failed to update onboarding status: %w", err)
	}

	return nil
}

func samePointer(a, b *int64) bool {
	return models.SameTarget(a, b)
}
