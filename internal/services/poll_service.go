package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/db/repositories"

	"go.uber.org/zap"
)

type CreatePollRequest struct {
	EmployeeID       int64
	TemplateID       int64
	TargetEmployeeID *int64
	// PlannedDay defaults to today, TimeOfDay to the template's.
	PlannedDay time.Time
	TimeOfDay  models.TimeOfDay
}

// PollService holds the administrative poll operations.
type PollService struct {
	store    repositories.Store
	clock    Clock
	rollup   *OnboardingRollup
	delivery *Delivery
	logger   *zap.SugaredLogger
}

func NewPollService(
	store repositories.Store,
	clock Clock,
	rollup *OnboardingRollup,
	delivery *Delivery,
	logger *zap.SugaredLogger,
) *PollService {
	return &PollService{
		store:    store,
		clock:    clock,
		rollup:   rollup,
		delivery: delivery,
		logger:   logger,
	}
}

// CreatePoll assigns a template to an employee out of schedule. Such polls skip the sequence check.
func (s *PollService) CreatePoll(ctx context.Context, request CreatePollRequest) (*models.PollInstance, error) {
	day := today(s.clock)
	planned := day
	if !request.PlannedDay.IsZero() {
		planned = Day(request.PlannedDay)
	}

	var created *models.PollInstance

	err := s.store.RunInTransaction(ctx, func(tx repositories.Store) error {
		employee, err := tx.Employees().GetOne(ctx, request.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee %d: %w", request.EmployeeID, err)
		}

		template, err := tx.Templates().GetTemplate(ctx, request.TemplateID)
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("template %d: %w", request.TemplateID, ErrTemplateNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to get template %d: %w", request.TemplateID, err)
		}

		if err := checkAudience(employee, template, request.TargetEmployeeID); err != nil {
			return err
		}

		if request.TargetEmployeeID != nil {
			if _, err := tx.Employees().GetOne(ctx, *request.TargetEmployeeID); err != nil {
				return fmt.Errorf("failed to get target employee %d: %w", *request.TargetEmployeeID, err)
			}
		}

		bucket := request.TimeOfDay
		if bucket == "" {
			bucket = template.TimeOfDay
		}

		created, err = tx.PollInstances().Create(ctx, &models.PollInstance{
			EmployeeID:       employee.ID,
			TargetEmployeeID: request.TargetEmployeeID,
			TemplateID:       template.ID,
			Status:           models.PollInstanceStatusNotStarted,
			DatePlannedAt:    &planned,
			TimePlannedAt:    bucket,
			CreatedByAdmin:   true,
			CreatedAt:        s.clock.Now(),
		})
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return newRuleError(ErrDuplicatePoll, reasonDuplicatePoll)
		}
		if err != nil {
			return fmt.Errorf("failed to create poll instance: %w", err)
		}

		if created.IsPersonal() {
			return s.rollup.Recompute(ctx, tx, created.EmployeeID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("poll created", "poll_instance_id", created.ID, "employee_id", created.EmployeeID, "template_id", created.TemplateID)

	if planned.Equal(day) {
		if err := s.delivery.InviteNow(ctx, created); err != nil {
			s.logger.Errorw("failed to invite", "poll_instance_id", created.ID, "error", err)
		}
	}

	return created, nil
}

func checkAudience(employee *models.Employee, template *models.PollTemplate, targetEmployeeID *int64) error {
	if template.IsDeleted {
		return newRuleError(ErrTemplateDeleted, reasonPollDeleted)
	}
	// curators marked as employees also answer employee polls about themselves
	curatorAsEmployee := employee.IsCuratorEmployee && template.IntendedFor == models.UserTypeEmployee
	if template.IntendedFor != employee.UserType() && !curatorAsEmployee {
		return newRuleError(ErrRoleMismatch, reasonRoleMismatch)
	}

	switch template.IntendedFor {
	case models.UserTypeEmployee:
		if targetEmployeeID != nil {
			return newRuleError(ErrTargetNotAllowed, reasonTargetForbidden)
		}
	case models.UserTypeCurator:
		if targetEmployeeID == nil {
			return newRuleError(ErrTargetNotAllowed, reasonTargetRequired)
		}
	}
	return nil
}
