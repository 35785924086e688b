package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/db/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NewEmployee struct {
	FullName          string
	Role              models.EmployeeRole
	TelegramNickname  string
	DateOfEmployment  *time.Time
	IsCuratorEmployee bool
}

// EmployeeService changes employees together with the polls that depend on them.
type EmployeeService struct {
	store            repositories.Store
	clock            Clock
	scheduler        *Scheduler
	generator        *TemplateGenerator
	rollup           *OnboardingRollup
	admins           *AdminDirectory
	notifier         Notifier
	adaptedAfterDays int
	logger           *zap.SugaredLogger
}

func NewEmployeeService(
	store repositories.Store,
	clock Clock,
	scheduler *Scheduler,
	generator *TemplateGenerator,
	rollup *OnboardingRollup,
	admins *AdminDirectory,
	notifier Notifier,
	adaptedAfterDays int,
	logger *zap.SugaredLogger,
) *EmployeeService {
	return &EmployeeService{
		store:            store,
		clock:            clock,
		scheduler:        scheduler,
		generator:        generator,
		rollup:           rollup,
		admins:           admins,
		notifier:         notifier,
		adaptedAfterDays: adaptedAfterDays,
		logger:           logger,
	}
}

// Create registers an employee, extends the feedback series to their tenure and plans today's feedback.
func (s *EmployeeService) Create(ctx context.Context, request NewEmployee) (*models.Employee, error) {
	role := request.Role
	if role == "" {
		role = models.EmployeeRoleEmployee
	}

	employee := &models.Employee{
		FullName:          request.FullName,
		Role:              role,
		TelegramNickname:  request.TelegramNickname,
		RegistrationCode:  uuid.NewString(),
		Status:            models.EmployeeStatusOnboarding,
		RiskStatus:        models.RiskStatusNoProblem,
		IsCuratorEmployee: request.IsCuratorEmployee,
		CreatedAt:         s.clock.Now(),
	}
	if request.DateOfEmployment != nil {
		hired := Day(*request.DateOfEmployment)
		employee.DateOfEmployment = &hired
		if daysBetween(hired, today(s.clock)) > s.adaptedAfterDays {
			employee.Status = models.EmployeeStatusAdapted
		}
	}

	employee, err := s.store.Employees().Create(ctx, employee)
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	if _, err := s.generator.Extend(ctx, employee.ID); err != nil {
		return nil, err
	}
	if _, err := s.scheduler.GenerateFeedback(ctx, today(s.clock), employee.ID); err != nil {
		return nil, err
	}

	s.logger.Infow("employee created", "employee_id", employee.ID, "role", employee.Role)
	return employee, nil
}

// Register links a chat account to the employee holding the registration code.
func (s *EmployeeService) Register(ctx context.Context, code string, telegramID int64, nickname string) (*models.Employee, error) {
	if _, err := uuid.Parse(code); err != nil {
		return nil, newRuleError(ErrInvalidRegistration, reasonInvalidCode)
	}

	var registered *models.Employee

	err := s.store.RunInTransaction(ctx, func(tx repositories.Store) error {
		employee, err := tx.Employees().GetOneByRegistrationCode(ctx, code)
		if errors.Is(err, repositories.ErrNotFound) {
			return newRuleError(ErrInvalidRegistration, reasonInvalidCode)
		}
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}

		previous, err := tx.Employees().GetOneByTelegramID(ctx, telegramID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("failed to get employee: %w", err)
		}
		if err == nil && previous.ID != employee.ID {
			previous.TelegramUserID = nil
			previous.Session = nil
			if _, err := tx.Employees().Update(ctx, previous); err != nil {
				return fmt.Errorf("failed to unlink previous account: %w", err)
			}
		}

		employee.TelegramUserID = models.Int64Ptr(telegramID)
		if nickname != "" {
			employee.TelegramNickname = nickname
		}

		registered, err = tx.Employees().Update(ctx, employee)
		return err
	})
	if err != nil {
		return nil, err
	}

	if registered.Role == models.EmployeeRoleAdmin {
		s.admins.Forget()
	}

	s.logger.Infow("employee registered", "employee_id", registered.ID)
	return registered, nil
}

// SetDismission plans the offboarding polls for the first dismission date set.
func (s *EmployeeService) SetDismission(ctx context.Context, employeeID int64, day time.Time) (*models.Employee, error) {
	day = Day(day)

	var updated *models.Employee

	err := s.store.RunInTransaction(ctx, func(tx repositories.Store) error {
		employee, err := tx.Employees().GetOne(ctx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee %d: %w", employeeID, err)
		}

		first := employee.DateOfDismission == nil
		employee.DateOfDismission = &day

		if first {
			if err := archiveInstances(ctx, tx, employee.ID, today(s.clock)); err != nil {
				return err
			}

			templates, err := tx.Templates().GetTemplates(ctx, repositories.TemplateFilter{
				PollTypes:   []models.PollType{models.PollTypeOffboarding},
				IntendedFor: models.UserTypeEmployee,
			})
			if err != nil {
				return fmt.Errorf("failed to get offboarding templates: %w", err)
			}

			for _, template := range templates {
				_, err := tx.PollInstances().CreateIfAbsent(ctx, &models.PollInstance{
					EmployeeID:    employee.ID,
					TemplateID:    template.ID,
					Status:        models.PollInstanceStatusNotStarted,
					DatePlannedAt: &day,
					TimePlannedAt: template.TimeOfDay,
					CreatedAt:     s.clock.Now(),
				})
				if err != nil {
					return fmt.Errorf("failed to plan offboarding poll: %w", err)
				}
			}

			employee.Status = models.EmployeeStatusOffboarding
		}

		if _, err := tx.Employees().Update(ctx, employee); err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}

		if err := s.rollup.Recompute(ctx, tx, employee.ID); err != nil {
			return err
		}

		updated, err = tx.Employees().GetOne(ctx, employee.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// SetMeeting schedules the probation review meeting and tells the employee about it.
func (s *EmployeeService) SetMeeting(ctx context.Context, employeeID int64, at time.Time) (*models.Employee, error) {
	employee, err := s.store.Employees().GetOne(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee %d: %w", employeeID, err)
	}

	rescheduled := employee.DateMeeting != nil
	if rescheduled && employee.DateMeeting.Equal(at) {
		return employee, nil
	}

	employee.DateMeeting = &at
	employee, err = s.store.Employees().Update(ctx, employee)
	if err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	if chatID := employee.ChatID(); chatID != 0 {
		s.notifier.Broadcast(ctx, []int64{chatID}, meetingText(at, rescheduled))
	}

	return employee, nil
}

// Archive hides the employee and every poll answered by or about them.
func (s *EmployeeService) Archive(ctx context.Context, employeeID int64) error {
	return s.store.RunInTransaction(ctx, func(tx repositories.Store) error {
		employee, err := tx.Employees().GetOne(ctx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee %d: %w", employeeID, err)
		}

		employee.IsArchived = true
		employee.Session = nil
		if _, err := tx.Employees().Update(ctx, employee); err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}

		if err := archiveInstances(ctx, tx, employee.ID, today(s.clock)); err != nil {
			return err
		}

		return s.rollup.Recompute(ctx, tx, employee.ID)
	})
}

// Delete soft-deletes the employee and removes their polls, curator links and project assignments.
func (s *EmployeeService) Delete(ctx context.Context, employeeID int64) error {
	return s.store.RunInTransaction(ctx, func(tx repositories.Store) error {
		employee, err := tx.Employees().GetOne(ctx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee %d: %w", employeeID, err)
		}

		filter := repositories.PollInstanceFilter{
			InvolvingEmployeeID: employee.ID,
			IncludeArchived:     true,
		}
		if err := detachInstances(ctx, tx, filter, today(s.clock)); err != nil {
			return err
		}
		if _, err := tx.PollInstances().DeleteMany(ctx, filter); err != nil {
			return fmt.Errorf("failed to delete poll instances: %w", err)
		}
		if _, err := tx.Curators().DeleteLinks(ctx, repositories.CuratorLinkFilter{EmployeeID: employee.ID}); err != nil {
			return fmt.Errorf("failed to delete curator links: %w", err)
		}
		if _, err := tx.Curators().DeleteLinks(ctx, repositories.CuratorLinkFilter{CuratorID: employee.ID}); err != nil {
			return fmt.Errorf("failed to delete curator links: %w", err)
		}
		if _, err := tx.Projects().DeleteAssignments(ctx, repositories.AssignmentFilter{EmployeeIDs: []int64{employee.ID}}); err != nil {
			return fmt.Errorf("failed to delete assignments: %w", err)
		}

		// deleting instances may have cleared the pointer
		employee, err = tx.Employees().GetOne(ctx, employee.ID)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		employee.IsDeleted = true
		employee.DeletedAt = &now
		employee.OnboardingStatusID = nil
		employee.Session = nil
		if _, err := tx.Employees().Update(ctx, employee); err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}

		return nil
	})
}

// Purge removes the employee row for good, everything referring to it goes too.
func (s *EmployeeService) Purge(ctx context.Context, employeeID int64) error {
	if err := s.store.Employees().Delete(ctx, employeeID); err != nil {
		return fmt.Errorf("failed to purge employee %d: %w", employeeID, err)
	}

	s.logger.Infow("employee purged", "employee_id", employeeID)
	return nil
}

// LinkCurator makes curatorID the curator of employeeID and plans the curator's polls about them.
func (s *EmployeeService) LinkCurator(ctx context.Context, curatorID, employeeID int64) (*models.CuratorLink, error) {
	curator, err := s.store.Employees().GetOne(ctx, curatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get curator %d: %w", curatorID, err)
	}
	if curator.Role != models.EmployeeRoleCurator {
		return nil, newRuleError(ErrRoleMismatch, reasonRoleMismatch)
	}

	employee, err := s.store.Employees().GetOne(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee %d: %w", employeeID, err)
	}

	link, err := s.store.Curators().CreateLink(ctx, &models.CuratorLink{CuratorID: curatorID, EmployeeID: employeeID})
	if err != nil {
		return nil, fmt.Errorf("failed to link curator: %w", err)
	}

	day := today(s.clock)
	if _, err := s.scheduler.GenerateCurator(ctx, day, link.ID); err != nil {
		return nil, err
	}

	assignments, err := s.store.Projects().GetAssignments(ctx, repositories.AssignmentFilter{
		EmployeeIDs:   []int64{employeeID},
		WithStartDate: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}
	for _, assignment := range assignments {
		if _, err := s.scheduler.GenerateOnboarding(ctx, day, assignment.ID); err != nil {
			return nil, err
		}
	}

	if chatID := curator.ChatID(); chatID != 0 && employee.DateOfEmployment != nil && !employee.DateOfEmployment.Before(day) {
		s.notifier.Broadcast(ctx, []int64{chatID}, curatorAssignedText(employee))
	}

	return link, nil
}

// AssignProject puts the employee on a project, the start date defaults to the hire date.
func (s *EmployeeService) AssignProject(ctx context.Context, employeeID, projectID int64, startDate *time.Time) (*models.ProjectAssignment, error) {
	employee, err := s.store.Employees().GetOne(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee %d: %w", employeeID, err)
	}

	start := employee.DateOfEmployment
	if startDate != nil {
		day := Day(*startDate)
		start = &day
	}

	assignment, err := s.store.Projects().CreateAssignment(ctx, &models.ProjectAssignment{
		EmployeeID:       employeeID,
		ProjectID:        projectID,
		DateOfEmployment: start,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assign project: %w", err)
	}

	if _, err := s.scheduler.GenerateOnboarding(ctx, today(s.clock), assignment.ID); err != nil {
		return nil, err
	}

	return assignment, nil
}

// Unassign takes the employee off the project together with the project polls answered by or about them.
func (s *EmployeeService) Unassign(ctx context.Context, employeeID, projectID int64) error {
	return s.store.RunInTransaction(ctx, func(tx repositories.Store) error {
		if _, err := tx.Projects().DeleteAssignments(ctx, repositories.AssignmentFilter{
			EmployeeIDs: []int64{employeeID},
			ProjectID:   projectID,
		}); err != nil {
			return fmt.Errorf("failed to delete assignment: %w", err)
		}

		filter := repositories.PollInstanceFilter{
			InvolvingEmployeeID: employeeID,
			Subject:             subjectPtr(models.ProjectSubject(projectID)),
			IncludeArchived:     true,
		}
		if err := detachInstances(ctx, tx, filter, today(s.clock)); err != nil {
			return err
		}
		if _, err := tx.PollInstances().DeleteMany(ctx, filter); err != nil {
			return fmt.Errorf("failed to delete project polls: %w", err)
		}

		return s.rollup.Recompute(ctx, tx, employeeID)
	})
}

// UpdateStatuses moves employees whose review meeting or dismission date is today.
func (s *EmployeeService) UpdateStatuses(ctx context.Context) (int, error) {
	day := today(s.clock)

	employees, err := s.store.Employees().GetMany(ctx, repositories.EmployeeFilter{
		Statuses: []models.EmployeeStatus{models.EmployeeStatusOnboarding, models.EmployeeStatusOffboarding},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get employees: %w", err)
	}

	updated := 0
	for _, employee := range employees {
		switch {
		case employee.Status == models.EmployeeStatusOnboarding &&
			employee.DateMeeting != nil && Day(*employee.DateMeeting).Equal(day):
			employee.Status = models.EmployeeStatusAdapted
			if _, err := s.store.Employees().Update(ctx, employee); err != nil {
				return updated, fmt.Errorf("failed to update employee %d: %w", employee.ID, err)
			}
		case employee.Status == models.EmployeeStatusOffboarding &&
			employee.DateOfDismission != nil && Day(*employee.DateOfDismission).Equal(day):
			employee.Status = models.EmployeeStatusFired
			if _, err := s.store.Employees().Update(ctx, employee); err != nil {
				return updated, fmt.Errorf("failed to update employee %d: %w", employee.ID, err)
			}
			if err := s.Archive(ctx, employee.ID); err != nil {
				return updated, err
			}
		default:
			continue
		}
		updated++
	}

	if updated > 0 {
		s.logger.Infow("employee statuses updated", "count", updated)
	}
	return updated, nil
}

func archiveInstances(ctx context.Context, tx repositories.Store, employeeID int64, day time.Time) error {
	instances, err := tx.PollInstances().GetMany(ctx, repositories.PollInstanceFilter{InvolvingEmployeeID: employeeID})
	if err != nil {
		return fmt.Errorf("failed to get poll instances: %w", err)
	}

	for _, instance := range instances {
		instance.IsArchived = true
		if err := detachInstance(ctx, tx, instance, day); err != nil {
			return err
		}
		if _, err := tx.PollInstances().Update(ctx, instance); err != nil {
			return fmt.Errorf("failed to archive poll instance %d: %w", instance.ID, err)
		}
	}
	return nil
}

func detachInstances(ctx context.Context, tx repositories.Store, filter repositories.PollInstanceFilter, day time.Time) error {
	instances, err := tx.PollInstances().GetMany(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to get poll instances: %w", err)
	}

	for _, instance := range instances {
		if err := detachInstance(ctx, tx, instance, day); err != nil {
			return err
		}
	}
	return nil
}

// detachInstance closes the session on an instance that is about to be archived or deleted.
// A started instance is released as well, the idle sweeps never look at archived rows.
func detachInstance(ctx context.Context, tx repositories.Store, instance *models.PollInstance, day time.Time) error {
	switch instance.Status {
	case models.PollInstanceStatusInProgress, models.PollInstanceStatusInFrozen:
		_, err := releaseInstance(ctx, tx, instance, day)
		return err
	default:
		return closeSession(ctx, tx, instance.EmployeeID, instance.ID)
	}
}
