package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"onboarding_poll_system/internal/cache"
	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/db/repositories"

	"go.uber.org/zap"
)

const plannedDayKeyPrefix = "create_pollstatuses_"

// Scheduler creates the poll instances that fall due on a given day.
// Every pass only creates instances planned exactly on that day and never duplicates one.
type Scheduler struct {
	store         repositories.Store
	cache         cache.Cache
	rollup        *OnboardingRollup
	clock         Clock
	plannedDayTTL time.Duration
	logger        *zap.SugaredLogger
}

func NewScheduler(
	store repositories.Store,
	cache cache.Cache,
	rollup *OnboardingRollup,
	clock Clock,
	plannedDayTTL time.Duration,
	logger *zap.SugaredLogger,
) *Scheduler {
	return &Scheduler{
		store:         store,
		cache:         cache,
		rollup:        rollup,
		clock:         clock,
		plannedDayTTL: plannedDayTTL,
		logger:        logger,
	}
}

// PlanDays runs every generation pass for each day once, today and yesterday when no day is given.
func (s *Scheduler) PlanDays(ctx context.Context, days ...time.Time) (int, error) {
	if len(days) == 0 {
		day := today(s.clock)
		days = []time.Time{day, addDays(day, -1)}
	}

	total := 0
	for _, day := range days {
		day = Day(day)
		key := plannedDayKeyPrefix + day.Format(time.DateOnly)
		if _, ok := s.cache.Get(key); ok {
			continue
		}

		created, err := s.PlanDay(ctx, day)
		if err != nil {
			return total, err
		}
		total += created

		s.cache.Set(key, true, s.plannedDayTTL)
	}

	return total, nil
}

// PlanDay runs the generation passes for one day without the dedup cache.
func (s *Scheduler) PlanDay(ctx context.Context, day time.Time) (int, error) {
	passes := []struct {
		name string
		run  func(ctx context.Context, day time.Time, id int64) (int, error)
	}{
		{name: "feedback", run: s.GenerateFeedback},
		{name: "onboarding", run: s.GenerateOnboarding},
		{name: "curator", run: s.GenerateCurator},
	}

	total := 0
	for _, pass := range passes {
		created, err := pass.run(ctx, day, 0)
		if err != nil {
			return total, fmt.Errorf("%s pass for %s: %w", pass.name, day.Format(time.DateOnly), err)
		}
		total += created
	}

	s.logger.Infow("planned polls", "day", day.Format(time.DateOnly), "created", total)
	return total, nil
}

// GenerateFeedback creates personal feedback polls, for one employee when employeeID is set.
func (s *Scheduler) GenerateFeedback(ctx context.Context, day time.Time, employeeID int64) (int, error) {
	filter := repositories.EmployeeFilter{
		Roles:    []models.EmployeeRole{models.EmployeeRoleEmployee, models.EmployeeRoleCurator},
		Statuses: []models.EmployeeStatus{models.EmployeeStatusOnboarding, models.EmployeeStatusAdapted},
	}
	if employeeID != 0 {
		filter.IDs = []int64{employeeID}
	}

	employees, err := s.store.Employees().GetMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to get employees: %w", err)
	}

	templates, err := s.store.Templates().GetTemplates(ctx, repositories.TemplateFilter{
		PollTypes:   []models.PollType{models.PollTypeFeedback, models.PollTypeIntermediateFeedback},
		IntendedFor: models.UserTypeEmployee,
		Subject:     subjectPtr(models.NoSubject()),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get templates: %w", err)
	}

	total := 0
	for _, employee := range employees {
		if !receivesPersonalPolls(employee) || employee.DateOfEmployment == nil {
			continue
		}

		created, err := s.walk(ctx, templates, *employee.DateOfEmployment, day, employee.ID, nil)
		if err != nil {
			return total, err
		}
		total += created
	}

	return total, nil
}

// GenerateOnboarding creates project onboarding polls for assignments, for one assignment when
// assignmentID is set. Curators assigned to the same project get polls about the employee.
func (s *Scheduler) GenerateOnboarding(ctx context.Context, day time.Time, assignmentID int64) (int, error) {
	var assignments []*models.ProjectAssignment
	if assignmentID != 0 {
		assignment, err := s.store.Projects().GetAssignment(ctx, assignmentID)
		if err != nil {
			return 0, fmt.Errorf("failed to get assignment %d: %w", assignmentID, err)
		}
		assignments = append(assignments, assignment)
	} else {
		var err error
		assignments, err = s.store.Projects().GetAssignments(ctx, repositories.AssignmentFilter{WithStartDate: true})
		if err != nil {
			return 0, fmt.Errorf("failed to get assignments: %w", err)
		}
	}

	total := 0
	for _, assignment := range assignments {
		created, err := s.generateForAssignment(ctx, day, assignment)
		if err != nil {
			return total, err
		}
		total += created
	}

	return total, nil
}

func (s *Scheduler) generateForAssignment(ctx context.Context, day time.Time, assignment *models.ProjectAssignment) (int, error) {
	if assignment.DateOfEmployment == nil {
		return 0, nil
	}

	employee, err := s.store.Employees().GetOne(ctx, assignment.EmployeeID)
	if err != nil {
		return 0, fmt.Errorf("failed to get employee %d: %w", assignment.EmployeeID, err)
	}
	if employee.IsArchived || employee.IsDeleted {
		return 0, nil
	}

	project, err := s.store.Projects().GetOne(ctx, assignment.ProjectID)
	if err != nil {
		return 0, fmt.Errorf("failed to get project %d: %w", assignment.ProjectID, err)
	}
	if project.IsDeleted {
		return 0, nil
	}

	subject := models.ProjectSubject(project.ID)
	anchor := *assignment.DateOfEmployment
	total := 0

	if receivesPersonalPolls(employee) {
		templates, err := s.store.Templates().GetTemplates(ctx, repositories.TemplateFilter{
			PollTypes:   []models.PollType{models.PollTypeOnboarding},
			IntendedFor: models.UserTypeEmployee,
			Subject:     &subject,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to get templates: %w", err)
		}

		created, err := s.walk(ctx, templates, anchor, day, employee.ID, nil)
		if err != nil {
			return 0, err
		}
		total += created
	}

	links, err := s.store.Curators().GetLinks(ctx, repositories.CuratorLinkFilter{EmployeeID: employee.ID})
	if err != nil {
		return total, fmt.Errorf("failed to get curators: %w", err)
	}
	if len(links) == 0 {
		return total, nil
	}

	curatorTemplates, err := s.store.Templates().GetTemplates(ctx, repositories.TemplateFilter{
		PollTypes:   []models.PollType{models.PollTypeOnboarding},
		IntendedFor: models.UserTypeCurator,
		Subject:     &subject,
	})
	if err != nil {
		return total, fmt.Errorf("failed to get templates: %w", err)
	}

	for _, link := range links {
		assigned, err := s.store.Projects().GetAssignments(ctx, repositories.AssignmentFilter{
			EmployeeIDs: []int64{link.CuratorID},
			ProjectID:   project.ID,
		})
		if err != nil {
			return total, fmt.Errorf("failed to get curator assignments: %w", err)
		}
		if len(assigned) == 0 {
			continue
		}

		created, err := s.walk(ctx, curatorTemplates, anchor, day, link.CuratorID, models.Int64Ptr(employee.ID))
		if err != nil {
			return total, err
		}
		total += created
	}

	return total, nil
}

// GenerateCurator creates curator feedback polls about their employees, anchored on the employee's hire date.
func (s *Scheduler) GenerateCurator(ctx context.Context, day time.Time, linkID int64) (int, error) {
	var links []*models.CuratorLink
	if linkID != 0 {
		link, err := s.store.Curators().GetLink(ctx, linkID)
		if err != nil {
			return 0, fmt.Errorf("failed to get curator link %d: %w", linkID, err)
		}
		links = append(links, link)
	} else {
		var err error
		links, err = s.store.Curators().GetLinks(ctx, repositories.CuratorLinkFilter{})
		if err != nil {
			return 0, fmt.Errorf("failed to get curator links: %w", err)
		}
	}

	templates, err := s.store.Templates().GetTemplates(ctx, repositories.TemplateFilter{
		PollTypes:   []models.PollType{models.PollTypeFeedback, models.PollTypeIntermediateFeedback},
		IntendedFor: models.UserTypeCurator,
		Subject:     subjectPtr(models.NoSubject()),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get templates: %w", err)
	}

	total := 0
	for _, link := range links {
		curator, err := s.store.Employees().GetOne(ctx, link.CuratorID)
		if err != nil {
			return total, fmt.Errorf("failed to get curator %d: %w", link.CuratorID, err)
		}
		employee, err := s.store.Employees().GetOne(ctx, link.EmployeeID)
		if err != nil {
			return total, fmt.Errorf("failed to get employee %d: %w", link.EmployeeID, err)
		}
		if !active(curator) || !active(employee) || employee.DateOfEmployment == nil {
			continue
		}

		created, err := s.walk(ctx, templates, *employee.DateOfEmployment, day, curator.ID, models.Int64Ptr(employee.ID))
		if err != nil {
			return total, err
		}
		total += created
	}

	return total, nil
}

// walk creates the instances of templates planned exactly on day. Templates must be ordered by offset.
func (s *Scheduler) walk(
	ctx context.Context,
	templates []*models.PollTemplate,
	anchor time.Time,
	day time.Time,
	employeeID int64,
	targetEmployeeID *int64,
) (int, error) {
	anchor = Day(anchor)
	day = Day(day)
	elapsed := daysBetween(anchor, day)

	created := 0
	err := s.store.RunInTransaction(ctx, func(tx repositories.Store) error {
		for _, template := range templates {
			if template.DaysAfterHire > elapsed {
				break
			}
			if template.DaysAfterHire < elapsed {
				continue
			}

			planned := addDays(anchor, template.DaysAfterHire)
			ok, err := tx.PollInstances().CreateIfAbsent(ctx, &models.PollInstance{
				EmployeeID:       employeeID,
				TargetEmployeeID: targetEmployeeID,
				TemplateID:       template.ID,
				Status:           models.PollInstanceStatusNotStarted,
				DatePlannedAt:    &planned,
				TimePlannedAt:    template.TimeOfDay,
				CreatedAt:        s.clock.Now(),
			})
			if err != nil {
				return fmt.Errorf("failed to create poll instance for template %d: %w", template.ID, err)
			}
			if ok {
				created++
			}
		}

		if targetEmployeeID == nil {
			return s.rollup.Recompute(ctx, tx, employeeID)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return created, nil
}

// receivesPersonalPolls reports whether the employee answers polls about themself.
func receivesPersonalPolls(employee *models.Employee) bool {
	if !active(employee) {
		return false
	}
	return employee.Role == models.EmployeeRoleEmployee ||
		(employee.Role == models.EmployeeRoleCurator && employee.IsCuratorEmployee)
}

func active(employee *models.Employee) bool {
	if employee.IsArchived || employee.IsDeleted {
		return false
	}
	return employee.Status != models.EmployeeStatusFired
}

func subjectPtr(ref models.SubjectRef) *models.SubjectRef {
	return &ref
}

func isNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}
