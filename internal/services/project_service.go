package services

import (
	"context"
	"fmt"
	"time"

	"onboarding_poll_system/internal/blueprints"
	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/db/repositories"

	"go.uber.org/zap"
)

// ProjectService creates projects with their default onboarding polls and retires them.
type ProjectService struct {
	store     repositories.Store
	clock     Clock
	rollup    *OnboardingRollup
	blueprint *blueprints.Blueprint
	logger    *zap.SugaredLogger
}

func NewProjectService(
	store repositories.Store,
	clock Clock,
	rollup *OnboardingRollup,
	blueprint *blueprints.Blueprint,
	logger *zap.SugaredLogger,
) *ProjectService {
	return &ProjectService{
		store:     store,
		clock:     clock,
		rollup:    rollup,
		blueprint: blueprint,
		logger:    logger,
	}
}

func (s *ProjectService) Create(ctx context.Context, name string, dateStart *time.Time) (*models.Project, error) {
	var created *models.Project

	err := s.store.RunInTransaction(ctx, func(tx repositories.Store) error {
		var err error
		created, err = tx.Projects().Create(ctx, &models.Project{
			Name:      name,
			DateStart: dateStart,
			CreatedAt: s.clock.Now(),
		})
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		if s.blueprint == nil {
			return nil
		}

		_, err = blueprints.Import(ctx, tx, s.blueprint, models.ProjectSubject(created.ID))
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("project created", "project_id", created.ID)
	return created, nil
}

// Delete soft-deletes the project and its templates. Polls about the project are archived.
func (s *ProjectService) Delete(ctx context.Context, projectID int64) error {
	return s.store.RunInTransaction(ctx, func(tx repositories.Store) error {
		project, err := tx.Projects().GetOne(ctx, projectID)
		if err != nil {
			return fmt.Errorf("failed to get project %d: %w", projectID, err)
		}

		now := s.clock.Now()
		project.IsDeleted = true
		project.DeletedAt = &now
		if _, err := tx.Projects().Update(ctx, project); err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}

		subject := models.ProjectSubject(project.ID)
		templates, err := tx.Templates().GetTemplates(ctx, repositories.TemplateFilter{Subject: &subject})
		if err != nil {
			return fmt.Errorf("failed to get project templates: %w", err)
		}
		for _, template := range templates {
			template.IsDeleted = true
			template.DeletedAt = &now
			if _, err := tx.Templates().UpdateTemplate(ctx, template); err != nil {
				return fmt.Errorf("failed to delete template %d: %w", template.ID, err)
			}
		}

		instances, err := tx.PollInstances().GetMany(ctx, repositories.PollInstanceFilter{Subject: &subject})
		if err != nil {
			return fmt.Errorf("failed to get project polls: %w", err)
		}

		affected := make(map[int64]struct{})
		for _, instance := range instances {
			instance.IsArchived = true
			if err := detachInstance(ctx, tx, instance, today(s.clock)); err != nil {
				return err
			}
			if _, err := tx.PollInstances().Update(ctx, instance); err != nil {
				return fmt.Errorf("failed to archive poll instance %d: %w", instance.ID, err)
			}
			if instance.IsPersonal() {
				affected[instance.EmployeeID] = struct{}{}
			}
		}

		for employeeID := range affected {
			if err := s.rollup.Recompute(ctx, tx, employeeID); err != nil {
				return err
			}
		}

		return nil
	})
}
