package blueprints

import (
	"context"
	"fmt"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/db/repositories"
)

// Import creates the templates of the blueprint for the subject in one transaction.
func Import(ctx context.Context, store repositories.Store, blueprint *Blueprint, subject models.SubjectRef) ([]*models.PollTemplate, error) {
	if err := subject.Validate(); err != nil {
		return nil, err
	}

	var created []*models.PollTemplate

	err := store.RunInTransaction(ctx, func(tx repositories.Store) error {
		for _, template := range blueprint.Templates {
			pollTemplate, err := importTemplate(ctx, tx, template, subject)
			if err != nil {
				return fmt.Errorf("template %q: %w", template.Title, err)
			}
			created = append(created, pollTemplate)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func importTemplate(ctx context.Context, tx repositories.Store, template Template, subject models.SubjectRef) (*models.PollTemplate, error) {
	pollTemplate := &models.PollTemplate{
		Title:         template.Title,
		Message:       template.Message,
		DaysAfterHire: template.DaysAfterHire,
		TimeOfDay:     models.TimeOfDay(template.TimeOfDay),
		IntendedFor:   models.UserType(template.IntendedFor),
		PollType:      models.PollType(template.PollType),
		PollNumber:    template.PollNumber,
	}
	pollTemplate.SetSubject(subject)

	pollTemplate, err := tx.Templates().CreateTemplate(ctx, pollTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	ids := make(map[string]int64, len(template.Questions))
	for _, question := range template.Questions {
		var category *string
		if question.Category != "" {
			c := question.Category
			category = &c
		}

		created, err := tx.Templates().CreateQuestion(ctx, &models.Question{
			TemplateID:        pollTemplate.ID,
			Text:              question.Text,
			Type:              models.QuestionType(question.Type),
			CategoryAnalytics: category,
			Show:              question.Show,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create question %q: %w", question.Key, err)
		}
		ids[question.Key] = created.ID
	}

	for _, question := range template.Questions {
		for _, edge := range question.Next {
			_, err := tx.Templates().CreateCondition(ctx, &models.QuestionCondition{
				QuestionID:         ids[edge.To],
				PreviousQuestionID: ids[question.Key],
				AnswerCondition:    models.AnswerToken(edge.On),
			})
			if err != nil {
				return nil, fmt.Errorf("failed to create edge %s -> %s: %w", question.Key, edge.To, err)
			}
		}
	}

	return pollTemplate, nil
}
