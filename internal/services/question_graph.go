package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/db/repositories"
)

// QuestionGraph walks the conditional edges of a poll template.
type QuestionGraph struct {
	store repositories.Store
}

func NewQuestionGraph(store repositories.Store) *QuestionGraph {
	return &QuestionGraph{store: store}
}

// ResolveNext returns the question the edge (questionID, token) leads to, nil when the branch ends.
func (g *QuestionGraph) ResolveNext(ctx context.Context, questionID int64, token models.AnswerToken) (*models.Question, error) {
	return resolveNext(ctx, g.store, questionID, token)
}

func (g *QuestionGraph) FirstQuestion(ctx context.Context, templateID int64) (*models.Question, error) {
	return firstQuestion(ctx, g.store, templateID)
}

func (g *QuestionGraph) Question(ctx context.Context, questionID int64) (*models.Question, error) {
	question, err := g.store.Templates().GetQuestion(ctx, questionID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("question %d: %w", questionID, ErrQuestionNotFound)
	}
	return question, err
}

func resolveNext(ctx context.Context, store repositories.Store, questionID int64, token models.AnswerToken) (*models.Question, error) {
	templates := store.Templates()

	if _, err := templates.GetQuestion(ctx, questionID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("question %d: %w", questionID, ErrQuestionNotFound)
		}
		return nil, err
	}

	condition, err := templates.FindCondition(ctx, questionID, token)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	next, err := templates.GetQuestion(ctx, condition.QuestionID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("question %d: %w", condition.QuestionID, ErrQuestionNotFound)
	}
	return next, err
}

func firstQuestion(ctx context.Context, store repositories.Store, templateID int64) (*models.Question, error) {
	questions, err := store.Templates().GetQuestions(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("template %d has no questions: %w", templateID, ErrQuestionNotFound)
	}
	return questions[0], nil
}

// TokenFor maps a raw answer onto the edge vocabulary and the text stored for it.
func TokenFor(question *models.Question, raw string) (models.AnswerToken, string, error) {
	raw = strings.TrimSpace(raw)

	switch question.Type {
	case models.QuestionTypeYesNo:
		switch raw {
		case string(models.AnswerTokenYes), "Да":
			return models.AnswerTokenYes, "Да", nil
		case string(models.AnswerTokenNo), "Нет":
			return models.AnswerTokenNo, "Нет", nil
		}
	case models.QuestionTypeNumbers:
		token := models.AnswerToken(raw)
		switch token {
		case models.AnswerTokenOne, models.AnswerTokenTwo, models.AnswerTokenThree, models.AnswerTokenFour, models.AnswerTokenFive:
			return token, raw, nil
		}
	case models.QuestionTypeNext:
		if raw == string(models.AnswerTokenNext) || raw == "Далее" {
			return models.AnswerTokenNext, raw, nil
		}
	case models.QuestionTypeMessage:
		if raw != "" {
			return models.AnswerTokenSomeText, raw, nil
		}
	case models.QuestionTypeSlots:
		// slot booking is not handled here, any pick continues through the wildcard edge
		if raw == "slots" || raw == "Забронирован слот" {
			return models.AnswerTokenSomeText, "Забронирован слот", nil
		}
		if raw != "" {
			return models.AnswerTokenSomeText, raw, nil
		}
	}

	return "", "", newRuleError(ErrInvalidAnswer, reasonChooseOnKeypad)
}

// CloneQuestionGraph copies the questions and edges of one template into another.
func CloneQuestionGraph(ctx context.Context, store repositories.Store, fromTemplateID, toTemplateID int64) error {
	return store.RunInTransaction(ctx, func(tx repositories.Store) error {
		templates := tx.Templates()

		questions, err := templates.GetQuestions(ctx, fromTemplateID)
		if err != nil {
			return err
		}

		mapping := make(map[int64]int64, len(questions))
		for _, question := range questions {
			created, err := templates.CreateQuestion(ctx, &models.Question{
				TemplateID:        toTemplateID,
				Text:              question.Text,
				Type:              question.Type,
				CategoryAnalytics: question.CategoryAnalytics,
				Show:              question.Show,
			})
			if err != nil {
				return fmt.Errorf("failed to copy question %d: %w", question.ID, err)
			}
			mapping[question.ID] = created.ID
		}

		conditions, err := templates.GetConditions(ctx, fromTemplateID)
		if err != nil {
			return err
		}

		for _, condition := range conditions {
			questionID, ok := mapping[condition.QuestionID]
			if !ok {
				return fmt.Errorf("edge %d leaves template %d: %w", condition.ID, fromTemplateID, ErrQuestionNotFound)
			}
			_, err := templates.CreateCondition(ctx, &models.QuestionCondition{
				QuestionID:         questionID,
				PreviousQuestionID: mapping[condition.PreviousQuestionID],
				AnswerCondition:    condition.AnswerCondition,
			})
			if err != nil {
				return fmt.Errorf("failed to copy edge %d: %w", condition.ID, err)
			}
		}

		return nil
	})
}
