package services

import (
	"context"
	"fmt"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/db/repositories"

	"go.uber.org/zap"
)

// AnswerRecorder persists answers and raises the flags they imply.
type AnswerRecorder struct {
	clock    Clock
	admins   *AdminDirectory
	notifier Notifier
	logger   *zap.SugaredLogger
}

func NewAnswerRecorder(clock Clock, admins *AdminDirectory, notifier Notifier, logger *zap.SugaredLogger) *AnswerRecorder {
	return &AnswerRecorder{clock: clock, admins: admins, notifier: notifier, logger: logger}
}

// RequiresAttention reports answers administrators should look at.
func RequiresAttention(questionType models.QuestionType, token models.AnswerToken) bool {
	switch questionType {
	case models.QuestionTypeNumbers:
		return token == models.AnswerTokenOne || token == models.AnswerTokenTwo || token == models.AnswerTokenThree
	case models.QuestionTypeYesNo:
		return token == models.AnswerTokenNo
	case models.QuestionTypeMessage, models.QuestionTypeSlots:
		return true
	}
	return false
}

// MakesObservable reports answers that move the subject employee out of the no-problem zone.
func MakesObservable(questionType models.QuestionType, token models.AnswerToken) bool {
	switch questionType {
	case models.QuestionTypeNumbers:
		return token == models.AnswerTokenOne || token == models.AnswerTokenTwo || token == models.AnswerTokenThree
	case models.QuestionTypeYesNo:
		return token == models.AnswerTokenNo
	}
	return false
}

// Record upserts the answer inside tx and updates the risk status of the employee the poll is about.
func (r *AnswerRecorder) Record(
	ctx context.Context,
	tx repositories.Store,
	instance *models.PollInstance,
	question *models.Question,
	token models.AnswerToken,
	display string,
) (*models.Answer, error) {
	answer, err := tx.Answers().Upsert(ctx, &models.Answer{
		EmployeeID:        instance.EmployeeID,
		TargetEmployeeID:  instance.TargetEmployeeID,
		QuestionID:        question.ID,
		PollInstanceID:    instance.ID,
		Answer:            display,
		Token:             token,
		RequiresAttention: RequiresAttention(question.Type, token),
		CreatedAt:         r.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save answer: %w", err)
	}

	if !MakesObservable(question.Type, token) {
		return answer, nil
	}

	subjectID := instance.EmployeeID
	if !instance.IsPersonal() {
		subjectID = instance.TargetID()
	}

	subject, err := tx.Employees().GetOne(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee %d: %w", subjectID, err)
	}

	if subject.RiskStatus == models.RiskStatusNoProblem {
		subject.RiskStatus = models.RiskStatusObservable
		if _, err := tx.Employees().Update(ctx, subject); err != nil {
			return nil, fmt.Errorf("failed to update risk status: %w", err)
		}
	}

	return answer, nil
}

// NotifyAttention tells administrators about a flagged answer. Call it after the answer is committed.
func (r *AnswerRecorder) NotifyAttention(ctx context.Context, instance *models.PollInstance, question *models.Question, answer *models.Answer) {
	if answer == nil || !answer.RequiresAttention {
		return
	}

	chatIDs, err := r.admins.ChatIDs(ctx)
	if err != nil {
		r.logger.Errorw("failed to get admins", "error", err)
		return
	}
	if len(chatIDs) == 0 {
		return
	}

	r.notifier.Broadcast(ctx, chatIDs, attentionText(instance.Employee, instance.TargetEmployee, question, answer.Answer))
}
