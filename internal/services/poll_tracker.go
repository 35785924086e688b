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

// Step is what the chat shows after a transition: the question to ask next, or the closing one.
type Step struct {
	Instance  *models.PollInstance
	Question  *models.Question
	Completed bool
}

// PollTracker drives a poll instance through its lifecycle on behalf of the chat user who owns it.
type PollTracker struct {
	store    repositories.Store
	clock    Clock
	recorder *AnswerRecorder
	rollup   *OnboardingRollup
	logger   *zap.SugaredLogger
}

func NewPollTracker(
	store repositories.Store,
	clock Clock,
	recorder *AnswerRecorder,
	rollup *OnboardingRollup,
	logger *zap.SugaredLogger,
) *PollTracker {
	return &PollTracker{
		store:    store,
		clock:    clock,
		recorder: recorder,
		rollup:   rollup,
		logger:   logger,
	}
}

func (t *PollTracker) Start(ctx context.Context, telegramID, instanceID int64) (*Step, error) {
	var step *Step

	err := t.store.RunInTransaction(ctx, func(tx repositories.Store) error {
		employee, instance, err := loadOwned(ctx, tx, telegramID, instanceID)
		if err != nil {
			return err
		}

		switch instance.Status {
		case models.PollInstanceStatusCompleted:
			return newRuleError(ErrPollCompleted, reasonPollCompleted)
		case models.PollInstanceStatusInProgress:
			return newRuleError(ErrPollNotStartable, reasonPollStarted)
		case models.PollInstanceStatusInFrozen:
			return newRuleError(ErrPollNotStartable, reasonPollFrozen)
		}

		if employee.HasOpenSession() {
			return newRuleError(ErrSessionOpen, reasonSessionOpen)
		}

		if err := checkSequence(ctx, tx, instance); err != nil {
			return err
		}

		first, err := firstQuestion(ctx, tx, instance.TemplateID)
		if err != nil {
			return err
		}

		if err := transition(instance, models.PollInstanceStatusInProgress); err != nil {
			return err
		}
		if instance.StartedAt == nil {
			now := t.clock.Now()
			instance.StartedAt = &now
		}

		instance, err = tx.PollInstances().Update(ctx, instance)
		if err != nil {
			return fmt.Errorf("failed to update poll instance: %w", err)
		}

		if err := openSession(ctx, tx, employee.ID, instance.ID, first.ID); err != nil {
			return err
		}

		if instance.IsPersonal() {
			if err := t.rollup.Recompute(ctx, tx, instance.EmployeeID); err != nil {
				return err
			}
		}

		step = &Step{Instance: instance, Question: first}
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.logger.Infow("poll started", "poll_instance_id", instanceID, "employee_id", step.Instance.EmployeeID)
	return step, nil
}

func (t *PollTracker) Answer(ctx context.Context, telegramID, instanceID, questionID int64, raw string) (*Step, error) {
	var (
		step     *Step
		question *models.Question
		answer   *models.Answer
	)

	err := t.store.RunInTransaction(ctx, func(tx repositories.Store) error {
		employee, instance, err := loadOwned(ctx, tx, telegramID, instanceID)
		if err != nil {
			return err
		}

		switch instance.Status {
		case models.PollInstanceStatusInProgress:
		case models.PollInstanceStatusInFrozen:
			// a late answer wins over the idle sweep
			if err := transition(instance, models.PollInstanceStatusInProgress); err != nil {
				return err
			}
		case models.PollInstanceStatusCompleted:
			return newRuleError(ErrPollCompleted, reasonPollCompleted)
		default:
			return newRuleError(ErrPollNotActive, reasonPollNotActive)
		}

		session := employee.Session
		if session == nil || session.PollInstanceID != instance.ID || session.QuestionID != questionID {
			return newRuleError(ErrStaleQuestion, reasonStaleQuestion)
		}

		question, err = tx.Templates().GetQuestion(ctx, questionID)
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("question %d: %w", questionID, ErrQuestionNotFound)
		}
		if err != nil {
			return err
		}

		token, display, err := TokenFor(question, raw)
		if err != nil {
			return err
		}

		answer, err = t.recorder.Record(ctx, tx, instance, question, token, display)
		if err != nil {
			return err
		}

		next, err := resolveNext(ctx, tx, question.ID, token)
		if err != nil {
			return err
		}

		if next == nil || next.IsFinish() {
			if next == nil {
				t.logger.Warnw("branch ended without finish question", "question_id", question.ID, "token", token)
			}

			instance, err = t.complete(ctx, tx, instance)
			if err != nil {
				return err
			}

			step = &Step{Instance: instance, Question: next, Completed: true}
			return nil
		}

		instance, err = tx.PollInstances().Update(ctx, instance)
		if err != nil {
			return fmt.Errorf("failed to update poll instance: %w", err)
		}

		if err := openSession(ctx, tx, employee.ID, instance.ID, next.ID); err != nil {
			return err
		}

		step = &Step{Instance: instance, Question: next}
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.recorder.NotifyAttention(ctx, step.Instance, question, answer)

	if step.Completed {
		t.logger.Infow("poll completed", "poll_instance_id", instanceID, "employee_id", step.Instance.EmployeeID)
	}
	return step, nil
}

// Freeze parks an idle instance, answers stay as they are.
func (t *PollTracker) Freeze(ctx context.Context, instanceID int64) (*models.PollInstance, error) {
	var frozen *models.PollInstance

	err := t.store.RunInTransaction(ctx, func(tx repositories.Store) error {
		instance, err := tx.PollInstances().GetOne(ctx, instanceID)
		if err != nil {
			return fmt.Errorf("failed to get poll instance %d: %w", instanceID, err)
		}

		if err := transition(instance, models.PollInstanceStatusInFrozen); err != nil {
			return err
		}

		frozen, err = tx.PollInstances().Update(ctx, instance)
		if err != nil {
			return fmt.Errorf("failed to update poll instance: %w", err)
		}

		if instance.IsPersonal() {
			return t.rollup.Recompute(ctx, tx, instance.EmployeeID)
		}
		return nil
	})

	return frozen, err
}

// AnswerText answers the question the open session points at. Typed replies carry no question id.
func (t *PollTracker) AnswerText(ctx context.Context, telegramID int64, raw string) (*Step, error) {
	employee, err := employeeByTelegramID(ctx, t.store, telegramID)
	if err != nil {
		return nil, err
	}

	if !employee.HasOpenSession() {
		return nil, newRuleError(ErrNoOpenSession, reasonNoOpenSession)
	}

	return t.Answer(ctx, telegramID, employee.Session.PollInstanceID, employee.Session.QuestionID, raw)
}

// Resume continues a frozen poll from the question after the last recorded answer.
func (t *PollTracker) Resume(ctx context.Context, telegramID, instanceID int64) (*Step, error) {
	var step *Step

	err := t.store.RunInTransaction(ctx, func(tx repositories.Store) error {
		employee, instance, err := loadOwned(ctx, tx, telegramID, instanceID)
		if err != nil {
			return err
		}

		switch instance.Status {
		case models.PollInstanceStatusInFrozen:
		case models.PollInstanceStatusInProgress:
			// pressing continue twice shows the current question again
			if employee.HasOpenSession() && employee.Session.PollInstanceID == instance.ID {
				question, err := tx.Templates().GetQuestion(ctx, employee.Session.QuestionID)
				if err != nil {
					return fmt.Errorf("question %d: %w", employee.Session.QuestionID, ErrQuestionNotFound)
				}
				step = &Step{Instance: instance, Question: question}
				return nil
			}
			return newRuleError(ErrPollNotActive, reasonPollNotActive)
		case models.PollInstanceStatusCompleted:
			return newRuleError(ErrPollCompleted, reasonPollCompleted)
		default:
			return newRuleError(ErrPollNotActive, reasonPollNotActive)
		}

		if employee.HasOpenSession() && employee.Session.PollInstanceID != instance.ID {
			return newRuleError(ErrSessionOpen, reasonSessionOpen)
		}

		next, err := t.questionAfterLastAnswer(ctx, tx, instance)
		if err != nil {
			return err
		}

		if err := transition(instance, models.PollInstanceStatusInProgress); err != nil {
			return err
		}

		if next == nil || next.IsFinish() {
			instance, err = t.complete(ctx, tx, instance)
			if err != nil {
				return err
			}
			step = &Step{Instance: instance, Question: next, Completed: true}
			return nil
		}

		instance, err = tx.PollInstances().Update(ctx, instance)
		if err != nil {
			return fmt.Errorf("failed to update poll instance: %w", err)
		}

		if err := openSession(ctx, tx, employee.ID, instance.ID, next.ID); err != nil {
			return err
		}

		if instance.IsPersonal() {
			if err := t.rollup.Recompute(ctx, tx, instance.EmployeeID); err != nil {
				return err
			}
		}

		step = &Step{Instance: instance, Question: next}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return step, nil
}

// Cancel drops the open interview of the user: answers are deleted and the poll goes back to the queue.
func (t *PollTracker) Cancel(ctx context.Context, telegramID int64) (*models.PollInstance, error) {
	var cancelled *models.PollInstance

	err := t.store.RunInTransaction(ctx, func(tx repositories.Store) error {
		employee, err := employeeByTelegramID(ctx, tx, telegramID)
		if err != nil {
			return err
		}

		if !employee.HasOpenSession() {
			return newRuleError(ErrNoOpenSession, reasonNoOpenSession)
		}

		instance, err := tx.PollInstances().GetOne(ctx, employee.Session.PollInstanceID)
		if errors.Is(err, repositories.ErrNotFound) {
			return closeSession(ctx, tx, employee.ID, 0)
		}
		if err != nil {
			return fmt.Errorf("failed to get poll instance: %w", err)
		}

		switch instance.Status {
		case models.PollInstanceStatusInProgress, models.PollInstanceStatusInFrozen:
			cancelled, err = t.reset(ctx, tx, instance)
			return err
		default:
			return closeSession(ctx, tx, employee.ID, 0)
		}
	})
	if err != nil {
		return nil, err
	}

	if cancelled != nil {
		t.logger.Infow("poll cancelled", "poll_instance_id", cancelled.ID, "status", cancelled.Status)
	}
	return cancelled, nil
}

// Reset throws away a frozen attempt.
func (t *PollTracker) Reset(ctx context.Context, instanceID int64) (*models.PollInstance, error) {
	var reset *models.PollInstance

	err := t.store.RunInTransaction(ctx, func(tx repositories.Store) error {
		instance, err := tx.PollInstances().GetOne(ctx, instanceID)
		if err != nil {
			return fmt.Errorf("failed to get poll instance %d: %w", instanceID, err)
		}

		reset, err = t.reset(ctx, tx, instance)
		return err
	})

	return reset, err
}

// ForceComplete closes a poll without an answer trail.
func (t *PollTracker) ForceComplete(ctx context.Context, instanceID int64) (*models.PollInstance, error) {
	var completed *models.PollInstance

	err := t.store.RunInTransaction(ctx, func(tx repositories.Store) error {
		instance, err := tx.PollInstances().GetOne(ctx, instanceID)
		if errors.Is(err, repositories.ErrNotFound) {
			return newRuleError(ErrPollNotFound, reasonPollNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to get poll instance %d: %w", instanceID, err)
		}

		if instance.Status.IsTerminal() {
			return newRuleError(ErrPollCompleted, reasonPollCompleted)
		}

		if instance.Status != models.PollInstanceStatusInProgress {
			if err := transition(instance, models.PollInstanceStatusInProgress); err != nil {
				return err
			}
			if instance.StartedAt == nil {
				now := t.clock.Now()
				instance.StartedAt = &now
			}
		}

		completed, err = t.complete(ctx, tx, instance)
		return err
	})
	if err != nil {
		return nil, err
	}

	t.logger.Infow("poll completed by administrator", "poll_instance_id", instanceID)
	return completed, nil
}

func (t *PollTracker) complete(ctx context.Context, tx repositories.Store, instance *models.PollInstance) (*models.PollInstance, error) {
	if err := transition(instance, models.PollInstanceStatusCompleted); err != nil {
		return nil, err
	}
	now := t.clock.Now()
	instance.CompletedAt = &now

	completed, err := tx.PollInstances().Update(ctx, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to update poll instance: %w", err)
	}

	if err := closeSession(ctx, tx, completed.EmployeeID, completed.ID); err != nil {
		return nil, err
	}

	if completed.IsPersonal() {
		if err := t.rollup.Recompute(ctx, tx, completed.EmployeeID); err != nil {
			return nil, err
		}
	}

	return completed, nil
}

func (t *PollTracker) reset(ctx context.Context, tx repositories.Store, instance *models.PollInstance) (*models.PollInstance, error) {
	reset, err := releaseInstance(ctx, tx, instance, today(t.clock))
	if err != nil {
		return nil, err
	}

	if reset.IsPersonal() {
		if err := t.rollup.Recompute(ctx, tx, reset.EmployeeID); err != nil {
			return nil, err
		}
	}

	return reset, nil
}

// releaseInstance drops the answers of a started instance, moves it back to not_started or expired
// and clears the session pointing at it.
func releaseInstance(ctx context.Context, tx repositories.Store, instance *models.PollInstance, day time.Time) (*models.PollInstance, error) {
	if _, err := tx.Answers().DeleteByInstance(ctx, instance.ID); err != nil {
		return nil, fmt.Errorf("failed to delete answers: %w", err)
	}

	target := models.PollInstanceStatusNotStarted
	if instance.PlannedBefore(day) {
		target = models.PollInstanceStatusExpired
	}
	if err := transition(instance, target); err != nil {
		return nil, err
	}
	instance.StartedAt = nil

	released, err := tx.PollInstances().Update(ctx, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to update poll instance: %w", err)
	}

	if err := closeSession(ctx, tx, released.EmployeeID, released.ID); err != nil {
		return nil, err
	}
	return released, nil
}

func (t *PollTracker) questionAfterLastAnswer(ctx context.Context, tx repositories.Store, instance *models.PollInstance) (*models.Question, error) {
	last, err := tx.Answers().GetLast(ctx, instance.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		return firstQuestion(ctx, tx, instance.TemplateID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last answer: %w", err)
	}

	return resolveNext(ctx, tx, last.QuestionID, last.Token)
}

// checkSequence requires the previous template of the same series to be completed first.
func checkSequence(ctx context.Context, tx repositories.Store, instance *models.PollInstance) error {
	template := instance.Template
	if template == nil {
		var err error
		template, err = tx.Templates().GetTemplate(ctx, instance.TemplateID)
		if err != nil {
			return fmt.Errorf("template %d: %w", instance.TemplateID, ErrTemplateNotFound)
		}
	}

	if instance.CreatedByAdmin || template.BypassesSequence() {
		return nil
	}

	subject := template.Subject()
	previous, err := tx.Templates().GetTemplates(ctx, repositories.TemplateFilter{
		PollTypes:   []models.PollType{template.PollType},
		IntendedFor: template.IntendedFor,
		Subject:     &subject,
		PollNumber:  template.PollNumber - 1,
	})
	if err != nil {
		return fmt.Errorf("failed to get previous template: %w", err)
	}
	if len(previous) == 0 {
		return nil
	}

	previousInstance, err := tx.PollInstances().GetOneByKey(ctx, instance.EmployeeID, previous[0].ID, instance.TargetEmployeeID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get previous poll instance: %w", err)
	}

	if previousInstance.Status != models.PollInstanceStatusCompleted {
		return newRuleError(ErrOutOfSequence, reasonOutOfSequence)
	}
	return nil
}

func loadOwned(ctx context.Context, tx repositories.Store, telegramID, instanceID int64) (*models.Employee, *models.PollInstance, error) {
	employee, err := employeeByTelegramID(ctx, tx, telegramID)
	if err != nil {
		return nil, nil, err
	}

	instance, err := tx.PollInstances().GetOne(ctx, instanceID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil, newRuleError(ErrPollNotFound, reasonPollNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get poll instance %d: %w", instanceID, err)
	}

	if instance.EmployeeID != employee.ID || instance.IsArchived {
		return nil, nil, newRuleError(ErrPollNotFound, reasonPollNotFound)
	}

	return employee, instance, nil
}

func employeeByTelegramID(ctx context.Context, tx repositories.Store, telegramID int64) (*models.Employee, error) {
	employee, err := tx.Employees().GetOneByTelegramID(ctx, telegramID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, newRuleError(ErrEmployeeNotRegistered, reasonNotRegistered)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee, nil
}

func transition(instance *models.PollInstance, target models.PollInstanceStatus) error {
	if err := instance.Status.ValidateTransition(target); err != nil {
		return err
	}
	instance.Status = target
	return nil
}

// openSession points the employee at the question being asked, the employee row is re-read since
// recording an answer may have changed it.
func openSession(ctx context.Context, tx repositories.Store, employeeID, instanceID, questionID int64) error {
	employee, err := tx.Employees().GetOne(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to get employee %d: %w", employeeID, err)
	}

	employee.Session = &models.InterviewSession{PollInstanceID: instanceID, QuestionID: questionID}
	if _, err := tx.Employees().Update(ctx, employee); err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	return nil
}

// closeSession clears the session if it still points at the instance, zero instanceID clears any.
func closeSession(ctx context.Context, tx repositories.Store, employeeID, instanceID int64) error {
	employee, err := tx.Employees().GetOne(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to get employee %d: %w", employeeID, err)
	}
	if !employee.HasOpenSession() {
		return nil
	}
	if instanceID != 0 && employee.Session.PollInstanceID != instanceID {
		return nil
	}

	employee.Session = nil
	if _, err := tx.Employees().Update(ctx, employee); err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	return nil
}
