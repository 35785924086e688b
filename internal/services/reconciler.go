package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/db/repositories"

	"go.uber.org/zap"
)

// Reconciler runs the periodic sweeps that move stale polls along.
type Reconciler struct {
	store       repositories.Store
	tracker     *PollTracker
	rollup      *OnboardingRollup
	admins      *AdminDirectory
	notifier    Notifier
	clock       Clock
	idleTimeout time.Duration
	logger      *zap.SugaredLogger
}

func NewReconciler(
	store repositories.Store,
	tracker *PollTracker,
	rollup *OnboardingRollup,
	admins *AdminDirectory,
	notifier Notifier,
	clock Clock,
	idleTimeout time.Duration,
	logger *zap.SugaredLogger,
) *Reconciler {
	return &Reconciler{
		store:       store,
		tracker:     tracker,
		rollup:      rollup,
		admins:      admins,
		notifier:    notifier,
		clock:       clock,
		idleTimeout: idleTimeout,
		logger:      logger,
	}
}

// ExpireOverdue marks not started polls planned before today as expired. With no types given all types are swept.
func (r *Reconciler) ExpireOverdue(ctx context.Context, pollTypes ...models.PollType) (int, error) {
	day := today(r.clock)

	instances, err := r.store.PollInstances().GetMany(ctx, repositories.PollInstanceFilter{
		Statuses:      []models.PollInstanceStatus{models.PollInstanceStatusNotStarted},
		PollTypes:     pollTypes,
		PlannedBefore: &day,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get overdue polls: %w", err)
	}

	expired := 0
	for _, instance := range instances {
		err := r.store.RunInTransaction(ctx, func(tx repositories.Store) error {
			current, err := tx.PollInstances().GetOne(ctx, instance.ID)
			if err != nil {
				return err
			}
			// started between the query and now
			if current.Status != models.PollInstanceStatusNotStarted {
				return nil
			}

			if err := transition(current, models.PollInstanceStatusExpired); err != nil {
				return err
			}
			if _, err := tx.PollInstances().Update(ctx, current); err != nil {
				return err
			}
			expired++

			if current.IsPersonal() {
				return r.rollup.Recompute(ctx, tx, current.EmployeeID)
			}
			return nil
		})
		if err != nil {
			return expired, fmt.Errorf("failed to expire poll instance %d: %w", instance.ID, err)
		}
	}

	if expired > 0 {
		r.logger.Infow("expired polls", "count", expired)
	}
	return expired, nil
}

// FreezeIdle parks polls started longer than the idle timeout ago and asks their users to continue.
func (r *Reconciler) FreezeIdle(ctx context.Context) (int, error) {
	startedBefore := r.clock.Now().Add(-r.idleTimeout)

	instances, err := r.store.PollInstances().GetMany(ctx, repositories.PollInstanceFilter{
		Statuses:      []models.PollInstanceStatus{models.PollInstanceStatusInProgress},
		StartedBefore: &startedBefore,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get idle polls: %w", err)
	}

	frozen := 0
	for _, instance := range instances {
		updated, err := r.tracker.Freeze(ctx, instance.ID)
		if err != nil {
			r.logger.Errorw("failed to freeze poll", "poll_instance_id", instance.ID, "error", err)
			continue
		}
		frozen++

		if chatID := updated.Employee.ChatID(); chatID != 0 {
			r.notifier.PingContinue(ctx, chatID, updated)
		}
	}

	return frozen, nil
}

// ResetFrozen throws away every frozen attempt so no poll stays frozen for good.
func (r *Reconciler) ResetFrozen(ctx context.Context) (int, error) {
	instances, err := r.store.PollInstances().GetMany(ctx, repositories.PollInstanceFilter{
		Statuses: []models.PollInstanceStatus{models.PollInstanceStatusInFrozen},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get frozen polls: %w", err)
	}

	reset := 0
	for _, instance := range instances {
		if _, err := r.tracker.Reset(ctx, instance.ID); err != nil {
			r.logger.Errorw("failed to reset frozen poll", "poll_instance_id", instance.ID, "error", err)
			continue
		}
		reset++
	}

	return reset, nil
}

// NotifyAdminsAboutExpired sends administrators one summary of all expired polls.
func (r *Reconciler) NotifyAdminsAboutExpired(ctx context.Context) error {
	instances, err := r.store.PollInstances().GetMany(ctx, repositories.PollInstanceFilter{
		Statuses:         []models.PollInstanceStatus{models.PollInstanceStatusExpired},
		ExcludePollTypes: []models.PollType{models.PollTypeIntermediateFeedback},
	})
	if err != nil {
		return fmt.Errorf("failed to get expired polls: %w", err)
	}
	if len(instances) == 0 {
		return nil
	}

	chatIDs, err := r.admins.ChatIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get admins: %w", err)
	}
	if len(chatIDs) == 0 {
		return nil
	}

	r.notifier.Broadcast(ctx, chatIDs, expiredSummaryText(instances))
	return nil
}

// RemindExpired tells every user how many expired polls they have.
func (r *Reconciler) RemindExpired(ctx context.Context) (int, error) {
	instances, err := r.store.PollInstances().GetMany(ctx, repositories.PollInstanceFilter{
		Statuses: []models.PollInstanceStatus{models.PollInstanceStatusExpired},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get expired polls: %w", err)
	}

	counts := make(map[int64]int)
	for _, instance := range instances {
		if chatID := instance.Employee.ChatID(); chatID != 0 {
			counts[chatID]++
		}
	}

	chatIDs := make([]int64, 0, len(counts))
	for chatID := range counts {
		chatIDs = append(chatIDs, chatID)
	}
	sort.Slice(chatIDs, func(i, j int) bool { return chatIDs[i] < chatIDs[j] })

	for _, chatID := range chatIDs {
		r.notifier.Summarize(ctx, chatID, expiredReminderText(counts[chatID]), ListQuery{})
	}

	return len(chatIDs), nil
}
