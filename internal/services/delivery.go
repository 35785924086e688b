package services

import (
	"context"
	"fmt"
	"sort"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/db/repositories"

	"go.uber.org/zap"
)

// PendingPage is one page of the polls a user still has to pass.
type PendingPage struct {
	Query     ListQuery
	Instances []*models.PollInstance
	HasPrev   bool
	HasNext   bool
}

// Delivery hands due polls to their recipients.
type Delivery struct {
	store    repositories.Store
	clock    Clock
	notifier Notifier
	pageSize int
	logger   *zap.SugaredLogger
}

func NewDelivery(store repositories.Store, clock Clock, notifier Notifier, pageSize int, logger *zap.SugaredLogger) *Delivery {
	if pageSize <= 0 {
		pageSize = 5
	}
	return &Delivery{
		store:    store,
		clock:    clock,
		notifier: notifier,
		pageSize: pageSize,
		logger:   logger,
	}
}

// Deliver sends today's not started polls of one type. A recipient with one poll gets an invitation,
// a recipient with several gets a single summary. bucket may be empty for types delivered once a day.
func (d *Delivery) Deliver(ctx context.Context, pollType models.PollType, bucket models.TimeOfDay) (int, error) {
	day := today(d.clock)

	instances, err := d.store.PollInstances().GetMany(ctx, repositories.PollInstanceFilter{
		Statuses:          []models.PollInstanceStatus{models.PollInstanceStatusNotStarted},
		PollTypes:         []models.PollType{pollType},
		TimeOfDay:         bucket,
		PlannedOnOrBefore: &day,
		OrderBy:           repositories.OrderByPollNumber,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get due polls: %w", err)
	}

	byRecipient := make(map[int64][]*models.PollInstance)
	for _, instance := range instances {
		if instance.Employee.ChatID() == 0 {
			continue
		}
		byRecipient[instance.EmployeeID] = append(byRecipient[instance.EmployeeID], instance)
	}

	recipients := make([]int64, 0, len(byRecipient))
	for id := range byRecipient {
		recipients = append(recipients, id)
	}
	sort.Slice(recipients, func(i, j int) bool { return recipients[i] < recipients[j] })

	for _, id := range recipients {
		due := byRecipient[id]
		chatID := due[0].Employee.ChatID()

		if len(due) == 1 {
			if err := d.invite(ctx, chatID, due[0]); err != nil {
				return 0, err
			}
			continue
		}

		d.notifier.Summarize(ctx, chatID, pendingSummaryText(len(due), pollType, bucket), ListQuery{
			PollType:  pollType,
			TimeOfDay: bucket,
		})
	}

	d.logger.Infow("delivered polls", "poll_type", pollType, "time_of_day", bucket, "polls", len(instances), "recipients", len(recipients))
	return len(recipients), nil
}

// InviteNow sends the invitation for one poll right away, used for polls created during the day.
func (d *Delivery) InviteNow(ctx context.Context, instance *models.PollInstance) error {
	chatID := instance.Employee.ChatID()
	if chatID == 0 {
		return nil
	}
	return d.invite(ctx, chatID, instance)
}

func (d *Delivery) invite(ctx context.Context, chatID int64, instance *models.PollInstance) error {
	projectName := ""
	if subject := instance.Template.Subject(); subject.Kind == models.SubjectKindProject {
		project, err := d.store.Projects().GetOne(ctx, subject.ID)
		if err != nil && !isNotFound(err) {
			return fmt.Errorf("failed to get project %d: %w", subject.ID, err)
		}
		if project != nil && err == nil {
			projectName = project.Name
		}
	}

	d.notifier.Invite(ctx, chatID, instance, InvitationText(instance, projectName))
	return nil
}

// ListPending returns a page of not started and expired polls of the chat user.
func (d *Delivery) ListPending(ctx context.Context, telegramID int64, query ListQuery) (*PendingPage, error) {
	employee, err := employeeByTelegramID(ctx, d.store, telegramID)
	if err != nil {
		return nil, err
	}

	if query.Page < 0 {
		query.Page = 0
	}

	day := today(d.clock)
	filter := repositories.PollInstanceFilter{
		EmployeeID: employee.ID,
		Statuses: []models.PollInstanceStatus{
			models.PollInstanceStatusNotStarted,
			models.PollInstanceStatusExpired,
		},
		TimeOfDay:         query.TimeOfDay,
		PlannedOnOrBefore: &day,
		OrderBy:           repositories.OrderByPollNumber,
		Offset:            query.Page * d.pageSize,
		Limit:             d.pageSize + 1,
	}
	if query.PollType != "" {
		filter.PollTypes = []models.PollType{query.PollType}
	}

	instances, err := d.store.PollInstances().GetMany(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending polls: %w", err)
	}

	page := &PendingPage{
		Query:   query,
		HasPrev: query.Page > 0,
	}
	if len(instances) > d.pageSize {
		page.HasNext = true
		instances = instances[:d.pageSize]
	}
	page.Instances = instances

	return page, nil
}
