package services

import (
	"context"

	"onboarding_poll_system/internal/db/models"
)

// ListQuery selects the page of pending polls a list affordance opens.
type ListQuery struct {
	PollType  models.PollType
	TimeOfDay models.TimeOfDay
	Page      int
}

//go:generate mockgen -source=notifier.go -destination=mocks/notifier.go -package=mock_services

// Notifier delivers messages that are not replies to a user action.
// Delivery is best effort, implementations log failures and never report them back.
type Notifier interface {
	// Invite offers the recipient to start one poll.
	Invite(ctx context.Context, chatID int64, instance *models.PollInstance, text string)
	// Summarize tells the recipient about several polls and opens the list on demand.
	Summarize(ctx context.Context, chatID int64, text string, query ListQuery)
	// PingContinue asks a recipient who went silent to resume the poll.
	PingContinue(ctx context.Context, chatID int64, instance *models.PollInstance)
	Broadcast(ctx context.Context, chatIDs []int64, text string)
}
