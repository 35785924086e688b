package di

import (
	"context"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/services"

	"go.uber.org/zap"
)

type logNotifier struct {
	logger *zap.SugaredLogger
}

// NewLogNotifier serves processes that run without a bot. Messages are logged and dropped.
func NewLogNotifier(logger *zap.SugaredLogger) services.Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Invite(_ context.Context, chatID int64, instance *models.PollInstance, _ string) {
	n.logger.Infow("invitation dropped", "chat_id", chatID, "poll_instance_id", instance.ID)
}

func (n *logNotifier) Summarize(_ context.Context, chatID int64, _ string, query services.ListQuery) {
	n.logger.Infow("summary dropped", "chat_id", chatID, "poll_type", query.PollType, "time_of_day", query.TimeOfDay)
}

func (n *logNotifier) PingContinue(_ context.Context, chatID int64, instance *models.PollInstance) {
	n.logger.Infow("continue ping dropped", "chat_id", chatID, "poll_instance_id", instance.ID)
}

func (n *logNotifier) Broadcast(_ context.Context, chatIDs []int64, _ string) {
	n.logger.Infow("broadcast dropped", "chat_ids", chatIDs)
}
