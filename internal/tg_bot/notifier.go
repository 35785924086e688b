package tgbot

import (
	"context"
	"fmt"
	"time"

	"onboarding_poll_system/configs"
	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/services"
	"onboarding_poll_system/internal/tg_bot/extension"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const continuePollText = "Вы не закончили опрос «%s». Продолжим?"

type notifier struct {
	sender  Sender
	limiter *rate.Limiter
	timeout time.Duration
	logger  *zap.SugaredLogger
}

// NewNotifier sends scheduler messages through the bot, throttled to stay under the telegram flood limits.
func NewNotifier(sender Sender, config configs.Bot, logger *zap.SugaredLogger) services.Notifier {
	return &notifier{
		sender:  sender,
		limiter: rate.NewLimiter(rate.Limit(config.SendRate), config.SendBurst),
		timeout: config.SendTimeout,
		logger:  logger,
	}
}

func (n *notifier) Invite(ctx context.Context, chatID int64, instance *models.PollInstance, text string) {
	message := tgbotapi.NewMessage(chatID, text)
	message.ReplyMarkup = extension.StartPollKeyboard(instance.ID)
	n.send(ctx, chatID, message)
}

func (n *notifier) Summarize(ctx context.Context, chatID int64, text string, query services.ListQuery) {
	message := tgbotapi.NewMessage(chatID, text)
	message.ReplyMarkup = extension.ListPollsKeyboard(query)
	n.send(ctx, chatID, message)
}

func (n *notifier) PingContinue(ctx context.Context, chatID int64, instance *models.PollInstance) {
	title := extension.PendingTitle(instance)
	message := tgbotapi.NewMessage(chatID, fmt.Sprintf(continuePollText, title))
	message.ReplyMarkup = extension.ContinuePollKeyboard(instance.ID)
	n.send(ctx, chatID, message)
}

func (n *notifier) Broadcast(ctx context.Context, chatIDs []int64, text string) {
	for _, chatID := range chatIDs {
		message := tgbotapi.NewMessage(chatID, text)
		message.ParseMode = tgbotapi.ModeHTML
		n.send(ctx, chatID, message)
	}
}

func (n *notifier) send(ctx context.Context, chatID int64, message tgbotapi.Chattable) {
	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	if err := n.limiter.Wait(ctx); err != nil {
		n.logger.Errorw("failed to wait for send slot", "chat_id", chatID, "error", err)
		return
	}

	if err := send(n.sender, message); err != nil {
		n.logger.Errorw("failed to send message", "chat_id", chatID, "error", err)
	}
}
