package commands

import (
	"context"

	tgbot "onboarding_poll_system/internal/tg_bot/extension"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const cancelCommandName = "cancel"

const pollCancelledText = "Опрос отменен, ответы удалены. Пройти его можно позже: /polls"

type cancelPollCommand struct {
	interviewer Interviewer
	logger      *zap.SugaredLogger
}

// NewCancelPollCommand handles /cancel, the inline cancel button and the typed "Отменить".
func NewCancelPollCommand(interviewer Interviewer, logger *zap.SugaredLogger) Command {
	return &cancelPollCommand{
		interviewer: interviewer,
		logger:      logger,
	}
}

func (c *cancelPollCommand) CanHandle(command string) bool {
	return command == cancelCommandName || command == tgbot.CallbackCancelPoll || command == tgbot.ButtonCancel
}

func (c *cancelPollCommand) Handle(ctx context.Context, command, arguments string, chat Chat) []tgbotapi.Chattable {
	instance, err := c.interviewer.Cancel(ctx, chat.ID)
	if err != nil {
		return failure(c.logger, chat.ID, "cancel poll", err)
	}

	if instance != nil {
		c.logger.Infow("poll cancelled by user", "poll_instance_id", instance.ID, "chat_id", chat.ID)
	}
	return reply(tgbotapi.NewMessage(chat.ID, pollCancelledText))
}
