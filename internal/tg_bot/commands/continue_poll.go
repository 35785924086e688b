package commands

import (
	"context"

	tgbot "onboarding_poll_system/internal/tg_bot/extension"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type continuePollCommand struct {
	interviewer Interviewer
	logger      *zap.SugaredLogger
}

func NewContinuePollCommand(interviewer Interviewer, logger *zap.SugaredLogger) Command {
	return &continuePollCommand{
		interviewer: interviewer,
		logger:      logger,
	}
}

func (c *continuePollCommand) CanHandle(command string) bool {
	return command == tgbot.CallbackContinuePoll
}

func (c *continuePollCommand) Handle(ctx context.Context, command, arguments string, chat Chat) []tgbotapi.Chattable {
	instanceID, err := tgbot.ParseInstanceID(arguments)
	if err != nil {
		return malformed(c.logger, chat.ID, err)
	}

	step, err := c.interviewer.Resume(ctx, chat.ID, instanceID)
	if err != nil {
		return failure(c.logger, chat.ID, "resume poll", err)
	}

	return reply(tgbot.StepMessage(chat.ID, step))
}
