package commands

import (
	"context"

	tgbot "onboarding_poll_system/internal/tg_bot/extension"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const pollsCommandName = "polls"

type pollsCommand struct {
	lister PendingLister
	logger *zap.SugaredLogger
}

// NewPollsCommand serves both the /polls command and the list buttons of summaries and pages.
func NewPollsCommand(lister PendingLister, logger *zap.SugaredLogger) Command {
	return &pollsCommand{
		lister: lister,
		logger: logger,
	}
}

func (c *pollsCommand) CanHandle(command string) bool {
	return command == pollsCommandName || command == tgbot.CallbackListPolls
}

func (c *pollsCommand) Handle(ctx context.Context, command, arguments string, chat Chat) []tgbotapi.Chattable {
	if command == pollsCommandName {
		arguments = ""
	}

	query, err := tgbot.ParseListQuery(arguments)
	if err != nil {
		return malformed(c.logger, chat.ID, err)
	}

	page, err := c.lister.ListPending(ctx, chat.ID, query)
	if err != nil {
		return failure(c.logger, chat.ID, "list pending polls", err)
	}

	return reply(tgbot.PendingPageMessage(chat.ID, page))
}
