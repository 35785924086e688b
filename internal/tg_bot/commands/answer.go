package commands

import (
	"context"

	"onboarding_poll_system/internal/services"
	tgbot "onboarding_poll_system/internal/tg_bot/extension"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// AnswerTextCommandName routes a plain chat message to the question of the open interview.
const AnswerTextCommandName = "poll_answer_text"

type answerCommand struct {
	interviewer Interviewer
	logger      *zap.SugaredLogger
}

func NewAnswerCommand(interviewer Interviewer, logger *zap.SugaredLogger) Command {
	return &answerCommand{
		interviewer: interviewer,
		logger:      logger,
	}
}

func (c *answerCommand) CanHandle(command string) bool {
	return command == tgbot.CallbackAnswer || command == AnswerTextCommandName
}

func (c *answerCommand) Handle(ctx context.Context, command, arguments string, chat Chat) []tgbotapi.Chattable {
	var (
		step *services.Step
		err  error
	)

	if command == AnswerTextCommandName {
		step, err = c.interviewer.AnswerText(ctx, chat.ID, arguments)
	} else {
		instanceID, questionID, raw, parseErr := tgbot.ParseAnswer(arguments)
		if parseErr != nil {
			return malformed(c.logger, chat.ID, parseErr)
		}
		step, err = c.interviewer.Answer(ctx, chat.ID, instanceID, questionID, raw)
	}
	if err != nil {
		return failure(c.logger, chat.ID, "record answer", err)
	}

	return reply(tgbot.StepMessage(chat.ID, step))
}
