package commands

import (
	"context"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/services"
	tgbot "onboarding_poll_system/internal/tg_bot/extension"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Chat identifies the private chat a command came from. In private chats the chat id is the telegram user id.
type Chat struct {
	ID       int64
	UserName string
}

type Command interface {
	CanHandle(command string) bool
	Handle(ctx context.Context, command, arguments string, chat Chat) []tgbotapi.Chattable
}

//go:generate mockgen -source=command.go -destination=mocks/command.go -package=mock_commands

type Registrar interface {
	Register(ctx context.Context, code string, telegramID int64, nickname string) (*models.Employee, error)
}

type Interviewer interface {
	Start(ctx context.Context, telegramID, instanceID int64) (*services.Step, error)
	Answer(ctx context.Context, telegramID, instanceID, questionID int64, raw string) (*services.Step, error)
	AnswerText(ctx context.Context, telegramID int64, raw string) (*services.Step, error)
	Resume(ctx context.Context, telegramID, instanceID int64) (*services.Step, error)
	Cancel(ctx context.Context, telegramID int64) (*models.PollInstance, error)
}

type PendingLister interface {
	ListPending(ctx context.Context, telegramID int64, query services.ListQuery) (*services.PendingPage, error)
}

func reply(messages ...tgbotapi.Chattable) []tgbotapi.Chattable {
	return messages
}

// failure turns a service error into the reply. Rejected rules are expected and logged quietly.
func failure(logger *zap.SugaredLogger, chatID int64, action string, err error) []tgbotapi.Chattable {
	message, ok := tgbot.FailureMessage(chatID, err)
	if ok {
		logger.Infow("request rejected", "action", action, "chat_id", chatID, "reason", err)
	} else {
		logger.Errorw("failed to "+action, "chat_id", chatID, "error", err)
	}
	return reply(message)
}

func malformed(logger *zap.SugaredLogger, chatID int64, err error) []tgbotapi.Chattable {
	logger.Warnw("received malformed callback", "chat_id", chatID, "error", err)
	return reply(tgbot.DefaultErrorMessage(chatID))
}
