package handlers

import (
	"context"
	"strings"

	"onboarding_poll_system/internal/tg_bot/commands"
	tgbot "onboarding_poll_system/internal/tg_bot/extension"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type pollBotCommandHandler struct {
	logger *zap.SugaredLogger

	commands []commands.Command
}

func NewPollBotCommandHandler(logger *zap.SugaredLogger, commands []commands.Command) CommandHandler {
	return &pollBotCommandHandler{
		logger:   logger,
		commands: commands,
	}
}

func (h *pollBotCommandHandler) Handle(ctx context.Context, update tgbotapi.Update) []tgbotapi.Chattable {
	message := update.Message
	callbackQuery := update.CallbackQuery

	var (
		chatID       int64
		telegramUser *tgbotapi.User
	)

	switch {
	case message != nil:
		chatID = message.Chat.ID
		telegramUser = message.From
	case callbackQuery != nil && callbackQuery.Message != nil:
		chatID = callbackQuery.Message.Chat.ID
		telegramUser = callbackQuery.From
	default:
		h.logger.Warn("received unknown updates")
		return []tgbotapi.Chattable{}
	}

	// polls are answered in private chats only
	if telegramUser == nil || telegramUser.ID != chatID {
		h.logger.Infow("ignored update outside private chat", "chat_id", chatID)
		return []tgbotapi.Chattable{}
	}

	chat := commands.Chat{ID: chatID, UserName: telegramUser.UserName}

	if callbackQuery != nil {
		h.logger.Infow("received callback query", "chat_id", chatID, "data", callbackQuery.Data)
		command, arguments := tgbot.SplitCallback(callbackQuery.Data)
		messages := []tgbotapi.Chattable{tgbot.AnswerCallback(callbackQuery.ID)}
		return append(messages, h.tryToHandleCommand(ctx, command, arguments, chat)...)
	}

	if message.IsCommand() {
		h.logger.Infow("received command", "chat_id", chatID, "command", message.Command())
		return h.tryToHandleCommand(ctx, message.Command(), message.CommandArguments(), chat)
	}

	text := strings.TrimSpace(message.Text)
	if text == "" {
		h.logger.Warnw("received unknown message", "chat_id", chatID)
		return []tgbotapi.Chattable{}
	}

	if text == tgbot.ButtonCancel {
		return h.tryToHandleCommand(ctx, tgbot.ButtonCancel, "", chat)
	}

	h.logger.Infow("received text answer", "chat_id", chatID)
	return h.tryToHandleCommand(ctx, commands.AnswerTextCommandName, text, chat)
}

func (h *pollBotCommandHandler) tryToHandleCommand(ctx context.Context, command, arguments string, chat commands.Chat) []tgbotapi.Chattable {
	for _, handler := range h.commands {
		if handler.CanHandle(command) {
			return handler.Handle(ctx, command, arguments, chat)
		}
	}

	h.logger.Warnw("received unknown command", "command", command)
	return []tgbotapi.Chattable{}
}
