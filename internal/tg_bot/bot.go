package tgbot

import (
	"context"

	"onboarding_poll_system/configs"
	"onboarding_poll_system/internal/tg_bot/handlers"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

//go:generate mockgen -source=bot.go -destination=mocks/bot.go -package=mock_tgbot

// Sender is the part of the bot api used to talk to chats.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Bot interface {
	Start(ctx context.Context)
}

type bot struct {
	api     *tgbotapi.BotAPI
	config  configs.Bot
	handler handlers.CommandHandler
	logger  *zap.SugaredLogger
}

func NewAPI(config configs.Bot, debug bool) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(config.Token)
	if err != nil {
		return nil, err
	}

	api.Debug = debug
	return api, nil
}

func NewBot(api *tgbotapi.BotAPI, config configs.Bot, handler handlers.CommandHandler, logger *zap.SugaredLogger) Bot {
	return &bot{
		api:     api,
		config:  config,
		handler: handler,
		logger:  logger,
	}
}

// Start long polls updates until ctx is cancelled.
func (b *bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.config.UpdateTimeout

	updates := b.api.GetUpdatesChan(u)
	b.logger.Infow("bot started", "user_name", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			for _, message := range b.handler.Handle(ctx, update) {
				if err := send(b.api, message); err != nil {
					b.logger.Errorw("failed to send message", "error", err)
				}
			}
		}
	}
}

// send uses Request for callback answers, Send would fail to decode their boolean result.
func send(sender Sender, c tgbotapi.Chattable) error {
	if _, ok := c.(tgbotapi.CallbackConfig); ok {
		_, err := sender.Request(c)
		return err
	}

	_, err := sender.Send(c)
	return err
}
