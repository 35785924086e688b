package commands

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const startCommandName = "start"

const startHelpText = "Привет! Я бот опросов адаптации. Чтобы получать опросы, отправьте /start с кодом регистрации, который выдал HR."

type startCommand struct {
	registrar Registrar
	logger    *zap.SugaredLogger
}

func NewStartCommand(registrar Registrar, logger *zap.SugaredLogger) Command {
	return &startCommand{
		registrar: registrar,
		logger:    logger,
	}
}

func (c *startCommand) CanHandle(command string) bool {
	return command == startCommandName
}

func (c *startCommand) Handle(ctx context.Context, command, arguments string, chat Chat) []tgbotapi.Chattable {
	code := strings.TrimSpace(arguments)
	if code == "" {
		return reply(tgbotapi.NewMessage(chat.ID, startHelpText))
	}

	employee, err := c.registrar.Register(ctx, code, chat.ID, chat.UserName)
	if err != nil {
		return failure(c.logger, chat.ID, "register employee", err)
	}

	c.logger.Infow("employee registered", "employee_id", employee.ID, "chat_id", chat.ID)

	text := fmt.Sprintf(`Привет, %s! Теперь я буду присылать вам опросы.

/polls - список непройденных опросов`, employee.FullName)
	return reply(tgbotapi.NewMessage(chat.ID, text))
}
