package extension

import (
	"onboarding_poll_system/internal/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func DefaultErrorMessage(chatID int64) tgbotapi.Chattable {
	return ErrorMessage(chatID, "Произошла ошибка, повторите попытку еще раз")
}

func ErrorMessage(chatID int64, text string) tgbotapi.Chattable {
	return tgbotapi.NewMessage(chatID, text)
}

// FailureMessage shows a rejected rule as is and hides anything else behind the default error.
// ok reports whether err was a rule violation, the caller logs the rest.
func FailureMessage(chatID int64, err error) (message tgbotapi.Chattable, ok bool) {
	if reason, ok := services.Reason(err); ok {
		return ErrorMessage(chatID, reason), true
	}
	return DefaultErrorMessage(chatID), false
}

// AnswerCallback stops the spinner on the pressed inline button.
func AnswerCallback(callbackQueryID string) tgbotapi.Chattable {
	return tgbotapi.NewCallback(callbackQueryID, "")
}
