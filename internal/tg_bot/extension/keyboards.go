package extension

import (
	"fmt"
	"strconv"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	ButtonStartPoll    = "Начать опрос"
	ButtonContinuePoll = "Продолжить"
	ButtonListPolls    = "Посмотреть опросы"
	ButtonYes          = "Да"
	ButtonNo           = "Нет"
	ButtonNext         = "Далее"
	ButtonBookSlot     = "Забронировать слот"
	ButtonCancel       = "Отменить"
	ButtonPrevPage     = "« Назад"
	ButtonNextPage     = "Вперед »"

	completedText = "Спасибо за ответы!"
	noPollsText   = "У вас нет непройденных опросов"
)

var timeOfDayLabel = map[models.TimeOfDay]string{
	models.TimeOfDayMorning: "утро",
	models.TimeOfDayEvening: "вечер",
}

var titleCase = cases.Title(language.Russian)

func StartPollKeyboard(instanceID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(ButtonStartPoll, StartPollData(instanceID)),
		),
	)
}

func ContinuePollKeyboard(instanceID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(ButtonContinuePoll, ContinuePollData(instanceID)),
			tgbotapi.NewInlineKeyboardButtonData(ButtonCancel, CancelPollData()),
		),
	)
}

func ListPollsKeyboard(query services.ListQuery) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(ButtonListPolls, ListPollsData(query)),
		),
	)
}

// QuestionKeyboard returns the answer buttons of a question, nil for finish questions.
// Free text questions only get the cancel button, the answer is typed.
func QuestionKeyboard(instanceID int64, question *models.Question) *tgbotapi.InlineKeyboardMarkup {
	if question.IsFinish() {
		return nil
	}

	button := func(text, raw string) tgbotapi.InlineKeyboardButton {
		return tgbotapi.NewInlineKeyboardButtonData(text, AnswerData(instanceID, question.ID, raw))
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	switch question.Type {
	case models.QuestionTypeYesNo:
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			button(ButtonYes, string(models.AnswerTokenYes)),
			button(ButtonNo, string(models.AnswerTokenNo)),
		))
	case models.QuestionTypeNumbers:
		var row []tgbotapi.InlineKeyboardButton
		for score := 1; score <= 5; score++ {
			row = append(row, button(strconv.Itoa(score), strconv.Itoa(score)))
		}
		rows = append(rows, row)
	case models.QuestionTypeNext:
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button(ButtonNext, string(models.AnswerTokenNext))))
	case models.QuestionTypeSlots:
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button(ButtonBookSlot, "slots")))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(ButtonCancel, CancelPollData()),
	))

	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &keyboard
}

// StepMessage renders what the user sees after a poll transition.
func StepMessage(chatID int64, step *services.Step) tgbotapi.Chattable {
	if step.Question == nil {
		return tgbotapi.NewMessage(chatID, completedText)
	}

	message := tgbotapi.NewMessage(chatID, step.Question.Text)
	if step.Completed {
		return message
	}

	if keyboard := QuestionKeyboard(step.Instance.ID, step.Question); keyboard != nil {
		message.ReplyMarkup = *keyboard
	}
	return message
}

// PendingPageMessage lists a page of pending polls, one start button per poll plus paging.
func PendingPageMessage(chatID int64, page *services.PendingPage) tgbotapi.Chattable {
	if len(page.Instances) == 0 && page.Query.Page == 0 {
		return tgbotapi.NewMessage(chatID, noPollsText)
	}

	header := "Непройденные опросы"
	if label, ok := timeOfDayLabel[page.Query.TimeOfDay]; ok {
		header = fmt.Sprintf("%s · %s", header, titleCase.String(label))
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, instance := range page.Instances {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(PendingTitle(instance), StartPollData(instance.ID)),
		))
	}

	var paging []tgbotapi.InlineKeyboardButton
	if page.HasPrev {
		prev := page.Query
		prev.Page--
		paging = append(paging, tgbotapi.NewInlineKeyboardButtonData(ButtonPrevPage, ListPollsData(prev)))
	}
	if page.HasNext {
		next := page.Query
		next.Page++
		paging = append(paging, tgbotapi.NewInlineKeyboardButtonData(ButtonNextPage, ListPollsData(next)))
	}
	if len(paging) > 0 {
		rows = append(rows, paging)
	}

	message := tgbotapi.NewMessage(chatID, header)
	if len(rows) > 0 {
		message.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	}
	return message
}

// PendingTitle is the button caption of a poll, expired polls are marked and curator polls name the colleague.
func PendingTitle(instance *models.PollInstance) string {
	title := fmt.Sprintf("Опрос #%d", instance.ID)
	if instance.Template != nil && instance.Template.Title != "" {
		title = instance.Template.Title
	}

	if instance.TargetEmployee != nil {
		title = fmt.Sprintf("%s: %s", title, instance.TargetEmployee.FullName)
	}
	if instance.Status == models.PollInstanceStatusExpired {
		title = "⏰ " + title
	}
	return title
}
