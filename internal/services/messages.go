package services

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"onboarding_poll_system/internal"
	"onboarding_poll_system/internal/db/models"
)

const (
	reasonNotRegistered   = "Вы еще не зарегистрированы. Отправьте /start с кодом регистрации"
	reasonPollNotFound    = "Этот опрос недоступен"
	reasonPollDeleted     = "Этот опрос удален"
	reasonPollCompleted   = "Этот опрос уже пройден"
	reasonSessionOpen     = "Необходимо сначала закончить предыдущее действие или опрос"
	reasonOutOfSequence   = "Прежде чем начать этот опрос, необходимо завершить предыдущий"
	reasonPollNotActive   = "Этот опрос уже недоступен"
	reasonPollStarted     = "Этот опрос уже начат"
	reasonPollFrozen      = "Опрос приостановлен, нажмите «Продолжить», чтобы вернуться к нему"
	reasonNoOpenSession   = "Нет начатого опроса"
	reasonStaleQuestion   = "Этот вопрос уже неактуален"
	reasonChooseOnKeypad  = "Выбери ответ на клавиатуре ☝️"
	reasonInvalidCode     = "Код регистрации недействителен"
	reasonRoleMismatch    = "Шаблон опроса предназначен для другой роли"
	reasonTargetForbidden = "Опрос для сотрудника не может быть привязан к другому сотруднику"
	reasonTargetRequired  = "Для опроса куратора необходимо указать сотрудника"
	reasonDuplicatePoll   = "Такой опрос уже назначен"
)

var pollTypeGenitive = map[models.PollType]string{
	models.PollTypeOnboarding:           "испытательного срока",
	models.PollTypeFeedback:             "обратной связи",
	models.PollTypeOffboarding:          "оффбординга",
	models.PollTypeIntermediateFeedback: "промежуточной обратной связи",
}

var pollTypeLabel = map[models.PollType]string{
	models.PollTypeFeedback:             "Обратная связь",
	models.PollTypeIntermediateFeedback: "Промежуточная обратная связь",
	models.PollTypeOffboarding:          "Оффбординг",
}

// InvitationText renders the template greeting for the recipient, naming the colleague for curator polls.
func InvitationText(instance *models.PollInstance, projectName string) string {
	template := instance.Template
	text := template.Message
	if instance.TargetEmployee != nil {
		text = strings.Replace(text, "{}", instance.TargetEmployee.FullName, 1)
	}

	if template.Subject().Kind == models.SubjectKindProject && projectName != "" {
		return text + fmt.Sprintf("\n\n(Проект: %s)", projectName)
	}
	if label, ok := pollTypeLabel[template.PollType]; ok && template.Subject().IsNone() {
		return text + fmt.Sprintf("\n\n(%s)", label)
	}
	return text
}

func pendingSummaryText(count int, pollType models.PollType, bucket models.TimeOfDay) string {
	polls := pluralRu(count, "непройденный опрос", "непройденных опроса", "непройденных опросов")

	text := fmt.Sprintf("У вас есть %d %s %s", count, polls, pollTypeGenitive[pollType])
	if bucket == models.TimeOfDayEvening {
		text += " (конец дня)"
	}
	return text
}

func expiredReminderText(count int) string {
	return fmt.Sprintf("У вас есть %d %s", count, pluralRu(count, "просроченный опрос", "просроченных опроса", "просроченных опросов"))
}

// pluralRu picks the Russian noun form for a count.
func pluralRu(n int, one, few, many string) string {
	n %= 100
	if n >= 11 && n <= 14 {
		return many
	}
	switch n % 10 {
	case 1:
		return one
	case 2, 3, 4:
		return few
	default:
		return many
	}
}

func attentionText(answerer, target *models.Employee, question *models.Question, display string) string {
	display = html.EscapeString(display)
	if target != nil {
		return fmt.Sprintf(
			"Куратор <strong>%s</strong> (@%s) на вопрос\n\"%s\"\nпо сотруднику <strong>%s</strong> (@%s) ответил:\n<strong>\"%s\"</strong>",
			answerer.FullName, answerer.TelegramNickname, question.Text, target.FullName, target.TelegramNickname, display,
		)
	}
	return fmt.Sprintf(
		"Сотрудник <strong>%s</strong> (@%s) на вопрос\n\"%s\"\nответил:\n<strong>\"%s\"</strong>",
		answerer.FullName, answerer.TelegramNickname, question.Text, display,
	)
}

func expiredSummaryText(instances []*models.PollInstance) string {
	byEmployee := make(map[int64][]*models.PollInstance)
	employees := make(map[int64]*models.Employee)
	for _, instance := range instances {
		byEmployee[instance.EmployeeID] = append(byEmployee[instance.EmployeeID], instance)
		employees[instance.EmployeeID] = instance.Employee
	}

	ids := make([]int64, 0, len(byEmployee))
	for id := range byEmployee {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		employee := employees[id]
		var b strings.Builder
		fmt.Fprintf(&b, "<strong>Сотрудник: <i>%s</i></strong> (@%s)\nПросроченные опросы:", employeeName(employee), employeeNickname(employee))
		for _, instance := range byEmployee[id] {
			fmt.Fprintf(&b, "\n<i><strong> - (ID: %d)</strong> %s | %s | %s | %s</i>",
				instance.ID, instance.Template.Title, instance.Template.Subject(), instance.Template.IntendedFor,
				internal.FormatOptional(instance.DatePlannedAt))
			if instance.TargetEmployee != nil {
				fmt.Fprintf(&b, " | По сотруднику <strong><i>%s</i></strong> (@%s)",
					instance.TargetEmployee.FullName, instance.TargetEmployee.TelegramNickname)
			}
		}
		parts = append(parts, b.String())
	}

	return "<strong>Здравствуйте!</strong>\n" +
		"На данный момент некоторые сотрудники имеют просроченные опросы. Их список представлен ниже👇\n\n" +
		strings.Join(parts, "\n\n\n")
}

func curatorAssignedText(employee *models.Employee) string {
	return fmt.Sprintf("Здравствуйте! %s к Вам на проект выходит новый сотрудник %s (@%s). "+
		"Пожалуйста, свяжитесь с ним в первый рабочий день.",
		internal.FormatOptional(employee.DateOfEmployment), employee.FullName, employee.TelegramNickname)
}

func meetingText(at time.Time, rescheduled bool) string {
	if rescheduled {
		return "Ваша встреча по итогам испытательного срока перенесена на " + internal.FormatDateTime(at)
	}
	return "Вам назначена встреча по итогам испытательного срока на " + internal.FormatDateTime(at)
}

func employeeName(e *models.Employee) string {
	if e == nil {
		return "-"
	}
	return e.FullName
}

func employeeNickname(e *models.Employee) string {
	if e == nil {
		return "-"
	}
	return e.TelegramNickname
}
