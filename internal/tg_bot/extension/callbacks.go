package extension

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/services"
)

// Callback names double as command names, the handler routes a query by the part before the first colon.
const (
	CallbackStartPoll    = "poll_start"
	CallbackAnswer       = "poll_answer"
	CallbackContinuePoll = "poll_continue"
	CallbackListPolls    = "poll_list"
	CallbackCancelPoll   = "poll_cancel"
)

// any is encoded as a dash so that list queries keep a fixed number of parts
const anyValue = "-"

var ErrMalformedCallback = errors.New("malformed callback data")

func StartPollData(instanceID int64) string {
	return fmt.Sprintf("%s:%d", CallbackStartPoll, instanceID)
}

func ContinuePollData(instanceID int64) string {
	return fmt.Sprintf("%s:%d", CallbackContinuePoll, instanceID)
}

func AnswerData(instanceID, questionID int64, raw string) string {
	return fmt.Sprintf("%s:%d:%d:%s", CallbackAnswer, instanceID, questionID, raw)
}

func ListPollsData(query services.ListQuery) string {
	pollType, timeOfDay := anyValue, anyValue
	if query.PollType != "" {
		pollType = query.PollType.String()
	}
	if query.TimeOfDay != "" {
		timeOfDay = query.TimeOfDay.String()
	}
	return fmt.Sprintf("%s:%s:%s:%d", CallbackListPolls, pollType, timeOfDay, query.Page)
}

func CancelPollData() string {
	return CallbackCancelPoll
}

// SplitCallback separates the command name from its arguments.
func SplitCallback(data string) (command, arguments string) {
	command, arguments, _ = strings.Cut(data, ":")
	return command, arguments
}

func ParseInstanceID(arguments string) (int64, error) {
	instanceID, err := strconv.ParseInt(arguments, 10, 64)
	if err != nil || instanceID <= 0 {
		return 0, fmt.Errorf("%w: instance id %q", ErrMalformedCallback, arguments)
	}
	return instanceID, nil
}

// ParseAnswer reads "<instance>:<question>:<answer>", the answer may itself contain colons.
func ParseAnswer(arguments string) (instanceID, questionID int64, raw string, err error) {
	parts := strings.SplitN(arguments, ":", 3)
	if len(parts) != 3 {
		return 0, 0, "", fmt.Errorf("%w: answer %q", ErrMalformedCallback, arguments)
	}

	if instanceID, err = ParseInstanceID(parts[0]); err != nil {
		return 0, 0, "", err
	}

	questionID, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil || questionID <= 0 {
		return 0, 0, "", fmt.Errorf("%w: question id %q", ErrMalformedCallback, parts[1])
	}

	return instanceID, questionID, parts[2], nil
}

// ParseListQuery reads "<type|->:<time of day|->:<page>". Empty arguments open the first page of everything.
func ParseListQuery(arguments string) (services.ListQuery, error) {
	if arguments == "" {
		return services.ListQuery{}, nil
	}

	parts := strings.Split(arguments, ":")
	if len(parts) != 3 {
		return services.ListQuery{}, fmt.Errorf("%w: list %q", ErrMalformedCallback, arguments)
	}

	var query services.ListQuery
	if parts[0] != anyValue {
		query.PollType = models.PollType(parts[0])
		if !query.PollType.IsValid() {
			return services.ListQuery{}, fmt.Errorf("%w: poll type %q", ErrMalformedCallback, parts[0])
		}
	}
	if parts[1] != anyValue {
		query.TimeOfDay = models.TimeOfDay(parts[1])
		if !query.TimeOfDay.IsValid() {
			return services.ListQuery{}, fmt.Errorf("%w: time of day %q", ErrMalformedCallback, parts[1])
		}
	}

	page, err := strconv.Atoi(parts[2])
	if err != nil || page < 0 {
		return services.ListQuery{}, fmt.Errorf("%w: page %q", ErrMalformedCallback, parts[2])
	}
	query.Page = page

	return query, nil
}
