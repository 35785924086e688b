package extension_test

import (
	"testing"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/services"
	"onboarding_poll_system/internal/tg_bot/extension"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCallback(t *testing.T) {
	command, arguments := extension.SplitCallback(extension.AnswerData(12, 34, "yes"))
	assert.Equal(t, extension.CallbackAnswer, command)
	assert.Equal(t, "12:34:yes", arguments)

	command, arguments = extension.SplitCallback(extension.CancelPollData())
	assert.Equal(t, extension.CallbackCancelPoll, command)
	assert.Empty(t, arguments)
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		name       string
		arguments  string
		instanceID int64
		questionID int64
		raw        string
		wantErr    bool
	}{
		{name: "button", arguments: "12:34:yes", instanceID: 12, questionID: 34, raw: "yes"},
		{name: "raw with colon", arguments: "12:34:10:30", instanceID: 12, questionID: 34, raw: "10:30"},
		{name: "missing answer", arguments: "12:34", wantErr: true},
		{name: "bad instance", arguments: "x:34:yes", wantErr: true},
		{name: "zero question", arguments: "12:0:yes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instanceID, questionID, raw, err := extension.ParseAnswer(tt.arguments)
			if tt.wantErr {
				assert.ErrorIs(t, err, extension.ErrMalformedCallback)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.instanceID, instanceID)
			assert.Equal(t, tt.questionID, questionID)
			assert.Equal(t, tt.raw, raw)
		})
	}
}

func TestListQueryRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		query services.ListQuery
		data  string
	}{
		{name: "everything", query: services.ListQuery{}, data: "poll_list:-:-:0"},
		{
			name:  "feedback in the morning",
			query: services.ListQuery{PollType: models.PollTypeFeedback, TimeOfDay: models.TimeOfDayMorning, Page: 2},
			data:  "poll_list:feedback:morning:2",
		},
		{
			name:  "onboarding any time",
			query: services.ListQuery{PollType: models.PollTypeOnboarding, Page: 1},
			data:  "poll_list:onboarding:-:1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := extension.ListPollsData(tt.query)
			assert.Equal(t, tt.data, data)

			command, arguments := extension.SplitCallback(data)
			assert.Equal(t, extension.CallbackListPolls, command)

			query, err := extension.ParseListQuery(arguments)
			require.NoError(t, err)
			assert.Equal(t, tt.query, query)
		})
	}
}

func TestParseListQuery_Malformed(t *testing.T) {
	for _, arguments := range []string{"feedback:morning", "quiz:-:0", "-:noon:0", "-:-:-1", "-:-:x"} {
		_, err := extension.ParseListQuery(arguments)
		assert.ErrorIs(t, err, extension.ErrMalformedCallback, arguments)
	}

	query, err := extension.ParseListQuery("")
	require.NoError(t, err)
	assert.Equal(t, services.ListQuery{}, query)
}

func TestParseInstanceID(t *testing.T) {
	instanceID, err := extension.ParseInstanceID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), instanceID)

	_, err = extension.ParseInstanceID("-1")
	assert.ErrorIs(t, err, extension.ErrMalformedCallback)
}
