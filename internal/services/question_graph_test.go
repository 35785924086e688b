package services_test

import (
	"testing"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenFor(t *testing.T) {
	tests := []struct {
		name         string
		questionType models.QuestionType
		raw          string
		token        models.AnswerToken
		display      string
		wantErr      bool
	}{
		{name: "yes button", questionType: models.QuestionTypeYesNo, raw: "yes", token: models.AnswerTokenYes, display: "Да"},
		{name: "typed no", questionType: models.QuestionTypeYesNo, raw: " Нет ", token: models.AnswerTokenNo, display: "Нет"},
		{name: "yes no free text", questionType: models.QuestionTypeYesNo, raw: "может быть", wantErr: true},
		{name: "score", questionType: models.QuestionTypeNumbers, raw: "4", token: models.AnswerTokenFour, display: "4"},
		{name: "score out of range", questionType: models.QuestionTypeNumbers, raw: "7", wantErr: true},
		{name: "next", questionType: models.QuestionTypeNext, raw: "next", token: models.AnswerTokenNext, display: "next"},
		{name: "next typed", questionType: models.QuestionTypeNext, raw: "Далее", token: models.AnswerTokenNext, display: "Далее"},
		{name: "message", questionType: models.QuestionTypeMessage, raw: "все хорошо", token: models.AnswerTokenSomeText, display: "все хорошо"},
		{name: "empty message", questionType: models.QuestionTypeMessage, raw: "  ", wantErr: true},
		{name: "slot booked", questionType: models.QuestionTypeSlots, raw: "slots", token: models.AnswerTokenSomeText, display: "Забронирован слот"},
		{name: "finish takes no answers", questionType: models.QuestionTypeFinish, raw: "yes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, display, err := services.TokenFor(&models.Question{Type: tt.questionType}, tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, services.ErrInvalidAnswer)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.token, token)
			assert.Equal(t, tt.display, display)
		})
	}
}

func TestQuestionGraph_ResolveNext(t *testing.T) {
	f := newFixture(t)
	_, q := f.graph(templateSpec{})
	graph := services.NewQuestionGraph(f.store)

	first, err := graph.FirstQuestion(f.ctx, q[0].TemplateID)
	require.NoError(t, err)
	assert.Equal(t, q[0].ID, first.ID)

	next, err := graph.ResolveNext(f.ctx, q[0].ID, models.AnswerTokenTwo)
	require.NoError(t, err)
	assert.Equal(t, q[1].ID, next.ID)

	next, err = graph.ResolveNext(f.ctx, q[0].ID, models.AnswerTokenFive)
	require.NoError(t, err)
	assert.Equal(t, q[2].ID, next.ID)
	assert.True(t, next.IsFinish())

	next, err = graph.ResolveNext(f.ctx, q[2].ID, models.AnswerTokenYes)
	require.NoError(t, err)
	assert.Nil(t, next)

	_, err = graph.ResolveNext(f.ctx, 9999, models.AnswerTokenYes)
	assert.ErrorIs(t, err, services.ErrQuestionNotFound)

	empty := f.template(templateSpec{number: 2})
	_, err = graph.FirstQuestion(f.ctx, empty.ID)
	assert.ErrorIs(t, err, services.ErrQuestionNotFound)
}
