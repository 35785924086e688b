package blueprints

import (
	"context"
	"testing"

	"onboarding_poll_system/internal/db/memory"
	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/db/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBlueprint = `
templates:
  - title: "1-й день"
    message: "Привет"
    days_after_hire: 0
    time_of_day: morning
    intended_for: employee
    poll_type: onboarding
    poll_number: 1
    questions:
      - key: mood
        text: "Как дела?"
        type: numbers
        next:
          - {on: "1", to: why}
          - {on: "5", to: done}
      - key: why
        text: "Почему?"
        type: message
        next:
          - {on: some_text, to: done}
      - key: done
        text: "Спасибо!"
        type: finish
`

func TestLoad_ProjectOnboarding(t *testing.T) {
	blueprint, err := Load("../../blueprints/project_onboarding.yaml")
	require.NoError(t, err)

	assert.NotEmpty(t, blueprint.Templates)
	for _, template := range blueprint.Templates {
		assert.Equal(t, "onboarding", template.PollType)
	}
}

func TestParse(t *testing.T) {
	blueprint, err := Parse([]byte(validBlueprint))
	require.NoError(t, err)

	require.Len(t, blueprint.Templates, 1)
	assert.Len(t, blueprint.Templates[0].Questions, 3)
	assert.Equal(t, Edge{On: "1", To: "why"}, blueprint.Templates[0].Questions[0].Next[0])
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: "  "},
		{name: "no templates", data: "templates: []"},
		{
			name: "unknown question type",
			data: `
templates:
  - {title: t, message: m, time_of_day: morning, intended_for: employee, poll_type: onboarding, poll_number: 1,
     questions: [{key: a, text: a, type: rating}]}`,
		},
		{
			name: "no finish question",
			data: `
templates:
  - {title: t, message: m, time_of_day: morning, intended_for: employee, poll_type: onboarding, poll_number: 1,
     questions: [{key: a, text: a, type: message}]}`,
		},
		{
			name: "edge to unknown question",
			data: `
templates:
  - {title: t, message: m, time_of_day: morning, intended_for: employee, poll_type: onboarding, poll_number: 1,
     questions: [{key: a, text: a, type: next, next: [{on: next, to: b}]}, {key: c, text: c, type: finish}]}`,
		},
		{
			name: "token does not fit question type",
			data: `
templates:
  - {title: t, message: m, time_of_day: morning, intended_for: employee, poll_type: onboarding, poll_number: 1,
     questions: [{key: a, text: a, type: yes_no, next: [{on: "3", to: b}]}, {key: b, text: b, type: finish}]}`,
		},
		{
			name: "duplicate poll number",
			data: `
templates:
  - {title: t1, message: m, time_of_day: morning, intended_for: employee, poll_type: onboarding, poll_number: 1,
     questions: [{key: a, text: a, type: finish}]}
  - {title: t2, message: m, time_of_day: evening, intended_for: employee, poll_type: onboarding, poll_number: 1,
     questions: [{key: a, text: a, type: finish}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	blueprint, err := Parse([]byte(validBlueprint))
	require.NoError(t, err)

	project, err := store.Projects().Create(ctx, &models.Project{Name: "Атом"})
	require.NoError(t, err)

	templates, err := Import(ctx, store, blueprint, models.ProjectSubject(project.ID))
	require.NoError(t, err)
	require.Len(t, templates, 1)

	template := templates[0]
	assert.Equal(t, models.ProjectSubject(project.ID), template.Subject())
	assert.Equal(t, models.PollTypeOnboarding, template.PollType)

	questions, err := store.Templates().GetQuestions(ctx, template.ID)
	require.NoError(t, err)
	require.Len(t, questions, 3)
	assert.Equal(t, models.QuestionTypeNumbers, questions[0].Type)

	edge, err := store.Templates().FindCondition(ctx, questions[0].ID, models.AnswerTokenOne)
	require.NoError(t, err)
	assert.Equal(t, questions[1].ID, edge.QuestionID)

	edge, err = store.Templates().FindCondition(ctx, questions[1].ID, models.AnswerTokenSomeText)
	require.NoError(t, err)
	assert.Equal(t, questions[2].ID, edge.QuestionID)
}

func TestImport_SameSeriesTwice(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	blueprint, err := Parse([]byte(validBlueprint))
	require.NoError(t, err)

	_, err = Import(ctx, store, blueprint, models.NoSubject())
	require.NoError(t, err)

	_, err = Import(ctx, store, blueprint, models.NoSubject())
	assert.Error(t, err)

	templates, err := store.Templates().GetTemplates(ctx, repositories.TemplateFilter{})
	require.NoError(t, err)
	assert.Len(t, templates, 1)
}
