package memory

import (
	"context"
	"slices"
	"sort"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/db/repositories"
)

type templateRepository struct {
	state *state
}

func (r *templateRepository) CreateTemplate(ctx context.Context, request *models.PollTemplate) (*models.PollTemplate, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	d := r.state.data
	if err := d.checkSequenceUnique(request, 0); err != nil {
		return nil, err
	}

	request.ID = d.newID()
	d.templates[request.ID] = cloneTemplate(request)

	return d.templateWithQuestions(request.ID), nil
}

func (r *templateRepository) UpdateTemplate(ctx context.Context, request *models.PollTemplate) (*models.PollTemplate, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	d := r.state.data
	if _, ok := d.templates[request.ID]; !ok {
		return nil, repositories.ErrNotFound
	}
	if err := d.checkSequenceUnique(request, request.ID); err != nil {
		return nil, err
	}

	d.templates[request.ID] = cloneTemplate(request)

	return d.templateWithQuestions(request.ID), nil
}

func (r *templateRepository) GetTemplate(ctx context.Context, templateID int64) (*models.PollTemplate, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	if _, ok := r.state.data.templates[templateID]; !ok {
		return nil, repositories.ErrNotFound
	}

	return r.state.data.templateWithQuestions(templateID), nil
}

func (r *templateRepository) GetTemplates(ctx context.Context, filter repositories.TemplateFilter) ([]*models.PollTemplate, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	templates := make([]*models.PollTemplate, 0)
	for _, t := range r.state.data.templates {
		if len(filter.PollTypes) > 0 && !slices.Contains(filter.PollTypes, t.PollType) {
			continue
		}
		if filter.IntendedFor != "" && t.IntendedFor != filter.IntendedFor {
			continue
		}
		if filter.Subject != nil && t.Subject() != *filter.Subject {
			continue
		}
		if filter.PollNumber != 0 && t.PollNumber != filter.PollNumber {
			continue
		}
		if !filter.IncludeDeleted && t.IsDeleted {
			continue
		}
		templates = append(templates, cloneTemplate(t))
	}

	sort.Slice(templates, func(i, j int) bool {
		if templates[i].DaysAfterHire != templates[j].DaysAfterHire {
			return templates[i].DaysAfterHire < templates[j].DaysAfterHire
		}
		return templates[i].ID < templates[j].ID
	})
	return templates, nil
}

func (r *templateRepository) CreateQuestion(ctx context.Context, request *models.Question) (*models.Question, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	d := r.state.data
	if _, ok := d.templates[request.TemplateID]; !ok {
		return nil, repositories.ErrNotFound
	}

	request.ID = d.newID()
	question := *request
	d.questions[request.ID] = &question

	result := question
	return &result, nil
}

func (r *templateRepository) GetQuestion(ctx context.Context, questionID int64) (*models.Question, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	question, ok := r.state.data.questions[questionID]
	if !ok {
		return nil, repositories.ErrNotFound
	}

	result := *question
	return &result, nil
}

func (r *templateRepository) GetQuestions(ctx context.Context, templateID int64) ([]*models.Question, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	return r.state.data.questionsOf(templateID), nil
}

func (r *templateRepository) CreateCondition(ctx context.Context, request *models.QuestionCondition) (*models.QuestionCondition, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	d := r.state.data
	if _, ok := d.questions[request.QuestionID]; !ok {
		return nil, repositories.ErrNotFound
	}
	if _, ok := d.questions[request.PreviousQuestionID]; !ok {
		return nil, repositories.ErrNotFound
	}
	for _, c := range d.conditions {
		if c.QuestionID == request.QuestionID &&
			c.PreviousQuestionID == request.PreviousQuestionID &&
			c.AnswerCondition == request.AnswerCondition {
			return nil, repositories.ErrAlreadyExists
		}
	}

	request.ID = d.newID()
	condition := *request
	d.conditions[request.ID] = &condition

	result := condition
	return &result, nil
}

func (r *templateRepository) GetConditions(ctx context.Context, templateID int64) ([]*models.QuestionCondition, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	d := r.state.data
	conditions := make([]*models.QuestionCondition, 0)
	for _, c := range d.conditions {
		previous, ok := d.questions[c.PreviousQuestionID]
		if !ok || previous.TemplateID != templateID {
			continue
		}
		result := *c
		conditions = append(conditions, &result)
	}

	sort.Slice(conditions, func(i, j int) bool { return conditions[i].ID < conditions[j].ID })
	return conditions, nil
}

func (r *templateRepository) FindCondition(ctx context.Context, previousQuestionID int64, token models.AnswerToken) (*models.QuestionCondition, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	var found *models.QuestionCondition
	for _, c := range r.state.data.conditions {
		if c.PreviousQuestionID != previousQuestionID || c.AnswerCondition != token {
			continue
		}
		if found == nil || c.ID < found.ID {
			found = c
		}
	}

	if found == nil {
		return nil, repositories.ErrNotFound
	}

	result := *found
	return &result, nil
}

func (d *data) questionsOf(templateID int64) []*models.Question {
	questions := make([]*models.Question, 0)
	for _, q := range d.questions {
		if q.TemplateID == templateID {
			result := *q
			questions = append(questions, &result)
		}
	}

	sort.Slice(questions, func(i, j int) bool { return questions[i].ID < questions[j].ID })
	return questions
}

func (d *data) templateWithQuestions(templateID int64) *models.PollTemplate {
	template := cloneTemplate(d.templates[templateID])
	template.Questions = d.questionsOf(templateID)
	return template
}

func (d *data) checkSequenceUnique(request *models.PollTemplate, selfID int64) error {
	if request.IsDeleted {
		return nil
	}

	for _, t := range d.templates {
		if t.ID == selfID || t.IsDeleted {
			continue
		}
		if t.PollType == request.PollType &&
			t.IntendedFor == request.IntendedFor &&
			t.Subject() == request.Subject() &&
			t.PollNumber == request.PollNumber {
			return repositories.ErrAlreadyExists
		}
	}
	return nil
}
