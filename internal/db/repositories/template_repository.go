package repositories

import (
	"context"

	"onboarding_poll_system/internal/db/models"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

type templateRepository struct {
	repository
}

// TemplateRepository stores poll templates together with their question graph.
type TemplateRepository interface {
	CreateTemplate(ctx context.Context, request *models.PollTemplate) (*models.PollTemplate, error)
	UpdateTemplate(ctx context.Context, request *models.PollTemplate) (*models.PollTemplate, error)
	// GetTemplate returns soft-deleted templates too, instances keep pointing at them.
	GetTemplate(ctx context.Context, templateID int64) (*models.PollTemplate, error)
	GetTemplates(ctx context.Context, filter TemplateFilter) ([]*models.PollTemplate, error)

	CreateQuestion(ctx context.Context, request *models.Question) (*models.Question, error)
	GetQuestion(ctx context.Context, questionID int64) (*models.Question, error)
	GetQuestions(ctx context.Context, templateID int64) ([]*models.Question, error)

	CreateCondition(ctx context.Context, request *models.QuestionCondition) (*models.QuestionCondition, error)
	GetConditions(ctx context.Context, templateID int64) ([]*models.QuestionCondition, error)
	FindCondition(ctx context.Context, previousQuestionID int64, token models.AnswerToken) (*models.QuestionCondition, error)
}

func NewTemplateRepository(db orm.DB) TemplateRepository {
	return &templateRepository{
		repository: repository{
			db: db,
		},
	}
}

func (r *templateRepository) CreateTemplate(ctx context.Context, request *models.PollTemplate) (*models.PollTemplate, error) {
	if _, err := r.db.ModelContext(ctx, request).Insert(); err != nil {
		return nil, wrapError(err)
	}

	return r.GetTemplate(ctx, request.ID)
}

func (r *templateRepository) UpdateTemplate(ctx context.Context, request *models.PollTemplate) (*models.PollTemplate, error) {
	if _, err := r.db.ModelContext(ctx, request).WherePK().Update(); err != nil {
		return nil, wrapError(err)
	}

	return r.GetTemplate(ctx, request.ID)
}

func (r *templateRepository) GetTemplate(ctx context.Context, templateID int64) (*models.PollTemplate, error) {
	template := &models.PollTemplate{}

	err := r.db.ModelContext(ctx, template).
		Relation("Questions", func(q *orm.Query) (*orm.Query, error) {
			return q.OrderExpr("question.id ASC"), nil
		}).
		Where("poll_template.id = ?", templateID).
		Select()

	return template, wrapError(err)
}

func (r *templateRepository) GetTemplates(ctx context.Context, filter TemplateFilter) ([]*models.PollTemplate, error) {
	templates := make([]*models.PollTemplate, 0)

	q := r.db.ModelContext(ctx, &templates)

	if len(filter.PollTypes) > 0 {
		q = q.Where("poll_type IN (?)", pg.In(filter.PollTypes))
	}
	if filter.IntendedFor != "" {
		q = q.Where("intended_for = ?", filter.IntendedFor)
	}
	if filter.Subject != nil {
		q = q.Where("subject_kind = ?", filter.Subject.Kind)
		if filter.Subject.IsNone() {
			q = q.Where("subject_id IS NULL")
		} else {
			q = q.Where("subject_id = ?", filter.Subject.ID)
		}
	}
	if filter.PollNumber != 0 {
		q = q.Where("poll_number = ?", filter.PollNumber)
	}
	if !filter.IncludeDeleted {
		q = q.Where("is_deleted = FALSE")
	}

	err := q.OrderExpr("days_after_hire ASC, id ASC").Select()

	return templates, wrapError(err)
}

func (r *templateRepository) CreateQuestion(ctx context.Context, request *models.Question) (*models.Question, error) {
	if _, err := r.db.ModelContext(ctx, request).Insert(); err != nil {
		return nil, wrapError(err)
	}

	return r.GetQuestion(ctx, request.ID)
}

func (r *templateRepository) GetQuestion(ctx context.Context, questionID int64) (*models.Question, error) {
	question := &models.Question{}

	err := r.db.ModelContext(ctx, question).
		Where("id = ?", questionID).
		Select()

	return question, wrapError(err)
}

func (r *templateRepository) GetQuestions(ctx context.Context, templateID int64) ([]*models.Question, error) {
	questions := make([]*models.Question, 0)

	err := r.db.ModelContext(ctx, &questions).
		Where("template_id = ?", templateID).
		OrderExpr("id ASC").
		Select()

	return questions, wrapError(err)
}

func (r *templateRepository) CreateCondition(ctx context.Context, request *models.QuestionCondition) (*models.QuestionCondition, error) {
	if _, err := r.db.ModelContext(ctx, request).Insert(); err != nil {
		return nil, wrapError(err)
	}

	return request, nil
}

func (r *templateRepository) GetConditions(ctx context.Context, templateID int64) ([]*models.QuestionCondition, error) {
	conditions := make([]*models.QuestionCondition, 0)

	err := r.db.ModelContext(ctx, &conditions).
		Where("previous_question_id IN (SELECT id FROM questions WHERE template_id = ?)", templateID).
		OrderExpr("id ASC").
		Select()

	return conditions, wrapError(err)
}

// FindCondition picks the oldest matching edge so the lookup stays deterministic.
func (r *templateRepository) FindCondition(ctx context.Context, previousQuestionID int64, token models.AnswerToken) (*models.QuestionCondition, error) {
	condition := &models.QuestionCondition{}

	err := r.db.ModelContext(ctx, condition).
		Where("previous_question_id = ?", previousQuestionID).
		Where("answer_condition = ?", token).
		OrderExpr("id ASC").
		Limit(1).
		Select()

	return condition, wrapError(err)
}
