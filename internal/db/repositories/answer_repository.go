package repositories

import (
	"context"

	"onboarding_poll_system/internal/db/models"

	"github.com/go-pg/pg/v10/orm"
)

type answerRepository struct {
	repository
}

type AnswerRepository interface {
	// Upsert overwrites the answer stored for the same (employee, question, target) key.
	Upsert(ctx context.Context, request *models.Answer) (*models.Answer, error)
	GetLast(ctx context.Context, pollInstanceID int64) (*models.Answer, error)
	GetMany(ctx context.Context, pollInstanceID int64) ([]*models.Answer, error)
	DeleteByInstance(ctx context.Context, pollInstanceID int64) (int, error)
}

func NewAnswerRepository(db orm.DB) AnswerRepository {
	return &answerRepository{
		repository: repository{
			db: db,
		},
	}
}

func (r *answerRepository) Upsert(ctx context.Context, request *models.Answer) (*models.Answer, error) {
	_, err := r.db.ModelContext(ctx, request).
		OnConflict("(employee_id, question_id, COALESCE(target_employee_id, 0)) DO UPDATE").
		Set("answer = EXCLUDED.answer").
		Set("token = EXCLUDED.token").
		Set("requires_attention = EXCLUDED.requires_attention").
		Set("poll_instance_id = EXCLUDED.poll_instance_id").
		Set("created_at = EXCLUDED.created_at").
		Returning("id").
		Insert()
	if err != nil {
		return nil, wrapError(err)
	}

	return request, nil
}

func (r *answerRepository) GetLast(ctx context.Context, pollInstanceID int64) (*models.Answer, error) {
	answer := &models.Answer{}

	err := r.db.ModelContext(ctx, answer).
		Where("poll_instance_id = ?", pollInstanceID).
		OrderExpr("created_at DESC, id DESC").
		Limit(1).
		Select()

	return answer, wrapError(err)
}

func (r *answerRepository) GetMany(ctx context.Context, pollInstanceID int64) ([]*models.Answer, error) {
	answers := make([]*models.Answer, 0)

	err := r.db.ModelContext(ctx, &answers).
		Where("poll_instance_id = ?", pollInstanceID).
		OrderExpr("created_at ASC, id ASC").
		Select()

	return answers, wrapError(err)
}

func (r *answerRepository) DeleteByInstance(ctx context.Context, pollInstanceID int64) (int, error) {
	res, err := r.db.ModelContext(ctx, (*models.Answer)(nil)).
		Where("poll_instance_id = ?", pollInstanceID).
		Delete()
	if err != nil {
		return 0, wrapError(err)
	}

	return res.RowsAffected(), nil
}
