package repositories

import (
	"context"

	"onboarding_poll_system/internal/db/models"

	"github.com/go-pg/pg/v10/orm"
)

type curatorRepository struct {
	repository
}

type CuratorRepository interface {
	CreateLink(ctx context.Context, request *models.CuratorLink) (*models.CuratorLink, error)
	GetLink(ctx context.Context, linkID int64) (*models.CuratorLink, error)
	GetLinks(ctx context.Context, filter CuratorLinkFilter) ([]*models.CuratorLink, error)
	DeleteLinks(ctx context.Context, filter CuratorLinkFilter) (int, error)
}

func NewCuratorRepository(db orm.DB) CuratorRepository {
	return &curatorRepository{
		repository: repository{
			db: db,
		},
	}
}

func (r *curatorRepository) CreateLink(ctx context.Context, request *models.CuratorLink) (*models.CuratorLink, error) {
	if _, err := r.db.ModelContext(ctx, request).Insert(); err != nil {
		return nil, wrapError(err)
	}

	return r.GetLink(ctx, request.ID)
}

func (r *curatorRepository) GetLink(ctx context.Context, linkID int64) (*models.CuratorLink, error) {
	link := &models.CuratorLink{}

	err := r.db.ModelContext(ctx, link).
		Where("id = ?", linkID).
		Select()

	return link, wrapError(err)
}

func (r *curatorRepository) GetLinks(ctx context.Context, filter CuratorLinkFilter) ([]*models.CuratorLink, error) {
	links := make([]*models.CuratorLink, 0)

	err := applyCuratorLinkFilter(r.db.ModelContext(ctx, &links), filter).
		OrderExpr("id ASC").
		Select()

	return links, wrapError(err)
}

// DeleteLinks refuses an empty filter.
func (r *curatorRepository) DeleteLinks(ctx context.Context, filter CuratorLinkFilter) (int, error) {
	if filter.CuratorID == 0 && filter.EmployeeID == 0 {
		return 0, nil
	}

	res, err := applyCuratorLinkFilter(r.db.ModelContext(ctx, (*models.CuratorLink)(nil)), filter).Delete()
	if err != nil {
		return 0, wrapError(err)
	}

	return res.RowsAffected(), nil
}

func applyCuratorLinkFilter(q *orm.Query, filter CuratorLinkFilter) *orm.Query {
	if filter.CuratorID != 0 {
		q = q.Where("curator_id = ?", filter.CuratorID)
	}
	if filter.EmployeeID != 0 {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	return q
}
