package repositories

import (
	"context"

	"onboarding_poll_system/internal/db/models"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

type employeeRepository struct {
	repository
}

type EmployeeRepository interface {
	Create(ctx context.Context, request *models.Employee) (*models.Employee, error)
	Update(ctx context.Context, request *models.Employee) (*models.Employee, error)
	Delete(ctx context.Context, employeeID int64) error
	GetOne(ctx context.Context, employeeID int64) (*models.Employee, error)
	GetOneByTelegramID(ctx context.Context, telegramID int64) (*models.Employee, error)
	GetOneByRegistrationCode(ctx context.Context, code string) (*models.Employee, error)
	GetMany(ctx context.Context, filter EmployeeFilter) ([]*models.Employee, error)
}

func NewEmployeeRepository(db orm.DB) EmployeeRepository {
	return &employeeRepository{
		repository: repository{
			db: db,
		},
	}
}

func (r *employeeRepository) Create(ctx context.Context, request *models.Employee) (*models.Employee, error) {
	if _, err := r.db.ModelContext(ctx, request).Insert(); err != nil {
		return nil, wrapError(err)
	}

	return r.GetOne(ctx, request.ID)
}

func (r *employeeRepository) Update(ctx context.Context, request *models.Employee) (*models.Employee, error) {
	_, err := r.db.ModelContext(ctx, request).
		ExcludeColumn("created_at").
		WherePK().
		Update()
	if err != nil {
		return nil, wrapError(err)
	}

	return r.GetOne(ctx, request.ID)
}

func (r *employeeRepository) Delete(ctx context.Context, employeeID int64) error {
	_, err := r.db.ModelContext(ctx, (*models.Employee)(nil)).
		Where("id = ?", employeeID).
		Delete()
	return wrapError(err)
}

func (r *employeeRepository) GetOne(ctx context.Context, employeeID int64) (*models.Employee, error) {
	employee := &models.Employee{}

	err := r.db.ModelContext(ctx, employee).
		Where("id = ?", employeeID).
		Select()

	return employee, wrapError(err)
}

func (r *employeeRepository) GetOneByTelegramID(ctx context.Context, telegramID int64) (*models.Employee, error) {
	employee := &models.Employee{}

	err := r.db.ModelContext(ctx, employee).
		Where("telegram_user_id = ?", telegramID).
		Where("is_deleted = FALSE").
		Select()

	return employee, wrapError(err)
}

func (r *employeeRepository) GetOneByRegistrationCode(ctx context.Context, code string) (*models.Employee, error) {
	employee := &models.Employee{}

	err := r.db.ModelContext(ctx, employee).
		Where("registration_code = ?", code).
		Where("is_deleted = FALSE").
		Select()

	return employee, wrapError(err)
}

func (r *employeeRepository) GetMany(ctx context.Context, filter EmployeeFilter) ([]*models.Employee, error) {
	employees := make([]*models.Employee, 0)

	q := r.db.ModelContext(ctx, &employees)

	if len(filter.IDs) > 0 {
		q = q.Where("id IN (?)", pg.In(filter.IDs))
	}
	if len(filter.Roles) > 0 {
		q = q.Where("role IN (?)", pg.In(filter.Roles))
	}
	if len(filter.Statuses) > 0 {
		q = q.Where("status IN (?)", pg.In(filter.Statuses))
	}
	if filter.WithChatOnly {
		q = q.Where("telegram_user_id IS NOT NULL")
	}
	if !filter.IncludeArchived {
		q = q.Where("is_archived = FALSE")
	}
	if !filter.IncludeDeleted {
		q = q.Where("is_deleted = FALSE")
	}

	err := q.OrderExpr("id ASC").Select()

	return employees, wrapError(err)
}
