package repositories

import (
	"context"

	"onboarding_poll_system/internal/db/models"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

type pollInstanceRepository struct {
	repository
}

type PollInstanceRepository interface {
	// Create rejects a duplicate (employee, template, target) key with ErrAlreadyExists.
	Create(ctx context.Context, request *models.PollInstance) (*models.PollInstance, error)
	// CreateIfAbsent reports whether a row was inserted, an existing key is left untouched.
	CreateIfAbsent(ctx context.Context, request *models.PollInstance) (bool, error)
	Update(ctx context.Context, request *models.PollInstance) (*models.PollInstance, error)
	GetOne(ctx context.Context, instanceID int64) (*models.PollInstance, error)
	GetOneByKey(ctx context.Context, employeeID, templateID int64, targetEmployeeID *int64) (*models.PollInstance, error)
	GetMany(ctx context.Context, filter PollInstanceFilter) ([]*models.PollInstance, error)
	Count(ctx context.Context, filter PollInstanceFilter) (int, error)
	DeleteMany(ctx context.Context, filter PollInstanceFilter) (int, error)
}

func NewPollInstanceRepository(db orm.DB) PollInstanceRepository {
	return &pollInstanceRepository{
		repository: repository{
			db: db,
		},
	}
}

func (r *pollInstanceRepository) Create(ctx context.Context, request *models.PollInstance) (*models.PollInstance, error) {
	if _, err := r.db.ModelContext(ctx, request).Insert(); err != nil {
		return nil, wrapError(err)
	}

	return r.GetOne(ctx, request.ID)
}

func (r *pollInstanceRepository) CreateIfAbsent(ctx context.Context, request *models.PollInstance) (bool, error) {
	res, err := r.db.ModelContext(ctx, request).
		OnConflict("DO NOTHING").
		Insert()
	if err != nil {
		return false, wrapError(err)
	}

	return res.RowsAffected() > 0, nil
}

func (r *pollInstanceRepository) Update(ctx context.Context, request *models.PollInstance) (*models.PollInstance, error) {
	_, err := r.db.ModelContext(ctx, request).
		ExcludeColumn("created_at").
		WherePK().
		Update()
	if err != nil {
		return nil, wrapError(err)
	}

	return r.GetOne(ctx, request.ID)
}

func (r *pollInstanceRepository) GetOne(ctx context.Context, instanceID int64) (*models.PollInstance, error) {
	instance := &models.PollInstance{}

	err := r.withRelations(r.db.ModelContext(ctx, instance)).
		Where("poll_instance.id = ?", instanceID).
		Select()

	return instance, wrapError(err)
}

func (r *pollInstanceRepository) GetOneByKey(ctx context.Context, employeeID, templateID int64, targetEmployeeID *int64) (*models.PollInstance, error) {
	instance := &models.PollInstance{}

	q := r.withRelations(r.db.ModelContext(ctx, instance)).
		Where("poll_instance.employee_id = ?", employeeID).
		Where("poll_instance.template_id = ?", templateID)

	if targetEmployeeID == nil {
		q = q.Where("poll_instance.target_employee_id IS NULL")
	} else {
		q = q.Where("poll_instance.target_employee_id = ?", *targetEmployeeID)
	}

	return instance, wrapError(q.Select())
}

func (r *pollInstanceRepository) GetMany(ctx context.Context, filter PollInstanceFilter) ([]*models.PollInstance, error) {
	instances := make([]*models.PollInstance, 0)

	q := applyPollInstanceFilter(r.withRelations(r.db.ModelContext(ctx, &instances)), filter)

	switch filter.OrderBy {
	case OrderByPollNumber:
		q = q.OrderExpr("template.poll_number ASC, poll_instance.id ASC")
	case OrderByPlannedDate:
		q = q.OrderExpr("poll_instance.date_planned_at ASC, poll_instance.id ASC")
	default:
		q = q.OrderExpr("poll_instance.id ASC")
	}

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	return instances, wrapError(q.Select())
}

func (r *pollInstanceRepository) Count(ctx context.Context, filter PollInstanceFilter) (int, error) {
	q := r.db.ModelContext(ctx, (*models.PollInstance)(nil)).Relation("Template")

	count, err := applyPollInstanceFilter(q, filter).Count()
	return count, wrapError(err)
}

func (r *pollInstanceRepository) DeleteMany(ctx context.Context, filter PollInstanceFilter) (int, error) {
	var ids []int64

	q := r.db.ModelContext(ctx, (*models.PollInstance)(nil)).
		Relation("Template._").
		Column("poll_instance.id")
	if err := applyPollInstanceFilter(q, filter).Select(&ids); err != nil {
		return 0, wrapError(err)
	}

	if len(ids) == 0 {
		return 0, nil
	}

	res, err := r.db.ModelContext(ctx, (*models.PollInstance)(nil)).
		Where("id IN (?)", pg.In(ids)).
		Delete()
	if err != nil {
		return 0, wrapError(err)
	}

	return res.RowsAffected(), nil
}

func (r *pollInstanceRepository) withRelations(q *orm.Query) *orm.Query {
	return q.
		Relation("Template").
		Relation("Employee").
		Relation("TargetEmployee")
}

func applyPollInstanceFilter(q *orm.Query, filter PollInstanceFilter) *orm.Query {
	if len(filter.IDs) > 0 {
		q = q.Where("poll_instance.id IN (?)", pg.In(filter.IDs))
	}
	if filter.EmployeeID != 0 {
		q = q.Where("poll_instance.employee_id = ?", filter.EmployeeID)
	}
	if len(filter.TemplateIDs) > 0 {
		q = q.Where("poll_instance.template_id IN (?)", pg.In(filter.TemplateIDs))
	}
	if filter.InvolvingEmployeeID != 0 {
		q = q.WhereGroup(func(q *orm.Query) (*orm.Query, error) {
			return q.
				WhereOr("poll_instance.employee_id = ?", filter.InvolvingEmployeeID).
				WhereOr("poll_instance.target_employee_id = ?", filter.InvolvingEmployeeID), nil
		})
	}
	if filter.PersonalOnly {
		q = q.Where("poll_instance.target_employee_id IS NULL")
	}
	if len(filter.Statuses) > 0 {
		q = q.Where("poll_instance.status IN (?)", pg.In(filter.Statuses))
	}
	if len(filter.PollTypes) > 0 {
		q = q.Where("template.poll_type IN (?)", pg.In(filter.PollTypes))
	}
	if len(filter.ExcludePollTypes) > 0 {
		q = q.Where("template.poll_type NOT IN (?)", pg.In(filter.ExcludePollTypes))
	}
	if filter.TimeOfDay != "" {
		q = q.Where("poll_instance.time_planned_at = ?", filter.TimeOfDay)
	}
	if filter.Subject != nil {
		q = q.Where("template.subject_kind = ?", filter.Subject.Kind)
		if !filter.Subject.IsNone() {
			q = q.Where("template.subject_id = ?", filter.Subject.ID)
		}
	}
	if filter.PlannedBefore != nil {
		q = q.Where("poll_instance.date_planned_at < ?", *filter.PlannedBefore)
	}
	if filter.PlannedOnOrBefore != nil {
		q = q.Where("poll_instance.date_planned_at <= ?", *filter.PlannedOnOrBefore)
	}
	if filter.StartedBefore != nil {
		q = q.Where("poll_instance.started_at < ?", *filter.StartedBefore)
	}
	if !filter.IncludeArchived {
		q = q.Where("poll_instance.is_archived = FALSE")
	}
	return q
}
