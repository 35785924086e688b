package repositories

import (
	"context"

	"onboarding_poll_system/internal/db/models"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

type projectRepository struct {
	repository
}

type ProjectRepository interface {
	Create(ctx context.Context, request *models.Project) (*models.Project, error)
	Update(ctx context.Context, request *models.Project) (*models.Project, error)
	GetOne(ctx context.Context, projectID int64) (*models.Project, error)

	CreateAssignment(ctx context.Context, request *models.ProjectAssignment) (*models.ProjectAssignment, error)
	GetAssignment(ctx context.Context, assignmentID int64) (*models.ProjectAssignment, error)
	GetAssignments(ctx context.Context, filter AssignmentFilter) ([]*models.ProjectAssignment, error)
	DeleteAssignments(ctx context.Context, filter AssignmentFilter) (int, error)
}

func NewProjectRepository(db orm.DB) ProjectRepository {
	return &projectRepository{
		repository: repository{
			db: db,
		},
	}
}

func (r *projectRepository) Create(ctx context.Context, request *models.Project) (*models.Project, error) {
	if _, err := r.db.ModelContext(ctx, request).Insert(); err != nil {
		return nil, wrapError(err)
	}

	return r.GetOne(ctx, request.ID)
}

func (r *projectRepository) Update(ctx context.Context, request *models.Project) (*models.Project, error) {
	_, err := r.db.ModelContext(ctx, request).
		ExcludeColumn("created_at").
		WherePK().
		Update()
	if err != nil {
		return nil, wrapError(err)
	}

	return r.GetOne(ctx, request.ID)
}

func (r *projectRepository) GetOne(ctx context.Context, projectID int64) (*models.Project, error) {
	project := &models.Project{}

	err := r.db.ModelContext(ctx, project).
		Where("id = ?", projectID).
		Select()

	return project, wrapError(err)
}

func (r *projectRepository) CreateAssignment(ctx context.Context, request *models.ProjectAssignment) (*models.ProjectAssignment, error) {
	if _, err := r.db.ModelContext(ctx, request).Insert(); err != nil {
		return nil, wrapError(err)
	}

	return r.GetAssignment(ctx, request.ID)
}

func (r *projectRepository) GetAssignment(ctx context.Context, assignmentID int64) (*models.ProjectAssignment, error) {
	assignment := &models.ProjectAssignment{}

	err := r.db.ModelContext(ctx, assignment).
		Where("id = ?", assignmentID).
		Select()

	return assignment, wrapError(err)
}

func (r *projectRepository) GetAssignments(ctx context.Context, filter AssignmentFilter) ([]*models.ProjectAssignment, error) {
	assignments := make([]*models.ProjectAssignment, 0)

	err := applyAssignmentFilter(r.db.ModelContext(ctx, &assignments), filter).
		OrderExpr("id ASC").
		Select()

	return assignments, wrapError(err)
}

func (r *projectRepository) DeleteAssignments(ctx context.Context, filter AssignmentFilter) (int, error) {
	if len(filter.EmployeeIDs) == 0 && filter.ProjectID == 0 {
		return 0, nil
	}

	res, err := applyAssignmentFilter(r.db.ModelContext(ctx, (*models.ProjectAssignment)(nil)), filter).Delete()
	if err != nil {
		return 0, wrapError(err)
	}

	return res.RowsAffected(), nil
}

func applyAssignmentFilter(q *orm.Query, filter AssignmentFilter) *orm.Query {
	if len(filter.EmployeeIDs) > 0 {
		q = q.Where("employee_id IN (?)", pg.In(filter.EmployeeIDs))
	}
	if filter.ProjectID != 0 {
		q = q.Where("project_id = ?", filter.ProjectID)
	}
	if filter.WithStartDate {
		q = q.Where("date_of_employment IS NOT NULL")
	}
	return q
}
