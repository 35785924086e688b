package memory

import (
	"context"
	"slices"
	"sort"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/db/repositories"
)

type projectRepository struct {
	state *state
}

func (r *projectRepository) Create(ctx context.Context, request *models.Project) (*models.Project, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	d := r.state.data
	request.ID = d.newID()
	project := *request
	d.projects[request.ID] = &project

	return &project, nil
}

func (r *projectRepository) Update(ctx context.Context, request *models.Project) (*models.Project, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	d := r.state.data
	current, ok := d.projects[request.ID]
	if !ok {
		return nil, repositories.ErrNotFound
	}

	project := *request
	project.CreatedAt = current.CreatedAt
	d.projects[request.ID] = &project

	result := project
	return &result, nil
}

func (r *projectRepository) GetOne(ctx context.Context, projectID int64) (*models.Project, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	project, ok := r.state.data.projects[projectID]
	if !ok {
		return nil, repositories.ErrNotFound
	}

	result := *project
	return &result, nil
}

func (r *projectRepository) CreateAssignment(ctx context.Context, request *models.ProjectAssignment) (*models.ProjectAssignment, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	d := r.state.data
	for _, a := range d.assignments {
		if a.EmployeeID == request.EmployeeID && a.ProjectID == request.ProjectID {
			return nil, repositories.ErrAlreadyExists
		}
	}

	request.ID = d.newID()
	assignment := *request
	d.assignments[request.ID] = &assignment

	result := assignment
	return &result, nil
}

func (r *projectRepository) GetAssignment(ctx context.Context, assignmentID int64) (*models.ProjectAssignment, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	assignment, ok := r.state.data.assignments[assignmentID]
	if !ok {
		return nil, repositories.ErrNotFound
	}

	result := *assignment
	return &result, nil
}

func (r *projectRepository) GetAssignments(ctx context.Context, filter repositories.AssignmentFilter) ([]*models.ProjectAssignment, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	assignments := make([]*models.ProjectAssignment, 0)
	for _, a := range r.state.data.assignments {
		if matchAssignment(a, filter) {
			result := *a
			assignments = append(assignments, &result)
		}
	}

	sort.Slice(assignments, func(i, j int) bool { return assignments[i].ID < assignments[j].ID })
	return assignments, nil
}

func (r *projectRepository) DeleteAssignments(ctx context.Context, filter repositories.AssignmentFilter) (int, error) {
	if len(filter.EmployeeIDs) == 0 && filter.ProjectID == 0 {
		return 0, nil
	}

	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	deleted := 0
	for id, a := range r.state.data.assignments {
		if matchAssignment(a, filter) {
			delete(r.state.data.assignments, id)
			deleted++
		}
	}

	return deleted, nil
}

func matchAssignment(a *models.ProjectAssignment, filter repositories.AssignmentFilter) bool {
	if len(filter.EmployeeIDs) > 0 && !slices.Contains(filter.EmployeeIDs, a.EmployeeID) {
		return false
	}
	if filter.ProjectID != 0 && a.ProjectID != filter.ProjectID {
		return false
	}
	if filter.WithStartDate && a.DateOfEmployment == nil {
		return false
	}
	return true
}

type curatorRepository struct {
	state *state
}

func (r *curatorRepository) CreateLink(ctx context.Context, request *models.CuratorLink) (*models.CuratorLink, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	d := r.state.data
	for _, l := range d.links {
		if l.CuratorID == request.CuratorID && l.EmployeeID == request.EmployeeID {
			return nil, repositories.ErrAlreadyExists
		}
	}

	request.ID = d.newID()
	link := *request
	d.links[request.ID] = &link

	result := link
	return &result, nil
}

func (r *curatorRepository) GetLink(ctx context.Context, linkID int64) (*models.CuratorLink, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	link, ok := r.state.data.links[linkID]
	if !ok {
		return nil, repositories.ErrNotFound
	}

	result := *link
	return &result, nil
}

func (r *curatorRepository) GetLinks(ctx context.Context, filter repositories.CuratorLinkFilter) ([]*models.CuratorLink, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	links := make([]*models.CuratorLink, 0)
	for _, l := range r.state.data.links {
		if matchLink(l, filter) {
			result := *l
			links = append(links, &result)
		}
	}

	sort.Slice(links, func(i, j int) bool { return links[i].ID < links[j].ID })
	return links, nil
}

func (r *curatorRepository) DeleteLinks(ctx context.Context, filter repositories.CuratorLinkFilter) (int, error) {
	if filter.CuratorID == 0 && filter.EmployeeID == 0 {
		return 0, nil
	}

	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	deleted := 0
	for id, l := range r.state.data.links {
		if matchLink(l, filter) {
			delete(r.state.data.links, id)
			deleted++
		}
	}

	return deleted, nil
}

func matchLink(l *models.CuratorLink, filter repositories.CuratorLinkFilter) bool {
	if filter.CuratorID != 0 && l.CuratorID != filter.CuratorID {
		return false
	}
	if filter.EmployeeID != 0 && l.EmployeeID != filter.EmployeeID {
		return false
	}
	return true
}
