package memory

import (
	"context"
	"slices"
	"sort"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/db/repositories"
)

type employeeRepository struct {
	state *state
}

func (r *employeeRepository) Create(ctx context.Context, request *models.Employee) (*models.Employee, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	d := r.state.data
	if err := d.checkEmployeeUnique(request, 0); err != nil {
		return nil, err
	}

	request.ID = d.newID()
	if request.Role == "" {
		request.Role = models.EmployeeRoleEmployee
	}
	if request.Status == "" {
		request.Status = models.EmployeeStatusOnboarding
	}
	if request.RiskStatus == "" {
		request.RiskStatus = models.RiskStatusNoProblem
	}
	d.employees[request.ID] = cloneEmployee(request)

	return cloneEmployee(request), nil
}

func (r *employeeRepository) Update(ctx context.Context, request *models.Employee) (*models.Employee, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	d := r.state.data
	current, ok := d.employees[request.ID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if err := d.checkEmployeeUnique(request, request.ID); err != nil {
		return nil, err
	}

	updated := cloneEmployee(request)
	updated.CreatedAt = current.CreatedAt
	d.employees[request.ID] = updated

	return cloneEmployee(updated), nil
}

func (r *employeeRepository) Delete(ctx context.Context, employeeID int64) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	d := r.state.data
	delete(d.employees, employeeID)

	for id, a := range d.assignments {
		if a.EmployeeID == employeeID {
			delete(d.assignments, id)
		}
	}
	for id, l := range d.links {
		if l.EmployeeID == employeeID || l.CuratorID == employeeID {
			delete(d.links, id)
		}
	}
	for id, i := range d.instances {
		if i.EmployeeID == employeeID || i.TargetID() == employeeID {
			d.deleteInstance(id)
		}
	}
	for id, a := range d.answers {
		if a.EmployeeID == employeeID || (a.TargetEmployeeID != nil && *a.TargetEmployeeID == employeeID) {
			delete(d.answers, id)
		}
	}

	return nil
}

func (r *employeeRepository) GetOne(ctx context.Context, employeeID int64) (*models.Employee, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	employee, ok := r.state.data.employees[employeeID]
	if !ok {
		return nil, repositories.ErrNotFound
	}

	return cloneEmployee(employee), nil
}

func (r *employeeRepository) GetOneByTelegramID(ctx context.Context, telegramID int64) (*models.Employee, error) {
	return r.findOne(func(e *models.Employee) bool {
		return !e.IsDeleted && e.TelegramUserID != nil && *e.TelegramUserID == telegramID
	})
}

func (r *employeeRepository) GetOneByRegistrationCode(ctx context.Context, code string) (*models.Employee, error) {
	return r.findOne(func(e *models.Employee) bool {
		return !e.IsDeleted && e.RegistrationCode == code
	})
}

func (r *employeeRepository) GetMany(ctx context.Context, filter repositories.EmployeeFilter) ([]*models.Employee, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	employees := make([]*models.Employee, 0)
	for _, e := range r.state.data.employees {
		if len(filter.IDs) > 0 && !slices.Contains(filter.IDs, e.ID) {
			continue
		}
		if len(filter.Roles) > 0 && !slices.Contains(filter.Roles, e.Role) {
			continue
		}
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, e.Status) {
			continue
		}
		if filter.WithChatOnly && e.TelegramUserID == nil {
			continue
		}
		if !filter.IncludeArchived && e.IsArchived {
			continue
		}
		if !filter.IncludeDeleted && e.IsDeleted {
			continue
		}
		employees = append(employees, cloneEmployee(e))
	}

	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })
	return employees, nil
}

func (r *employeeRepository) findOne(match func(e *models.Employee) bool) (*models.Employee, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	for _, e := range r.state.data.employees {
		if match(e) {
			return cloneEmployee(e), nil
		}
	}

	return nil, repositories.ErrNotFound
}

func (d *data) checkEmployeeUnique(request *models.Employee, selfID int64) error {
	for _, e := range d.employees {
		if e.ID == selfID {
			continue
		}
		if request.RegistrationCode != "" && e.RegistrationCode == request.RegistrationCode {
			return repositories.ErrAlreadyExists
		}
		if request.TelegramUserID != nil && e.TelegramUserID != nil && *e.TelegramUserID == *request.TelegramUserID {
			return repositories.ErrAlreadyExists
		}
	}
	return nil
}
