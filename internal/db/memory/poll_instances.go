package memory

import (
	"context"
	"slices"
	"sort"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/db/repositories"
)

type pollInstanceRepository struct {
	state *state
}

func (r *pollInstanceRepository) Create(ctx context.Context, request *models.PollInstance) (*models.PollInstance, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	d := r.state.data
	if d.findInstance(request.EmployeeID, request.TemplateID, request.TargetEmployeeID) != nil {
		return nil, repositories.ErrAlreadyExists
	}

	d.insertInstance(request)
	return d.instanceWithRelations(request.ID), nil
}

func (r *pollInstanceRepository) CreateIfAbsent(ctx context.Context, request *models.PollInstance) (bool, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	d := r.state.data
	if d.findInstance(request.EmployeeID, request.TemplateID, request.TargetEmployeeID) != nil {
		return false, nil
	}

	d.insertInstance(request)
	return true, nil
}

func (r *pollInstanceRepository) Update(ctx context.Context, request *models.PollInstance) (*models.PollInstance, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	d := r.state.data
	current, ok := d.instances[request.ID]
	if !ok {
		return nil, repositories.ErrNotFound
	}

	updated := cloneInstance(request)
	updated.CreatedAt = current.CreatedAt
	d.instances[request.ID] = updated

	return d.instanceWithRelations(request.ID), nil
}

func (r *pollInstanceRepository) GetOne(ctx context.Context, instanceID int64) (*models.PollInstance, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	if _, ok := r.state.data.instances[instanceID]; !ok {
		return nil, repositories.ErrNotFound
	}

	return r.state.data.instanceWithRelations(instanceID), nil
}

func (r *pollInstanceRepository) GetOneByKey(ctx context.Context, employeeID, templateID int64, targetEmployeeID *int64) (*models.PollInstance, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	instance := r.state.data.findInstance(employeeID, templateID, targetEmployeeID)
	if instance == nil {
		return nil, repositories.ErrNotFound
	}

	return r.state.data.instanceWithRelations(instance.ID), nil
}

func (r *pollInstanceRepository) GetMany(ctx context.Context, filter repositories.PollInstanceFilter) ([]*models.PollInstance, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	d := r.state.data
	instances := d.filterInstances(filter)

	switch filter.OrderBy {
	case repositories.OrderByPollNumber:
		sort.Slice(instances, func(i, j int) bool {
			ni, nj := d.templates[instances[i].TemplateID].PollNumber, d.templates[instances[j].TemplateID].PollNumber
			if ni != nj {
				return ni < nj
			}
			return instances[i].ID < instances[j].ID
		})
	case repositories.OrderByPlannedDate:
		sort.Slice(instances, func(i, j int) bool {
			pi, pj := instances[i].DatePlannedAt, instances[j].DatePlannedAt
			switch {
			case pi == nil && pj == nil:
			case pi == nil:
				return false
			case pj == nil:
				return true
			case !pi.Equal(*pj):
				return pi.Before(*pj)
			}
			return instances[i].ID < instances[j].ID
		})
	default:
		sort.Slice(instances, func(i, j int) bool { return instances[i].ID < instances[j].ID })
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(instances) {
			instances = instances[:0]
		} else {
			instances = instances[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(instances) > filter.Limit {
		instances = instances[:filter.Limit]
	}

	result := make([]*models.PollInstance, 0, len(instances))
	for _, i := range instances {
		result = append(result, d.instanceWithRelations(i.ID))
	}
	return result, nil
}

func (r *pollInstanceRepository) Count(ctx context.Context, filter repositories.PollInstanceFilter) (int, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	return len(r.state.data.filterInstances(filter)), nil
}

func (r *pollInstanceRepository) DeleteMany(ctx context.Context, filter repositories.PollInstanceFilter) (int, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	d := r.state.data
	instances := d.filterInstances(filter)
	for _, i := range instances {
		d.deleteInstance(i.ID)
	}

	return len(instances), nil
}

func (d *data) insertInstance(request *models.PollInstance) {
	request.ID = d.newID()
	if request.Status == "" {
		request.Status = models.PollInstanceStatusNotStarted
	}
	d.instances[request.ID] = cloneInstance(request)
}

// deleteInstance mirrors the foreign keys: answers cascade, the rollup pointer is cleared.
func (d *data) deleteInstance(instanceID int64) {
	delete(d.instances, instanceID)

	for id, a := range d.answers {
		if a.PollInstanceID == instanceID {
			delete(d.answers, id)
		}
	}
	for _, e := range d.employees {
		if e.OnboardingStatusID != nil && *e.OnboardingStatusID == instanceID {
			e.OnboardingStatusID = nil
		}
	}
}

func (d *data) findInstance(employeeID, templateID int64, targetEmployeeID *int64) *models.PollInstance {
	for _, i := range d.instances {
		if i.EmployeeID == employeeID && i.TemplateID == templateID && models.SameTarget(i.TargetEmployeeID, targetEmployeeID) {
			return i
		}
	}
	return nil
}

func (d *data) instanceWithRelations(instanceID int64) *models.PollInstance {
	instance := cloneInstance(d.instances[instanceID])

	if t, ok := d.templates[instance.TemplateID]; ok {
		instance.Template = cloneTemplate(t)
	}
	if e, ok := d.employees[instance.EmployeeID]; ok {
		instance.Employee = cloneEmployee(e)
	}
	if instance.TargetEmployeeID != nil {
		if e, ok := d.employees[*instance.TargetEmployeeID]; ok {
			instance.TargetEmployee = cloneEmployee(e)
		}
	}

	return instance
}

func (d *data) filterInstances(filter repositories.PollInstanceFilter) []*models.PollInstance {
	instances := make([]*models.PollInstance, 0)
	for _, i := range d.instances {
		if d.matchInstance(i, filter) {
			instances = append(instances, i)
		}
	}
	return instances
}

func (d *data) matchInstance(i *models.PollInstance, filter repositories.PollInstanceFilter) bool {
	template := d.templates[i.TemplateID]

	if len(filter.IDs) > 0 && !slices.Contains(filter.IDs, i.ID) {
		return false
	}
	if filter.EmployeeID != 0 && i.EmployeeID != filter.EmployeeID {
		return false
	}
	if len(filter.TemplateIDs) > 0 && !slices.Contains(filter.TemplateIDs, i.TemplateID) {
		return false
	}
	if filter.InvolvingEmployeeID != 0 && i.EmployeeID != filter.InvolvingEmployeeID && i.TargetID() != filter.InvolvingEmployeeID {
		return false
	}
	if filter.PersonalOnly && !i.IsPersonal() {
		return false
	}
	if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, i.Status) {
		return false
	}
	if len(filter.PollTypes) > 0 && (template == nil || !slices.Contains(filter.PollTypes, template.PollType)) {
		return false
	}
	if len(filter.ExcludePollTypes) > 0 && template != nil && slices.Contains(filter.ExcludePollTypes, template.PollType) {
		return false
	}
	if filter.TimeOfDay != "" && i.TimePlannedAt != filter.TimeOfDay {
		return false
	}
	if filter.Subject != nil {
		if template == nil || template.SubjectKind != filter.Subject.Kind {
			return false
		}
		if !filter.Subject.IsNone() && template.Subject().ID != filter.Subject.ID {
			return false
		}
	}
	if filter.PlannedBefore != nil && (i.DatePlannedAt == nil || !i.DatePlannedAt.Before(*filter.PlannedBefore)) {
		return false
	}
	if filter.PlannedOnOrBefore != nil && (i.DatePlannedAt == nil || i.DatePlannedAt.After(*filter.PlannedOnOrBefore)) {
		return false
	}
	if filter.StartedBefore != nil && (i.StartedAt == nil || !i.StartedAt.Before(*filter.StartedBefore)) {
		return false
	}
	if !filter.IncludeArchived && i.IsArchived {
		return false
	}
	return true
}
