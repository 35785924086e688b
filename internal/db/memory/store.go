// Package memory keeps the whole data set in process memory. Used by tests and local runs without PostgreSQL.
package memory

import (
	"context"
	"sync"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/db/repositories"
)

type data struct {
	nextID int64

	employees   map[int64]*models.Employee
	projects    map[int64]*models.Project
	assignments map[int64]*models.ProjectAssignment
	links       map[int64]*models.CuratorLink
	templates   map[int64]*models.PollTemplate
	questions   map[int64]*models.Question
	conditions  map[int64]*models.QuestionCondition
	instances   map[int64]*models.PollInstance
	answers     map[int64]*models.Answer
}

func newData() *data {
	return &data{
		employees:   make(map[int64]*models.Employee),
		projects:    make(map[int64]*models.Project),
		assignments: make(map[int64]*models.ProjectAssignment),
		links:       make(map[int64]*models.CuratorLink),
		templates:   make(map[int64]*models.PollTemplate),
		questions:   make(map[int64]*models.Question),
		conditions:  make(map[int64]*models.QuestionCondition),
		instances:   make(map[int64]*models.PollInstance),
		answers:     make(map[int64]*models.Answer),
	}
}

func (d *data) newID() int64 {
	d.nextID++
	return d.nextID
}

func (d *data) clone() *data {
	c := newData()
	c.nextID = d.nextID
	for id, v := range d.employees {
		c.employees[id] = cloneEmployee(v)
	}
	for id, v := range d.projects {
		p := *v
		c.projects[id] = &p
	}
	for id, v := range d.assignments {
		a := *v
		c.assignments[id] = &a
	}
	for id, v := range d.links {
		l := *v
		c.links[id] = &l
	}
	for id, v := range d.templates {
		c.templates[id] = cloneTemplate(v)
	}
	for id, v := range d.questions {
		q := *v
		c.questions[id] = &q
	}
	for id, v := range d.conditions {
		cond := *v
		c.conditions[id] = &cond
	}
	for id, v := range d.instances {
		c.instances[id] = cloneInstance(v)
	}
	for id, v := range d.answers {
		a := *v
		c.answers[id] = &a
	}
	return c
}

type state struct {
	mu   sync.Mutex
	txMu sync.Mutex
	data *data
}

// Store implements repositories.Store. Transactions are serialized and roll back to a snapshot on error.
type Store struct {
	state *state
	inTx  bool
}

var _ repositories.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{state: &state{data: newData()}}
}

func (s *Store) Employees() repositories.EmployeeRepository {
	return &employeeRepository{state: s.state}
}

func (s *Store) Projects() repositories.ProjectRepository {
	return &projectRepository{state: s.state}
}

func (s *Store) Curators() repositories.CuratorRepository {
	return &curatorRepository{state: s.state}
}

func (s *Store) Templates() repositories.TemplateRepository {
	return &templateRepository{state: s.state}
}

func (s *Store) PollInstances() repositories.PollInstanceRepository {
	return &pollInstanceRepository{state: s.state}
}

func (s *Store) Answers() repositories.AnswerRepository {
	return &answerRepository{state: s.state}
}

func (s *Store) RunInTransaction(ctx context.Context, fn func(tx repositories.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	s.state.txMu.Lock()
	defer s.state.txMu.Unlock()

	s.state.mu.Lock()
	snapshot := s.state.data.clone()
	s.state.mu.Unlock()

	if err := fn(&Store{state: s.state, inTx: true}); err != nil {
		s.state.mu.Lock()
		s.state.data = snapshot
		s.state.mu.Unlock()
		return err
	}

	return nil
}

func cloneEmployee(e *models.Employee) *models.Employee {
	c := *e
	if e.Session != nil {
		session := *e.Session
		c.Session = &session
	}
	return &c
}

func cloneTemplate(t *models.PollTemplate) *models.PollTemplate {
	c := *t
	c.Questions = nil
	return &c
}

func cloneInstance(i *models.PollInstance) *models.PollInstance {
	c := *i
	c.Template = nil
	c.Employee = nil
	c.TargetEmployee = nil
	return &c
}
