package repositories

import (
	"context"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

// Store groups the repositories so a service can run several of them inside one transaction.
type Store interface {
	Employees() EmployeeRepository
	Projects() ProjectRepository
	Curators() CuratorRepository
	Templates() TemplateRepository
	PollInstances() PollInstanceRepository
	Answers() AnswerRepository

	RunInTransaction(ctx context.Context, fn func(tx Store) error) error
}

type store struct {
	db   *pg.DB
	conn orm.DB
}

func NewStore(db *pg.DB) Store {
	return &store{db: db, conn: db}
}

func (s *store) Employees() EmployeeRepository {
	return NewEmployeeRepository(s.conn)
}

func (s *store) Projects() ProjectRepository {
	return NewProjectRepository(s.conn)
}

func (s *store) Curators() CuratorRepository {
	return NewCuratorRepository(s.conn)
}

func (s *store) Templates() TemplateRepository {
	return NewTemplateRepository(s.conn)
}

func (s *store) PollInstances() PollInstanceRepository {
	return NewPollInstanceRepository(s.conn)
}

func (s *store) Answers() AnswerRepository {
	return NewAnswerRepository(s.conn)
}

func (s *store) RunInTransaction(ctx context.Context, fn func(tx Store) error) error {
	// nested calls join the outer transaction
	if s.db == nil {
		return fn(s)
	}

	return s.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		return fn(&store{conn: tx})
	})
}
