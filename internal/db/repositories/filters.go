package repositories

import (
	"time"

	"onboarding_poll_system/internal/db/models"
)

type EmployeeFilter struct {
	IDs             []int64
	Roles           []models.EmployeeRole
	Statuses        []models.EmployeeStatus
	WithChatOnly    bool
	IncludeArchived bool
	IncludeDeleted  bool
}

type AssignmentFilter struct {
	EmployeeIDs   []int64
	ProjectID     int64
	WithStartDate bool
}

type CuratorLinkFilter struct {
	CuratorID  int64
	EmployeeID int64
}

type TemplateFilter struct {
	PollTypes      []models.PollType
	IntendedFor    models.UserType
	Subject        *models.SubjectRef
	PollNumber     int
	IncludeDeleted bool
}

type InstanceOrder int

const (
	OrderByID InstanceOrder = iota
	OrderByPollNumber
	OrderByPlannedDate
)

type PollInstanceFilter struct {
	IDs         []int64
	EmployeeID  int64
	TemplateIDs []int64
	// InvolvingEmployeeID matches instances answered by or about the employee.
	InvolvingEmployeeID int64
	PersonalOnly        bool
	Statuses            []models.PollInstanceStatus
	PollTypes           []models.PollType
	ExcludePollTypes    []models.PollType
	TimeOfDay           models.TimeOfDay
	Subject             *models.SubjectRef
	PlannedBefore       *time.Time
	PlannedOnOrBefore   *time.Time
	StartedBefore       *time.Time
	IncludeArchived     bool

	OrderBy InstanceOrder
	Limit   int
	Offset  int
}
