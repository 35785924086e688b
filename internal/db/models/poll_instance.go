package models

import "time"

// PollInstance tracks one employee going through one poll template, optionally about another employee.
type PollInstance struct {
	tableName struct{} `pg:"poll_instances"`

	ID               int64              `json:"id" pg:",pk"`
	EmployeeID       int64              `json:"employee_id" pg:",notnull"`
	TargetEmployeeID *int64             `json:"target_employee_id"`
	TemplateID       int64              `json:"template_id" pg:",notnull"`
	Status           PollInstanceStatus `json:"status" pg:",notnull,default:'not_started'"`
	StartedAt        *time.Time         `json:"started_at"`
	CompletedAt      *time.Time         `json:"completed_at"`
	DatePlannedAt    *time.Time         `json:"date_planned_at" pg:"type:date"`
	TimePlannedAt    TimeOfDay          `json:"time_planned_at"`
	CreatedByAdmin   bool               `json:"created_by_admin" pg:",notnull,use_zero"`
	IsArchived       bool               `json:"is_archived" pg:",notnull,use_zero"`
	CreatedAt        time.Time          `json:"created_at" pg:"default:now()"`

	Template       *PollTemplate `json:"template" pg:"rel:has-one"`
	Employee       *Employee     `json:"employee" pg:"rel:has-one"`
	TargetEmployee *Employee     `json:"target_employee" pg:"rel:has-one"`
}

// IsPersonal reports whether the poll is about the employee themself rather than a supervised colleague.
func (p *PollInstance) IsPersonal() bool {
	return p.TargetEmployeeID == nil
}

func (p *PollInstance) TargetID() int64 {
	if p.TargetEmployeeID == nil {
		return 0
	}
	return *p.TargetEmployeeID
}

// PlannedBefore reports whether the planned date is strictly before the given day.
func (p *PollInstance) PlannedBefore(day time.Time) bool {
	return p.DatePlannedAt != nil && p.DatePlannedAt.Before(day)
}

type Answer struct {
	tableName struct{} `pg:"answers"`

	ID                int64       `json:"id" pg:",pk"`
	EmployeeID        int64       `json:"employee_id" pg:",notnull"`
	TargetEmployeeID  *int64      `json:"target_employee_id"`
	QuestionID        int64       `json:"question_id" pg:",notnull"`
	PollInstanceID    int64       `json:"poll_instance_id" pg:",notnull"`
	Answer            string      `json:"answer" pg:",notnull"`
	Token             AnswerToken `json:"token" pg:",notnull"`
	RequiresAttention bool        `json:"requires_attention" pg:",notnull,use_zero"`
	CreatedAt         time.Time   `json:"created_at" pg:"default:now()"`
}

func Int64Ptr(v int64) *int64 {
	return &v
}

func SameTarget(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
