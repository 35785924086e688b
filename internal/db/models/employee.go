package models

import "time"

type (
	EmployeeRole   string
	EmployeeStatus string
	RiskStatus     string
)

func (r EmployeeRole) String() string {
	return string(r)
}

const (
	EmployeeRoleAdmin    EmployeeRole = "admin"
	EmployeeRoleHR       EmployeeRole = "hr"
	EmployeeRoleCurator  EmployeeRole = "curator"
	EmployeeRoleEmployee EmployeeRole = "employee"

	EmployeeStatusOnboarding  EmployeeStatus = "onboarding"
	EmployeeStatusOffboarding EmployeeStatus = "offboarding"
	EmployeeStatusAdapted     EmployeeStatus = "adapted"
	EmployeeStatusFired       EmployeeStatus = "fired"

	RiskStatusRiskZone   RiskStatus = "riskzone"
	RiskStatusObservable RiskStatus = "observable"
	RiskStatusNoProblem  RiskStatus = "noproblem"
)

// InterviewSession is the chat-side cursor of the poll an employee is answering right now.
type InterviewSession struct {
	PollInstanceID int64 `json:"poll_instance_id"`
	QuestionID     int64 `json:"question_id"`
}

type Employee struct {
	tableName struct{} `pg:"employees"`

	ID                 int64             `json:"id" pg:",pk"`
	FullName           string            `json:"full_name" pg:",notnull"`
	Role               EmployeeRole      `json:"role" pg:",notnull,default:'employee'"`
	TelegramNickname   string            `json:"telegram_nickname"`
	TelegramUserID     *int64            `json:"telegram_user_id" pg:",unique"`
	RegistrationCode   string            `json:"registration_code" pg:",notnull,unique"`
	DateOfEmployment   *time.Time        `json:"date_of_employment" pg:"type:date"`
	DateOfDismission   *time.Time        `json:"date_of_dismission" pg:"type:date"`
	DateMeeting        *time.Time        `json:"date_meeting"`
	Status             EmployeeStatus    `json:"status" pg:",notnull,default:'onboarding'"`
	RiskStatus         RiskStatus        `json:"risk_status" pg:",notnull,default:'noproblem'"`
	IsCuratorEmployee  bool              `json:"is_curator_employee" pg:",notnull,use_zero"`
	OnboardingStatusID *int64            `json:"onboarding_status_id"`
	Session            *InterviewSession `json:"session" pg:"type:jsonb"`
	IsArchived         bool              `json:"is_archived" pg:",notnull,use_zero"`
	IsDeleted          bool              `json:"is_deleted" pg:",notnull,use_zero"`
	DeletedAt          *time.Time        `json:"deleted_at"`
	CreatedAt          time.Time         `json:"created_at" pg:"default:now()"`
}

// ChatID returns the Telegram chat of the employee, zero when the employee never registered in the bot.
func (e *Employee) ChatID() int64 {
	if e == nil || e.TelegramUserID == nil {
		return 0
	}
	return *e.TelegramUserID
}

// UserType maps the employee role onto the audience a poll template is intended for.
func (e *Employee) UserType() UserType {
	if e.Role == EmployeeRoleCurator {
		return UserTypeCurator
	}
	return UserTypeEmployee
}

func (e *Employee) HasOpenSession() bool {
	return e.Session != nil && e.Session.PollInstanceID != 0
}

type Project struct {
	tableName struct{} `pg:"projects"`

	ID        int64      `json:"id" pg:",pk"`
	Name      string     `json:"name" pg:",notnull"`
	DateStart *time.Time `json:"date_start" pg:"type:date"`
	DateEnd   *time.Time `json:"date_end" pg:"type:date"`
	IsDeleted bool       `json:"is_deleted" pg:",notnull,use_zero"`
	DeletedAt *time.Time `json:"deleted_at"`
	CreatedAt time.Time  `json:"created_at" pg:"default:now()"`
}

type ProjectAssignment struct {
	tableName struct{} `pg:"project_assignments"`

	ID               int64      `json:"id" pg:",pk"`
	EmployeeID       int64      `json:"employee_id" pg:",notnull"`
	ProjectID        int64      `json:"project_id" pg:",notnull"`
	DateOfEmployment *time.Time `json:"date_of_employment" pg:"type:date"`
}

type CuratorLink struct {
	tableName struct{} `pg:"curator_links"`

	ID         int64 `json:"id" pg:",pk"`
	CuratorID  int64 `json:"curator_id" pg:",notnull"`
	EmployeeID int64 `json:"employee_id" pg:",notnull"`
}
