package models

import "time"

type (
	PollType     string
	UserType     string
	TimeOfDay    string
	QuestionType string
	AnswerToken  string
)

func (p PollType) String() string {
	return string(p)
}

func (t TimeOfDay) String() string {
	return string(t)
}

const (
	PollTypeOnboarding           PollType = "onboarding"
	PollTypeOffboarding          PollType = "offboarding"
	PollTypeFeedback             PollType = "feedback"
	PollTypeIntermediateFeedback PollType = "intermediate_feedback"

	UserTypeEmployee UserType = "employee"
	UserTypeCurator  UserType = "curator"

	TimeOfDayMorning TimeOfDay = "morning"
	TimeOfDayEvening TimeOfDay = "evening"

	QuestionTypeYesNo   QuestionType = "yes_no"
	QuestionTypeFinish  QuestionType = "finish"
	QuestionTypeMessage QuestionType = "message"
	QuestionTypeNext    QuestionType = "next"
	QuestionTypeNumbers QuestionType = "numbers"
	QuestionTypeSlots   QuestionType = "slots"

	AnswerTokenYes      AnswerToken = "yes"
	AnswerTokenNo       AnswerToken = "no"
	AnswerTokenSomeText AnswerToken = "some_text"
	AnswerTokenNext     AnswerToken = "next"
	AnswerTokenOne      AnswerToken = "1"
	AnswerTokenTwo      AnswerToken = "2"
	AnswerTokenThree    AnswerToken = "3"
	AnswerTokenFour     AnswerToken = "4"
	AnswerTokenFive     AnswerToken = "5"
)

var PollTypes = []PollType{
	PollTypeOnboarding,
	PollTypeOffboarding,
	PollTypeFeedback,
	PollTypeIntermediateFeedback,
}

func (p PollType) IsValid() bool {
	for _, t := range PollTypes {
		if p == t {
			return true
		}
	}
	return false
}

func (t TimeOfDay) IsValid() bool {
	return t == TimeOfDayMorning || t == TimeOfDayEvening
}

func (t AnswerToken) IsValid() bool {
	switch t {
	case AnswerTokenYes, AnswerTokenNo, AnswerTokenSomeText, AnswerTokenNext,
		AnswerTokenOne, AnswerTokenTwo, AnswerTokenThree, AnswerTokenFour, AnswerTokenFive:
		return true
	}
	return false
}

type PollTemplate struct {
	tableName struct{} `pg:"poll_templates"`

	ID            int64       `json:"id" pg:",pk"`
	Title         string      `json:"title" pg:",notnull"`
	Message       string      `json:"message" pg:",notnull"`
	DaysAfterHire int         `json:"days_after_hire" pg:",notnull,use_zero"`
	TimeOfDay     TimeOfDay   `json:"time_of_day" pg:",notnull,default:'morning'"`
	IntendedFor   UserType    `json:"intended_for" pg:",notnull,default:'employee'"`
	PollType      PollType    `json:"poll_type" pg:",notnull,default:'onboarding'"`
	PollNumber    int         `json:"poll_number" pg:",notnull,use_zero"`
	SubjectKind   SubjectKind `json:"subject_kind" pg:",notnull,use_zero"`
	SubjectID     *int64      `json:"subject_id"`
	IsDeleted     bool        `json:"is_deleted" pg:",notnull,use_zero"`
	DeletedAt     *time.Time  `json:"deleted_at"`
	Questions     []*Question `json:"questions" pg:"rel:has-many,join_fk:template_id"`
}

func (t *PollTemplate) Subject() SubjectRef {
	ref := SubjectRef{Kind: t.SubjectKind}
	if t.SubjectID != nil {
		ref.ID = *t.SubjectID
	}
	return ref
}

func (t *PollTemplate) SetSubject(ref SubjectRef) {
	t.SubjectKind = ref.Kind
	if ref.Kind == SubjectKindNone {
		t.SubjectID = nil
		return
	}
	id := ref.ID
	t.SubjectID = &id
}

// BypassesSequence reports whether the template can be started regardless of its predecessor.
func (t *PollTemplate) BypassesSequence() bool {
	return t.PollNumber <= 1 || t.IsDeleted || t.PollType == PollTypeIntermediateFeedback
}

type Question struct {
	tableName struct{} `pg:"questions"`

	ID                int64        `json:"id" pg:",pk"`
	TemplateID        int64        `json:"template_id" pg:",notnull"`
	Text              string       `json:"text" pg:",notnull"`
	Type              QuestionType `json:"type" pg:"question_type,notnull"`
	CategoryAnalytics *string      `json:"category_analytics"`
	Show              bool         `json:"show" pg:",notnull,use_zero"`
}

func (q *Question) IsFinish() bool {
	return q.Type == QuestionTypeFinish
}

// QuestionCondition is a directed edge PreviousQuestionID -> QuestionID taken when the answer matches AnswerCondition.
type QuestionCondition struct {
	tableName struct{} `pg:"question_conditions"`

	ID                 int64       `json:"id" pg:",pk"`
	QuestionID         int64       `json:"question_id" pg:",notnull"`
	PreviousQuestionID int64       `json:"previous_question_id" pg:",notnull"`
	AnswerCondition    AnswerToken `json:"answer_condition" pg:",notnull"`
}
