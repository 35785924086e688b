package models

import "fmt"

type SubjectKind string

const (
	SubjectKindNone    SubjectKind = ""
	SubjectKindProject SubjectKind = "project"
)

// SubjectRef scopes a poll template to the entity it was written for.
type SubjectRef struct {
	Kind SubjectKind
	ID   int64
}

func NoSubject() SubjectRef {
	return SubjectRef{Kind: SubjectKindNone}
}

func ProjectSubject(projectID int64) SubjectRef {
	return SubjectRef{Kind: SubjectKindProject, ID: projectID}
}

func (s SubjectRef) IsNone() bool {
	return s.Kind == SubjectKindNone
}

func (s SubjectRef) Validate() error {
	switch s.Kind {
	case SubjectKindNone:
		if s.ID != 0 {
			return fmt.Errorf("subject without kind must not carry id %d", s.ID)
		}
		return nil
	case SubjectKindProject:
		if s.ID <= 0 {
			return fmt.Errorf("project subject requires a positive id, got %d", s.ID)
		}
		return nil
	default:
		return fmt.Errorf("unknown subject kind %q", s.Kind)
	}
}

func (s SubjectRef) String() string {
	if s.IsNone() {
		return "none"
	}
	return fmt.Sprintf("%s:%d", s.Kind, s.ID)
}
