package services

import (
	"errors"
	"fmt"
)

// Data integrity errors. They point at a malformed question graph and are never retried.
var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrTemplateNotFound = errors.New("poll template not found")
)

// Business rule kinds, matched with errors.Is against a *RuleError.
var (
	ErrEmployeeNotRegistered = errors.New("employee is not registered")
	ErrPollNotFound          = errors.New("poll instance not found")
	ErrPollCompleted         = errors.New("poll instance already completed")
	ErrPollNotStartable      = errors.New("poll instance cannot be started")
	ErrPollNotActive         = errors.New("poll instance is not active")
	ErrSessionOpen           = errors.New("another poll is in progress")
	ErrNoOpenSession         = errors.New("no poll in progress")
	ErrOutOfSequence         = errors.New("previous poll is not completed")
	ErrStaleQuestion         = errors.New("question is not the current one")
	ErrInvalidAnswer         = errors.New("answer does not fit the question")
	ErrRoleMismatch          = errors.New("template is intended for another role")
	ErrTargetNotAllowed      = errors.New("target employee is not allowed for this template")
	ErrTemplateDeleted       = errors.New("template is deleted")
	ErrDuplicatePoll         = errors.New("poll instance already exists")
	ErrInvalidRegistration   = errors.New("registration code is invalid")
)

// RuleError is a rejected operation with a reason that can be shown to the user as is.
type RuleError struct {
	Kind   error
	Reason string
}

func newRuleError(kind error, reason string) *RuleError {
	return &RuleError{Kind: kind, Reason: reason}
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *RuleError) Unwrap() error {
	return e.Kind
}

// Reason extracts the user facing text, ok is false for anything but a rule violation.
func Reason(err error) (string, bool) {
	var ruleErr *RuleError
	if errors.As(err, &ruleErr) {
		return ruleErr.Reason, true
	}
	return "", false
}
