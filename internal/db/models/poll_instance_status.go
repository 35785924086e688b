package models

import "fmt"

// PollInstanceStatus represents where a poll instance is in its lifecycle.
type PollInstanceStatus string

const (
	PollInstanceStatusNotStarted PollInstanceStatus = "not_started"
	PollInstanceStatusInProgress PollInstanceStatus = "in_progress"
	PollInstanceStatusInFrozen   PollInstanceStatus = "in_frozen"
	PollInstanceStatusExpired    PollInstanceStatus = "expired"
	PollInstanceStatusCompleted  PollInstanceStatus = "completed"
)

func (s PollInstanceStatus) String() string { return string(s) }

// DisplayName is the label shown to users and administrators.
func (s PollInstanceStatus) DisplayName() string {
	switch s {
	case PollInstanceStatusNotStarted:
		return "Не начат"
	case PollInstanceStatusInProgress:
		return "В процессе"
	case PollInstanceStatusInFrozen:
		return "Заморожен"
	case PollInstanceStatusExpired:
		return "Просрочен"
	case PollInstanceStatusCompleted:
		return "Завершен"
	default:
		return "-"
	}
}

// IsStartable reports whether a poll in this status can be launched from the chat.
func (s PollInstanceStatus) IsStartable() bool {
	return s == PollInstanceStatusNotStarted || s == PollInstanceStatusExpired
}

func (s PollInstanceStatus) IsTerminal() bool {
	return s == PollInstanceStatusCompleted
}

// ValidateTransition checks if a status transition is valid and returns an error if not.
func (s PollInstanceStatus) ValidateTransition(target PollInstanceStatus) error {
	if !s.isValidTransition(target) {
		return fmt.Errorf("invalid poll instance status transition from %s to %s", s, target)
	}
	return nil
}

func (s PollInstanceStatus) isValidTransition(target PollInstanceStatus) bool {
	switch s {
	case PollInstanceStatusNotStarted:
		return target == PollInstanceStatusInProgress || target == PollInstanceStatusExpired
	case PollInstanceStatusInProgress:
		// Cancel lands on not_started or expired depending on the planned date.
		return target == PollInstanceStatusInFrozen ||
			target == PollInstanceStatusCompleted ||
			target == PollInstanceStatusNotStarted ||
			target == PollInstanceStatusExpired
	case PollInstanceStatusInFrozen:
		return target == PollInstanceStatusInProgress ||
			target == PollInstanceStatusNotStarted ||
			target == PollInstanceStatusExpired
	case PollInstanceStatusExpired:
		return target == PollInstanceStatusInProgress || target == PollInstanceStatusNotStarted
	case PollInstanceStatusCompleted:
		return false
	default:
		return false
	}
}
