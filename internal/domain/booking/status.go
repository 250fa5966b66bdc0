package booking

import "errors"

var ErrNotFound = errors.New("booking: not found")

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusNoShow    Status = "NO_SHOW"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Terminal states are absorbing for a booking instance.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// IsForward reports whether moving from -> to follows the lifecycle
// SCHEDULED -> {COMPLETED, CANCELLED, NO_SHOW}. Staying put is forward.
func IsForward(from, to Status) bool {
	if from == to {
		return true
	}
	return from == StatusScheduled && to.Terminal()
}

func InitialStatus() Status {
	return StatusScheduled
}

type Type string

const (
	TypeOneOnOne Type = "ONE_ON_ONE"
	TypeGroup    Type = "GROUP"
)

func (t Type) Valid() bool {
	return t == TypeOneOnOne || t == TypeGroup
}
