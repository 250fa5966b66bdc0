package availability

import (
	"errors"

	domain "github.com/BruksfildServices01/tutor-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httperr"
)

func errInstructorNotFound() error {
	return httperr.NotFound("instructor_not_found", "Instructor not found.")
}

func errWindowNotFound() error {
	return httperr.NotFound("window_not_found", "Availability window not found.")
}

func errNotOwner() error {
	return httperr.Forbidden("not_window_owner", "You can only manage your own availability.")
}

func storeErr(code string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return errWindowNotFound()
	}
	return httperr.FromStore(code, err)
}

func validateRange(start, end string) (domain.TimeOfDay, domain.TimeOfDay, error) {
	s, ok := domain.ParseTimeOfDay(start)
	if !ok {
		return "", "", httperr.Validation("invalid_time_format", "start_time must be HH:MM.")
	}
	e, ok := domain.ParseTimeOfDay(end)
	if !ok {
		return "", "", httperr.Validation("invalid_time_format", "end_time must be HH:MM.")
	}
	if s >= e {
		return "", "", httperr.Validation("invalid_time_range", "start_time must be before end_time.")
	}
	return s, e, nil
}
