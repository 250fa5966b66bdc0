package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/request"
	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

// CalendarGormSource is the read-only side used by the calendar.
type CalendarGormSource struct {
	db *gorm.DB
}

func NewCalendarGormSource(db *gorm.DB) *CalendarGormSource {
	return &CalendarGormSource{db: db}
}

func (s *CalendarGormSource) ListSessions(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var out []models.Booking
	if err := s.db.WithContext(ctx).
		Preload("Instructor").
		Where(
			"status <> ? AND starts_at <= ? AND ends_at >= ?",
			string(booking.StatusCancelled),
			end,
			start,
		).
		Order("starts_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}

	return out, nil
}

type windowWithInstructor struct {
	models.AvailabilityWindow
	InstructorName string
}

func (s *CalendarGormSource) ListActiveWindows(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]calendar.WindowRow, error) {

	from, to := specificDateBounds(start, end)

	var rows []windowWithInstructor
	if err := s.db.WithContext(ctx).
		Table("availability_windows AS w").
		Select("w.*, u.name AS instructor_name").
		Joins("JOIN users u ON u.id = w.instructor_id").
		Where("w.is_active = ?", true).
		Where(
			"w.day_of_week IS NOT NULL OR w.specific_date BETWEEN ? AND ?",
			from,
			to,
		).
		Order("w.instructor_id, " + windowOrder).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]calendar.WindowRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, calendar.WindowRow{
			Window:         windowFromRow(row.AvailabilityWindow),
			InstructorName: row.InstructorName,
		})
	}

	return out, nil
}

// specificDateBounds pads the range by a day on each side. Dated windows
// are local to the app timezone, so a UTC bound can miss the neighbouring
// local day; the calendar trims anything outside the range.
func specificDateBounds(start, end time.Time) (datatypes.Date, datatypes.Date) {
	return datatypes.Date(start.AddDate(0, 0, -1)), datatypes.Date(end.AddDate(0, 0, 1))
}

func (s *CalendarGormSource) ListPendingRequests(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.SessionRequest, error) {

	var out []models.SessionRequest
	if err := s.db.WithContext(ctx).
		Preload("Student").
		Preload("Instructor").
		Where(
			"status = ? AND created_at BETWEEN ? AND ?",
			string(request.StatusPending),
			start,
			end,
		).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}

	return out, nil
}

// Compile-time check
var _ calendar.Source = (*CalendarGormSource)(nil)
