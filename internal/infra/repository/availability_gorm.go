package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

const windowOrder = "day_of_week IS NULL, day_of_week, specific_date, start_time"

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *AvailabilityGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx availability.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AvailabilityGormRepository{db: tx})
	})
}

// LockInstructor takes a transaction scoped advisory lock keyed by the
// instructor id. Outside a transaction it is released immediately.
func (r *AvailabilityGormRepository) LockInstructor(
	ctx context.Context,
	instructorID uuid.UUID,
) error {
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", instructorID.String()).
		Error
}

// --------------------------------------------------
// Instructor
// --------------------------------------------------

func (r *AvailabilityGormRepository) InstructorExists(
	ctx context.Context,
	instructorID uuid.UUID,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role = ?", instructorID, string(identity.RoleInstructor)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Windows
// --------------------------------------------------

func (r *AvailabilityGormRepository) ListByInstructor(
	ctx context.Context,
	instructorID uuid.UUID,
	activeOnly bool,
) ([]availability.Window, error) {

	q := r.db.WithContext(ctx).Where("instructor_id = ?", instructorID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var rows []models.AvailabilityWindow
	if err := q.Order(windowOrder).Find(&rows).Error; err != nil {
		return nil, err
	}
	return windowsFromRows(rows), nil
}

func (r *AvailabilityGormRepository) ListActiveMatching(
	ctx context.Context,
	instructorID uuid.UUID,
	when availability.Occurrence,
) ([]availability.Window, error) {

	q := r.db.WithContext(ctx).
		Where("instructor_id = ? AND is_active = ?", instructorID, true)

	switch o := when.(type) {
	case availability.Weekly:
		q = q.Where("day_of_week = ?", int16(o.Day))
	case availability.OnDate:
		q = q.Where("specific_date = ?", datatypes.Date(o.Date))
	default:
		return nil, nil
	}

	var rows []models.AvailabilityWindow
	if err := q.Order("start_time").Find(&rows).Error; err != nil {
		return nil, err
	}
	return windowsFromRows(rows), nil
}

func (r *AvailabilityGormRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*availability.Window, error) {

	var row models.AvailabilityWindow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, availability.ErrNotFound
		}
		return nil, err
	}

	w := windowFromRow(row)
	return &w, nil
}

func (r *AvailabilityGormRepository) Create(
	ctx context.Context,
	w *availability.Window,
) error {

	row := rowFromWindow(*w)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}

	*w = windowFromRow(row)
	return nil
}

func (r *AvailabilityGormRepository) Update(
	ctx context.Context,
	w *availability.Window,
) error {

	row := rowFromWindow(*w)
	row.UpdatedAt = time.Now()

	res := r.db.WithContext(ctx).
		Model(&models.AvailabilityWindow{ID: w.ID}).
		Select("start_time", "end_time", "is_active", "updated_at").
		Updates(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return availability.ErrNotFound
	}

	w.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *AvailabilityGormRepository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {

	res := r.db.WithContext(ctx).Delete(&models.AvailabilityWindow{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return availability.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Mapping
// --------------------------------------------------

func windowFromRow(m models.AvailabilityWindow) availability.Window {
	w := availability.Window{
		ID:           m.ID,
		InstructorID: m.InstructorID,
		Start:        availability.TimeOfDay(m.StartTime),
		End:          availability.TimeOfDay(m.EndTime),
		Active:       m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}

	switch {
	case m.DayOfWeek != nil:
		w.When = availability.Weekly{Day: time.Weekday(*m.DayOfWeek)}
	case m.SpecificDate != nil:
		w.When = availability.NewOnDate(time.Time(*m.SpecificDate))
	}

	return w
}

func windowsFromRows(rows []models.AvailabilityWindow) []availability.Window {
	out := make([]availability.Window, 0, len(rows))
	for _, row := range rows {
		out = append(out, windowFromRow(row))
	}
	return out
}

func rowFromWindow(w availability.Window) models.AvailabilityWindow {
	m := models.AvailabilityWindow{
		ID:           w.ID,
		InstructorID: w.InstructorID,
		StartTime:    string(w.Start),
		EndTime:      string(w.End),
		IsActive:     w.Active,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}

	switch o := w.When.(type) {
	case availability.Weekly:
		day := int16(o.Day)
		m.DayOfWeek = &day
	case availability.OnDate:
		date := datatypes.Date(o.Date)
		m.SpecificDate = &date
	}

	return m
}

// Compile-time check
var _ availability.Repository = (*AvailabilityGormRepository)(nil)
