package availability

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("availability: window not found")

var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// TimeOfDay is a zero padded 24h "HH:MM" local time. Zero padding makes
// lexicographic order equal to chronological order.
type TimeOfDay string

func ParseTimeOfDay(s string) (TimeOfDay, bool) {
	if !timeOfDayPattern.MatchString(s) {
		return "", false
	}
	return TimeOfDay(s), true
}

func (t TimeOfDay) Valid() bool {
	return timeOfDayPattern.MatchString(string(t))
}

// Minutes returns minutes since midnight. t must be valid.
func (t TimeOfDay) Minutes() int {
	s := string(t)
	return (int(s[0]-'0')*10+int(s[1]-'0'))*60 + int(s[3]-'0')*10 + int(s[4]-'0')
}

// On projects t onto the calendar date of day in loc.
func (t TimeOfDay) On(day time.Time, loc *time.Location) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(time.Duration(t.Minutes()) * time.Minute)
}

// Occurrence says when a window repeats. It is either Weekly or OnDate.
type Occurrence interface {
	Recurring() bool
	occurrence()
}

type Weekly struct {
	Day time.Weekday
}

func (Weekly) Recurring() bool { return true }
func (Weekly) occurrence() {}

// OnDate is a single calendar date, stored as midnight UTC.
type OnDate struct {
	Date time.Time
}

func NewOnDate(t time.Time) OnDate {
	y, m, d := t.Date()
	return OnDate{Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (OnDate) Recurring() bool { return false }
func (OnDate) occurrence() {}

func (o OnDate) String() string {
	return o.Date.Format(time.DateOnly)
}

// SameDiscriminator reports whether two occurrences can conflict at all:
// same weekday for recurring windows, same date for dated ones.
func SameDiscriminator(a, b Occurrence) bool {
	switch x := a.(type) {
	case Weekly:
		y, ok := b.(Weekly)
		return ok && x.Day == y.Day
	case OnDate:
		y, ok := b.(OnDate)
		return ok && x.Date.Equal(y.Date)
	}
	return false
}

type Window struct {
	ID           uuid.UUID
	InstructorID uuid.UUID
	When         Occurrence
	Start        TimeOfDay
	End          TimeOfDay
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Occurs reports whether the window applies on the given calendar day.
func (w Window) Occurs(day time.Time) bool {
	switch o := w.When.(type) {
	case Weekly:
		return day.Weekday() == o.Day
	case OnDate:
		return NewOnDate(day).Date.Equal(o.Date)
	}
	return false
}
