package calendar

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/availability"
	domainbooking "github.com/BruksfildServices01/tutor-scheduler/internal/domain/booking"
	domain "github.com/BruksfildServices01/tutor-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
	"github.com/BruksfildServices01/tutor-scheduler/internal/timezone"
)

const (
	SourceSessions     = "sessions"
	SourceAvailability = "availability"
	SourceRequests     = "requests"
)

type Input struct {
	Start time.Time
	End   time.Time
}

type Output struct {
	Events []domain.Event `json:"events"`

	// PartialFailures names the sources that could not be read. Events
	// from the other sources are still returned.
	PartialFailures []string `json:"partial_failures"`
}

type BuildCalendar struct {
	source  domain.Source
	loc     *time.Location
	maxDays int
	log     *zap.Logger
}

func NewBuildCalendar(source domain.Source, loc *time.Location, maxDays int, log *zap.Logger) *BuildCalendar {
	if loc == nil {
		loc = timezone.Location(timezone.DefaultTimezone)
	}
	return &BuildCalendar{source: source, loc: loc, maxDays: maxDays, log: log}
}

type fetched struct {
	sessions []models.Booking
	windows  []domain.WindowRow
	requests []models.SessionRequest
	errs     map[string]error
}

func (uc *BuildCalendar) Execute(ctx context.Context, in Input) (*Output, error) {
	if in.Start.IsZero() || in.End.IsZero() {
		return nil, httperr.Validation("missing_range", "start and end are required.")
	}
	if !in.Start.Before(in.End) {
		return nil, httperr.Validation("invalid_time_range", "start must be before end.")
	}
	if in.End.Sub(in.Start) > time.Duration(uc.maxDays)*24*time.Hour {
		return nil, httperr.Validation("range_too_large", fmt.Sprintf("The range may span at most %d days.", uc.maxDays))
	}

	f := uc.fetch(ctx, in.Start, in.End)

	out := &Output{PartialFailures: []string{}}
	for _, name := range []string{SourceSessions, SourceAvailability, SourceRequests} {
		if err := f.errs[name]; err != nil {
			uc.log.Warn("calendar source failed", zap.String("source", name), zap.Error(err))
			out.PartialFailures = append(out.PartialFailures, name)
		}
	}
	if len(out.PartialFailures) == 3 {
		return nil, httperr.Internal("calendar_failed", errors.Join(
			f.errs[SourceSessions], f.errs[SourceAvailability], f.errs[SourceRequests],
		))
	}

	events := make([]domain.Event, 0, len(f.sessions)+len(f.windows)+len(f.requests))
	events = append(events, sessionEvents(f.sessions)...)
	events = append(events, availabilityEvents(f.windows, in.Start, in.End, uc.loc)...)
	events = append(events, requestEvents(f.requests)...)

	slices.SortStableFunc(events, func(a, b domain.Event) int {
		return a.Start.Compare(b.Start)
	})

	out.Events = events
	return out, nil
}

// fetch reads the three sources concurrently. Each failure is kept apart.
func (uc *BuildCalendar) fetch(ctx context.Context, start, end time.Time) fetched {
	var wg sync.WaitGroup
	var mu sync.Mutex
	f := fetched{errs: make(map[string]error)}

	record := func(name string, err error) {
		if err != nil {
			mu.Lock()
			f.errs[name] = err
			mu.Unlock()
		}
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		rows, err := uc.source.ListSessions(ctx, start, end)
		f.sessions = rows
		record(SourceSessions, err)
	}()
	go func() {
		defer wg.Done()
		rows, err := uc.source.ListActiveWindows(ctx, start, end)
		f.windows = rows
		record(SourceAvailability, err)
	}()
	go func() {
		defer wg.Done()
		rows, err := uc.source.ListPendingRequests(ctx, start, end)
		f.requests = rows
		record(SourceRequests, err)
	}()
	wg.Wait()

	return f
}

type sessionKey struct {
	instructor string
	start, end int64
}

// sessionEvents folds GROUP bookings sharing instructor and time into one
// event carrying the attendee count.
func sessionEvents(bookings []models.Booking) []domain.Event {
	var out []domain.Event
	groups := make(map[sessionKey]int)

	for _, b := range bookings {
		if b.Status == string(domainbooking.StatusCancelled) {
			continue
		}

		if b.Type == string(domainbooking.TypeGroup) {
			key := sessionKey{b.InstructorID.String(), b.StartsAt.Unix(), b.EndsAt.Unix()}
			if i, ok := groups[key]; ok {
				out[i].AttendeeCount++
				continue
			}
			groups[key] = len(out)
		}

		title := "1:1 session with " + b.Instructor.Name
		if b.Type == string(domainbooking.TypeGroup) {
			title = "Group session with " + b.Instructor.Name
		}

		out = append(out, domain.Event{
			ID:             b.ID.String(),
			Title:          title,
			Type:           domain.EventSession,
			Start:          b.StartsAt,
			End:            b.EndsAt,
			InstructorID:   b.InstructorID,
			InstructorName: b.Instructor.Name,
			AttendeeCount:  1,
			Color:          domain.ColorSession,
		})
	}
	return out
}

// availabilityEvents projects windows onto concrete days inside the range.
// Recurring windows produce one event per matching weekday.
func availabilityEvents(rows []domain.WindowRow, start, end time.Time, loc *time.Location) []domain.Event {
	var out []domain.Event

	add := func(row domain.WindowRow, day time.Time, id string) {
		s, e := row.Window.Start.On(day, loc), row.Window.End.On(day, loc)
		if s.After(end) || e.Before(start) {
			return
		}
		out = append(out, domain.Event{
			ID:             id,
			Title:          "Available: " + row.InstructorName,
			Type:           domain.EventAvailability,
			Start:          s,
			End:            e,
			InstructorID:   row.Window.InstructorID,
			InstructorName: row.InstructorName,
			Color:          domain.ColorAvailability,
		})
	}

	days := timezone.Days(start, end, loc)
	for _, row := range rows {
		if !row.Window.Active {
			continue
		}
		switch o := row.Window.When.(type) {
		case availability.Weekly:
			for _, day := range days {
				if row.Window.Occurs(day) {
					add(row, day, fmt.Sprintf("%s:%s", row.Window.ID, day.Format(time.DateOnly)))
				}
			}
		case availability.OnDate:
			add(row, o.Date, row.Window.ID.String())
		}
	}
	return out
}

// requestEvents uses creation time as a placeholder start since no time
// has been committed yet.
func requestEvents(requests []models.SessionRequest) []domain.Event {
	out := make([]domain.Event, 0, len(requests))
	for _, r := range requests {
		out = append(out, domain.Event{
			ID:             r.ID.String(),
			Title:          fmt.Sprintf("Request: %s -> %s", r.Student.Name, r.Instructor.Name),
			Type:           domain.EventRequest,
			Start:          r.CreatedAt,
			End:            r.CreatedAt.Add(domain.RequestPlaceholder),
			InstructorID:   r.InstructorID,
			InstructorName: r.Instructor.Name,
			Color:          domain.ColorRequest,
		})
	}
	return out
}
