package testfixtures

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/tutor-scheduler/internal/audit"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/tutor-scheduler/internal/entitlement"
	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

// Entitlements answers IsEntitled from an in-memory set.
type Entitlements struct {
	Err error

	mu          sync.Mutex
	granted     map[uuid.UUID]bool
	Checked     []uuid.UUID
	Invalidated []uuid.UUID
}

func NewEntitlements() *Entitlements {
	return &Entitlements{granted: make(map[uuid.UUID]bool)}
}

func (e *Entitlements) Grant(id uuid.UUID) {
	e.mu.Lock()
	e.granted[id] = true
	e.mu.Unlock()
}

func (e *Entitlements) Revoke(id uuid.UUID) {
	e.mu.Lock()
	delete(e.granted, id)
	e.mu.Unlock()
}

func (e *Entitlements) IsEntitled(ctx context.Context, id uuid.UUID) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Checked = append(e.Checked, id)
	if e.Err != nil {
		return false, e.Err
	}
	return e.granted[id], nil
}

// SetStatus stores a subscription status the way the admin endpoint does:
// entitled statuses grant, anything else revokes.
func (e *Entitlements) SetStatus(ctx context.Context, userID uuid.UUID, status string, periodEnd *time.Time) (*models.Subscription, error) {
	if !models.ValidSubscriptionStatus(status) {
		return nil, entitlement.ErrInvalidStatus
	}

	if slices.Contains(entitlement.EntitledStatuses, status) {
		e.Grant(userID)
	} else {
		e.Revoke(userID)
	}

	return &models.Subscription{
		ID:               uuid.New(),
		UserID:           userID,
		Status:           status,
		CurrentPeriodEnd: periodEnd,
		CreatedAt:        ReferenceTime(),
		UpdatedAt:        ReferenceTime(),
	}, nil
}

func (e *Entitlements) Invalidate(ctx context.Context, id uuid.UUID) {
	e.mu.Lock()
	e.Invalidated = append(e.Invalidated, id)
	e.mu.Unlock()
}

// AuditLogs is an in-memory audit listing, newest first.
type AuditLogs struct {
	Logs []models.AuditLog
	Err  error
	Last audit.ListFilter
}

func (a *AuditLogs) List(ctx context.Context, f audit.ListFilter) ([]models.AuditLog, int64, error) {
	a.Last = f
	if a.Err != nil {
		return nil, 0, a.Err
	}

	var matched []models.AuditLog
	for _, l := range a.Logs {
		if f.Action != "" && l.Action != f.Action {
			continue
		}
		if f.ResourceType != "" && l.ResourceType != f.ResourceType {
			continue
		}
		matched = append(matched, l)
	}

	start := min((f.Page-1)*f.Limit, len(matched))
	end := min(start+f.Limit, len(matched))
	return matched[start:end], int64(len(matched)), nil
}

// AuditRecorder keeps dispatched events in memory.
type AuditRecorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *AuditRecorder) Dispatch(ev audit.Event) {
	a.mu.Lock()
	a.events = append(a.events, ev)
	a.mu.Unlock()
}

func (a *AuditRecorder) Events() []audit.Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]audit.Event(nil), a.events...)
}

// Actions lists the action names in dispatch order.
func (a *AuditRecorder) Actions() []string {
	var out []string
	for _, ev := range a.Events() {
		out = append(out, ev.Action)
	}
	return out
}

var _ audit.Emitter = (*AuditRecorder)(nil)

// CalendarSource serves fixed rows. A non-nil error field fails that
// source only.
type CalendarSource struct {
	Sessions []models.Booking
	Windows  []calendar.WindowRow
	Requests []models.SessionRequest

	SessionsErr error
	WindowsErr  error
	RequestsErr error
}

func (s *CalendarSource) ListSessions(ctx context.Context, start, end time.Time) ([]models.Booking, error) {
	return s.Sessions, s.SessionsErr
}

func (s *CalendarSource) ListActiveWindows(ctx context.Context, start, end time.Time) ([]calendar.WindowRow, error) {
	return s.Windows, s.WindowsErr
}

func (s *CalendarSource) ListPendingRequests(ctx context.Context, start, end time.Time) ([]models.SessionRequest, error) {
	return s.Requests, s.RequestsErr
}

var _ calendar.Source = (*CalendarSource)(nil)
