package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/tutor-scheduler/internal/config"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/tutor-scheduler/internal/dto"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tutor-scheduler/internal/middleware"
	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
	"github.com/BruksfildServices01/tutor-scheduler/internal/testfixtures"
	uccalendar "github.com/BruksfildServices01/tutor-scheduler/internal/usecase/calendar"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type app struct {
	t      *testing.T
	engine *gin.Engine
	cfg    *config.Config

	users        *testfixtures.Users
	availability *testfixtures.AvailabilityRepo
	bookings     *testfixtures.BookingRepo
	entitlements *testfixtures.Entitlements
	audit        *testfixtures.AuditRecorder
	calendar     *testfixtures.CalendarSource

	pingErr error
}

func newApp(t *testing.T) *app {
	t.Helper()

	cfg := &config.Config{
		Env:                  config.EnvDevelopment,
		JWTSecret:            "routes-test",
		JWTTTL:               time.Hour,
		Timezone:             "UTC",
		RequestTimeout:       5 * time.Second,
		CalendarMaxRangeDays: 62,
	}

	users := testfixtures.NewUsers()
	a := &app{
		t:            t,
		cfg:          cfg,
		users:        users,
		availability: testfixtures.NewAvailabilityRepo(users),
		bookings:     testfixtures.NewBookingRepo(users),
		entitlements: testfixtures.NewEntitlements(),
		audit:        &testfixtures.AuditRecorder{},
		calendar:     &testfixtures.CalendarSource{},
	}

	a.engine = gin.New()
	err := RegisterRoutes(a.engine, Deps{
		Config:           cfg,
		Log:              zap.NewNop(),
		Users:            users,
		Availability:     a.availability,
		Bookings:         a.bookings,
		Requests:         testfixtures.NewRequestRepo(users),
		Calendar:         a.calendar,
		Entitlement:      a.entitlements,
		EntitlementCache: a.entitlements,
		Subscriptions:    a.entitlements,
		Audit:            a.audit,
		AuditLogs:        &testfixtures.AuditLogs{},
		Ping:             func(context.Context) error { return a.pingErr },
	})
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func (a *app) token(u models.User) string {
	a.t.Helper()
	tok, err := middleware.IssueToken(a.cfg, u.ID, identity.Role(u.Role))
	if err != nil {
		a.t.Fatal(err)
	}
	return tok
}

func (a *app) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatal(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status %d, want %d: %s", w.Code, status, w.Body.String())
	}
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	expectStatus(t, w, status)
	if got := decode[httperr.HTTPError](t, w).Code; got != code {
		t.Fatalf("error_code %q, want %q", got, code)
	}
}

func TestScenarioA_RecurringOverlapOverHTTP(t *testing.T) {
	a := newApp(t)
	inst := a.users.Add("Irene", "irene@example.com", identity.RoleInstructor)
	tok := a.token(inst)

	window := func(start, end string) map[string]any {
		return map[string]any{"is_recurring": true, "day_of_week": 1, "start_time": start, "end_time": end}
	}

	w := a.do(http.MethodPost, "/api/availability", tok, window("14:00", "15:00"))
	expectStatus(t, w, http.StatusCreated)
	created := decode[dto.WindowDTO](t, w)
	if !created.IsRecurring || created.DayOfWeek == nil || *created.DayOfWeek != 1 {
		t.Fatalf("unexpected window %+v", created)
	}

	w = a.do(http.MethodPost, "/api/availability", tok, window("14:30", "15:30"))
	expectError(t, w, http.StatusConflict, "time_conflict")

	w = a.do(http.MethodPost, "/api/availability", tok, window("15:00", "16:00"))
	expectStatus(t, w, http.StatusCreated)

	if a.availability.Count() != 2 {
		t.Fatalf("expected 2 stored windows, got %d", a.availability.Count())
	}
}

func TestScenarioB_EntitlementGateOverHTTP(t *testing.T) {
	a := newApp(t)
	inst := a.users.Add("Irene", "irene@example.com", identity.RoleInstructor)
	student := a.users.AddStudent("Sam", "sam@example.com", "")
	admin := a.users.Add("Ada", "ada@example.com", identity.RoleAdmin)

	a.availability.Seed(availability.Window{
		InstructorID: inst.ID,
		When:         availability.Weekly{Day: time.Monday},
		Start:        "14:00",
		End:          "15:00",
		Active:       true,
	})

	booking := map[string]any{
		"instructor_id": inst.ID,
		"starts_at":     "2026-03-16T14:00:00Z",
		"ends_at":       "2026-03-16T15:00:00Z",
	}

	w := a.do(http.MethodPost, "/api/bookings", a.token(student), booking)
	expectError(t, w, http.StatusForbidden, "entitlement_required")
	if msg := decode[httperr.HTTPError](t, w).Message; msg == "" || msg == "Forbidden" {
		t.Fatalf("entitlement error should explain the remedy, got %q", msg)
	}

	w = a.do(http.MethodPut, "/api/admin/subscriptions/"+student.ID.String(), a.token(admin),
		map[string]any{"status": models.SubscriptionTrialing})
	expectStatus(t, w, http.StatusOK)
	if len(a.entitlements.Invalidated) != 1 || a.entitlements.Invalidated[0] != student.ID {
		t.Fatalf("expected cache invalidation for the student, got %v", a.entitlements.Invalidated)
	}

	w = a.do(http.MethodPost, "/api/bookings", a.token(student), booking)
	expectStatus(t, w, http.StatusCreated)
	got := decode[dto.BookingDTO](t, w)
	if got.Status != "SCHEDULED" || got.Student.ID != student.ID || got.Instructor.ID != inst.ID {
		t.Fatalf("unexpected booking %+v", got)
	}
}

func TestScenarioC_AdminCancelsForeignBooking(t *testing.T) {
	a := newApp(t)
	inst := a.users.Add("Irene", "irene@example.com", identity.RoleInstructor)
	student := a.users.AddStudent("Sam", "sam@example.com", "")
	admin := a.users.Add("Ada", "ada@example.com", identity.RoleAdmin)

	b := models.Booking{
		StudentID:    student.ID,
		InstructorID: inst.ID,
		StartsAt:     testfixtures.ReferenceTime(),
		EndsAt:       testfixtures.ReferenceTime().Add(time.Hour),
		Type:         "ONE_ON_ONE",
		Status:       "SCHEDULED",
	}
	if err := a.bookings.Create(context.Background(), &b); err != nil {
		t.Fatal(err)
	}

	adminTok := a.token(admin)

	w := a.do(http.MethodPatch, "/api/bookings/"+b.ID.String(), adminTok, map[string]any{"status": "CANCELLED"})
	expectStatus(t, w, http.StatusOK)

	w = a.do(http.MethodGet, "/api/bookings?userId="+student.ID.String(), adminTok, nil)
	expectStatus(t, w, http.StatusOK)
	list := decode[struct {
		Data  []dto.BookingDTO `json:"data"`
		Total int              `json:"total"`
	}](t, w)
	if list.Total != 1 || list.Data[0].Status != "CANCELLED" {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestAvailabilityViews(t *testing.T) {
	a := newApp(t)
	inst := a.users.Add("Irene", "irene@example.com", identity.RoleInstructor)

	a.availability.Seed(availability.Window{
		InstructorID: inst.ID, When: availability.Weekly{Day: time.Monday},
		Start: "09:00", End: "10:00", Active: true,
	})
	a.availability.Seed(availability.Window{
		InstructorID: inst.ID, When: availability.Weekly{Day: time.Tuesday},
		Start: "09:00", End: "10:00", Active: false,
	})
	a.availability.Seed(availability.Window{
		InstructorID: inst.ID, When: availability.NewOnDate(time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)),
		Start: "11:00", End: "12:00", Active: true,
	})

	w := a.do(http.MethodGet, "/api/availability?instructor="+inst.ID.String()+"&month=2026-03", "", nil)
	expectStatus(t, w, http.StatusOK)
	public := decode[dto.WindowListDTO](t, w)
	if public.View != "public" || len(public.Windows) != 1 {
		t.Fatalf("public view: %+v", public)
	}

	w = a.do(http.MethodGet, "/api/availability", a.token(inst), nil)
	expectStatus(t, w, http.StatusOK)
	private := decode[dto.WindowListDTO](t, w)
	if private.View != "private" || len(private.Windows) != 3 {
		t.Fatalf("private view: %+v", private)
	}
	if !private.Windows[0].IsRecurring || private.Windows[2].IsRecurring {
		t.Fatalf("recurring windows must come first: %+v", private.Windows)
	}

	w = a.do(http.MethodGet, "/api/availability?instructor="+inst.ID.String()+"&month=2026-13", "", nil)
	expectError(t, w, http.StatusBadRequest, "invalid_request")

	w = a.do(http.MethodGet, "/api/availability", "", nil)
	expectError(t, w, http.StatusBadRequest, "instructor_required")
}

func TestAvailabilityMutationRequiresRole(t *testing.T) {
	a := newApp(t)
	student := a.users.AddStudent("Sam", "sam@example.com", "")

	body := map[string]any{"is_recurring": true, "day_of_week": 1, "start_time": "09:00", "end_time": "10:00"}

	expectError(t, a.do(http.MethodPost, "/api/availability", "", body), http.StatusUnauthorized, "missing_authorization_header")
	expectError(t, a.do(http.MethodPost, "/api/availability", a.token(student), body), http.StatusForbidden, "role_not_allowed")
}

func TestAvailabilityOwnershipOverHTTP(t *testing.T) {
	a := newApp(t)
	owner := a.users.Add("Irene", "irene@example.com", identity.RoleInstructor)
	other := a.users.Add("Omar", "omar@example.com", identity.RoleInstructor)
	admin := a.users.Add("Ada", "ada@example.com", identity.RoleAdmin)

	win := a.availability.Seed(availability.Window{
		InstructorID: owner.ID, When: availability.Weekly{Day: time.Monday},
		Start: "09:00", End: "10:00", Active: true,
	})
	path := "/api/availability/" + win.ID.String()

	expectError(t, a.do(http.MethodPatch, path, a.token(other), map[string]any{"is_active": false}),
		http.StatusForbidden, "not_window_owner")

	w := a.do(http.MethodPatch, path, a.token(admin), map[string]any{"is_active": false})
	expectStatus(t, w, http.StatusOK)
	if decode[dto.WindowDTO](t, w).IsActive {
		t.Fatal("admin patch should deactivate the window")
	}

	expectError(t, a.do(http.MethodPatch, path, a.token(admin), map[string]any{"start_time": "9:00"}),
		http.StatusBadRequest, "invalid_request")

	expectError(t, a.do(http.MethodDelete, path, a.token(other), nil), http.StatusForbidden, "not_window_owner")
	expectStatus(t, a.do(http.MethodDelete, path, a.token(owner), nil), http.StatusNoContent)
	expectError(t, a.do(http.MethodDelete, path, a.token(owner), nil), http.StatusNotFound, "window_not_found")
	expectError(t, a.do(http.MethodDelete, "/api/availability/not-a-uuid", a.token(owner), nil), http.StatusBadRequest, "invalid_id")
}

func TestCalendarIsAdminOnly(t *testing.T) {
	a := newApp(t)
	inst := a.users.Add("Irene", "irene@example.com", identity.RoleInstructor)
	admin := a.users.Add("Ada", "ada@example.com", identity.RoleAdmin)

	a.calendar.SessionsErr = errors.New("sessions down")

	path := "/api/calendar?start=2026-03-09T00:00:00Z&end=2026-03-10T00:00:00Z"

	expectError(t, a.do(http.MethodGet, path, a.token(inst), nil), http.StatusForbidden, "role_not_allowed")

	w := a.do(http.MethodGet, path, a.token(admin), nil)
	expectStatus(t, w, http.StatusOK)
	out := decode[uccalendar.Output](t, w)
	if len(out.PartialFailures) != 1 || out.PartialFailures[0] != uccalendar.SourceSessions {
		t.Fatalf("partial failures %v", out.PartialFailures)
	}

	expectError(t, a.do(http.MethodGet, "/api/calendar?start=yesterday", a.token(admin), nil),
		http.StatusBadRequest, "invalid_start")
}

func TestAuthFlow(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Root", "email": "root@example.com", "password": "secret1", "role": "ADMIN",
	})
	expectError(t, w, http.StatusBadRequest, "invalid_role")

	if _, err := a.users.FindByEmail(context.Background(), "root@example.com"); err == nil {
		t.Fatal("admin registration must not create a user")
	}

	hash := mustHash(t, "secret1")
	u := models.User{Name: "Sam", Email: "sam@example.com", PasswordHash: hash, Role: string(identity.RoleStudent)}
	if err := a.users.Create(context.Background(), &u); err != nil {
		t.Fatal(err)
	}

	expectError(t, a.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "sam@example.com", "password": "nope"}),
		http.StatusUnauthorized, "invalid_credentials")

	w = a.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "SAM@example.com", "password": "secret1"})
	expectStatus(t, w, http.StatusOK)
	login := decode[struct {
		User  dto.UserDTO `json:"user"`
		Token string      `json:"token"`
	}](t, w)
	if login.User.ID != u.ID || login.Token == "" {
		t.Fatalf("unexpected login %+v", login)
	}

	w = a.do(http.MethodGet, "/api/me", login.Token, nil)
	expectStatus(t, w, http.StatusOK)
	me := decode[struct {
		User     dto.UserDTO `json:"user"`
		Entitled *bool       `json:"entitled"`
	}](t, w)
	if me.User.Email != "sam@example.com" || me.Entitled == nil || *me.Entitled {
		t.Fatalf("unexpected me %+v", me)
	}
}

func TestHealth(t *testing.T) {
	a := newApp(t)
	expectStatus(t, a.do(http.MethodGet, "/health", "", nil), http.StatusOK)

	a.pingErr = errors.New("db gone")
	expectStatus(t, a.do(http.MethodGet, "/health", "", nil), http.StatusServiceUnavailable)
}

func TestSessionRequestsOverHTTP(t *testing.T) {
	a := newApp(t)
	inst := a.users.Add("Irene", "irene@example.com", identity.RoleInstructor)
	student := a.users.AddStudent("Sam", "sam@example.com", "")

	w := a.do(http.MethodPost, "/api/requests", a.token(student), map[string]any{
		"instructor_id": inst.ID, "message": "Help with algebra",
	})
	expectStatus(t, w, http.StatusCreated)
	created := decode[dto.SessionRequestDTO](t, w)

	expectError(t, a.do(http.MethodGet, "/api/requests", a.token(student), nil), http.StatusForbidden, "role_not_allowed")

	w = a.do(http.MethodGet, "/api/requests", a.token(inst), nil)
	expectStatus(t, w, http.StatusOK)
	if n := decode[struct {
		Total int `json:"total"`
	}](t, w).Total; n != 1 {
		t.Fatalf("expected one pending request, got %d", n)
	}

	path := "/api/requests/" + created.ID.String()
	expectStatus(t, a.do(http.MethodPatch, path, a.token(inst), map[string]any{"status": "ACCEPTED"}), http.StatusOK)
	expectError(t, a.do(http.MethodPatch, path, a.token(inst), map[string]any{"status": "DECLINED"}),
		http.StatusConflict, "request_already_resolved")
}

func TestUnknownBookingID(t *testing.T) {
	a := newApp(t)
	admin := a.users.Add("Ada", "ada@example.com", identity.RoleAdmin)

	expectError(t, a.do(http.MethodDelete, "/api/bookings/"+uuid.NewString(), a.token(admin), nil),
		http.StatusNotFound, "booking_not_found")
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(h)
}
