package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/tutor-scheduler/internal/audit"
	"github.com/BruksfildServices01/tutor-scheduler/internal/config"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/request"
	"github.com/BruksfildServices01/tutor-scheduler/internal/entitlement"
	"github.com/BruksfildServices01/tutor-scheduler/internal/handlers"
	"github.com/BruksfildServices01/tutor-scheduler/internal/middleware"
	"github.com/BruksfildServices01/tutor-scheduler/internal/timezone"
	ucAvailability "github.com/BruksfildServices01/tutor-scheduler/internal/usecase/availability"
	ucBooking "github.com/BruksfildServices01/tutor-scheduler/internal/usecase/booking"
	ucCalendar "github.com/BruksfildServices01/tutor-scheduler/internal/usecase/calendar"
	ucRequest "github.com/BruksfildServices01/tutor-scheduler/internal/usecase/request"
	"github.com/BruksfildServices01/tutor-scheduler/internal/validators"
)

// Deps are the ports the HTTP surface is built on. cmd/api fills them
// with the gorm implementations.
type Deps struct {
	Config *config.Config
	Log    *zap.Logger

	Users        identity.UserRepository
	Availability availability.Repository
	Bookings     booking.Repository
	Requests     request.Repository
	Calendar     calendar.Source

	Entitlement      entitlement.Checker
	EntitlementCache handlers.EntitlementCache
	Subscriptions    handlers.SubscriptionStore

	Audit     audit.Emitter
	AuditLogs handlers.AuditLister

	Ping func(ctx context.Context) error
}

func RegisterRoutes(r *gin.Engine, d Deps) error {
	if err := validators.Register(); err != nil {
		return err
	}

	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	// ======================================================
	// USE CASES — AVAILABILITY
	// ======================================================
	listWindowsUC := ucAvailability.NewListWindows(d.Availability)
	createWindowUC := ucAvailability.NewCreateWindow(d.Availability, d.Audit)
	updateWindowUC := ucAvailability.NewUpdateWindow(d.Availability, d.Audit)
	deleteWindowUC := ucAvailability.NewDeleteWindow(d.Availability, d.Audit)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	listBookingsUC := ucBooking.NewListBookings(d.Bookings)
	createBookingUC := ucBooking.NewCreateBooking(
		d.Bookings,
		d.Entitlement,
		d.Audit,
		d.Log,
	)
	updateBookingUC := ucBooking.NewUpdateBooking(d.Bookings, d.Audit, d.Log)
	deleteBookingUC := ucBooking.NewDeleteBooking(d.Bookings, d.Audit)

	// ======================================================
	// USE CASES — REQUESTS / CALENDAR
	// ======================================================
	createRequestUC := ucRequest.NewCreateRequest(d.Requests, d.Audit)
	listPendingUC := ucRequest.NewListPending(d.Requests)
	resolveRequestUC := ucRequest.NewResolveRequest(d.Requests, d.Audit)

	buildCalendarUC := ucCalendar.NewBuildCalendar(
		d.Calendar,
		timezone.Location(cfg.Timezone),
		cfg.CalendarMaxRangeDays,
		d.Log,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.Users, cfg, d.Log)
	meHandler := handlers.NewMeHandler(d.Users, d.Entitlement, d.Log)

	availabilityHandler := handlers.NewAvailabilityHandler(
		listWindowsUC,
		createWindowUC,
		updateWindowUC,
		deleteWindowUC,
		d.Log,
	)

	bookingHandler := handlers.NewBookingHandler(
		listBookingsUC,
		createBookingUC,
		updateBookingUC,
		deleteBookingUC,
		d.Log,
	)

	requestHandler := handlers.NewSessionRequestHandler(
		createRequestUC,
		listPendingUC,
		resolveRequestUC,
		d.Log,
	)

	calendarHandler := handlers.NewCalendarHandler(buildCalendarUC, d.Log)

	subscriptionHandler := handlers.NewSubscriptionHandler(
		d.Users,
		d.Subscriptions,
		d.EntitlementCache,
		d.Audit,
		d.Log,
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs, d.Log)
	healthHandler := handlers.NewHealthHandler(d.Ping, d.Log)

	manage := middleware.RequireRole(identity.RoleInstructor, identity.RoleAdmin)
	adminOnly := middleware.RequireRole(identity.RoleAdmin)

	r.GET("/health", healthHandler.Get)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH / PUBLIC
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/availability", middleware.OptionalAuth(cfg), availabilityHandler.List)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.POST("/availability", manage, availabilityHandler.Create)
			secured.PATCH("/availability/:id", manage, availabilityHandler.Update)
			secured.DELETE("/availability/:id", manage, availabilityHandler.Delete)

			secured.GET("/bookings", bookingHandler.List)
			secured.POST("/bookings", bookingHandler.Create)
			secured.PATCH("/bookings/:id", bookingHandler.Update)
			secured.DELETE("/bookings/:id", bookingHandler.Delete)

			secured.POST("/requests", middleware.RequireRole(identity.RoleStudent, identity.RoleParent), requestHandler.Create)
			secured.GET("/requests", manage, requestHandler.ListPending)
			secured.PATCH("/requests/:id", manage, requestHandler.Resolve)

			secured.GET("/calendar", adminOnly, calendarHandler.Get)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(adminOnly)
			{
				admin.PUT("/subscriptions/:userId", subscriptionHandler.Set)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}

	return nil
}
