package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/tutor-scheduler/internal/dto"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httpresp"
	ucbooking "github.com/BruksfildServices01/tutor-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	list   *ucbooking.ListBookings
	create *ucbooking.CreateBooking
	update *ucbooking.UpdateBooking
	remove *ucbooking.DeleteBooking
	log    *zap.Logger
}

func NewBookingHandler(
	list *ucbooking.ListBookings,
	create *ucbooking.CreateBooking,
	update *ucbooking.UpdateBooking,
	remove *ucbooking.DeleteBooking,
	log *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		list:   list,
		create: create,
		update: update,
		remove: remove,
		log:    log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	StudentID    *uuid.UUID `json:"student_id"`
	InstructorID *uuid.UUID `json:"instructor_id"`
	CourseID     *uuid.UUID `json:"course_id"`
	StartsAt     time.Time  `json:"starts_at"`
	EndsAt       time.Time  `json:"ends_at"`
	Type         string     `json:"type"`
	Notes        string     `json:"notes" binding:"max=2000"`
}

type UpdateBookingRequest struct {
	Status   *string    `json:"status"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
	Notes    *string    `json:"notes" binding:"omitempty,max=2000"`
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	userID, ok := optionalUUID(c, "userId")
	if !ok {
		return
	}
	from, ok := optionalInstant(c, "from")
	if !ok {
		return
	}
	to, ok := optionalInstant(c, "to")
	if !ok {
		return
	}

	bookings, err := h.list.Execute(c.Request.Context(), ucbooking.ListInput{
		Caller: caller,
		UserID: userID,
		Status: c.Query("status"),
		From:   from,
		To:     to,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, dto.FromBookings(bookings))
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	in := ucbooking.CreateInput{
		Caller:   caller,
		CourseID: req.CourseID,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Type:     req.Type,
		Notes:    req.Notes,
	}
	if req.StudentID != nil {
		in.StudentID = *req.StudentID
	}
	if req.InstructorID != nil {
		in.InstructorID = *req.InstructorID
	}

	b, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, dto.FromBooking(*b))
}

// ======================================================
// UPDATE
// ======================================================

func (h *BookingHandler) Update(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	b, err := h.update.Execute(c.Request.Context(), ucbooking.UpdateInput{
		Caller:    caller,
		BookingID: id,
		Status:    req.Status,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.FromBooking(*b))
}

// ======================================================
// DELETE
// ======================================================

func (h *BookingHandler) Delete(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), caller, id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.NoContent(c)
}
