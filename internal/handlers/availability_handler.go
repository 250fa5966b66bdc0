package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/tutor-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/tutor-scheduler/internal/dto"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httpresp"
	ucavailability "github.com/BruksfildServices01/tutor-scheduler/internal/usecase/availability"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	list   *ucavailability.ListWindows
	create *ucavailability.CreateWindow
	update *ucavailability.UpdateWindow
	remove *ucavailability.DeleteWindow
	log    *zap.Logger
}

func NewAvailabilityHandler(
	list *ucavailability.ListWindows,
	create *ucavailability.CreateWindow,
	update *ucavailability.UpdateWindow,
	remove *ucavailability.DeleteWindow,
	log *zap.Logger,
) *AvailabilityHandler {
	return &AvailabilityHandler{
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

type ListAvailabilityQuery struct {
	Instructor string `form:"instructor" binding:"omitempty,uuid"`
	Month      string `form:"month" binding:"omitempty,yearmonth"`
}

type CreateWindowRequest struct {
	InstructorID *uuid.UUID `json:"instructor_id"`
	IsRecurring  *bool      `json:"is_recurring" binding:"required"`
	DayOfWeek    *int       `json:"day_of_week"`
	SpecificDate string     `json:"specific_date"`
	StartTime    string     `json:"start_time" binding:"omitempty,hhmm"`
	EndTime      string     `json:"end_time" binding:"omitempty,hhmm"`
	IsActive     *bool      `json:"is_active"`
}

type UpdateWindowRequest struct {
	IsActive  *bool   `json:"is_active"`
	StartTime *string `json:"start_time" binding:"omitempty,hhmm"`
	EndTime   *string `json:"end_time" binding:"omitempty,hhmm"`
}

// ======================================================
// LIST
// ======================================================

// List serves both views. Without a caller, or for a caller who does not
// own the instructor's windows, only active windows are returned.
func (h *AvailabilityHandler) List(c *gin.Context) {
	var q ListAvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		invalidRequest(c, err)
		return
	}

	in := ucavailability.ListInput{Caller: optionalCaller(c)}
	if q.Instructor != "" {
		in.InstructorID = uuid.MustParse(q.Instructor)
	}
	if q.Month != "" {
		m, ok := domain.ParseMonth(q.Month)
		if !ok {
			httperr.BadRequest(c, "invalid_month", "month must be YYYY-MM.")
			return
		}
		in.Month = &m
	}

	out, err := h.list.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	view := "public"
	if out.Private {
		view = "private"
	}

	httpresp.OK(c, dto.WindowListDTO{
		InstructorID: out.InstructorID,
		View:         view,
		Windows:      dto.FromWindows(out.Windows),
	})
}

// ======================================================
// CREATE
// ======================================================

func (h *AvailabilityHandler) Create(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req CreateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	in := ucavailability.CreateInput{
		Caller:       caller,
		IsRecurring:  *req.IsRecurring,
		DayOfWeek:    req.DayOfWeek,
		SpecificDate: req.SpecificDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		IsActive:     req.IsActive,
	}
	if req.InstructorID != nil {
		in.InstructorID = *req.InstructorID
	}

	w, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, dto.FromWindow(*w))
}

// ======================================================
// UPDATE
// ======================================================

func (h *AvailabilityHandler) Update(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	w, err := h.update.Execute(c.Request.Context(), ucavailability.UpdateInput{
		Caller:    caller,
		WindowID:  id,
		IsActive:  req.IsActive,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.FromWindow(*w))
}

// ======================================================
// DELETE
// ======================================================

func (h *AvailabilityHandler) Delete(c *gin.Context) {
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
