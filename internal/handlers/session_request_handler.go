package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/tutor-scheduler/internal/dto"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httpresp"
	ucrequest "github.com/BruksfildServices01/tutor-scheduler/internal/usecase/request"
)

type SessionRequestHandler struct {
	create  *ucrequest.CreateRequest
	pending *ucrequest.ListPending
	resolve *ucrequest.ResolveRequest
	log     *zap.Logger
}

func NewSessionRequestHandler(
	create *ucrequest.CreateRequest,
	pending *ucrequest.ListPending,
	resolve *ucrequest.ResolveRequest,
	log *zap.Logger,
) *SessionRequestHandler {
	return &SessionRequestHandler{
		create:  create,
		pending: pending,
		resolve: resolve,
		log:     log,
	}
}

type CreateSessionRequest struct {
	StudentID    *uuid.UUID `json:"student_id"`
	InstructorID *uuid.UUID `json:"instructor_id"`
	Message      string     `json:"message" binding:"max=2000"`
}

type ResolveSessionRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *SessionRequestHandler) Create(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	in := ucrequest.CreateInput{Caller: caller, Message: req.Message}
	if req.StudentID != nil {
		in.StudentID = *req.StudentID
	}
	if req.InstructorID != nil {
		in.InstructorID = *req.InstructorID
	}

	sr, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, dto.FromSessionRequest(*sr))
}

func (h *SessionRequestHandler) ListPending(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	out, err := h.pending.Execute(c.Request.Context(), caller)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, dto.FromSessionRequests(out))
}

func (h *SessionRequestHandler) Resolve(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req ResolveSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	sr, err := h.resolve.Execute(c.Request.Context(), ucrequest.ResolveInput{
		Caller:    caller,
		RequestID: id,
		Status:    req.Status,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.FromSessionRequest(*sr))
}
