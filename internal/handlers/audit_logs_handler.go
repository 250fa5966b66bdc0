package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/tutor-scheduler/internal/audit"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLister interface {
	List(ctx context.Context, f audit.ListFilter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	store AuditLister
	log   *zap.Logger
}

func NewAuditLogsHandler(store AuditLister, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{store: store, log: log}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	f := audit.ListFilter{
		Action:       c.Query("action"),
		ResourceType: c.Query("resource_type"),
		Page:         page,
		Limit:        limit,
	}

	// --------------------------------------------------
	// Optional day range, "to" inclusive
	// --------------------------------------------------

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse(time.DateOnly, fromStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "from must be YYYY-MM-DD.")
			return
		}
		f.From = &from
	}

	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse(time.DateOnly, toStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "to must be YYYY-MM-DD.")
			return
		}
		to = to.AddDate(0, 0, 1)
		f.To = &to
	}

	logs, total, err := h.store.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, h.log, httperr.Internal("audit_list_failed", err))
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
