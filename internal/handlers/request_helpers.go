package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tutor-scheduler/internal/middleware"
	"github.com/BruksfildServices01/tutor-scheduler/internal/validators"
)

// --------------------------------------------------
// Caller / params
// --------------------------------------------------

func requireCaller(c *gin.Context) (identity.Caller, bool) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httperr.Abort(c, http.StatusUnauthorized, "unauthenticated", "Authentication required.")
	}
	return caller, ok
}

func optionalCaller(c *gin.Context) *identity.Caller {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return nil
	}
	return &caller
}

func idParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", name+" must be a UUID.")
		return uuid.Nil, false
	}
	return id, true
}

// invalidRequest reports a binding failure without echoing validator
// internals back to the client.
func invalidRequest(c *gin.Context, err error) {
	if msg, ok := validators.Describe(err); ok {
		httperr.BadRequest(c, "invalid_request", msg)
		return
	}
	httperr.BadRequest(c, "invalid_request", "Request body or query is malformed.")
}

// --------------------------------------------------
// Query parsing
// --------------------------------------------------

// parseInstant accepts RFC 3339 instants and plain dates (midnight UTC).
func parseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}

func optionalInstant(c *gin.Context, key string) (*time.Time, bool) {
	v := c.Query(key)
	if v == "" {
		return nil, true
	}
	t, err := parseInstant(v)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+key, key+" must be an RFC 3339 instant or YYYY-MM-DD.")
		return nil, false
	}
	return &t, true
}

func optionalUUID(c *gin.Context, key string) (*uuid.UUID, bool) {
	v := c.Query(key)
	if v == "" {
		return nil, true
	}
	id, err := uuid.Parse(v)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+key, key+" must be a UUID.")
		return nil, false
	}
	return &id, true
}
