package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/tutor-scheduler/internal/dto"
	"github.com/BruksfildServices01/tutor-scheduler/internal/entitlement"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httperr"
)

type MeHandler struct {
	users       identity.UserRepository
	entitlement entitlement.Checker
	log         *zap.Logger
}

func NewMeHandler(users identity.UserRepository, entitlement entitlement.Checker, log *zap.Logger) *MeHandler {
	return &MeHandler{users: users, entitlement: entitlement, log: log}
}

// GetMe returns the caller's profile. Students and parents also see
// whether they can book on their own subscription.
func (h *MeHandler) GetMe(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	user, err := h.users.Get(c.Request.Context(), caller.UserID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			httperr.Respond(c, h.log, httperr.NotFound("user_not_found", "User not found."))
			return
		}
		httperr.Respond(c, h.log, httperr.Internal("user_lookup_failed", err))
		return
	}

	body := gin.H{"user": dto.FromUser(*user)}

	if caller.RequiresEntitlement() {
		entitled, err := h.entitlement.IsEntitled(c.Request.Context(), caller.UserID)
		if err != nil {
			h.log.Warn("entitlement lookup failed", zap.String("user_id", caller.UserID.String()), zap.Error(err))
		} else {
			body["entitled"] = entitled
		}
	}

	c.JSON(200, body)
}
