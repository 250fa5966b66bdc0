package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/tutor-scheduler/internal/audit"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/tutor-scheduler/internal/entitlement"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

type SubscriptionStore interface {
	SetStatus(ctx context.Context, userID uuid.UUID, status string, periodEnd *time.Time) (*models.Subscription, error)
}

type EntitlementCache interface {
	Invalidate(ctx context.Context, billingID uuid.UUID)
}

type SubscriptionHandler struct {
	users identity.UserRepository
	store SubscriptionStore
	cache EntitlementCache
	audit audit.Emitter
	log   *zap.Logger
}

func NewSubscriptionHandler(
	users identity.UserRepository,
	store SubscriptionStore,
	cache EntitlementCache,
	audit audit.Emitter,
	log *zap.Logger,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		users: users,
		store: store,
		cache: cache,
		audit: audit,
		log:   log,
	}
}

type SetSubscriptionRequest struct {
	Status           string     `json:"status" binding:"required"`
	CurrentPeriodEnd *time.Time `json:"current_period_end"`
}

// Set upserts the user's subscription status and drops any cached
// entitlement so the next booking sees the change.
func (h *SubscriptionHandler) Set(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	userID, ok := idParam(c, "userId")
	if !ok {
		return
	}

	var req SetSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ctx := c.Request.Context()

	if _, err := h.users.Get(ctx, userID); err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			httperr.Respond(c, h.log, httperr.NotFound("user_not_found", "User not found."))
			return
		}
		httperr.Respond(c, h.log, httperr.Internal("user_lookup_failed", err))
		return
	}

	sub, err := h.store.SetStatus(ctx, userID, req.Status, req.CurrentPeriodEnd)
	if err != nil {
		if errors.Is(err, entitlement.ErrInvalidStatus) {
			httperr.BadRequest(c, "invalid_status", "status must be ACTIVE, TRIALING, PAST_DUE, CANCELED or INACTIVE.")
			return
		}
		httperr.Respond(c, h.log, httperr.FromStore("subscription_update_failed", err))
		return
	}

	h.cache.Invalidate(ctx, userID)

	h.audit.Dispatch(audit.Event{
		ActorID:      &caller.UserID,
		Action:       "subscription.updated",
		ResourceType: "subscription",
		ResourceID:   &sub.ID,
		Summary:      "Subscription set to " + sub.Status,
		Metadata:     map[string]any{"user_id": userID.String()},
	})

	httpresp.OK(c, sub)
}
