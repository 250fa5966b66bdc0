package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/tutor-scheduler/internal/config"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/tutor-scheduler/internal/dto"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tutor-scheduler/internal/middleware"
	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
	"github.com/BruksfildServices01/tutor-scheduler/internal/validators"
)

type AuthHandler struct {
	users  identity.UserRepository
	config *config.Config
	log    *zap.Logger

	emailDomainOK func(string) bool
}

func NewAuthHandler(users identity.UserRepository, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:         users,
		config:        cfg,
		log:           log,
		emailDomainOK: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	Email         string `json:"email" binding:"required,max=100"`
	Password      string `json:"password" binding:"required,min=6"`
	Role          string `json:"role" binding:"required"`
	GuardianEmail string `json:"guardian_email" binding:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User  dto.UserDTO `json:"user"`
	Token string      `json:"token"`
}

// --------- Handlers ---------

// Register creates a STUDENT, PARENT or INSTRUCTOR account. Admins are
// provisioned out of band.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	role, ok := identity.ParseRole(req.Role)
	if !ok || role == identity.RoleAdmin {
		httperr.BadRequest(c, "invalid_role", "role must be STUDENT, PARENT or INSTRUCTOR.")
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if !validators.IsEmail(email) {
		httperr.BadRequest(c, "invalid_request", "email must be a valid email address.")
		return
	}

	var guardian string
	if req.GuardianEmail != "" {
		guardian = validators.NormalizeEmail(req.GuardianEmail)
		if !validators.IsEmail(guardian) {
			httperr.BadRequest(c, "invalid_request", "guardian_email must be a valid email address.")
			return
		}
	}

	if !h.emailDomainOK(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	ctx := c.Request.Context()

	if _, err := h.users.FindByEmail(ctx, email); err == nil {
		httperr.Respond(c, h.log, httperr.Conflict("email_already_registered", "An account with this email already exists."))
		return
	} else if !errors.Is(err, identity.ErrUserNotFound) {
		httperr.Respond(c, h.log, httperr.Internal("user_lookup_failed", err))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Respond(c, h.log, httperr.Internal("failed_to_hash_password", err))
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         string(role),
	}
	if role == identity.RoleStudent && guardian != "" {
		user.GuardianEmail = &guardian
	}

	if err := h.users.Create(ctx, &user); err != nil {
		httperr.Respond(c, h.log, httperr.FromStore("failed_to_create_user", err))
		return
	}

	h.respondWithToken(c, http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if !validators.IsEmail(email) {
		httperr.BadRequest(c, "invalid_request", "email must be a valid email address.")
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			httperr.Respond(c, h.log, errInvalidCredentials())
			return
		}
		httperr.Respond(c, h.log, httperr.Internal("user_lookup_failed", err))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Respond(c, h.log, errInvalidCredentials())
		return
	}

	h.respondWithToken(c, http.StatusOK, *user)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user models.User) {
	token, err := middleware.IssueToken(h.config, user.ID, identity.Role(user.Role))
	if err != nil {
		httperr.Respond(c, h.log, httperr.Internal("failed_to_generate_token", err))
		return
	}

	c.JSON(status, AuthResponse{
		User:  dto.FromUser(user),
		Token: token,
	})
}

func errInvalidCredentials() error {
	return httperr.Unauthorized("invalid_credentials", "Email or password is incorrect.")
}
