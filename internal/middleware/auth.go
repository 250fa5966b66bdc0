package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/tutor-scheduler/internal/config"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httperr"
)

const ContextCaller = "caller"

// AuthMiddleware requires a valid bearer token.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Authorization header is required.")
			return
		}

		if !authenticate(c, cfg, authHeader) {
			return
		}
		c.Next()
	}
}

// OptionalAuth identifies the caller when a token is present. A malformed
// or invalid token is still rejected.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && !authenticate(c, cfg, authHeader) {
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, cfg *config.Config, authHeader string) bool {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Use a Bearer token.")
		return false
	}

	caller, err := ParseToken(cfg, strings.TrimSpace(parts[1]))
	if err != nil {
		httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Token is invalid or expired.")
		return false
	}

	c.Set(ContextCaller, caller)
	return true
}

// CallerFrom returns the authenticated caller, if any.
func CallerFrom(c *gin.Context) (identity.Caller, bool) {
	v, ok := c.Get(ContextCaller)
	if !ok {
		return identity.Caller{}, false
	}
	caller, ok := v.(identity.Caller)
	return caller, ok
}

// RequireRole lets only the listed roles through. It must run after
// AuthMiddleware.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			httperr.Abort(c, http.StatusUnauthorized, "unauthenticated", "Authentication required.")
			return
		}

		for _, r := range roles {
			if caller.Role == r {
				c.Next()
				return
			}
		}

		httperr.Abort(c, http.StatusForbidden, "role_not_allowed", "Your role cannot perform this action.")
	}
}
