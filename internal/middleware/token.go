package middleware

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/tutor-scheduler/internal/config"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/identity"
)

var errInvalidClaims = errors.New("invalid token claims")

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for the given user.
func IssueToken(cfg *config.Config, userID uuid.UUID, role identity.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.JWTTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseToken validates tokenString and returns the caller it names.
func ParseToken(cfg *config.Config, tokenString string) (identity.Caller, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return identity.Caller{}, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return identity.Caller{}, errInvalidClaims
	}
	role, ok := identity.ParseRole(claims.Role)
	if !ok {
		return identity.Caller{}, errInvalidClaims
	}

	return identity.Caller{UserID: userID, Role: role}, nil
}
