// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/finance-assistant/backend/internal/domain/entity"
	"github.com/finance-assistant/backend/internal/integration/entrypoint/dto"
)

// principalKey is the Gin context key holding the resolved principal.
const principalKey = "principal"

// PrincipalClaims represents the JWT claims carried by access tokens.
type PrincipalClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// PrincipalMiddleware resolves the caller identity for every business
// route. With auth disabled every request runs as the anonymous
// development principal; with auth enabled a valid Bearer token is
// required.
type PrincipalMiddleware struct {
	enabled      bool
	secret       []byte
	devUserEmail string
}

// NewPrincipalMiddleware creates a new principal middleware instance.
func NewPrincipalMiddleware(enabled bool, secret, devUserEmail string) *PrincipalMiddleware {
	return &PrincipalMiddleware{
		enabled:      enabled,
		secret:       []byte(secret),
		devUserEmail: devUserEmail,
	}
}

// Resolve returns a Gin middleware handler that sets the principal.
func (m *PrincipalMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Set(principalKey, entity.AnonymousPrincipal(m.devUserEmail))
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Authorization header is required",
			})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		principal, err := m.parseToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

func (m *PrincipalMiddleware) parseToken(token string) (entity.Principal, error) {
	claims := &PrincipalClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return entity.Principal{}, err
	}
	if !parsed.Valid {
		return entity.Principal{}, jwt.ErrTokenInvalidClaims
	}

	return entity.Principal{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
	}, nil
}

// GetPrincipalFromContext extracts the resolved principal from the Gin context.
func GetPrincipalFromContext(c *gin.Context) (entity.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return entity.Principal{}, false
	}
	principal, ok := value.(entity.Principal)
	return principal, ok
}
