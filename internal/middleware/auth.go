package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AaSu9/Aamcare/pkg/auth"
)

const (
	ContextAccountID    = "account_id"
	ContextAccountEmail = "account_email"
)

type AuthMiddleware struct {
	jwtSvc auth.JWTService
}

func NewAuthMiddleware(jwtSvc auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtSvc: jwtSvc}
}

// Authenticate verifies the bearer token and stores the account identity on
// the context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "missing authorization header",
			})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "invalid authorization format",
			})
			return
		}

		claims, err := m.jwtSvc.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "invalid token",
			})
			return
		}

		c.Set(ContextAccountID, claims.AccountID)
		c.Set(ContextAccountEmail, claims.Email)
		c.Next()
	}
}

// AccountID reads the authenticated account id set by Authenticate.
func AccountID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextAccountID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
