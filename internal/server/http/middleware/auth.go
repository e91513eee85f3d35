package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/ticketing/internal/domain/model"
	pkgAuth "github.com/polkiloo/ticketing/internal/pkg/auth"
	"github.com/polkiloo/ticketing/internal/server/http/dto"
)

const (
	// IdentityContextKey is a gin context key for the authenticated caller.
	IdentityContextKey = "identity"
	authCookieName     = "ticketing_token"
)

// IdentityParser resolves a token into the caller identity.
type IdentityParser interface {
	ParseToken(token string) (model.Identity, error)
}

// AuthRequired ensures the caller is authenticated before accessing handler.
func AuthRequired(parser IdentityParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, "unauthorized", "missing auth token")
			return
		}

		identity, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				abort(c, http.StatusUnauthorized, "unauthorized", "invalid auth token")
				return
			}
			_ = c.Error(err)
			abort(c, http.StatusInternalServerError, "internal_error", "internal server error")
			return
		}

		c.Set(IdentityContextKey, identity)
		c.Next()
	}
}

// RequireRole rejects authenticated callers lacking the given role.
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, _ := c.Get(IdentityContextKey)
		identity, ok := val.(model.Identity)
		if !ok || identity.Role != role {
			abort(c, http.StatusForbidden, "forbidden", "insufficient role")
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

func abort(c *gin.Context, status int, kind, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: kind, Message: message})
}
