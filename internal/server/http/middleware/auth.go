package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/delivery/internal/domain/errors"
	"github.com/polkiloo/delivery/internal/domain/model"
)

const (
	// CallerContextKey is a gin context key for the authenticated user.
	CallerContextKey = "caller"

	notAuthenticated   = "Not authenticated"
	invalidCredentials = "Could not validate credentials"
)

// CallerResolver turns a bearer token into the user it was issued for.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, token string) (*model.User, error)
}

// AuthRequired ensures the request carries a valid bearer token.
func AuthRequired(resolver CallerResolver, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			AbortUnauthorized(c, notAuthenticated)
			return
		}

		caller, err := resolver.ResolveCaller(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domainErrors.ErrUnauthorized) {
				AbortUnauthorized(c, invalidCredentials)
				return
			}
			logger.Error("resolve caller", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
			return
		}

		c.Set(CallerContextKey, caller)
		c.Next()
	}
}

// AbortUnauthorized stops the chain with a bearer challenge.
func AbortUnauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": detail})
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
