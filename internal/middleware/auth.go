package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pedidosapp/order-api/internal/auth"
	"github.com/pedidosapp/order-api/internal/models"
)

const ContextUser = "currentUser"

// UserFinder resolves the account behind a validated token. Inactive
// accounts resolve as not found, so a deactivated user loses access as
// soon as the next request comes in.
type UserFinder interface {
	FindActiveByID(ctx context.Context, id uint) (*models.User, error)
}

func AuthMiddleware(issuer *auth.Issuer, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		userID, err := issuer.Validate(tokenString, auth.KindAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": authErrorCode(err)})
			return
		}

		user, err := users.FindActiveByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account_inactive_or_missing"})
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by AuthMiddleware.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(ContextUser).(*models.User)
}

// BearerToken extracts the raw bearer token, shared with the refresh
// endpoint which validates a different token kind.
func BearerToken(c *gin.Context) (string, bool) {
	return bearerToken(c)
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	return parts[1], true
}

func authErrorCode(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "expired_token"
	case errors.Is(err, auth.ErrWrongTokenKind):
		return "wrong_token_kind"
	default:
		return "invalid_token"
	}
}
