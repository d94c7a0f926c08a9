package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hirewire/hirewire-api/internal/domain/entity"
	"github.com/hirewire/hirewire-api/internal/domain/repository"
	"github.com/hirewire/hirewire-api/pkg/helpers"
	"github.com/hirewire/hirewire-api/pkg/response"
)

// CtxUserKey is the gin context key holding the resolved *entity.User.
const CtxUserKey = "currentUser"

// Authenticate validates the Authorization bearer token, resolves it to an
// account, and rejects deactivated accounts. Credential failures are all 401
// but carry distinct messages so a client can tell "log in again" from
// "token corrupt"; infrastructure failures are a generic 500.
func Authenticate(users repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := helpers.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			response.AbortMessage(c, http.StatusUnauthorized, "Access token required")
			return
		}

		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			if helpers.IsExpired(err) {
				response.AbortMessage(c, http.StatusUnauthorized, "Token expired")
				return
			}
			response.AbortMessage(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.AbortMessage(c, http.StatusUnauthorized, "Invalid token")
				return
			}
			if logger != nil {
				logger.WithError(err).WithField("user_id", claims.UserID).Error("identity lookup failed")
			}
			response.AbortMessage(c, http.StatusInternalServerError, "Authentication error")
			return
		}

		if !u.IsActive {
			response.AbortMessage(c, http.StatusUnauthorized, "Account is deactivated")
			return
		}

		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// CurrentUser returns the identity resolved by Authenticate, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
