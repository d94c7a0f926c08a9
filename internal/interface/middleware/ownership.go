package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hirewire/hirewire-api/internal/domain/entity"
	"github.com/hirewire/hirewire-api/internal/domain/repository"
	"github.com/hirewire/hirewire-api/pkg/response"
)

// JobLookup resolves a job id from the route path to its record.
type JobLookup func(ctx context.Context, id string) (*entity.Job, error)

// RequireJobOwner gates mutation of recruiter-owned postings. The existence
// check runs before the ownership check, so a missing resource is always 404;
// ownership failures get their own message. Admins bypass the owner
// comparison entirely.
func RequireJobOwner(lookup JobLookup, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			response.AbortMessage(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		id := c.Param("id")
		job, err := lookup(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.AbortMessage(c, http.StatusNotFound, "Resource not found")
				return
			}
			if logger != nil {
				logger.WithError(err).WithField("job_id", id).Error("owner lookup failed")
			}
			response.AbortMessage(c, http.StatusInternalServerError, "Authorization error")
			return
		}

		if !job.OwnedBy(u) {
			response.AbortMessage(c, http.StatusForbidden, "Access denied. Not the owner.")
			return
		}
		c.Next()
	}
}
