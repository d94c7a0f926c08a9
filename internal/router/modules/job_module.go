package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hirewire/hirewire-api/internal/container"
	handlers "github.com/hirewire/hirewire-api/internal/interface/http"
	"github.com/hirewire/hirewire-api/internal/interface/middleware"
)

// JobModule registers the public job listing/detail/suggestion routes and the
// recruiter-side posting management routes.
type JobModule struct {
	Handler *handlers.JobHandler
	Auth    gin.HandlerFunc
	Owner   gin.HandlerFunc
}

func NewJobModule(h *handlers.JobHandler, auth, owner gin.HandlerFunc) *JobModule {
	return &JobModule{Handler: h, Auth: auth, Owner: owner}
}

func (m *JobModule) Register(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", m.Handler.List)
		jobs.GET("/search/suggestions", m.Handler.Suggestions)
		jobs.GET("/:id", m.Handler.Get)
	}

	recruiter := rg.Group("/jobs")
	recruiter.Use(m.Auth, middleware.RequireRecruiter())
	recruiter.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		recruiter.POST("", m.Handler.Create)
		recruiter.GET("/recruiter/my-jobs", m.Handler.MyJobs)
		recruiter.PUT("/:id", m.Owner, m.Handler.Update)
		recruiter.DELETE("/:id", m.Owner, m.Handler.Delete)
		recruiter.POST("/:id/toggle-status", m.Owner, m.Handler.ToggleStatus)
	}
}
