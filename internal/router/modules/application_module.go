package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hirewire/hirewire-api/internal/container"
	handlers "github.com/hirewire/hirewire-api/internal/interface/http"
	"github.com/hirewire/hirewire-api/internal/interface/middleware"
)

// ApplicationModule registers the apply/track routes for job seekers and the
// pipeline routes for recruiters. All application routes require auth; the
// three-way access check on individual applications lives in the service.
type ApplicationModule struct {
	Handler *handlers.ApplicationHandler
	Auth    gin.HandlerFunc
}

func NewApplicationModule(h *handlers.ApplicationHandler, auth gin.HandlerFunc) *ApplicationModule {
	return &ApplicationModule{Handler: h, Auth: auth}
}

func (m *ApplicationModule) Register(rg *gin.RouterGroup) {
	apps := rg.Group("/applications")
	apps.Use(m.Auth)
	apps.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))

	seeker := apps.Group("")
	seeker.Use(middleware.RequireJobSeeker())
	{
		seeker.POST("", m.Handler.Apply)
		seeker.GET("/my-applications", m.Handler.MyApplications)
		seeker.GET("/check-applied/:jobId", m.Handler.CheckApplied)
		seeker.DELETE("/:id", m.Handler.Withdraw)
	}

	recruiter := apps.Group("")
	recruiter.Use(middleware.RequireRecruiter())
	{
		recruiter.GET("/recruiter", m.Handler.RecruiterApplications)
		recruiter.GET("/job/:jobId", m.Handler.JobApplications)
		recruiter.GET("/stats", m.Handler.Stats)
		recruiter.PUT("/:id/status", m.Handler.UpdateStatus)
	}

	apps.GET("/:id", m.Handler.Get)
}
