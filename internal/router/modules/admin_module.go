package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/hirewire/hirewire-api/internal/interface/http"
	"github.com/hirewire/hirewire-api/internal/interface/middleware"
)

// AdminModule registers the moderation and analytics routes, all behind the
// admin role gate.
type AdminModule struct {
	Handler *handlers.AdminHandler
	Auth    gin.HandlerFunc
}

func NewAdminModule(h *handlers.AdminHandler, auth gin.HandlerFunc) *AdminModule {
	return &AdminModule{Handler: h, Auth: auth}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(m.Auth, middleware.RequireAdmin())
	{
		admin.GET("/dashboard", m.Handler.Dashboard)
		admin.GET("/analytics", m.Handler.Analytics)

		admin.GET("/users", m.Handler.ListUsers)
		admin.PUT("/users/:id/status", m.Handler.SetUserStatus)
		admin.DELETE("/users/:id", m.Handler.DeleteUser)

		admin.GET("/jobs", m.Handler.ListJobs)
		admin.PUT("/jobs/:id/approve", m.Handler.ApproveJob)
		admin.DELETE("/jobs/:id", m.Handler.DeleteJob)

		admin.GET("/applications", m.Handler.ListApplications)
	}
}
