package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hirewire/hirewire-api/internal/container"
	handlers "github.com/hirewire/hirewire-api/internal/interface/http"
	"github.com/hirewire/hirewire-api/internal/interface/middleware"
)

// UserModule registers public profile browsing and the authenticated
// self-service profile routes.
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, auth gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Auth: auth}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("/recruiters", m.Handler.BrowseRecruiters)
		users.GET("/jobseekers", m.Handler.BrowseJobSeekers)
	}

	protected := rg.Group("/users")
	protected.Use(m.Auth)
	protected.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		protected.GET("/profile", m.Handler.GetProfile)
		protected.PUT("/profile", m.Handler.UpdateProfile)
		protected.DELETE("/profile", m.Handler.DeleteAccount)
		protected.POST("/avatar", m.Handler.UploadAvatar)
		protected.POST("/resume", m.Handler.UploadResume)
	}

	// Param route last so /profile and the browse routes are not shadowed.
	users.GET("/:id", m.Handler.GetPublicProfile)
}
