package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hirewire/hirewire-api/internal/container"
	handlers "github.com/hirewire/hirewire-api/internal/interface/http"
	"github.com/hirewire/hirewire-api/internal/interface/middleware"
)

// AuthModule registers the public auth routes:
// POST /api/auth/register, /login, /refresh, /forgot-password, /reset-password
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Tight per-IP limits on credential endpoints
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	resetLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	auth := rg.Group("/auth")
	{
		auth.POST("/register", registerLimiter, m.Handler.Register)
		auth.POST("/login", loginLimiter, m.Handler.Login)
		auth.POST("/refresh", m.Handler.Refresh)
		auth.POST("/forgot-password", resetLimiter, m.Handler.ForgotPassword)
		auth.POST("/reset-password", resetLimiter, m.Handler.ResetPassword)
	}
}
