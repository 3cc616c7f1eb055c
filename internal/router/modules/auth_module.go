package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devtrails/bootcamp-api/internal/container"
	handlers "github.com/devtrails/bootcamp-api/internal/interface/http"
	"github.com/devtrails/bootcamp-api/internal/interface/middleware"
	"github.com/devtrails/bootcamp-api/pkg/helpers"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Password reset initiation gets a tighter IP-based limit than the
	// global one since it sends email.
	forgotLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", m.Handler.Register)
	rg.POST("/auth/login", m.Handler.Login)
	rg.GET("/auth/logout", m.Handler.Logout)
	rg.POST("/auth/forgot-password", forgotLimiter, m.Handler.ForgotPassword)
	rg.PUT("/auth/reset-password/:resetToken", m.Handler.ResetPassword)

	auth := rg.Group("/")
	auth.Use(middleware.Protect(m.Handler.Users, m.JWT))
	{
		auth.GET("/auth/me", m.Handler.Me)
	}
}
