package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mediscribe/mediscribe-api/internal/container"
	handlers "github.com/mediscribe/mediscribe-api/internal/interface/http"
	"github.com/mediscribe/mediscribe-api/internal/interface/middleware"
)

// AuthModule wires the identity endpoints.
// Public: POST /api/auth/signup, POST /api/auth/login
// Gated:  GET /api/auth/me, POST /api/auth/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	// Credential endpoints get tight per-IP limits against brute force.
	signupLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(container.GetTokenCodec(), userRepo()))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		auth.GET("/auth/me", m.Handler.Me)
		auth.POST("/auth/logout", m.Handler.Logout)
	}
}
