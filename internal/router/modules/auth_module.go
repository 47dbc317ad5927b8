package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/bootcamp-directory/internal/interface/http"
	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	Authn   gin.HandlerFunc
	Redis   *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, authn gin.HandlerFunc, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Authn: authn, Redis: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	credLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetInitLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetConfirmLimiter := middleware.RateLimit(m.Redis, 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	g := rg.Group("/auth")
	g.POST("/register", credLimiter, m.Handler.Register)
	g.POST("/login", credLimiter, m.Handler.Login)
	g.POST("/reset-password", resetInitLimiter, m.Handler.ForgotPassword)
	g.POST("/reset-password/:token", resetConfirmLimiter, m.Handler.ResetPassword)

	auth := g.Group("")
	auth.Use(m.Authn)
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.DELETE("/logout", m.Handler.Logout)
		auth.GET("/me", m.Handler.Me)
		auth.PUT("/update-details", m.Handler.UpdateDetails)
		auth.PUT("/update-password", m.Handler.UpdatePassword)
	}
}
