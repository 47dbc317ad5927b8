package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/bootcamp-directory/internal/application"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	handlers "github.com/oksasatya/bootcamp-directory/internal/interface/http"
	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
)

// UserModule is the admin-only user management surface.
type UserModule struct {
	Handler *handlers.UserHandler
	Listing application.Runner
	Authn   gin.HandlerFunc
	Redis   *redis.Client
}

func NewUserModule(h *handlers.UserHandler, listing application.Runner, authn gin.HandlerFunc, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Listing: listing, Authn: authn, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/users")
	g.Use(m.Authn, middleware.Authorize(entity.RoleAdmin))
	g.Use(middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		g.GET("", middleware.AdvancedResults(m.Listing), m.Handler.List)
		g.POST("", m.Handler.Create)
		g.GET("/:id", m.Handler.Get)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)
	}
}
