package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bootcamp-directory/internal/application"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/repository"
	handlers "github.com/oksasatya/bootcamp-directory/internal/interface/http"
	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
)

// BootcampModule registers /bootcamps. Nested course and review routes
// belong to their own modules.
type BootcampModule struct {
	Handler   *handlers.BootcampHandler
	Bootcamps repository.BootcampRepository
	Listing   application.Runner
	Authn     gin.HandlerFunc
}

func NewBootcampModule(h *handlers.BootcampHandler, bootcamps repository.BootcampRepository, listing application.Runner, authn gin.HandlerFunc) *BootcampModule {
	return &BootcampModule{Handler: h, Bootcamps: bootcamps, Listing: listing, Authn: authn}
}

func (m *BootcampModule) Register(rg *gin.RouterGroup) {
	publisher := middleware.Authorize(entity.RolePublisher, entity.RoleAdmin)
	owner := middleware.Ownership(middleware.CtxBootcamp, "Bootcamp", m.Bootcamps.GetByID)

	g := rg.Group("/bootcamps")
	g.GET("", middleware.AdvancedResults(m.Listing), m.Handler.List)
	g.POST("", m.Authn, publisher, m.Handler.Create)
	g.GET("/search", m.Handler.Search)
	g.GET("/radius/:zipcode/:distance", m.Handler.WithinRadius)
	g.GET("/:id", m.Handler.Get)
	g.PUT("/:id", m.Authn, publisher, owner, m.Handler.Update)
	g.DELETE("/:id", m.Authn, publisher, owner, m.Handler.Delete)
	g.PUT("/:id/photo", m.Authn, publisher, owner, m.Handler.UploadPhoto)
}
