package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bootcamp-directory/internal/application"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/repository"
	handlers "github.com/oksasatya/bootcamp-directory/internal/interface/http"
	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
)

type CourseModule struct {
	Handler *handlers.CourseHandler
	Store   repository.Store
	Listing application.Runner
	Authn   gin.HandlerFunc
}

func NewCourseModule(h *handlers.CourseHandler, store repository.Store, listing application.Runner, authn gin.HandlerFunc) *CourseModule {
	return &CourseModule{Handler: h, Store: store, Listing: listing, Authn: authn}
}

func (m *CourseModule) Register(rg *gin.RouterGroup) {
	publisher := middleware.Authorize(entity.RolePublisher, entity.RoleAdmin)
	parent := middleware.ParentOwnership(m.Store.Bootcamps)
	owner := middleware.Ownership(middleware.CtxCourse, "Course", m.Store.Courses.GetByID)
	list := middleware.AdvancedResults(m.Listing)

	rg.GET("/bootcamps/:id/courses", middleware.ScopeQuery("bootcamp", "id"), list, m.Handler.List)
	rg.POST("/bootcamps/:id/courses", m.Authn, publisher, parent, m.Handler.Create)

	g := rg.Group("/courses")
	g.GET("", list, m.Handler.List)
	g.POST("", m.Authn, publisher, parent, m.Handler.Create)
	g.GET("/:id", m.Handler.Get)
	g.PUT("/:id", m.Authn, publisher, owner, m.Handler.Update)
	g.DELETE("/:id", m.Authn, publisher, owner, m.Handler.Delete)
}
