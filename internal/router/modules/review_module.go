package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bootcamp-directory/internal/application"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/repository"
	handlers "github.com/oksasatya/bootcamp-directory/internal/interface/http"
	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
)

type ReviewModule struct {
	Handler *handlers.ReviewHandler
	Reviews repository.ReviewRepository
	Listing application.Runner
	Authn   gin.HandlerFunc
}

func NewReviewModule(h *handlers.ReviewHandler, reviews repository.ReviewRepository, listing application.Runner, authn gin.HandlerFunc) *ReviewModule {
	return &ReviewModule{Handler: h, Reviews: reviews, Listing: listing, Authn: authn}
}

func (m *ReviewModule) Register(rg *gin.RouterGroup) {
	reviewer := middleware.Authorize(entity.RoleUser, entity.RoleAdmin)
	owner := middleware.Ownership(middleware.CtxReview, "Review", m.Reviews.GetByID)
	list := middleware.AdvancedResults(m.Listing)

	rg.GET("/bootcamps/:id/reviews", middleware.ScopeQuery("bootcamp", "id"), list, m.Handler.List)
	rg.POST("/bootcamps/:id/reviews", m.Authn, reviewer, m.Handler.Create)

	g := rg.Group("/reviews")
	g.GET("", list, m.Handler.List)
	g.POST("", m.Authn, reviewer, m.Handler.Create)
	g.GET("/:id", m.Handler.Get)
	g.PUT("/:id", m.Authn, owner, m.Handler.Update)
	g.DELETE("/:id", m.Authn, owner, m.Handler.Delete)
}
