package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bootcamp-directory/internal/application"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
	"github.com/oksasatya/bootcamp-directory/pkg/response"
)

type ReviewHandler struct {
	Svc *application.ReviewService
}

func NewReviewHandler(svc *application.ReviewService) *ReviewHandler {
	return &ReviewHandler{Svc: svc}
}

func (h *ReviewHandler) List(c *gin.Context) { list(c) }

func (h *ReviewHandler) Get(c *gin.Context) {
	id, err := middleware.PathID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	doc, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, doc)
}

// Create serves POST /reviews and POST /bootcamps/:id/reviews; the path id
// wins over the body's bootcamp.
func (h *ReviewHandler) Create(c *gin.Context) {
	var in application.ReviewInput
	if !bind(c, &in) {
		return
	}
	r, err := h.Svc.Create(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, r)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	r, _ := middleware.Loaded[*entity.Review](c, middleware.CtxReview)
	var p application.ReviewPatch
	if !bind(c, &p) {
		return
	}
	out, err := h.Svc.Update(c.Request.Context(), r, p)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	r, _ := middleware.Loaded[*entity.Review](c, middleware.CtxReview)
	if err := h.Svc.Delete(c.Request.Context(), r); err != nil {
		fail(c, err)
		return
	}
	response.Empty(c)
}
