package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bootcamp-directory/internal/application"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
	"github.com/oksasatya/bootcamp-directory/pkg/response"
)

type CourseHandler struct {
	Svc *application.CourseService
}

func NewCourseHandler(svc *application.CourseService) *CourseHandler {
	return &CourseHandler{Svc: svc}
}

// List serves GET /courses and GET /bootcamps/:id/courses.
func (h *CourseHandler) List(c *gin.Context) { list(c) }

func (h *CourseHandler) Get(c *gin.Context) {
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

// Create expects middleware.ParentOwnership to have attached the bootcamp.
func (h *CourseHandler) Create(c *gin.Context) {
	b, _ := middleware.Loaded[*entity.Bootcamp](c, middleware.CtxBootcamp)
	var in application.CourseInput
	if !bind(c, &in) {
		return
	}
	var bootcampID string
	if b != nil {
		bootcampID = b.ID
	}
	course, err := h.Svc.Create(c.Request.Context(), middleware.CurrentUser(c), bootcampID, in)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, course)
}

func (h *CourseHandler) Update(c *gin.Context) {
	course, _ := middleware.Loaded[*entity.Course](c, middleware.CtxCourse)
	var p application.CoursePatch
	if !bind(c, &p) {
		return
	}
	out, err := h.Svc.Update(c.Request.Context(), middleware.CurrentUser(c), course, p)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	course, _ := middleware.Loaded[*entity.Course](c, middleware.CtxCourse)
	if err := h.Svc.Delete(c.Request.Context(), course); err != nil {
		fail(c, err)
		return
	}
	response.Empty(c)
}
