package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bootcamp-directory/internal/application"
	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
	"github.com/oksasatya/bootcamp-directory/pkg/response"
)

// UserHandler serves the admin user endpoints.
type UserHandler struct {
	Svc *application.UserService
}

func NewUserHandler(svc *application.UserService) *UserHandler {
	return &UserHandler{Svc: svc}
}

func (h *UserHandler) List(c *gin.Context) { list(c) }

func (h *UserHandler) Get(c *gin.Context) {
	id, err := middleware.PathID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	u, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

func (h *UserHandler) Create(c *gin.Context) {
	var in application.UserInput
	if !bind(c, &in) {
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := middleware.PathID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	var p application.UserPatch
	if !bind(c, &p) {
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), id, p)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := middleware.PathID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.Empty(c)
}
