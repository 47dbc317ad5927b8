package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bootcamp-directory/internal/application"
	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
	"github.com/oksasatya/bootcamp-directory/pkg/response"
)

// PhotoField is the multipart field carrying a bootcamp photo.
const PhotoField = "file"

type BootcampHandler struct {
	Svc *application.BootcampService
}

func NewBootcampHandler(svc *application.BootcampService) *BootcampHandler {
	return &BootcampHandler{Svc: svc}
}

type listResponse[T any] struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Data    []T  `json:"data"`
}

func (h *BootcampHandler) List(c *gin.Context) { list(c) }

func (h *BootcampHandler) Get(c *gin.Context) {
	id, err := middleware.PathID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	b, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *BootcampHandler) Create(c *gin.Context) {
	var in application.BootcampInput
	if !bind(c, &in) {
		return
	}
	b, err := h.Svc.Create(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *BootcampHandler) Update(c *gin.Context) {
	b, _ := middleware.Loaded[*entity.Bootcamp](c, middleware.CtxBootcamp)
	var p application.BootcampPatch
	if !bind(c, &p) {
		return
	}
	out, err := h.Svc.Update(c.Request.Context(), b, p)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *BootcampHandler) Delete(c *gin.Context) {
	b, _ := middleware.Loaded[*entity.Bootcamp](c, middleware.CtxBootcamp)
	if err := h.Svc.Delete(c.Request.Context(), b); err != nil {
		fail(c, err)
		return
	}
	response.Empty(c)
}

// WithinRadius GET /api/v1/bootcamps/radius/:zipcode/:distance
func (h *BootcampHandler) WithinRadius(c *gin.Context) {
	miles, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil || math.IsNaN(miles) || math.IsInf(miles, 0) {
		fail(c, apperror.Validation("distance must be a positive number"))
		return
	}
	items, err := h.Svc.WithinRadius(c.Request.Context(), c.Param("zipcode"), miles)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse[entity.Bootcamp]{Success: true, Count: len(items), Data: items})
}

// UploadPhoto PUT /api/v1/bootcamps/:id/photo
func (h *BootcampHandler) UploadPhoto(c *gin.Context) {
	b, _ := middleware.Loaded[*entity.Bootcamp](c, middleware.CtxBootcamp)
	fh, err := c.FormFile(PhotoField)
	if err != nil {
		fail(c, apperror.Validation("Please upload a file"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, apperror.Upstream("Problem with file upload", err))
		return
	}
	defer f.Close()

	ref, err := h.Svc.UploadPhoto(c.Request.Context(), b, &application.PhotoUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, ref)
}

// Search GET /api/v1/bootcamps/search?q=&size=
func (h *BootcampHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Svc.SearchText(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits)
}
