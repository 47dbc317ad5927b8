package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
	"github.com/oksasatya/bootcamp-directory/pkg/validation"
)

// fail hands err to middleware.ErrorHandler and stops the chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func bind(c *gin.Context, dst any) bool {
	if err := validation.DecodeStrict(c.Request.Body, dst); err != nil {
		fail(c, err)
		return false
	}
	return true
}

// list writes the page computed by middleware.AdvancedResults.
func list(c *gin.Context) {
	res, ok := middleware.Results(c)
	if !ok {
		fail(c, apperror.Internal("advanced results not computed", nil))
		return
	}
	c.JSON(http.StatusOK, res)
}
