package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/pkg/response"
)

// StatusOf maps an error kind to its HTTP status.
func StatusOf(k apperror.Kind) int {
	switch k {
	case apperror.KindValidation, apperror.KindDuplicate:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperror.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Translate turns err into a status and the value of the error field: the
// list of messages for a multi-field validation failure, a string otherwise.
func Translate(err error) (int, any) {
	var e *apperror.Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError, "Server Error"
	}
	status := StatusOf(e.Kind)
	if len(e.Messages) > 0 {
		return status, e.Messages
	}
	if e.Kind == apperror.KindInternal || e.Message == "" {
		return status, "Server Error"
	}
	return status, e.Message
}

// ErrorHandler writes the failure envelope for the last error a handler or
// gate pushed with c.Error. Server errors are logged with the request id.
func ErrorHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, body := Translate(err)
		if status >= http.StatusInternalServerError && logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString(CtxRequestID),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
			}).Error("request failed")
		}
		response.Error(c, status, body)
	}
}
