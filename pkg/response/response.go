package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the success envelope: {success, data}.
type APIResponse[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// TokenResponse is returned by every endpoint that issues a credential.
type TokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// ErrorResponse carries a single message or a list of validation messages.
type ErrorResponse struct {
	Success bool `json:"success"`
	Error   any  `json:"error"`
}

// Success writes data in the success envelope.
func Success[T any](c *gin.Context, status int, data T) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, APIResponse[T]{Success: true, Data: data})
}

// Empty writes {success: true, data: {}}; used by deletes.
func Empty(c *gin.Context) {
	Success(c, http.StatusOK, struct{}{})
}

func Token(c *gin.Context, status int, token string) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, TokenResponse{Success: true, Token: token})
}

// Error writes the failure envelope. msg is a string or a []string.
func Error(c *gin.Context, status int, msg any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, ErrorResponse{Success: false, Error: msg})
}

// AbortWithError writes the failure envelope and stops the handler chain.
func AbortWithError(c *gin.Context, status int, msg any) {
	Error(c, status, msg)
	c.Abort()
}
