package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bootcamp-directory/internal/application"
	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/bootcamp-directory/pkg/response"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.AuthService, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

// sendToken writes {success, token} and mirrors the token into the http-only cookie.
func (h *AuthHandler) sendToken(c *gin.Context, tok *application.Token) {
	h.Cookies.SetToken(c, tok.Token, tok.ExpiresAt)
	response.Token(c, http.StatusOK, tok.Token)
}

// Register POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in application.RegisterInput
	if !bind(c, &in) {
		return
	}
	tok, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	h.sendToken(c, tok)
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in application.LoginInput
	if !bind(c, &in) {
		return
	}
	tok, err := h.Svc.Login(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	h.sendToken(c, tok)
}

// Logout DELETE /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), middleware.CurrentClaims(c)); err != nil {
		fail(c, err)
		return
	}
	h.Cookies.Clear(c)
	response.Empty(c)
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Svc.Me(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

// ForgotPassword POST /api/v1/auth/reset-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var in application.ForgotInput
	if !bind(c, &in) {
		return
	}
	if err := h.Svc.ForgotPassword(c.Request.Context(), in); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Email sent")
}

// ResetPassword POST /api/v1/auth/reset-password/:token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var in application.ResetInput
	if !bind(c, &in) {
		return
	}
	tok, err := h.Svc.ResetPassword(c.Request.Context(), c.Param("token"), in)
	if err != nil {
		fail(c, err)
		return
	}
	h.sendToken(c, tok)
}

func (h *AuthHandler) UpdateDetails(c *gin.Context) {
	var p application.DetailsPatch
	if !bind(c, &p) {
		return
	}
	u, err := h.Svc.UpdateDetails(c.Request.Context(), middleware.CurrentUser(c), p)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var in application.PasswordChange
	if !bind(c, &in) {
		return
	}
	tok, err := h.Svc.UpdatePassword(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	h.sendToken(c, tok)
}
