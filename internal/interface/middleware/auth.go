package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
)

// Context keys set by Authenticate.
const (
	CtxUser     = "user"
	CtxUserID   = "userID"
	CtxUserRole = "userRole"
	CtxClaims   = "claims"
)

const notAuthorised = "Not authorised for this route"

// bearerToken reads "Authorization: Bearer <token>" and falls back to the
// token cookie.
func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer") {
		if parts := strings.Fields(h); len(parts) == 2 {
			return parts[1]
		}
	}
	if tok, err := c.Cookie(helpers.TokenCookie); err == nil && tok != "none" {
		return tok
	}
	return ""
}

// Authenticate verifies the bearer token, rejects revoked token ids and loads
// the caller. It sets user, userID, userRole and claims on success.
func Authenticate(users repository.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abort(c, apperror.Unauthenticated(notAuthorised))
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			abort(c, apperror.Unauthenticated(notAuthorised))
			return
		}
		revoked, err := helpers.IsTokenRevoked(c.Request.Context(), rdb, claims.ID)
		if err != nil {
			abort(c, apperror.Upstream("token check failed", err))
			return
		}
		if revoked {
			abort(c, apperror.Unauthenticated(notAuthorised))
			return
		}
		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if apperror.Is(err, apperror.KindNotFound) {
				err = apperror.Unauthenticated(notAuthorised)
			}
			abort(c, err)
			return
		}

		c.Set(CtxUser, u)
		c.Set(CtxUserID, u.ID)
		c.Set(CtxUserRole, string(u.Role))
		c.Set(CtxClaims, claims)
		c.Next()
	}
}

// Authorize rejects callers whose role is not listed. It must run after
// Authenticate.
func Authorize(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			abort(c, apperror.Unauthenticated(notAuthorised))
			return
		}
		if !u.Role.Any(roles...) {
			abort(c, apperror.Forbidden("User role '%s' is not authorised for this route", u.Role))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated caller, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

// CurrentClaims returns the verified token claims, or nil.
func CurrentClaims(c *gin.Context) *helpers.Claims {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil
	}
	cl, _ := v.(*helpers.Claims)
	return cl
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
