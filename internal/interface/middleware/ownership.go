package middleware

import (
	"bytes"
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/repository"
)

// Keys under which ownership gates attach the loaded entity.
const (
	CtxBootcamp = "bootcamp"
	CtxCourse   = "course"
	CtxReview   = "review"
)

// PathID returns the path parameter name as a validated id.
func PathID(c *gin.Context, name string) (string, error) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", apperror.InvalidID(id)
	}
	return id, nil
}

func canModify(u *entity.User, owned entity.Owned) bool {
	return u.Role == entity.RoleAdmin || owned.OwnerID() == u.ID
}

// Ownership loads the entity named by the id path parameter and lets the
// request through only for its owner or an admin. label names the entity in
// the not-found message; the entity is attached under key.
func Ownership[T entity.Owned](key, label string, load func(ctx context.Context, id string) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			abort(c, apperror.Unauthenticated(notAuthorised))
			return
		}
		id, err := PathID(c, "id")
		if err != nil {
			abort(c, err)
			return
		}
		target, err := load(c.Request.Context(), id)
		if err != nil {
			if apperror.Is(err, apperror.KindNotFound) {
				err = apperror.NotFound("%s id %s not found", label, id)
			}
			abort(c, err)
			return
		}
		if !canModify(u, target) {
			abort(c, apperror.Forbidden("User id %s is not authorised", u.ID))
			return
		}
		c.Set(key, target)
		c.Next()
	}
}

// ParentOwnership guards child creation: the parent bootcamp comes from the
// id path parameter on nested routes, otherwise from the body's bootcamp
// field. The body is restored for the handler.
func ParentOwnership(bootcamps repository.BootcampRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			abort(c, apperror.Unauthenticated(notAuthorised))
			return
		}
		id := c.Param("id")
		if id == "" && c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				abort(c, apperror.Validation("invalid payload"))
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
			id = gjson.GetBytes(body, "bootcamp").String()
		}
		if id == "" {
			abort(c, apperror.Validation("bootcamp is required"))
			return
		}
		if _, err := uuid.Parse(id); err != nil {
			abort(c, apperror.InvalidID(id))
			return
		}
		b, err := bootcamps.GetByID(c.Request.Context(), id)
		if err != nil {
			if apperror.Is(err, apperror.KindNotFound) {
				err = apperror.NotFound("Bootcamp id %s not found", id)
			}
			abort(c, err)
			return
		}
		if !canModify(u, b) {
			abort(c, apperror.Forbidden("User id %s is not authorised", u.ID))
			return
		}
		c.Set(CtxBootcamp, b)
		c.Next()
	}
}

// Loaded returns the entity an ownership gate attached under key.
func Loaded[T any](c *gin.Context, key string) (T, bool) {
	var zero T
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
