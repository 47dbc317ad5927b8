package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/bootcamp-directory/internal/infrastructure/memory"
	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

type env struct {
	store repository.Store
	jwt   *helpers.JWTManager
}

func newEnv(t *testing.T) *env {
	t.Helper()
	return &env{store: memory.NewStore(), jwt: helpers.NewJWTManager("secret", time.Hour)}
}

func (e *env) user(t *testing.T, role entity.Role) (*entity.User, string) {
	t.Helper()
	u := &entity.User{ID: uuid.NewString(), Name: "n", Email: uuid.NewString()[:8] + "@x.io", Role: role}
	require.NoError(t, e.store.Users.Create(context.Background(), u))
	tok, _, err := e.jwt.Generate(u.ID)
	require.NoError(t, err)
	return u, tok
}

type body struct {
	Success bool `json:"success"`
	Error   any  `json:"error"`
	Data    any  `json:"data"`
}

func do(t *testing.T, r http.Handler, method, path, token, payload string) (int, body) {
	t.Helper()
	var rd io.Reader
	if payload != "" {
		rd = strings.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var b body
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b), w.Body.String())
	}
	return w.Code, b
}

func ok(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"success": true, "data": c.GetString(CtxUserID)}) }

func TestAuthenticate(t *testing.T) {
	e := newEnv(t)
	u, tok := e.user(t, entity.RoleUser)

	r := gin.New()
	r.Use(ErrorHandler(nil))
	r.GET("/me", Authenticate(e.store.Users, e.jwt, nil), ok)

	code, b := do(t, r, http.MethodGet, "/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Not authorised for this route", b.Error)
	assert.False(t, b.Success)

	code, _ = do(t, r, http.MethodGet, "/me", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	other := helpers.NewJWTManager("other", time.Hour)
	forged, _, _ := other.Generate(u.ID)
	code, _ = do(t, r, http.MethodGet, "/me", forged, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, b = do(t, r, http.MethodGet, "/me", tok, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, u.ID, b.Data)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: helpers.TokenCookie, Value: tok})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, e.store.Users.Delete(context.Background(), u.ID))
	code, _ = do(t, r, http.MethodGet, "/me", tok, "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAuthorize(t *testing.T) {
	e := newEnv(t)
	_, userTok := e.user(t, entity.RoleUser)
	_, pubTok := e.user(t, entity.RolePublisher)

	r := gin.New()
	r.Use(ErrorHandler(nil))
	r.POST("/x", Authenticate(e.store.Users, e.jwt, nil), Authorize(entity.RolePublisher, entity.RoleAdmin), ok)

	code, b := do(t, r, http.MethodPost, "/x", userTok, "")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "User role 'user' is not authorised for this route", b.Error)

	code, _ = do(t, r, http.MethodPost, "/x", pubTok, "")
	assert.Equal(t, http.StatusOK, code)
}

func TestOwnership(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner, ownerTok := e.user(t, entity.RolePublisher)
	other, otherTok := e.user(t, entity.RolePublisher)
	_, adminTok := e.user(t, entity.RoleAdmin)

	b := &entity.Bootcamp{ID: uuid.NewString(), Name: "B", User: owner.ID}
	require.NoError(t, e.store.Bootcamps.Create(ctx, b))

	r := gin.New()
	r.Use(ErrorHandler(nil))
	r.PUT("/bootcamps/:id",
		Authenticate(e.store.Users, e.jwt, nil),
		Ownership(CtxBootcamp, "Bootcamp", e.store.Bootcamps.GetByID),
		func(c *gin.Context) {
			got, found := Loaded[*entity.Bootcamp](c, CtxBootcamp)
			require.True(t, found)
			c.JSON(http.StatusOK, gin.H{"success": true, "data": got.ID})
		})

	code, b2 := do(t, r, http.MethodPut, "/bootcamps/"+b.ID, otherTok, "")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "User id "+other.ID+" is not authorised", b2.Error)

	code, b2 = do(t, r, http.MethodPut, "/bootcamps/"+b.ID, ownerTok, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, b.ID, b2.Data)

	code, _ = do(t, r, http.MethodPut, "/bootcamps/"+b.ID, adminTok, "")
	assert.Equal(t, http.StatusOK, code)

	missing := uuid.NewString()
	code, b2 = do(t, r, http.MethodPut, "/bootcamps/"+missing, ownerTok, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Bootcamp id "+missing+" not found", b2.Error)

	code, _ = do(t, r, http.MethodPut, "/bootcamps/nope", ownerTok, "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestParentOwnershipRestoresBody(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner, ownerTok := e.user(t, entity.RolePublisher)
	_, otherTok := e.user(t, entity.RolePublisher)
	b := &entity.Bootcamp{ID: uuid.NewString(), Name: "B", User: owner.ID}
	require.NoError(t, e.store.Bootcamps.Create(ctx, b))

	r := gin.New()
	r.Use(ErrorHandler(nil))
	echo := func(c *gin.Context) {
		raw, _ := io.ReadAll(c.Request.Body)
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": string(raw)})
	}
	auth := Authenticate(e.store.Users, e.jwt, nil)
	r.POST("/courses", auth, ParentOwnership(e.store.Bootcamps), echo)
	r.POST("/bootcamps/:id/courses", auth, ParentOwnership(e.store.Bootcamps), echo)

	payload := `{"title":"Go","bootcamp":"` + b.ID + `"}`
	code, res := do(t, r, http.MethodPost, "/courses", ownerTok, payload)
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, payload, res.Data)

	code, _ = do(t, r, http.MethodPost, "/courses", otherTok, payload)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = do(t, r, http.MethodPost, "/bootcamps/"+b.ID+"/courses", ownerTok, `{"title":"Go"}`)
	assert.Equal(t, http.StatusCreated, code)

	code, res = do(t, r, http.MethodPost, "/courses", ownerTok, `{"title":"Go"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "bootcamp is required", res.Error)

	code, _ = do(t, r, http.MethodPost, "/bootcamps/"+uuid.NewString()+"/courses", ownerTok, `{}`)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestScopeQuery(t *testing.T) {
	r := gin.New()
	r.GET("/bootcamps/:id/courses", ScopeQuery("bootcamp", "id"), func(c *gin.Context) {
		c.String(http.StatusOK, c.Request.URL.RawQuery)
	})
	req := httptest.NewRequest(http.MethodGet, "/bootcamps/abc/courses?title=x&sort=-title&limit=5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "bootcamp=abc&limit=5&sort=-title", w.Body.String())
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		err    error
		status int
		body   any
	}{
		{apperror.Validation("a is required", "b is required"), 400, []string{"a is required", "b is required"}},
		{apperror.Duplicate("The value 'x' is not unique"), 400, "The value 'x' is not unique"},
		{apperror.NotFound("gone"), 404, "gone"},
		{apperror.Unauthenticated("who"), 401, "who"},
		{apperror.Forbidden("no"), 403, "no"},
		{apperror.Upstream("Email could not be sent", errors.New("smtp")), 500, "Email could not be sent"},
		{apperror.Internal("db", errors.New("boom")), 500, "Server Error"},
		{errors.New("raw"), 500, "Server Error"},
	}
	for _, tt := range tests {
		status, b := Translate(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.body, b, tt.err.Error())
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRequestID)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	id := w.Header().Get(HeaderRequestID)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, w.Body.String())

	given := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, given)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, given, w.Header().Get(HeaderRequestID))
}

func TestRealIP(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "%s %v", c.GetString(CtxRealIP), AllowPrivateIP()(c))
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "203.0.113.7 false", w.Body.String())

	req.Header.Set("CF-Connecting-IP", "10.1.2.3")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "10.1.2.3 true", w.Body.String())
}
