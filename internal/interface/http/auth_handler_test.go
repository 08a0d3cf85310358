package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authapp "github.com/mediscribe/mediscribe-api/internal/application"
	"github.com/mediscribe/mediscribe-api/internal/domain/entity"
	repo "github.com/mediscribe/mediscribe-api/internal/domain/repository"
	"github.com/mediscribe/mediscribe-api/internal/interface/middleware"
	"github.com/mediscribe/mediscribe-api/pkg/helpers"
	"github.com/mediscribe/mediscribe-api/pkg/validation"
)

type memUserRepo struct {
	mu      sync.Mutex
	nextID  int
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[string]*entity.User{}, byEmail: map[string]*entity.User{}}
}

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[u.Email]; ok {
		return repo.ErrDuplicateEmail
	}
	m.nextID++
	u.ID = "u-" + strconv.Itoa(m.nextID)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.byID[u.ID] = &cp
	m.byEmail[u.Email] = &cp
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

// authRig wires the auth routes the way the router module does, minus the
// rate limiters.
func authRig(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	codec := helpers.NewTokenCodec("handler-test-secret", time.Hour)
	svc := authapp.NewAuthService(newMemUserRepo(), helpers.NewHasher(bcrypt.MinCost), codec, logger, nil)
	h := NewAuthHandler(svc, logger, "", false)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/signup", h.Signup)
	api.POST("/auth/login", h.Login)
	gated := api.Group("", middleware.RequireAuth(codec, svc.Repo))
	gated.GET("/auth/me", h.Me)
	gated.POST("/auth/logout", h.Logout)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestSignupCreatesUser(t *testing.T) {
	r := authRig(t)

	resp := postJSON(t, r, "/api/auth/signup", gin.H{
		"fullName": "Dr. Jane Doe",
		"email":    "jane@example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Contains(t, resp.Body.String(), `"jane@example.com"`)
	assert.NotContains(t, resp.Body.String(), "passwordHash")
	assert.NotContains(t, resp.Body.String(), "password123")
}

func TestSignupRejectsBadPayload(t *testing.T) {
	r := authRig(t)

	for name, body := range map[string]gin.H{
		"missing name":   {"email": "jane@example.com", "password": "password123"},
		"bad email":      {"fullName": "Jane", "email": "not-an-email", "password": "password123"},
		"short password": {"fullName": "Jane", "email": "jane@example.com", "password": "short"},
	} {
		resp := postJSON(t, r, "/api/auth/signup", body)
		assert.Equalf(t, http.StatusBadRequest, resp.Code, "case %q", name)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	r := authRig(t)
	body := gin.H{"fullName": "Jane", "email": "jane@example.com", "password": "password123"}

	require.Equal(t, http.StatusCreated, postJSON(t, r, "/api/auth/signup", body).Code)

	resp := postJSON(t, r, "/api/auth/signup", body)
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestLoginGenericFailure(t *testing.T) {
	r := authRig(t)
	require.Equal(t, http.StatusCreated, postJSON(t, r, "/api/auth/signup", gin.H{
		"fullName": "Jane", "email": "jane@example.com", "password": "password123",
	}).Code)

	unknown := postJSON(t, r, "/api/auth/login", gin.H{"email": "nobody@example.com", "password": "password123"})
	wrongPw := postJSON(t, r, "/api/auth/login", gin.H{"email": "jane@example.com", "password": "wrong-password"})

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	// Unknown email and wrong password must be indistinguishable.
	assert.Equal(t, unknown.Body.String(), wrongPw.Body.String())
}

func TestLoginMeLogoutFlow(t *testing.T) {
	r := authRig(t)
	require.Equal(t, http.StatusCreated, postJSON(t, r, "/api/auth/signup", gin.H{
		"fullName": "Dr. Jane Doe", "email": "jane@example.com", "password": "password123",
	}).Code)

	login := postJSON(t, r, "/api/auth/login", gin.H{"email": "jane@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, login.Code)
	assert.NotContains(t, login.Body.String(), "passwordHash")

	var session *http.Cookie
	for _, ck := range login.Result().Cookies() {
		if ck.Name == helpers.SessionCookieName {
			session = ck
		}
	}
	require.NotNil(t, session, "login must set the session cookie")
	assert.True(t, session.HttpOnly)
	assert.NotEmpty(t, session.Value)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(session)
	me := httptest.NewRecorder()
	r.ServeHTTP(me, req)

	require.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), `"jane@example.com"`)
	assert.NotContains(t, me.Body.String(), "passwordHash")

	logout := postJSON(t, r, "/api/auth/logout", gin.H{}, session)
	require.Equal(t, http.StatusOK, logout.Code)

	var cleared *http.Cookie
	for _, ck := range logout.Result().Cookies() {
		if ck.Name == helpers.SessionCookieName {
			cleared = ck
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	// Logout does not revoke the token; the old cookie still verifies.
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(session)
	again := httptest.NewRecorder()
	r.ServeHTTP(again, req)
	assert.Equal(t, http.StatusOK, again.Code)
}

func TestMeWithoutToken(t *testing.T) {
	r := authRig(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
