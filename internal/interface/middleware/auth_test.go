package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediscribe/mediscribe-api/internal/domain/entity"
	repo "github.com/mediscribe/mediscribe-api/internal/domain/repository"
	"github.com/mediscribe/mediscribe-api/pkg/helpers"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) Create(context.Context, *entity.User) error { return nil }

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func gateRig(t *testing.T, codec *helpers.TokenCodec, users repo.UserRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", RequireAuth(codec, users), func(c *gin.Context) {
		u, ok := UserFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": u.Email})
	})
	return r
}

func TestGateNoToken(t *testing.T) {
	codec := helpers.NewTokenCodec("gate-secret", time.Hour)
	r := gateRig(t, codec, &fakeUserRepo{users: map[string]*entity.User{}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestGateExpiredToken(t *testing.T) {
	expired := helpers.NewTokenCodec("gate-secret", -time.Second)
	token, _, err := expired.Issue("u-1")
	require.NoError(t, err)

	codec := helpers.NewTokenCodec("gate-secret", time.Hour)
	users := &fakeUserRepo{users: map[string]*entity.User{
		"u-1": {ID: "u-1", Email: "jane@example.com"},
	}}
	r := gateRig(t, codec, users)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: token})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestGateDeletedUser(t *testing.T) {
	codec := helpers.NewTokenCodec("gate-secret", time.Hour)
	token, _, err := codec.Issue("u-gone")
	require.NoError(t, err)

	r := gateRig(t, codec, &fakeUserRepo{users: map[string]*entity.User{}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: token})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestGateValidCookie(t *testing.T) {
	codec := helpers.NewTokenCodec("gate-secret", time.Hour)
	token, _, err := codec.Issue("u-1")
	require.NoError(t, err)

	users := &fakeUserRepo{users: map[string]*entity.User{
		"u-1": {ID: "u-1", Email: "jane@example.com"},
	}}
	r := gateRig(t, codec, users)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: token})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "jane@example.com")
}

func TestGateBearerFallback(t *testing.T) {
	codec := helpers.NewTokenCodec("gate-secret", time.Hour)
	token, _, err := codec.Issue("u-1")
	require.NoError(t, err)

	users := &fakeUserRepo{users: map[string]*entity.User{
		"u-1": {ID: "u-1", Email: "jane@example.com"},
	}}
	r := gateRig(t, codec, users)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer abc"))
	assert.Equal(t, "", bearerToken(""))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken("Bearer"))
	assert.Equal(t, "", bearerToken("Bearer a b"))
}
