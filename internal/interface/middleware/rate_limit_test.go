package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitNilRedisPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/ping", RateLimit(nil, 1, time.Minute, KeyByIP(), nil), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		assert.Equal(t, http.StatusOK, resp.Code)
	}
}

func TestKeyFuncs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/patients", nil)
	c.Set("real_ip", "203.0.113.7")

	assert.Equal(t, "rl:ip:203.0.113.7", KeyByIP()(c))
	assert.Equal(t, "rl:path:/patients:ip:203.0.113.7", KeyByIPAndPath()(c))
	assert.Equal(t, "rl:user:anon:ip:203.0.113.7", KeyByUserID()(c))

	c.Set(CtxUserIDKey, "u-42")
	assert.Equal(t, "rl:user:u-42", KeyByUserID()(c))
}
