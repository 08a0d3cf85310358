package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mediscribe/mediscribe-api/internal/domain/entity"
	repo "github.com/mediscribe/mediscribe-api/internal/domain/repository"
	"github.com/mediscribe/mediscribe-api/pkg/helpers"
	"github.com/mediscribe/mediscribe-api/pkg/response"
)

// Context keys set by RequireAuth on success.
const (
	CtxUserKey   = "authUser"
	CtxUserIDKey = "userID"
)

// unauthorizedMsg is deliberately the same for every rejection sub-case so
// the response reveals nothing about why the token was refused.
const unauthorizedMsg = "unauthorized"

// RequireAuth gates protected routes. The candidate token comes from the
// session cookie, falling back to an Authorization bearer header. The token
// must verify and the referenced user must still exist in the directory;
// otherwise the request is rejected with 401 before the handler runs.
func RequireAuth(codec *helpers.TokenCodec, users repo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, unauthorizedMsg, nil)
			return
		}

		userID, err := codec.Verify(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, unauthorizedMsg, nil)
			return
		}

		// The token is a weak reference; the user may have been deleted
		// after issuance.
		u, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, unauthorizedMsg, nil)
			return
		}

		c.Set(CtxUserKey, u)
		c.Set(CtxUserIDKey, u.ID)
		c.Next()
	}
}

// UserFromContext returns the authenticated user placed by RequireAuth.
func UserFromContext(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(helpers.SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	return bearerToken(c.GetHeader("Authorization"))
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
