package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Verify for every rejected token: bad
// signature, wrong algorithm, malformed payload, or past expiry. Callers
// treat it as the normal "not logged in" case, not an exceptional failure.
var ErrInvalidToken = errors.New("invalid session token")

// TokenCodec issues and verifies signed session tokens. Tokens are stateless:
// once issued they stay valid until expiry, there is no server-side
// revocation.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec builds a codec with the server signing secret and session
// lifetime. The secret must be validated as non-empty at startup.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// SessionClaims is the signed token payload: the user id plus the
// registered issued-at/expiry claims.
type SessionClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Issue creates a compact HS256 token for the user, expiring after the
// configured session lifetime.
func (c *TokenCodec) Issue(userID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(c.ttl)
	claims := &SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(c.secret)
	return s, exp, err
}

// Verify parses the token, checks the HMAC signature and expiry, and returns
// the embedded user id. Any failure yields ErrInvalidToken.
func (c *TokenCodec) Verify(tokenStr string) (string, error) {
	claims := &SessionClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil || !tkn.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
