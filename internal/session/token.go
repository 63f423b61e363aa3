package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired reports whether the bearer token is a JWT whose expiry is
// already in the past. The signature is not checked (only the backend can do
// that); this merely avoids a doomed validation round-trip. Opaque tokens
// and tokens without an exp claim defer to the backend's verdict.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
