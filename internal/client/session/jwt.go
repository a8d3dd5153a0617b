package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired reports whether a stored access token is already past its
// exp claim. The token is parsed without signature verification: the client
// has no key material, and the backend remains the authority. This check
// only short-circuits a session restore that is guaranteed to fail.
//
// Tokens that do not parse or carry no exp claim are treated as live and
// left for the backend to judge.
func TokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
