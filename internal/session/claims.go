package session

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Info describes a token for display. Nothing here is verified.
type Info struct {
	JWT       bool
	Subject   string
	Email     string
	ExpiresAt time.Time // zero when the token carries no exp claim
}

// Expired reports whether the token carries an exp claim in the past.
func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// Describe decodes token as a JWT without verifying its signature.
//
// The backend is the only authority on validity; opaque tokens return Info{JWT: false}.
func Describe(token string) Info {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Info{}
	}

	info := Info{JWT: true}
	if sub, ok := claims["sub"].(string); ok {
		info.Subject = sub
	}
	for _, key := range []string{"email", "user_email", "username"} {
		if v, ok := claims[key].(string); ok && v != "" {
			info.Email = v
			break
		}
	}
	if exp, ok := claims["exp"].(float64); ok {
		info.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return info
}
