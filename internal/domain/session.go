package domain

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the payload embedded in a signed session token. It
// carries the user's public identity fields verbatim; validation never
// re-fetches the user row.
type SessionClaims struct {
	UserID    string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	jwt.RegisteredClaims
}
