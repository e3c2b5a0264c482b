package domain

import "time"

// ProviderGoogle is the only identity provider the service federates with.
const ProviderGoogle = "google"

// User represents a persisted user row. Optional profile fields are pointers
// so a missing value round-trips as NULL in the store and is omitted from
// JSON responses.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	GoogleID  *string   `json:"-"`
	Provider  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IdentityClaim is the validated set of attributes extracted from a Google
// login assertion. It is never persisted directly; the user directory maps
// it to a User row.
type IdentityClaim struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	Name          string `json:"name,omitempty"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	EmailVerified bool   `json:"email_verified"`
}
