package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Veterinaria is a clinic account. Password is only sent on registration and
// never returned by the service.
type Veterinaria struct {
	ID        int    `json:"id,omitempty"`
	Nombre    string `json:"nombre" validate:"required"`
	Telefono  string `json:"telefono,omitempty"`
	Direccion string `json:"direccion,omitempty"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password,omitempty" validate:"required"`
}

// Token is the login response
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Claims are the registered claims of the session token. The subject is the
// clinic id.
type Claims struct {
	Subject   string    `json:"sub"`
	ExpiresAt time.Time `json:"exp,omitzero"`
	IssuedAt  time.Time `json:"iat,omitzero"`
}

// Expired reports whether the token carried an expiry that has passed.
// It is informational only; the service stays the authority.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

func claimsFrom(rc *jwt.RegisteredClaims) *Claims {
	c := &Claims{Subject: rc.Subject}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	return c
}
