package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the signed, stateless session claim minted at login.
// Role is fixed for the lifetime of the session; a role change on the
// underlying account takes effect only when the session expires.
type SessionClaims struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}
