package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/soundreach/backoffice/internal/models"
)

// SessionManager mints and verifies signed stateless session claims.
// There is no server-side session table; a claim is valid until its
// fixed expiry, and role changes on the account do not propagate into
// sessions already issued.
type SessionManager struct {
	secret string
	maxAge time.Duration
}

func NewSessionManager(secret string, maxAge time.Duration) *SessionManager {
	return &SessionManager{
		secret: secret,
		maxAge: maxAge,
	}
}

// MaxAge returns the fixed session lifetime.
func (sm *SessionManager) MaxAge() time.Duration {
	return sm.maxAge
}

// Issue mints a signed session claim for the account.
func (sm *SessionManager) Issue(userID string, role models.Role) (string, error) {
	now := time.Now()

	claims := &models.SessionClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(sm.maxAge)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(sm.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a session token, returning its claims.
func (sm *SessionManager) Verify(tokenString string) (*models.SessionClaims, error) {
	claims := &models.SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(sm.secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}

	if !token.Valid {
		return nil, models.ErrUnauthorized
	}

	if claims.UserID == "" || !claims.Role.Valid() {
		return nil, models.ErrUnauthorized
	}

	return claims, nil
}
