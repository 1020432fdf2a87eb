package security

import (
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"timeclock.app/timeclock/core"
)

type Identity struct {
	EmployeeID  string `json:"nameid"`
	DisplayName string `json:"unique_name"`
	Role        string `json:"role"`
	// Unlocked carries the presence-gate state for this session only. It is
	// never persisted server side.
	Unlocked bool `json:"unlocked"`
}

type SessionClaims struct {
	Identity
	jwt.RegisteredClaims
}

// CreateSessionToken signs a session JWT (HS256) carrying the identity and
// gate state.
func CreateSessionToken(s *core.Session, displayName, base64Secret string, expiresInSeconds int64) (string, error) {
	secretBytes, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return "", err
	}
	claims := SessionClaims{
		Identity: Identity{
			EmployeeID:  s.EmployeeID,
			DisplayName: displayName,
			Role:        s.Role,
			Unlocked:    s.Unlocked,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "timeclock",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiresInSeconds) * time.Second)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretBytes)
}
