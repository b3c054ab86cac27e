package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleFree          = "free"
	RolePremium       = "premium"
	RoleAdministrator = "administrator"
)

var roleLevels = map[string]int{
	RoleFree:          0,
	RolePremium:       1,
	RoleAdministrator: 2,
}

// Session is the caller identity attached to a request. The zero value is
// an anonymous session.
type Session struct {
	Authenticated bool
	UserID        string
	Email         string
	Role          string
	TierID        string
	ExpiresAt     time.Time
}

// SessionFromClaims builds a Session from verified access-token claims.
// Anything missing or malformed yields an anonymous session.
func SessionFromClaims(claims jwt.MapClaims) Session {
	if claims == nil {
		return Session{}
	}
	if typ, _ := claims["typ"].(string); typ != "access" {
		return Session{}
	}
	userID, _ := claims["sub"].(string)
	if userID == "" {
		return Session{}
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return Session{}
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	tierID, _ := claims["tier"].(string)
	return Session{
		Authenticated: true,
		UserID:        userID,
		Email:         email,
		Role:          role,
		TierID:        tierID,
		ExpiresAt:     time.Unix(int64(exp), 0),
	}
}

// IsAuthenticated reports whether the session carries a valid, non-expired
// identity.
func IsAuthenticated(s Session) bool {
	if !s.Authenticated || s.UserID == "" {
		return false
	}
	return s.ExpiresAt.After(time.Now())
}

// IsAdmin reports whether the session grants management privileges. Fails
// closed: unknown or empty roles are never admin.
func IsAdmin(s Session) bool {
	return IsAuthenticated(s) && s.Role == RoleAdministrator
}

// HasMinimumRole reports whether the session's role is at or above the
// required level in the free < premium < administrator ladder.
func HasMinimumRole(s Session, required string) bool {
	if !IsAuthenticated(s) {
		return false
	}
	level, ok := roleLevels[s.Role]
	if !ok {
		return false
	}
	requiredLevel, ok := roleLevels[required]
	if !ok {
		return false
	}
	return level >= requiredLevel
}

// CanAccessPremium reports whether premium-gated content is available to
// the session.
func CanAccessPremium(s Session) bool {
	return HasMinimumRole(s, RolePremium)
}
