package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

type AuthInfo struct {
	Role   string  `db:"role"`
	TierID *string `db:"subscription_tier_id"`
	Status string  `db:"status"`
}

func FetchAuthInfo(db *sqlx.DB, userID string) (AuthInfo, error) {
	var info AuthInfo
	err := db.Get(&info, `SELECT role, subscription_tier_id, status FROM users WHERE id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return AuthInfo{}, ErrUnauthorized("Authentication failed")
	}
	if err != nil {
		return AuthInfo{}, WrapError(err, "fetch auth info")
	}
	return info, nil
}

func SetLastLogin(db *sqlx.DB, userID string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE users SET last_login_at = $1, updated_at = $1 WHERE id = $2`, now, userID)
	return err
}

// DefaultTierID returns the id of the free tier, used for new signups.
func DefaultTierID(db *sqlx.DB) (string, error) {
	var id string
	err := db.Get(&id, `SELECT id FROM access_tiers WHERE name = 'free'`)
	if err != nil {
		return "", WrapError(err, "default tier")
	}
	return id, nil
}
