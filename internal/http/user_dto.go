package httpapi

import (
	"time"

	"github.com/jmoiron/sqlx"
)

type UserDTO struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	Role             string         `json:"role"`
	SubscriptionTier *AccessTierDTO `json:"subscriptionTier"`
	Status           string         `json:"status"`
	CreatedAt        string         `json:"createdAt"`
	LastLoginAt      *string        `json:"lastLoginAt"`
}

func buildUserDTO(db *sqlx.DB, userID string) (*UserDTO, error) {
	row := struct {
		ID          string     `db:"id"`
		Email       string     `db:"email"`
		Role        string     `db:"role"`
		Status      string     `db:"status"`
		CreatedAt   time.Time  `db:"created_at"`
		LastLoginAt *time.Time `db:"last_login_at"`
		TierID      *string    `db:"tier_id"`
		TierName    *string    `db:"tier_name"`
		TierLevel   *int       `db:"tier_level"`
	}{}
	if err := db.Get(&row, `
SELECT u.id, u.email, u.role, u.status, u.created_at, u.last_login_at,
       t.id AS tier_id, t.name AS tier_name, t.level AS tier_level
FROM users u
LEFT JOIN access_tiers t ON t.id = u.subscription_tier_id
WHERE u.id = $1
`, userID); err != nil {
		return nil, err
	}
	dto := &UserDTO{
		ID:        row.ID,
		Email:     row.Email,
		Role:      row.Role,
		Status:    row.Status,
		CreatedAt: row.CreatedAt.UTC().Format(time.RFC3339),
	}
	if row.LastLoginAt != nil {
		formatted := row.LastLoginAt.UTC().Format(time.RFC3339)
		dto.LastLoginAt = &formatted
	}
	if row.TierID != nil && row.TierName != nil && row.TierLevel != nil {
		dto.SubscriptionTier = &AccessTierDTO{ID: *row.TierID, Name: *row.TierName, Level: *row.TierLevel}
	}
	return dto, nil
}
