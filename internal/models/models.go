package models

import "time"

type User struct {
	ID                 string     `db:"id"`
	Email              string     `db:"email"`
	PasswordHash       string     `db:"password_hash"`
	Role               string     `db:"role"`
	SubscriptionTierID *string    `db:"subscription_tier_id"`
	Status             string     `db:"status"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
	LastLoginAt        *time.Time `db:"last_login_at"`
}

type AccessTier struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Level    int    `db:"level"`
	Features []byte `db:"features"`
}

type AgeGroup struct {
	ID        string `db:"id"`
	Range     string `db:"range"`
	SortOrder int    `db:"sort_order"`
}

type Category struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	SortOrder int    `db:"sort_order"`
}

type ContentItem struct {
	ID           string    `db:"id"`
	Slug         string    `db:"slug"`
	Title        string    `db:"title"`
	Description  string    `db:"description"`
	Type         string    `db:"type"`
	Published    bool      `db:"published"`
	AccessTierID string    `db:"access_tier_id"`
	AgeGroupID   *string   `db:"age_group_id"`
	CategoryID   *string   `db:"category_id"`
	ThumbnailURL *string   `db:"thumbnail_url"`
	ContentBody  *string   `db:"content_body"`
	AuthorID     string    `db:"author_id"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type ServerMetricSample struct {
	ID                string    `db:"id"`
	CapturedAt        time.Time `db:"captured_at"`
	ProcessRSSBytes   int64     `db:"process_rss_bytes"`
	SystemMemoryTotal int64     `db:"system_memory_total_bytes"`
	SystemMemoryUsed  int64     `db:"system_memory_used_bytes"`
	DiskTotalBytes    int64     `db:"disk_total_bytes"`
	DiskUsedBytes     int64     `db:"disk_used_bytes"`
	ProcessCpuLoad    float64   `db:"process_cpu_load"`
	SystemCpuLoad     float64   `db:"system_cpu_load"`
}
