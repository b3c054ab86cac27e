package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"solis-backend-go/internal/models"
)

// ContentStore is the persistence boundary for the content layer. The SQL
// implementation below is the production store; tests swap in a fake.
type ContentStore interface {
	ListContent(ctx context.Context, f FilterRequest) ([]models.ContentItem, error)
	CountContent(ctx context.Context, f FilterRequest) (int, error)
	GetContentBySlug(ctx context.Context, slug string) (*models.ContentItem, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	GetContentByID(ctx context.Context, id string) (*models.ContentItem, error)
	InsertContent(ctx context.Context, item models.ContentItem) error
	UpdateContent(ctx context.Context, item models.ContentItem) error
	DeleteContent(ctx context.Context, id string) (bool, error)
	SetPublished(ctx context.Context, id string, published bool, at time.Time) error
	ListAccessTiers(ctx context.Context) ([]models.AccessTier, error)
	ListAgeGroups(ctx context.Context) ([]models.AgeGroup, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type SQLContentStore struct {
	DB *sqlx.DB
}

func NewSQLContentStore(db *sqlx.DB) *SQLContentStore {
	return &SQLContentStore{DB: db}
}

func (s *SQLContentStore) ListContent(ctx context.Context, f FilterRequest) ([]models.ContentItem, error) {
	q := BuildContentQuery(f)
	items := []models.ContentItem{}
	if err := s.DB.SelectContext(ctx, &items, q.SQL, q.Args...); err != nil {
		return nil, WrapError(err, "list content")
	}
	return items, nil
}

func (s *SQLContentStore) CountContent(ctx context.Context, f FilterRequest) (int, error) {
	q := BuildContentQuery(f)
	var total int
	if err := s.DB.GetContext(ctx, &total, q.CountSQL, q.CountArgs...); err != nil {
		return 0, WrapError(err, "count content")
	}
	return total, nil
}

func (s *SQLContentStore) GetContentBySlug(ctx context.Context, slug string) (*models.ContentItem, error) {
	var item models.ContentItem
	err := s.DB.GetContext(ctx, &item, `SELECT `+contentColumns+` FROM content_items WHERE slug = $1`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, WrapError(err, "get content by slug")
	}
	return &item, nil
}

func (s *SQLContentStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := s.DB.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM content_items WHERE slug = $1)`, slug); err != nil {
		return false, WrapError(err, "slug exists")
	}
	return exists, nil
}

func (s *SQLContentStore) GetContentByID(ctx context.Context, id string) (*models.ContentItem, error) {
	var item models.ContentItem
	err := s.DB.GetContext(ctx, &item, `SELECT `+contentColumns+` FROM content_items WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, WrapError(err, "get content by id")
	}
	return &item, nil
}

func (s *SQLContentStore) InsertContent(ctx context.Context, item models.ContentItem) error {
	_, err := s.DB.ExecContext(ctx, `
INSERT INTO content_items (id, slug, title, description, type, published, access_tier_id, age_group_id, category_id, thumbnail_url, content_body, author_id, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
`, item.ID, item.Slug, item.Title, item.Description, item.Type, item.Published, item.AccessTierID,
		item.AgeGroupID, item.CategoryID, item.ThumbnailURL, item.ContentBody, item.AuthorID, item.CreatedAt, item.UpdatedAt)
	return WrapError(err, "insert content")
}

func (s *SQLContentStore) UpdateContent(ctx context.Context, item models.ContentItem) error {
	_, err := s.DB.ExecContext(ctx, `
UPDATE content_items
SET title = $2,
    description = $3,
    type = $4,
    published = $5,
    access_tier_id = $6,
    age_group_id = $7,
    category_id = $8,
    thumbnail_url = $9,
    content_body = $10,
    updated_at = $11
WHERE id = $1
`, item.ID, item.Title, item.Description, item.Type, item.Published, item.AccessTierID,
		item.AgeGroupID, item.CategoryID, item.ThumbnailURL, item.ContentBody, item.UpdatedAt)
	return WrapError(err, "update content")
}

func (s *SQLContentStore) DeleteContent(ctx context.Context, id string) (bool, error) {
	result, err := s.DB.ExecContext(ctx, `DELETE FROM content_items WHERE id = $1`, id)
	if err != nil {
		return false, WrapError(err, "delete content")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, WrapError(err, "delete content")
	}
	return affected > 0, nil
}

func (s *SQLContentStore) SetPublished(ctx context.Context, id string, published bool, at time.Time) error {
	_, err := s.DB.ExecContext(ctx, `UPDATE content_items SET published = $2, updated_at = $3 WHERE id = $1`, id, published, at)
	return WrapError(err, "set published")
}

func (s *SQLContentStore) ListAccessTiers(ctx context.Context) ([]models.AccessTier, error) {
	tiers := []models.AccessTier{}
	if err := s.DB.SelectContext(ctx, &tiers, `SELECT id, name, level, features FROM access_tiers ORDER BY level ASC`); err != nil {
		return nil, WrapError(err, "list access tiers")
	}
	return tiers, nil
}

func (s *SQLContentStore) ListAgeGroups(ctx context.Context) ([]models.AgeGroup, error) {
	groups := []models.AgeGroup{}
	if err := s.DB.SelectContext(ctx, &groups, `SELECT id, range, sort_order FROM age_groups ORDER BY sort_order ASC`); err != nil {
		return nil, WrapError(err, "list age groups")
	}
	return groups, nil
}

func (s *SQLContentStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.DB.SelectContext(ctx, &categories, `SELECT id, name, sort_order FROM categories ORDER BY sort_order ASC`); err != nil {
		return nil, WrapError(err, "list categories")
	}
	return categories, nil
}
