package services

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"solis-backend-go/internal/models"
)

// SlugCache is a short-lived read-through cache for published content
// detail lookups. Only published items are cacheable; authorization is
// always re-derived by the caller, never by the cache.
type SlugCache struct {
	store *gocache.Cache
}

func NewSlugCache(ttl time.Duration) *SlugCache {
	return &SlugCache{store: gocache.New(ttl, 2*ttl)}
}

func (c *SlugCache) Get(slug string) *models.ContentItem {
	if c == nil {
		return nil
	}
	value, ok := c.store.Get(slug)
	if !ok {
		return nil
	}
	item, ok := value.(models.ContentItem)
	if !ok {
		return nil
	}
	return &item
}

func (c *SlugCache) Put(item models.ContentItem) {
	if c == nil || !item.Published {
		return
	}
	c.store.SetDefault(item.Slug, item)
}

func (c *SlugCache) Invalidate(slug string) {
	if c == nil {
		return
	}
	c.store.Delete(slug)
}
