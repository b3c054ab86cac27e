package services

import (
	"time"

	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugCacheRefusesUnpublished(t *testing.T) {
	cache := NewSlugCache(time.Minute)

	published := testItem("a", "viesas", true, 1)
	cache.Put(published)
	assert.NotNil(t, cache.Get("viesas"))

	draft := testItem("b", "juodrastis", false, 2)
	cache.Put(draft)
	assert.Nil(t, cache.Get("juodrastis"))
}

func TestSlugCacheInvalidate(t *testing.T) {
	cache := NewSlugCache(time.Minute)
	cache.Put(testItem("a", "viesas", true, 1))
	cache.Invalidate("viesas")
	assert.Nil(t, cache.Get("viesas"))
}

func TestSlugCacheNilReceiver(t *testing.T) {
	var cache *SlugCache
	assert.Nil(t, cache.Get("bet-kas"))
	cache.Put(testItem("a", "viesas", true, 1))
	cache.Invalidate("viesas")
}
