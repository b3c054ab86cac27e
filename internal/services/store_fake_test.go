package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"solis-backend-go/internal/models"
)

// fakeStore is an in-memory ContentStore with the same filter semantics as
// the SQL store. It records every call so tests can assert the gate never
// touches the store for unauthorized callers.
type fakeStore struct {
	mu         sync.Mutex
	items      map[string]models.ContentItem
	tiers      []models.AccessTier
	ageGroups  []models.AgeGroup
	categories []models.Category

	failList       bool
	failTiers      bool
	failAgeGroups  bool
	failCategories bool

	calls []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: map[string]models.ContentItem{}}
}

func (f *fakeStore) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeStore) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeStore) add(item models.ContentItem) {
	f.mu.Lock()
	f.items[item.ID] = item
	f.mu.Unlock()
}

func (f *fakeStore) filtered(filter FilterRequest) []models.ContentItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := []models.ContentItem{}
	for _, item := range f.items {
		if !filter.IncludeUnpublished && !item.Published {
			continue
		}
		if len(filter.TierIDs) > 0 && !containsString(filter.TierIDs, item.AccessTierID) {
			continue
		}
		if len(filter.CategoryIDs) > 0 && (item.CategoryID == nil || !containsString(filter.CategoryIDs, *item.CategoryID)) {
			continue
		}
		if len(filter.AgeGroupIDs) > 0 && (item.AgeGroupID == nil || !containsString(filter.AgeGroupIDs, *item.AgeGroupID)) {
			continue
		}
		if len(filter.Types) > 0 && !containsString(filter.Types, item.Type) {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			title := strings.ToLower(item.Title)
			description := strings.ToLower(item.Description)
			if !strings.Contains(title, needle) && !strings.Contains(description, needle) {
				continue
			}
		}
		if filter.CreatedBefore != nil && !item.CreatedAt.Before(*filter.CreatedBefore) {
			continue
		}
		matched = append(matched, item)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

func (f *fakeStore) ListContent(ctx context.Context, filter FilterRequest) ([]models.ContentItem, error) {
	f.record("ListContent")
	if f.failList {
		return nil, errors.New("list failed")
	}
	matched := f.filtered(filter)
	limit := filter.Limit
	if limit <= 0 {
		limit = len(matched)
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit
	if offset >= len(matched) {
		return []models.ContentItem{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (f *fakeStore) CountContent(ctx context.Context, filter FilterRequest) (int, error) {
	f.record("CountContent")
	if f.failList {
		return 0, errors.New("count failed")
	}
	return len(f.filtered(filter)), nil
}

func (f *fakeStore) GetContentBySlug(ctx context.Context, slug string) (*models.ContentItem, error) {
	f.record("GetContentBySlug")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.items {
		if item.Slug == slug {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	f.record("SlugExists")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.items {
		if item.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) GetContentByID(ctx context.Context, id string) (*models.ContentItem, error) {
	f.record("GetContentByID")
	f.mu.Lock()
	defer f.mu.Unlock()
	if item, ok := f.items[id]; ok {
		return &item, nil
	}
	return nil, nil
}

func (f *fakeStore) InsertContent(ctx context.Context, item models.ContentItem) error {
	f.record("InsertContent")
	f.add(item)
	return nil
}

func (f *fakeStore) UpdateContent(ctx context.Context, item models.ContentItem) error {
	f.record("UpdateContent")
	f.add(item)
	return nil
}

func (f *fakeStore) DeleteContent(ctx context.Context, id string) (bool, error) {
	f.record("DeleteContent")
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return false, nil
	}
	delete(f.items, id)
	return true, nil
}

func (f *fakeStore) SetPublished(ctx context.Context, id string, published bool, at time.Time) error {
	f.record("SetPublished")
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil
	}
	item.Published = published
	item.UpdatedAt = at
	f.items[id] = item
	return nil
}

func (f *fakeStore) ListAccessTiers(ctx context.Context) ([]models.AccessTier, error) {
	f.record("ListAccessTiers")
	if f.failTiers {
		return nil, errors.New("tiers failed")
	}
	return f.tiers, nil
}

func (f *fakeStore) ListAgeGroups(ctx context.Context) ([]models.AgeGroup, error) {
	f.record("ListAgeGroups")
	if f.failAgeGroups {
		return nil, errors.New("age groups failed")
	}
	return f.ageGroups, nil
}

func (f *fakeStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	f.record("ListCategories")
	if f.failCategories {
		return nil, errors.New("categories failed")
	}
	return f.categories, nil
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
