package services

import (
	"context"
	"log"
	"strings"
	"sync"

	"solis-backend-go/internal/models"
)

// ContentService enforces the visibility contract between callers and the
// content store. It never trusts a caller-supplied unpublished flag:
// privilege is re-derived from the session on every call.
type ContentService struct {
	Store ContentStore
	Cache *SlugCache
}

func NewContentService(store ContentStore, cache *SlugCache) *ContentService {
	return &ContentService{Store: store, Cache: cache}
}

type ContentPage struct {
	Items []models.ContentItem
	Total int
	Page  int
	Size  int
}

// List returns the catalog page for the filter. Non-admin callers always
// get published items only, regardless of what the filter requests.
func (s *ContentService) List(ctx context.Context, filter FilterRequest, session Session) (ContentPage, error) {
	f, err := NormalizeFilter(filter)
	if err != nil {
		return ContentPage{}, err
	}
	if !IsAdmin(session) {
		f.IncludeUnpublished = false
	}
	items, err := s.Store.ListContent(ctx, f)
	if err != nil {
		return ContentPage{}, err
	}
	total, err := s.Store.CountContent(ctx, f)
	if err != nil {
		return ContentPage{}, err
	}
	return ContentPage{Items: items, Total: total, Page: f.Page, Size: f.Limit}, nil
}

// GetBySlug looks up one item. Absent slugs and unpublished items behind an
// unprivileged caller are indistinguishable: both are a plain not-found.
func (s *ContentService) GetBySlug(ctx context.Context, slug string, session Session) (*models.ContentItem, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrNotFound("Content not found")
	}
	if cached := s.Cache.Get(slug); cached != nil {
		return cached, nil
	}
	item, err := s.Store.GetContentBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound("Content not found")
	}
	if !item.Published && !IsAdmin(session) {
		return nil, ErrNotFound("Content not found")
	}
	s.Cache.Put(*item)
	return item, nil
}

// ManagedContent is a content row with its reference data resolved.
type ManagedContent struct {
	models.ContentItem
	Tier     *models.AccessTier
	AgeGroup *models.AgeGroup
	Category *models.Category
}

// ListForManagement returns every item, drafts included, for the admin
// management view. Requires an admin session.
func (s *ContentService) ListForManagement(ctx context.Context, session Session) ([]ManagedContent, error) {
	if !IsAuthenticated(session) {
		return nil, ErrUnauthorized("Authentication required")
	}
	if !IsAdmin(session) {
		return nil, ErrForbidden("Not allowed")
	}
	items, err := s.Store.ListContent(ctx, FilterRequest{IncludeUnpublished: true, Page: 1, Limit: maxPageSize * 5})
	if err != nil {
		return nil, err
	}
	tiers, err := s.Store.ListAccessTiers(ctx)
	if err != nil {
		return nil, err
	}
	ageGroups, err := s.Store.ListAgeGroups(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.Store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return resolveReferences(items, tiers, ageGroups, categories), nil
}

// Overview is the composite admin dashboard payload.
type Overview struct {
	Content    []ManagedContent
	Tiers      []models.AccessTier
	AgeGroups  []models.AgeGroup
	Categories []models.Category
}

// Overview fetches the management view's independent reads concurrently.
// Each read is independently fallible: a failure degrades that slice to
// empty so the page still renders.
func (s *ContentService) Overview(ctx context.Context, session Session) (Overview, error) {
	if !IsAuthenticated(session) {
		return Overview{}, ErrUnauthorized("Authentication required")
	}
	if !IsAdmin(session) {
		return Overview{}, ErrForbidden("Not allowed")
	}

	var (
		wg         sync.WaitGroup
		items      []models.ContentItem
		tiers      []models.AccessTier
		ageGroups  []models.AgeGroup
		categories []models.Category
	)
	wg.Add(4)
	go func() {
		defer wg.Done()
		result, err := s.Store.ListContent(ctx, FilterRequest{IncludeUnpublished: true, Page: 1, Limit: maxPageSize * 5})
		if err != nil {
			log.Printf("overview content: %v", err)
			return
		}
		items = result
	}()
	go func() {
		defer wg.Done()
		result, err := s.Store.ListAccessTiers(ctx)
		if err != nil {
			log.Printf("overview tiers: %v", err)
			return
		}
		tiers = result
	}()
	go func() {
		defer wg.Done()
		result, err := s.Store.ListAgeGroups(ctx)
		if err != nil {
			log.Printf("overview age groups: %v", err)
			return
		}
		ageGroups = result
	}()
	go func() {
		defer wg.Done()
		result, err := s.Store.ListCategories(ctx)
		if err != nil {
			log.Printf("overview categories: %v", err)
			return
		}
		categories = result
	}()
	wg.Wait()

	return Overview{
		Content:    resolveReferences(items, tiers, ageGroups, categories),
		Tiers:      tiers,
		AgeGroups:  ageGroups,
		Categories: categories,
	}, nil
}

func (s *ContentService) AccessTiers(ctx context.Context) ([]models.AccessTier, error) {
	return s.Store.ListAccessTiers(ctx)
}

func (s *ContentService) AgeGroups(ctx context.Context) ([]models.AgeGroup, error) {
	return s.Store.ListAgeGroups(ctx)
}

func (s *ContentService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.Store.ListCategories(ctx)
}

func resolveReferences(items []models.ContentItem, tiers []models.AccessTier, ageGroups []models.AgeGroup, categories []models.Category) []ManagedContent {
	tierByID := make(map[string]models.AccessTier, len(tiers))
	for _, tier := range tiers {
		tierByID[tier.ID] = tier
	}
	ageGroupByID := make(map[string]models.AgeGroup, len(ageGroups))
	for _, group := range ageGroups {
		ageGroupByID[group.ID] = group
	}
	categoryByID := make(map[string]models.Category, len(categories))
	for _, category := range categories {
		categoryByID[category.ID] = category
	}

	managed := make([]ManagedContent, 0, len(items))
	for _, item := range items {
		entry := ManagedContent{ContentItem: item}
		if tier, ok := tierByID[item.AccessTierID]; ok {
			entry.Tier = &tier
		}
		if item.AgeGroupID != nil {
			if group, ok := ageGroupByID[*item.AgeGroupID]; ok {
				entry.AgeGroup = &group
			}
		}
		if item.CategoryID != nil {
			if category, ok := categoryByID[*item.CategoryID]; ok {
				entry.Category = &category
			}
		}
		managed = append(managed, entry)
	}
	return managed
}
