package services

import (
	"context"
	"time"

	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solis-backend-go/internal/models"
)

var seedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func adminSession() Session {
	return Session{
		Authenticated: true,
		UserID:        "admin-1",
		Email:         "admin@solis.lt",
		Role:          RoleAdministrator,
		ExpiresAt:     time.Now().Add(time.Hour),
	}
}

func premiumSession() Session {
	return Session{
		Authenticated: true,
		UserID:        "user-1",
		Email:         "narys@solis.lt",
		Role:          RolePremium,
		ExpiresAt:     time.Now().Add(time.Hour),
	}
}

func freeSession() Session {
	return Session{
		Authenticated: true,
		UserID:        "user-2",
		Email:         "lankytojas@solis.lt",
		Role:          RoleFree,
		ExpiresAt:     time.Now().Add(time.Hour),
	}
}

func testItem(id, slug string, published bool, age int) models.ContentItem {
	return models.ContentItem{
		ID:           id,
		Slug:         slug,
		Title:        "Item " + id,
		Description:  "Description for " + id,
		Type:         ContentTypeVideo,
		Published:    published,
		AccessTierID: "tier-free",
		CreatedAt:    seedTime.Add(-time.Duration(age) * time.Hour),
		UpdatedAt:    seedTime.Add(-time.Duration(age) * time.Hour),
	}
}

func newTestService() (*ContentService, *fakeStore) {
	store := newFakeStore()
	return NewContentService(store, NewSlugCache(time.Minute)), store
}

func TestListHidesUnpublishedFromNonAdmins(t *testing.T) {
	svc, store := newTestService()
	store.add(testItem("a", "item-a", true, 1))
	store.add(testItem("b", "item-b", false, 2))

	filter := FilterRequest{IncludeUnpublished: true}
	for name, session := range map[string]Session{
		"anonymous": {},
		"free":      freeSession(),
		"premium":   premiumSession(),
	} {
		page, err := svc.List(context.Background(), filter, session)
		require.NoError(t, err, name)
		require.Len(t, page.Items, 1, name)
		assert.Equal(t, "a", page.Items[0].ID, name)
		assert.Equal(t, 1, page.Total, name)
	}
}

func TestListIncludesUnpublishedForAdmin(t *testing.T) {
	svc, store := newTestService()
	store.add(testItem("a", "item-a", true, 1))
	store.add(testItem("b", "item-b", false, 2))

	page, err := svc.List(context.Background(), FilterRequest{IncludeUnpublished: true}, adminSession())
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Total)
}

func TestListAdminWithoutFlagGetsPublishedOnly(t *testing.T) {
	svc, store := newTestService()
	store.add(testItem("a", "item-a", true, 1))
	store.add(testItem("b", "item-b", false, 2))

	page, err := svc.List(context.Background(), FilterRequest{}, adminSession())
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "a", page.Items[0].ID)
}

func TestListOrdersNewestFirstAndPaginates(t *testing.T) {
	svc, store := newTestService()
	for i := 1; i <= 5; i++ {
		store.add(testItem(string(rune('a'+i-1)), "item-"+string(rune('a'+i-1)), true, i))
	}

	page, err := svc.List(context.Background(), FilterRequest{Page: 1, Limit: 2}, Session{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "a", page.Items[0].ID)
	assert.Equal(t, "b", page.Items[1].ID)
	assert.Equal(t, 5, page.Total)

	page, err = svc.List(context.Background(), FilterRequest{Page: 3, Limit: 2}, Session{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "e", page.Items[0].ID)
}

func TestListRejectsNegativePagination(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.List(context.Background(), FilterRequest{Page: -1}, Session{})
	require.Error(t, err)
	assert.Equal(t, 400, StatusOf(err))

	_, err = svc.List(context.Background(), FilterRequest{Limit: -5}, Session{})
	require.Error(t, err)
	assert.Equal(t, 400, StatusOf(err))
}

func TestListFiltersByTypeAndSearch(t *testing.T) {
	svc, store := newTestService()
	video := testItem("a", "sokiai", true, 1)
	video.Title = "Pavasario šokis"
	audio := testItem("b", "ritmas", true, 2)
	audio.Type = ContentTypeAudio
	audio.Title = "Muzikos ritmo pamoka"
	store.add(video)
	store.add(audio)

	page, err := svc.List(context.Background(), FilterRequest{Types: []string{ContentTypeAudio}}, Session{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "b", page.Items[0].ID)

	page, err = svc.List(context.Background(), FilterRequest{Search: "  pavasario "}, Session{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "a", page.Items[0].ID)
}

func TestGetBySlugNotFoundIsIndistinguishable(t *testing.T) {
	svc, store := newTestService()
	store.add(testItem("b", "hidden", false, 1))

	_, errAbsent := svc.GetBySlug(context.Background(), "no-such-slug", freeSession())
	_, errHidden := svc.GetBySlug(context.Background(), "hidden", freeSession())

	require.Error(t, errAbsent)
	require.Error(t, errHidden)
	assert.Equal(t, errAbsent, errHidden)
	assert.Equal(t, 404, StatusOf(errHidden))
}

func TestGetBySlugUnpublishedVisibleToAdmin(t *testing.T) {
	svc, store := newTestService()
	store.add(testItem("b", "hidden", false, 1))

	item, err := svc.GetBySlug(context.Background(), "hidden", adminSession())
	require.NoError(t, err)
	assert.Equal(t, "b", item.ID)
}

func TestGetBySlugCachesPublishedOnly(t *testing.T) {
	svc, store := newTestService()
	store.add(testItem("a", "public", true, 1))
	store.add(testItem("b", "hidden", false, 2))

	_, err := svc.GetBySlug(context.Background(), "public", Session{})
	require.NoError(t, err)
	before := store.callCount()
	_, err = svc.GetBySlug(context.Background(), "public", Session{})
	require.NoError(t, err)
	assert.Equal(t, before, store.callCount(), "second lookup should be served from cache")

	_, err = svc.GetBySlug(context.Background(), "hidden", adminSession())
	require.NoError(t, err)
	before = store.callCount()
	_, err = svc.GetBySlug(context.Background(), "hidden", adminSession())
	require.NoError(t, err)
	assert.Greater(t, store.callCount(), before, "unpublished items must not be cached")
}

func TestGetBySlugEmptySlug(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.GetBySlug(context.Background(), "   ", Session{})
	require.Error(t, err)
	assert.Equal(t, 404, StatusOf(err))
}

func TestListForManagementRequiresAdmin(t *testing.T) {
	svc, store := newTestService()
	store.add(testItem("a", "item-a", true, 1))

	_, err := svc.ListForManagement(context.Background(), Session{})
	assert.Equal(t, 401, StatusOf(err))

	_, err = svc.ListForManagement(context.Background(), premiumSession())
	assert.Equal(t, 403, StatusOf(err))
}

func TestListForManagementResolvesReferences(t *testing.T) {
	svc, store := newTestService()
	store.tiers = []models.AccessTier{{ID: "tier-free", Name: "free"}}
	store.categories = []models.Category{{ID: "cat-1", Name: "Šokiai"}}
	categoryID := "cat-1"
	item := testItem("a", "item-a", false, 1)
	item.CategoryID = &categoryID
	store.add(item)

	managed, err := svc.ListForManagement(context.Background(), adminSession())
	require.NoError(t, err)
	require.Len(t, managed, 1)
	require.NotNil(t, managed[0].Tier)
	assert.Equal(t, "free", managed[0].Tier.Name)
	require.NotNil(t, managed[0].Category)
	assert.Equal(t, "Šokiai", managed[0].Category.Name)
	assert.Nil(t, managed[0].AgeGroup)
}

func TestOverviewRequiresAdmin(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Overview(context.Background(), Session{})
	assert.Equal(t, 401, StatusOf(err))
	_, err = svc.Overview(context.Background(), freeSession())
	assert.Equal(t, 403, StatusOf(err))
}

func TestOverviewDegradesFailedReads(t *testing.T) {
	svc, store := newTestService()
	store.add(testItem("a", "item-a", true, 1))
	store.tiers = []models.AccessTier{{ID: "tier-free", Name: "free"}}
	store.ageGroups = []models.AgeGroup{{ID: "ag-1", Range: "2-4"}}
	store.failCategories = true

	overview, err := svc.Overview(context.Background(), adminSession())
	require.NoError(t, err)
	assert.Len(t, overview.Content, 1)
	assert.Len(t, overview.Tiers, 1)
	assert.Len(t, overview.AgeGroups, 1)
	assert.Empty(t, overview.Categories)
}

func TestOverviewDegradesAllReads(t *testing.T) {
	svc, store := newTestService()
	store.failList = true
	store.failTiers = true
	store.failAgeGroups = true
	store.failCategories = true

	overview, err := svc.Overview(context.Background(), adminSession())
	require.NoError(t, err)
	assert.Empty(t, overview.Content)
	assert.Empty(t, overview.Tiers)
	assert.Empty(t, overview.AgeGroups)
	assert.Empty(t, overview.Categories)
}
