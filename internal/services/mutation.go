package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"solis-backend-go/internal/models"
)

// ContentInput is the validated payload for create and update operations.
type ContentInput struct {
	Title        string
	Description  string
	Type         string
	AccessTierID string
	AgeGroupID   *string
	CategoryID   *string
	ThumbnailURL *string
	ContentBody  *string
	Published    bool
}

// ContentMutationGate wraps every content write behind the admin check.
// The check runs before any store access.
type ContentMutationGate struct {
	Store ContentStore
	Cache *SlugCache
}

func NewContentMutationGate(store ContentStore, cache *SlugCache) *ContentMutationGate {
	return &ContentMutationGate{Store: store, Cache: cache}
}

func (g *ContentMutationGate) authorize(session Session) error {
	if !IsAuthenticated(session) {
		return ErrUnauthorized("Authentication required")
	}
	if !IsAdmin(session) {
		return ErrForbidden("Not allowed")
	}
	return nil
}

func validateInput(input ContentInput) (ContentInput, error) {
	title, err := NormalizeRequired(input.Title, "Title is required")
	if err != nil {
		return ContentInput{}, err
	}
	input.Title = title
	if !IsContentType(input.Type) {
		return ContentInput{}, ErrBadRequest("Unknown content type")
	}
	tierID, err := NormalizeRequired(input.AccessTierID, "Access tier is required")
	if err != nil {
		return ContentInput{}, err
	}
	input.AccessTierID = tierID
	return input, nil
}

func (g *ContentMutationGate) Create(ctx context.Context, input ContentInput, session Session) (*models.ContentItem, error) {
	if err := g.authorize(session); err != nil {
		return nil, err
	}
	input, err := validateInput(input)
	if err != nil {
		return nil, err
	}
	slug, err := ResolveContentSlug(ctx, g.Store, input.Title)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	item := models.ContentItem{
		ID:           uuid.NewString(),
		Slug:         slug,
		Title:        input.Title,
		Description:  input.Description,
		Type:         input.Type,
		Published:    input.Published,
		AccessTierID: input.AccessTierID,
		AgeGroupID:   input.AgeGroupID,
		CategoryID:   input.CategoryID,
		ThumbnailURL: input.ThumbnailURL,
		ContentBody:  input.ContentBody,
		AuthorID:     session.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := g.Store.InsertContent(ctx, item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update edits an existing item in place. The slug is immutable once
// assigned; only the mutable fields change.
func (g *ContentMutationGate) Update(ctx context.Context, id string, input ContentInput, session Session) (*models.ContentItem, error) {
	if err := g.authorize(session); err != nil {
		return nil, err
	}
	input, err := validateInput(input)
	if err != nil {
		return nil, err
	}
	existing, err := g.Store.GetContentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound("Content not found")
	}
	updated := *existing
	updated.Title = input.Title
	updated.Description = input.Description
	updated.Type = input.Type
	updated.Published = input.Published
	updated.AccessTierID = input.AccessTierID
	updated.AgeGroupID = input.AgeGroupID
	updated.CategoryID = input.CategoryID
	updated.ThumbnailURL = input.ThumbnailURL
	updated.ContentBody = input.ContentBody
	updated.UpdatedAt = time.Now().UTC()
	if err := g.Store.UpdateContent(ctx, updated); err != nil {
		return nil, err
	}
	g.Cache.Invalidate(updated.Slug)
	return &updated, nil
}

// Delete removes an item. Deleting an id that is already gone is a clean
// not-found, never a crash.
func (g *ContentMutationGate) Delete(ctx context.Context, id string, session Session) error {
	if err := g.authorize(session); err != nil {
		return err
	}
	existing, err := g.Store.GetContentByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound("Content not found")
	}
	deleted, err := g.Store.DeleteContent(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound("Content not found")
	}
	g.Cache.Invalidate(existing.Slug)
	return nil
}

// SetPublished toggles publication state. Setting the current state is a
// no-op success and leaves the row untouched.
func (g *ContentMutationGate) SetPublished(ctx context.Context, id string, published bool, session Session) (*models.ContentItem, error) {
	if err := g.authorize(session); err != nil {
		return nil, err
	}
	existing, err := g.Store.GetContentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound("Content not found")
	}
	if existing.Published == published {
		return existing, nil
	}
	now := time.Now().UTC()
	if err := g.Store.SetPublished(ctx, id, published, now); err != nil {
		return nil, err
	}
	g.Cache.Invalidate(existing.Slug)
	updated := *existing
	updated.Published = published
	updated.UpdatedAt = now
	return &updated, nil
}
