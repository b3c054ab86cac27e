package httpapi

import (
	"time"

	"solis-backend-go/internal/models"
	"solis-backend-go/internal/services"
)

type AccessTierDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type AgeGroupDTO struct {
	ID        string `json:"id"`
	Range     string `json:"range"`
	SortOrder int    `json:"sortOrder"`
}

type CategoryDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
}

type ContentCardDTO struct {
	ID           string  `json:"id"`
	Slug         string  `json:"slug"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Type         string  `json:"type"`
	Published    bool    `json:"published"`
	AccessTierID string  `json:"accessTierId"`
	AgeGroupID   *string `json:"ageGroupId"`
	CategoryID   *string `json:"categoryId"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	CreatedAt    string  `json:"createdAt"`
}

type ContentDetailDTO struct {
	ContentCardDTO
	ContentBody *string        `json:"contentBody"`
	Tier        *AccessTierDTO `json:"accessTier,omitempty"`
	AgeGroup    *AgeGroupDTO   `json:"ageGroup,omitempty"`
	Category    *CategoryDTO   `json:"category,omitempty"`
	UpdatedAt   string         `json:"updatedAt"`
}

type ContentListResponse struct {
	Items []ContentCardDTO `json:"items"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Size  int              `json:"size"`
}

type OverviewResponse struct {
	Content    []ContentDetailDTO `json:"content"`
	Tiers      []AccessTierDTO    `json:"accessTiers"`
	AgeGroups  []AgeGroupDTO      `json:"ageGroups"`
	Categories []CategoryDTO      `json:"categories"`
}

func toContentCard(item models.ContentItem) ContentCardDTO {
	return ContentCardDTO{
		ID:           item.ID,
		Slug:         item.Slug,
		Title:        item.Title,
		Description:  item.Description,
		Type:         item.Type,
		Published:    item.Published,
		AccessTierID: item.AccessTierID,
		AgeGroupID:   item.AgeGroupID,
		CategoryID:   item.CategoryID,
		ThumbnailURL: item.ThumbnailURL,
		CreatedAt:    item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toContentDetail(item models.ContentItem) ContentDetailDTO {
	return ContentDetailDTO{
		ContentCardDTO: toContentCard(item),
		ContentBody:    item.ContentBody,
		UpdatedAt:      item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toManagedDetail(entry services.ManagedContent) ContentDetailDTO {
	dto := toContentDetail(entry.ContentItem)
	if entry.Tier != nil {
		tier := toAccessTierDTO(*entry.Tier)
		dto.Tier = &tier
	}
	if entry.AgeGroup != nil {
		group := toAgeGroupDTO(*entry.AgeGroup)
		dto.AgeGroup = &group
	}
	if entry.Category != nil {
		category := toCategoryDTO(*entry.Category)
		dto.Category = &category
	}
	return dto
}

func toAccessTierDTO(tier models.AccessTier) AccessTierDTO {
	return AccessTierDTO{ID: tier.ID, Name: tier.Name, Level: tier.Level}
}

func toAgeGroupDTO(group models.AgeGroup) AgeGroupDTO {
	return AgeGroupDTO{ID: group.ID, Range: group.Range, SortOrder: group.SortOrder}
}

func toCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{ID: category.ID, Name: category.Name, SortOrder: category.SortOrder}
}
