package services

import (
	"context"

	"solis-backend-go/internal/models"
)

type sampleSpec struct {
	Title       string
	Description string
	Type        string
	TierName    string
}

var sampleContents = []sampleSpec{
	{
		Title:       "Pavasario šokis",
		Description: "Linksmas šokis vaikams, švenčiantis pavasario atėjimą",
		Type:        ContentTypeVideo,
		TierName:    "free",
	},
	{
		Title:       "Muzikos ritmo pamoka",
		Description: "Interaktyvi muzikos pamoka mažiesiems",
		Type:        ContentTypeAudio,
		TierName:    "premium",
	},
	{
		Title:       "Kultūros pažinimo užduotys",
		Description: "Edukacinės užduotys apie lietuvių liaudies tradicijas",
		Type:        ContentTypeLessonPlan,
		TierName:    "premium",
	},
	{
		Title:       "Ritmo žaidimas",
		Description: "Interaktyvus žaidimas ritmo pojūčiui lavinti",
		Type:        ContentTypeGame,
		TierName:    "free",
	},
}

// SeedSamples inserts a fixed set of demo items. Admin only.
func (g *ContentMutationGate) SeedSamples(ctx context.Context, session Session) ([]models.ContentItem, error) {
	if err := g.authorize(session); err != nil {
		return nil, err
	}
	tiers, err := g.Store.ListAccessTiers(ctx)
	if err != nil {
		return nil, err
	}
	tierByName := make(map[string]string, len(tiers))
	for _, tier := range tiers {
		tierByName[tier.Name] = tier.ID
	}
	ageGroups, err := g.Store.ListAgeGroups(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := g.Store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if len(ageGroups) == 0 || len(categories) == 0 || tierByName["free"] == "" || tierByName["premium"] == "" {
		return nil, ErrBadRequest("Reference data is missing")
	}

	items := make([]models.ContentItem, 0, len(sampleContents))
	for i, sample := range sampleContents {
		ageGroupID := ageGroups[i%len(ageGroups)].ID
		categoryID := categories[i%len(categories)].ID
		created, err := g.Create(ctx, ContentInput{
			Title:        sample.Title,
			Description:  sample.Description,
			Type:         sample.Type,
			AccessTierID: tierByName[sample.TierName],
			AgeGroupID:   &ageGroupID,
			CategoryID:   &categoryID,
			Published:    true,
		}, session)
		if err != nil {
			return nil, err
		}
		items = append(items, *created)
	}
	return items, nil
}
