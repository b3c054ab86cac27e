package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"solis-backend-go/internal/services"
)

type ContentWriteRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Type         string  `json:"type"`
	AccessTierID string  `json:"accessTierId"`
	AgeGroupID   *string `json:"ageGroupId"`
	CategoryID   *string `json:"categoryId"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	ContentBody  *string `json:"contentBody"`
	Published    bool    `json:"published"`
}

type PublishRequest struct {
	Published bool `json:"published"`
}

func (req ContentWriteRequest) toInput() services.ContentInput {
	return services.ContentInput{
		Title:        req.Title,
		Description:  req.Description,
		Type:         req.Type,
		AccessTierID: req.AccessTierID,
		AgeGroupID:   req.AgeGroupID,
		CategoryID:   req.CategoryID,
		ThumbnailURL: req.ThumbnailURL,
		ContentBody:  req.ContentBody,
		Published:    req.Published,
	}
}

func (s *Server) ManageListContent(w http.ResponseWriter, r *http.Request) {
	entries, err := s.Content.ListForManagement(r.Context(), CurrentSession(r))
	if err != nil {
		if mapServiceError(w, err) {
			return
		}
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]ContentDetailDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, toManagedDetail(entry))
	}
	WriteJSON(w, http.StatusOK, map[string][]ContentDetailDTO{"items": items})
}

func (s *Server) ManageOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.Content.Overview(r.Context(), CurrentSession(r))
	if err != nil {
		if mapServiceError(w, err) {
			return
		}
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	content := make([]ContentDetailDTO, 0, len(overview.Content))
	for _, entry := range overview.Content {
		content = append(content, toManagedDetail(entry))
	}
	tiers := make([]AccessTierDTO, 0, len(overview.Tiers))
	for _, tier := range overview.Tiers {
		tiers = append(tiers, toAccessTierDTO(tier))
	}
	ageGroups := make([]AgeGroupDTO, 0, len(overview.AgeGroups))
	for _, group := range overview.AgeGroups {
		ageGroups = append(ageGroups, toAgeGroupDTO(group))
	}
	categories := make([]CategoryDTO, 0, len(overview.Categories))
	for _, category := range overview.Categories {
		categories = append(categories, toCategoryDTO(category))
	}
	WriteJSON(w, http.StatusOK, OverviewResponse{
		Content:    content,
		Tiers:      tiers,
		AgeGroups:  ageGroups,
		Categories: categories,
	})
}

func (s *Server) CreateContent(w http.ResponseWriter, r *http.Request) {
	var req ContentWriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	item, err := s.Mutations.Create(r.Context(), req.toInput(), CurrentSession(r))
	if err != nil {
		if mapServiceError(w, err) {
			return
		}
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusCreated, toContentDetail(*item))
}

func (s *Server) UpdateContent(w http.ResponseWriter, r *http.Request) {
	contentID := chi.URLParam(r, "contentId")
	var req ContentWriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	item, err := s.Mutations.Update(r.Context(), contentID, req.toInput(), CurrentSession(r))
	if err != nil {
		if mapServiceError(w, err) {
			return
		}
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, toContentDetail(*item))
}

func (s *Server) DeleteContent(w http.ResponseWriter, r *http.Request) {
	contentID := chi.URLParam(r, "contentId")
	if err := s.Mutations.Delete(r.Context(), contentID, CurrentSession(r)); err != nil {
		if mapServiceError(w, err) {
			return
		}
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) PublishContent(w http.ResponseWriter, r *http.Request) {
	contentID := chi.URLParam(r, "contentId")
	var req PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	item, err := s.Mutations.SetPublished(r.Context(), contentID, req.Published, CurrentSession(r))
	if err != nil {
		if mapServiceError(w, err) {
			return
		}
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, toContentDetail(*item))
}

func (s *Server) SeedSampleContent(w http.ResponseWriter, r *http.Request) {
	items, err := s.Mutations.SeedSamples(r.Context(), CurrentSession(r))
	if err != nil {
		if mapServiceError(w, err) {
			return
		}
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	cards := make([]ContentCardDTO, 0, len(items))
	for _, item := range items {
		cards = append(cards, toContentCard(item))
	}
	WriteJSON(w, http.StatusOK, map[string][]ContentCardDTO{"items": cards})
}
