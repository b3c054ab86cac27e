package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"solis-backend-go/internal/services"
)

func filterFromQuery(r *http.Request) services.FilterRequest {
	q := r.URL.Query()
	return services.FilterRequest{
		IncludeUnpublished: q.Get("includeUnpublished") == "true",
		TierIDs:            splitCSV(q.Get("tiers")),
		CategoryIDs:        splitCSV(q.Get("categories")),
		AgeGroupIDs:        splitCSV(q.Get("ageGroups")),
		Types:              splitCSV(q.Get("types")),
		Search:             q.Get("search"),
		Page:               parseInt(q.Get("page"), 0),
		Limit:              parseInt(q.Get("limit"), 0),
	}
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}

// PublicContent serves the catalog. The includeUnpublished flag is read
// but only honored for admins; the service downgrades everyone else.
func (s *Server) PublicContent(w http.ResponseWriter, r *http.Request) {
	page, err := s.Content.List(r.Context(), filterFromQuery(r), CurrentSession(r))
	if err != nil {
		if mapServiceError(w, err) {
			return
		}
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]ContentCardDTO, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, toContentCard(item))
	}
	WriteJSON(w, http.StatusOK, ContentListResponse{Items: items, Total: page.Total, Page: page.Page, Size: page.Size})
}

func (s *Server) PublicContentDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	item, err := s.Content.GetBySlug(r.Context(), slug, CurrentSession(r))
	if err != nil {
		if mapServiceError(w, err) {
			return
		}
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, toContentDetail(*item))
}

func (s *Server) PublicAgeGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.Content.AgeGroups(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]AgeGroupDTO, 0, len(groups))
	for _, group := range groups {
		items = append(items, toAgeGroupDTO(group))
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) PublicCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.Content.Categories(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]CategoryDTO, 0, len(categories))
	for _, category := range categories {
		items = append(items, toCategoryDTO(category))
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) PublicAccessTiers(w http.ResponseWriter, r *http.Request) {
	tiers, err := s.Content.AccessTiers(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]AccessTierDTO, 0, len(tiers))
	for _, tier := range tiers {
		items = append(items, toAccessTierDTO(tier))
	}
	WriteJSON(w, http.StatusOK, items)
}

func mapServiceError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	if serr, ok := err.(services.ServiceError); ok {
		WriteError(w, serr.Status, serr.Message)
		return true
	}
	return false
}
