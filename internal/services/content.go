package services

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

const (
	ContentTypeVideo      = "video"
	ContentTypeAudio      = "audio"
	ContentTypeLessonPlan = "lesson_plan"
	ContentTypeGame       = "game"
)

var contentTypes = map[string]bool{
	ContentTypeVideo:      true,
	ContentTypeAudio:      true,
	ContentTypeLessonPlan: true,
	ContentTypeGame:       true,
}

func IsContentType(value string) bool {
	return contentTypes[value]
}

const (
	defaultPageSize = 24
	maxPageSize     = 100
	maxSearchLen    = 200
)

// FilterRequest describes one catalog query. The zero value is the public
// default: published items only, newest first, first page.
type FilterRequest struct {
	IncludeUnpublished bool
	TierIDs            []string
	CategoryIDs        []string
	AgeGroupIDs        []string
	Types              []string
	Search             string
	CreatedBefore      *time.Time
	Page               int
	Limit              int
}

// NormalizeFilter validates caller input and fills defaults. Unknown
// reference ids are kept as-is; they simply match nothing downstream.
func NormalizeFilter(f FilterRequest) (FilterRequest, error) {
	if f.Page < 0 || f.Limit < 0 {
		return FilterRequest{}, ErrBadRequest("Invalid pagination")
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit == 0 {
		f.Limit = defaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	f.Search = CleanSearchTerm(f.Search)
	if len(f.Search) > maxSearchLen {
		return FilterRequest{}, ErrBadRequest("Search term too long")
	}
	f.TierIDs = cleanIDs(f.TierIDs)
	f.CategoryIDs = cleanIDs(f.CategoryIDs)
	f.AgeGroupIDs = cleanIDs(f.AgeGroupIDs)
	f.Types = cleanIDs(f.Types)
	return f, nil
}

func cleanIDs(ids []string) []string {
	seen := make(map[string]bool)
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		value := strings.TrimSpace(id)
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		cleaned = append(cleaned, value)
	}
	return cleaned
}

func Slugify(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	var b strings.Builder
	lastDash := false
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return uuid.NewString()
	}
	return slug
}

// ResolveContentSlug returns a slug derived from title that is unique among
// content items.
func ResolveContentSlug(ctx context.Context, store ContentStore, title string) (string, error) {
	base := Slugify(title)
	candidate := base
	counter := 2
	for {
		exists, err := store.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(counter)
		counter++
	}
}

func CleanSearchTerm(term string) string {
	re := regexp.MustCompile(`\s+`)
	cleaned := strings.TrimSpace(term)
	cleaned = re.ReplaceAllString(cleaned, " ")
	return cleaned
}

func NormalizeRequired(value, message string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", ErrBadRequest(message)
	}
	return trimmed, nil
}
