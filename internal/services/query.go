package services

import (
	"fmt"
	"strings"
)

// ContentQuery is an executable description of one catalog query: the row
// query with its args, and a matching count query over the same predicates.
type ContentQuery struct {
	SQL       string
	Args      []interface{}
	CountSQL  string
	CountArgs []interface{}
}

const contentColumns = `id, slug, title, description, type, published, access_tier_id, age_group_id, category_id, thumbnail_url, content_body, author_id, created_at, updated_at`

// BuildContentQuery deterministically translates a filter into SQL against
// content_items. The published predicate is added unless the filter asks
// for unpublished items; callers are responsible for only setting that flag
// after an admin check.
func BuildContentQuery(f FilterRequest) ContentQuery {
	where := []string{}
	args := []interface{}{}

	if !f.IncludeUnpublished {
		where = append(where, "published = TRUE")
	}
	if len(f.TierIDs) > 0 {
		where = append(where, inClause("access_tier_id", f.TierIDs, &args))
	}
	if len(f.CategoryIDs) > 0 {
		where = append(where, inClause("category_id", f.CategoryIDs, &args))
	}
	if len(f.AgeGroupIDs) > 0 {
		where = append(where, inClause("age_group_id", f.AgeGroupIDs, &args))
	}
	if len(f.Types) > 0 {
		where = append(where, inClause("type", f.Types, &args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		pos := len(args)
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", pos, pos))
	}
	if f.CreatedBefore != nil {
		args = append(args, f.CreatedBefore.UTC())
		where = append(where, fmt.Sprintf("created_at < $%d", len(args)))
	}

	clause := ""
	if len(where) > 0 {
		clause = "WHERE " + strings.Join(where, " AND ")
	}
	countSQL := strings.TrimSpace("SELECT count(*) FROM content_items " + clause)
	countArgs := append([]interface{}{}, args...)

	limit := f.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)
	sql := fmt.Sprintf(`
SELECT %s
FROM content_items
%s
ORDER BY created_at DESC
LIMIT $%d OFFSET $%d`, contentColumns, clause, len(args)-1, len(args))

	return ContentQuery{SQL: strings.TrimSpace(sql), Args: args, CountSQL: countSQL, CountArgs: countArgs}
}

func inClause(field string, values []string, args *[]interface{}) string {
	placeholders := make([]string, 0, len(values))
	for _, value := range values {
		*args = append(*args, value)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(*args)))
	}
	return field + " IN (" + strings.Join(placeholders, ",") + ")"
}
