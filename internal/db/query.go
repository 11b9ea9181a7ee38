package db

import (
	"fmt"
	"strings"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/models"
)

const postColumns = `
	p.id::text,
	p.title,
	p.slug,
	COALESCE(p.excerpt, ''),
	p.content,
	COALESCE(p.featured_image, ''),
	COALESCE(p.category, ''),
	COALESCE(p.tags, '{}'::text[]),
	p.published_at,
	p.reading_time,
	p.featured,
	COALESCE(a.id::text, ''),
	COALESCE(a.name, ''),
	COALESCE(a.bio, ''),
	COALESCE(a.avatar, ''),
	COALESCE(a.twitter, ''),
	COALESCE(a.linkedin, ''),
	COALESCE(a.website, '')`

const postsFrom = `
	FROM posts p
	LEFT JOIN authors a ON a.id = p.author_id`

type PostFilter struct {
	// Category is ignored when empty or models.CategoryAll.
	Category string
	Featured bool
	Limit    int
}

type SearchParams struct {
	Query    string
	Category string
	Tags     []string
	Limit    int
	Offset   int
}

// HasFilter reports whether at least one filter would narrow the result.
// The "All" category is not a filter.
func (p SearchParams) HasFilter() bool {
	return strings.TrimSpace(p.Query) != "" || categoryFilter(p.Category) != "" || len(p.Tags) > 0
}

// ParseTags splits a comma separated tag list, dropping blanks.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func categoryFilter(category string) string {
	category = strings.TrimSpace(category)
	if category == models.CategoryAll {
		return ""
	}
	return category
}

// whereClause accumulates AND-ed conditions with numbered placeholders.
type whereClause struct {
	conds []string
	args  []any
}

func newPublishedWhere() *whereClause {
	w := &whereClause{}
	w.add("p.status = $%d", models.PostStatusPublished)
	return w
}

// add appends cond, whose single %d is replaced by the next placeholder index.
func (w *whereClause) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *whereClause) addRaw(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *whereClause) String() string {
	return "WHERE " + strings.Join(w.conds, " AND ")
}

func (w *whereClause) next() int {
	return len(w.args) + 1
}

func buildListQuery(f PostFilter) (string, []any) {
	w := newPublishedWhere()
	if category := categoryFilter(f.Category); category != "" {
		w.add("p.category = $%d", category)
	}
	if f.Featured {
		w.addRaw("p.featured")
	}

	limitIdx := w.next()
	query := fmt.Sprintf("SELECT %s %s %s ORDER BY p.published_at DESC LIMIT $%d",
		postColumns, postsFrom, w.String(), limitIdx)
	return query, append(w.args, f.Limit)
}

// buildSearchQuery returns the page query and the matching count query.
func buildSearchQuery(p SearchParams) (query string, args []any, countQuery string, countArgs []any) {
	w := newPublishedWhere()
	if q := strings.TrimSpace(p.Query); q != "" {
		w.add("p.search_vector @@ websearch_to_tsquery('english', $%d)", q)
	}
	if category := categoryFilter(p.Category); category != "" {
		w.add("p.category = $%d", category)
	}
	if len(p.Tags) > 0 {
		w.add("p.tags && $%d::text[]", p.Tags)
	}

	countQuery = fmt.Sprintf("SELECT COUNT(*) %s %s", postsFrom, w.String())
	countArgs = append([]any(nil), w.args...)

	limitIdx := w.next()
	query = fmt.Sprintf("SELECT %s %s %s ORDER BY p.published_at DESC LIMIT $%d OFFSET $%d",
		postColumns, postsFrom, w.String(), limitIdx, limitIdx+1)
	args = append(append([]any(nil), w.args...), p.Limit, p.Offset)
	return query, args, countQuery, countArgs
}
