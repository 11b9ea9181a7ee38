package models

import "time"

const (
	// PostStatusPublished is the only status served by the public surface.
	PostStatusPublished = "published"
	PostStatusDraft     = "draft"

	// CategoryAll means "no category filter" wherever a category is accepted.
	CategoryAll = "All"
)

// BlogPost is a published article with its author flattened in.
type BlogPost struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content"`
	FeaturedImage string    `json:"featuredImage"`
	Category      string    `json:"category"`
	Tags          []string  `json:"tags"`
	Author        Author    `json:"author"`
	PublishedAt   time.Time `json:"publishedAt"`
	ReadingTime   int       `json:"readingTime"`
	Featured      bool      `json:"featured"`
	// Status is only used on the write path (seeding); reads are published-only.
	Status string `json:"-"`
}

type SearchResult struct {
	Posts   []BlogPost `json:"posts"`
	Total   int        `json:"total"`
	Limit   int        `json:"limit"`
	Offset  int        `json:"offset"`
	HasMore bool       `json:"hasMore"`
}

// NewSearchResult reports hasMore when rows exist past the current page.
func NewSearchResult(posts []BlogPost, total, limit, offset int) SearchResult {
	if posts == nil {
		posts = []BlogPost{}
	}
	return SearchResult{
		Posts:   posts,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: total > offset+limit,
	}
}
