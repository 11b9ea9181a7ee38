package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/models"
)

// SeedPosts upserts authors and posts in a single batch. Posts reference
// authors by name; a post whose author is not in authors gets no author.
func (s *Store) SeedPosts(ctx context.Context, authors []models.Author, posts []models.BlogPost) error {
	batch := &pgx.Batch{}
	for _, a := range authors {
		batch.Queue(`
			INSERT INTO authors (name, bio, avatar, twitter, linkedin, website)
			SELECT $1::text, NULLIF($2::text, ''), NULLIF($3::text, ''), NULLIF($4::text, ''), NULLIF($5::text, ''), NULLIF($6::text, '')
			WHERE NOT EXISTS (SELECT 1 FROM authors WHERE name = $1::text)`,
			a.Name, a.Bio, a.Avatar, a.Social.Twitter, a.Social.LinkedIn, a.Social.Website)
	}
	for _, p := range posts {
		status := p.Status
		if status == "" {
			status = models.PostStatusPublished
		}
		tags := p.Tags
		if tags == nil {
			// pgx encodes a nil slice as NULL; posts.tags is NOT NULL.
			tags = []string{}
		}
		batch.Queue(`
			INSERT INTO posts (title, slug, excerpt, content, featured_image, category, tags,
			                   author_id, status, published_at, reading_time, featured)
			VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), NULLIF($6, ''), $7,
			        (SELECT id FROM authors WHERE name = $8 ORDER BY created_at LIMIT 1),
			        $9, $10, $11, $12)
			ON CONFLICT (slug) DO NOTHING`,
			p.Title, p.Slug, p.Excerpt, p.Content, p.FeaturedImage, p.Category, tags,
			p.Author.Name, status, p.PublishedAt, EstimateReadingTime(p.Content), p.Featured)
	}

	br := s.pool.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("seed exec %d: %w", i, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("seed close: %w", err)
	}
	return nil
}
