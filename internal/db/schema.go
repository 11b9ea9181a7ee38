package db

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS authors (
	    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	    name TEXT NOT NULL,
	    bio TEXT,
	    avatar TEXT,
	    twitter TEXT,
	    linkedin TEXT,
	    website TEXT,
	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS posts (
	    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	    title TEXT NOT NULL,
	    slug TEXT NOT NULL UNIQUE,
	    excerpt TEXT,
	    content TEXT NOT NULL DEFAULT '',
	    featured_image TEXT,
	    category TEXT,
	    tags TEXT[] NOT NULL DEFAULT '{}',
	    author_id UUID REFERENCES authors(id) ON DELETE SET NULL,
	    status TEXT NOT NULL DEFAULT 'draft',
	    published_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	    reading_time INT NOT NULL DEFAULT 0,
	    featured BOOLEAN NOT NULL DEFAULT false,
	    search_vector TSVECTOR GENERATED ALWAYS AS (
	        setweight(to_tsvector('english', coalesce(title, '')), 'A') ||
	        setweight(to_tsvector('english', coalesce(excerpt, '')), 'B') ||
	        setweight(to_tsvector('english', content), 'C')
	    ) STORED,
	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS posts_search_vector_idx ON posts USING GIN (search_vector);`,
	`CREATE INDEX IF NOT EXISTS posts_tags_idx ON posts USING GIN (tags);`,
	`CREATE INDEX IF NOT EXISTS posts_published_idx ON posts (status, published_at DESC);`,
	`CREATE TABLE IF NOT EXISTS comments (
	    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	    post_id UUID NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
	    parent_id UUID REFERENCES comments(id) ON DELETE CASCADE,
	    author TEXT NOT NULL,
	    email TEXT NOT NULL,
	    content TEXT NOT NULL,
	    approved BOOLEAN NOT NULL DEFAULT false,
	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS page_views (
	    id BIGSERIAL PRIMARY KEY,
	    slug TEXT NOT NULL,
	    path TEXT NOT NULL,
	    referrer TEXT,
	    user_agent TEXT,
	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS engagement_events (
	    id BIGSERIAL PRIMARY KEY,
	    slug TEXT NOT NULL,
	    event TEXT NOT NULL,
	    value INT NOT NULL DEFAULT 0,
	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
}

// Migrate creates the tables and indexes if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	for _, stmt := range schema {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
