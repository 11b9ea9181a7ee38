package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/models"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	pool *pgxpool.Pool
}

// Pool returns the underlying pgxpool.Pool
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 20
	cfg.MaxConnIdleTime = 5 * time.Minute
	// Hosted Postgres often sits behind a transaction pooler where named
	// prepared statements are not available.
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) Ping(ctx context.Context) error {
	if s.pool == nil {
		return errors.New("db not initialized")
	}
	return s.pool.Ping(ctx)
}

func (s *Store) CountPublishedPosts(ctx context.Context) (int, error) {
	if s.pool == nil {
		return 0, errors.New("db not initialized")
	}
	var total int
	err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM posts WHERE status = $1", models.PostStatusPublished).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return total, nil
}

func (s *Store) ListPosts(ctx context.Context, filter PostFilter) ([]models.BlogPost, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}
	query, args := buildListQuery(filter)
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return collectPosts(rows, filter.Limit)
}

// GetPostBySlug returns ErrNotFound unless a published post has the slug.
func (s *Store) GetPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}
	query := fmt.Sprintf("SELECT %s %s WHERE p.slug = $1 AND p.status = $2", postColumns, postsFrom)
	post, err := scanPost(s.pool.QueryRow(ctx, query, slug, models.PostStatusPublished))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get post by slug: %w", err)
	}
	return &post, nil
}

// SearchPosts returns one page of matches plus the total match count.
func (s *Store) SearchPosts(ctx context.Context, params SearchParams) ([]models.BlogPost, int, error) {
	if s.pool == nil {
		return nil, 0, errors.New("db not initialized")
	}
	query, args, countQuery, countArgs := buildSearchQuery(params)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search posts: %w", err)
	}
	posts, err := collectPosts(rows, params.Limit)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := s.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count search posts: %w", err)
	}
	return posts, total, nil
}

func (s *Store) CreateAuthor(ctx context.Context, author models.Author) (*models.Author, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}

	const query = `
		INSERT INTO authors (name, bio, avatar, twitter, linkedin, website)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''))
		RETURNING
			id::text,
			name,
			COALESCE(bio, ''),
			COALESCE(avatar, ''),
			COALESCE(twitter, ''),
			COALESCE(linkedin, ''),
			COALESCE(website, ''),
			created_at
	`

	var created models.Author
	var createdAt time.Time
	err := s.pool.QueryRow(
		ctx,
		query,
		author.Name,
		author.Bio,
		author.Avatar,
		author.Social.Twitter,
		author.Social.LinkedIn,
		author.Social.Website,
	).Scan(
		&created.ID,
		&created.Name,
		&created.Bio,
		&created.Avatar,
		&created.Social.Twitter,
		&created.Social.LinkedIn,
		&created.Social.Website,
		&createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}
	created.CreatedAt = &createdAt
	return &created, nil
}

// ListComments returns the approved comments of a post as reply trees.
func (s *Store) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}
	const query = `
		SELECT id::text, post_id::text, COALESCE(parent_id::text, ''), author, email, content, created_at
		FROM comments
		WHERE post_id = $1 AND approved
		ORDER BY created_at ASC
	`
	rows, err := s.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var flat []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.ParentID, &c.Author, &c.Email, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		flat = append(flat, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return threadComments(flat), nil
}

func (s *Store) RecordView(ctx context.Context, view models.PageView) error {
	if s.pool == nil {
		return errors.New("db not initialized")
	}
	const query = `
		INSERT INTO page_views (slug, path, referrer, user_agent)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
	`
	if _, err := s.pool.Exec(ctx, query, view.Slug, view.Path, view.Referrer, view.UserAgent); err != nil {
		return fmt.Errorf("record view: %w", err)
	}
	return nil
}

func (s *Store) RecordEngagement(ctx context.Context, event models.EngagementEvent) error {
	if s.pool == nil {
		return errors.New("db not initialized")
	}
	const query = `INSERT INTO engagement_events (slug, event, value) VALUES ($1, $2, $3)`
	if _, err := s.pool.Exec(ctx, query, event.Slug, event.Event, event.Value); err != nil {
		return fmt.Errorf("record engagement: %w", err)
	}
	return nil
}

func collectPosts(rows pgx.Rows, capacity int) ([]models.BlogPost, error) {
	defer rows.Close()

	if capacity < 0 {
		capacity = 0
	}
	posts := make([]models.BlogPost, 0, capacity)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return posts, nil
}

// scanPost reads postColumns, flattening the joined author columns.
func scanPost(row pgx.Row) (models.BlogPost, error) {
	var post models.BlogPost
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.Excerpt,
		&post.Content,
		&post.FeaturedImage,
		&post.Category,
		&post.Tags,
		&post.PublishedAt,
		&post.ReadingTime,
		&post.Featured,
		&post.Author.ID,
		&post.Author.Name,
		&post.Author.Bio,
		&post.Author.Avatar,
		&post.Author.Social.Twitter,
		&post.Author.Social.LinkedIn,
		&post.Author.Social.Website,
	)
	if err != nil {
		return models.BlogPost{}, err
	}
	if post.ReadingTime == 0 {
		post.ReadingTime = EstimateReadingTime(post.Content)
	}
	return post, nil
}

// EstimateReadingTime assumes 200 words per minute, with a one minute floor.
func EstimateReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + 199) / 200
	if minutes < 1 {
		return 1
	}
	return minutes
}

// threadComments nests replies under their parents. Comments whose parent
// is missing are promoted to the top level.
func threadComments(flat []models.Comment) []models.Comment {
	children := make(map[string][]models.Comment)
	known := make(map[string]bool, len(flat))
	for _, c := range flat {
		known[c.ID] = true
	}

	var roots []models.Comment
	for _, c := range flat {
		if c.ParentID != "" && known[c.ParentID] {
			children[c.ParentID] = append(children[c.ParentID], c)
			continue
		}
		roots = append(roots, c)
	}

	var attach func(c models.Comment) models.Comment
	attach = func(c models.Comment) models.Comment {
		for _, child := range children[c.ID] {
			c.Replies = append(c.Replies, attach(child))
		}
		return c
	}
	out := make([]models.Comment, 0, len(roots))
	for _, root := range roots {
		out = append(out, attach(root))
	}
	return out
}
