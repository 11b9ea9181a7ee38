package handlers

import (
	"context"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/db"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/models"
)

// The interfaces below are satisfied by *db.Store and *media.Client.

type PostStore interface {
	ListPosts(ctx context.Context, filter db.PostFilter) ([]models.BlogPost, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	SearchPosts(ctx context.Context, params db.SearchParams) ([]models.BlogPost, int, error)
}

// PostLookup resolves a published post by slug.
type PostLookup interface {
	GetPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
}

type AuthorStore interface {
	CreateAuthor(ctx context.Context, author models.Author) (*models.Author, error)
}

type AnalyticsStore interface {
	RecordView(ctx context.Context, view models.PageView) error
	RecordEngagement(ctx context.Context, event models.EngagementEvent) error
}

type HealthChecker interface {
	Ping(ctx context.Context) error
	CountPublishedPosts(ctx context.Context) (int, error)
}

type MediaStore interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
