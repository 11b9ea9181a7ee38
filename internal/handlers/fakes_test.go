package handlers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/db"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/models"
)

var errUpstream = errors.New("upstream unavailable")

type fakePostStore struct {
	mu         sync.Mutex
	posts      []models.BlogPost
	err        error
	listCalls  []db.PostFilter
	searchHook func(db.SearchParams) ([]models.BlogPost, int)
}

func (f *fakePostStore) ListPosts(_ context.Context, filter db.PostFilter) ([]models.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, filter)
	if f.err != nil {
		return nil, f.err
	}
	return f.posts, nil
}

func (f *fakePostStore) GetPostBySlug(_ context.Context, slug string) (*models.BlogPost, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.posts {
		if f.posts[i].Slug == slug {
			p := f.posts[i]
			return &p, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakePostStore) SearchPosts(_ context.Context, params db.SearchParams) ([]models.BlogPost, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	if f.searchHook != nil {
		posts, total := f.searchHook(params)
		return posts, total, nil
	}
	return f.posts, len(f.posts), nil
}

type fakeAuthorStore struct {
	created []models.Author
	err     error
}

func (f *fakeAuthorStore) CreateAuthor(_ context.Context, author models.Author) (*models.Author, error) {
	if f.err != nil {
		return nil, f.err
	}
	now := time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)
	author.ID = "author-1"
	author.CreatedAt = &now
	f.created = append(f.created, author)
	return &author, nil
}

type fakeAnalyticsStore struct {
	views  []models.PageView
	events []models.EngagementEvent
	err    error
}

func (f *fakeAnalyticsStore) RecordView(_ context.Context, view models.PageView) error {
	if f.err != nil {
		return f.err
	}
	f.views = append(f.views, view)
	return nil
}

func (f *fakeAnalyticsStore) RecordEngagement(_ context.Context, event models.EngagementEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

type fakeHealth struct {
	pingErr  error
	countErr error
	count    int
}

func (f fakeHealth) Ping(context.Context) error { return f.pingErr }

func (f fakeHealth) CountPublishedPosts(context.Context) (int, error) {
	return f.count, f.countErr
}

type fakeMedia struct {
	uploads     map[string][]byte
	types       map[string]string
	deleted     []string
	uploadErr   error
	deleteErr   error
	uploadCalls int
}

func newFakeMedia() *fakeMedia {
	return &fakeMedia{uploads: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeMedia) Upload(_ context.Context, key string, body []byte, contentType string) (string, error) {
	f.uploadCalls++
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploads[key] = body
	f.types[key] = contentType
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeMedia) Delete(_ context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, key)
	return nil
}
