//go:build integration

package db

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/models"
)

func startPostgres(t *testing.T) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "blog",
				"POSTGRES_PASSWORD": "blog",
				"POSTGRES_DB":       "blog",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("Skipping test: cannot start postgres container: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}

	url := fmt.Sprintf("postgres://blog:blog@%s:%s/blog?sslmode=disable", host, port.Port())
	store, err := NewStore(ctx, url)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(store.Close)

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return store
}

func TestStore_Integration(t *testing.T) {
	store := startPostgres(t)
	ctx := context.Background()

	base := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	authors := []models.Author{{Name: "Dana Writer", Bio: "Editor"}}
	posts := []models.BlogPost{
		{Title: "Content marketing basics", Slug: "content-marketing-basics", Content: "content marketing explained", Category: "Strategy", Tags: []string{"content", "basics"}, Author: models.Author{Name: "Dana Writer"}, PublishedAt: base},
		{Title: "Advanced content marketing", Slug: "advanced-content-marketing", Content: "more content marketing", Category: "Strategy", Tags: []string{"content"}, Author: models.Author{Name: "Dana Writer"}, PublishedAt: base.Add(48 * time.Hour), Featured: true},
		{Title: "SEO checklist", Slug: "seo-checklist", Content: "search engines", Category: "SEO", Tags: []string{"seo"}, PublishedAt: base.Add(24 * time.Hour)},
		{Title: "Unpublished content draft", Slug: "draft", Content: "content marketing draft", Category: "Strategy", Status: models.PostStatusDraft, PublishedAt: base.Add(72 * time.Hour)},
	}
	if err := store.SeedPosts(ctx, authors, posts); err != nil {
		t.Fatalf("SeedPosts() error = %v", err)
	}

	t.Run("search orders by publish date and counts", func(t *testing.T) {
		got, total, err := store.SearchPosts(ctx, SearchParams{Query: "content marketing", Limit: 1, Offset: 0})
		if err != nil {
			t.Fatalf("SearchPosts() error = %v", err)
		}
		if total != 2 {
			t.Errorf("total = %d, want 2 (drafts excluded)", total)
		}
		if len(got) != 1 || got[0].Slug != "advanced-content-marketing" {
			t.Fatalf("first page = %+v", got)
		}
		if got[0].Author.Name != "Dana Writer" {
			t.Errorf("author not flattened: %+v", got[0].Author)
		}
	})

	t.Run("tag overlap and category", func(t *testing.T) {
		got, total, err := store.SearchPosts(ctx, SearchParams{Category: "SEO", Tags: []string{"seo", "missing"}, Limit: 10})
		if err != nil {
			t.Fatalf("SearchPosts() error = %v", err)
		}
		if total != 1 || len(got) != 1 || got[0].Slug != "seo-checklist" {
			t.Errorf("got %d/%d posts: %+v", len(got), total, got)
		}
	})

	t.Run("list featured", func(t *testing.T) {
		got, err := store.ListPosts(ctx, PostFilter{Featured: true, Limit: 10})
		if err != nil {
			t.Fatalf("ListPosts() error = %v", err)
		}
		if len(got) != 1 || !got[0].Featured {
			t.Errorf("featured posts = %+v", got)
		}
	})

	t.Run("get by slug", func(t *testing.T) {
		if _, err := store.GetPostBySlug(ctx, "draft"); !errors.Is(err, ErrNotFound) {
			t.Errorf("draft lookup error = %v, want ErrNotFound", err)
		}
		post, err := store.GetPostBySlug(ctx, "seo-checklist")
		if err != nil {
			t.Fatalf("GetPostBySlug() error = %v", err)
		}
		comments, err := store.ListComments(ctx, post.ID)
		if err != nil || len(comments) != 0 {
			t.Errorf("ListComments() = %v, %v", comments, err)
		}
	})

	t.Run("authors and analytics", func(t *testing.T) {
		author, err := store.CreateAuthor(ctx, models.Author{Name: "New Author", Social: models.Social{Website: "https://new.example"}})
		if err != nil {
			t.Fatalf("CreateAuthor() error = %v", err)
		}
		if author.ID == "" || author.CreatedAt == nil || author.Social.Website != "https://new.example" {
			t.Errorf("created author = %+v", author)
		}
		if err := store.RecordView(ctx, models.PageView{Slug: "seo-checklist", Path: "/blog/seo-checklist"}); err != nil {
			t.Errorf("RecordView() error = %v", err)
		}
		if err := store.RecordEngagement(ctx, models.EngagementEvent{Slug: "seo-checklist", Event: models.EngagementScroll, Value: 50}); err != nil {
			t.Errorf("RecordEngagement() error = %v", err)
		}
		count, err := store.CountPublishedPosts(ctx)
		if err != nil || count != 3 {
			t.Errorf("CountPublishedPosts() = %d, %v; want 3", count, err)
		}
	})

	t.Run("demo content seeds twice", func(t *testing.T) {
		demoAuthors, demoPosts := DemoContent(base)
		for i := 0; i < 2; i++ {
			if err := store.SeedPosts(ctx, demoAuthors, demoPosts); err != nil {
				t.Fatalf("SeedPosts(demo) run %d error = %v", i+1, err)
			}
		}
		count, err := store.CountPublishedPosts(ctx)
		if err != nil || count != 8 {
			t.Errorf("CountPublishedPosts() = %d, %v; want 8", count, err)
		}
		if _, err := store.GetPostBySlug(ctx, "quarterly-review-template"); !errors.Is(err, ErrNotFound) {
			t.Errorf("demo draft lookup error = %v, want ErrNotFound", err)
		}
	})
}
