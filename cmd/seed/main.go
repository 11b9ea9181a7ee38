// Seed tool: creates the schema and loads demo authors and posts.
// Existing posts (by slug) and authors (by name) are left untouched, so it
// is safe to run more than once.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/db"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/logging"
)

func main() {
	_ = godotenv.Load()

	var databaseURL string
	var migrateOnly bool
	var timeout time.Duration
	flag.StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "postgres connection string")
	flag.BoolVar(&migrateOnly, "migrate-only", false, "create the schema without loading demo content")
	flag.DurationVar(&timeout, "timeout", time.Minute, "overall timeout")
	flag.Parse()

	logging.Init(logging.Config{Level: "info", Format: "console"})

	if databaseURL == "" {
		logging.Fatal().Msg("DATABASE_URL or -database-url is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	if err := run(ctx, databaseURL, migrateOnly); err != nil {
		logging.Fatal().Err(err).Msg("seed failed")
	}
	logging.Info().Dur("took", time.Since(start).Truncate(time.Millisecond)).Msg("done")
}

func run(ctx context.Context, databaseURL string, migrateOnly bool) error {
	store, err := db.NewStore(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return err
	}
	if migrateOnly {
		return nil
	}

	authors, posts := db.DemoContent(time.Now().UTC())
	if err := store.SeedPosts(ctx, authors, posts); err != nil {
		return err
	}

	count, err := store.CountPublishedPosts(ctx)
	if err != nil {
		return fmt.Errorf("count posts: %w", err)
	}
	logging.Info().Int("authors", len(authors)).Int("posts", len(posts)).Int("published", count).Msg("seeded demo content")
	return nil
}
