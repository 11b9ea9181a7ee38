package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/auth"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/config"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/db"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/handlers"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/media"
	appmiddleware "github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/middleware"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/models"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/pages"
)

// blogStore is everything the router needs from persistence; *db.Store
// implements it.
type blogStore interface {
	handlers.PostStore
	handlers.AuthorStore
	handlers.AnalyticsStore
	handlers.HealthChecker
	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
}

var _ blogStore = (*db.Store)(nil)

type deps struct {
	cfg         config.Config
	store       blogStore
	media       handlers.MediaStore
	urls        media.URLBuilder
	tokens      *auth.Manager
	credentials auth.Credentials
}

func newRouter(d deps) (http.Handler, error) {
	renderer, err := pages.New(d.store, d.store, d.cfg.Site, d.urls, d.cfg.PageRenderTimeout)
	if err != nil {
		return nil, err
	}

	postsHandler := handlers.NewPostsHandler(d.store)
	authorsHandler := handlers.NewAuthorsHandler(d.store)
	uploadHandler := handlers.NewUploadHandler(d.media)
	authHandler := handlers.NewAuthHandler(d.tokens, d.credentials, !d.cfg.IsDevelopment())
	analyticsHandler := handlers.NewAnalyticsHandler(d.store, d.store)
	diagnosticsHandler := handlers.NewDiagnosticsHandler(d.store)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if d.cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(appmiddleware.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(appmiddleware.Metrics)

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", promhttp.Handler())

	// Read-only endpoints are public and cacheable: any origin may GET them.
	publicCORS := cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
	beaconCORS := cors.Handler(cors.Options{
		AllowedOrigins: d.cfg.CorsAllowedOrigins,
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	})

	publicLimiter := appmiddleware.NewRateLimiter("public", 120, time.Minute)
	beaconLimiter := appmiddleware.NewRateLimiter("analytics", 120, time.Minute)
	loginLimiter := appmiddleware.NewRateLimiter("login", 5, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Route("/posts", func(r chi.Router) {
			r.Use(publicCORS)
			r.Use(publicLimiter.Limit)
			r.Get("/", postsHandler.List)
			r.Options("/", corsOK)
			r.Get("/{slug}", postsHandler.GetBySlug)
			r.Options("/{slug}", corsOK)
		})
		r.Route("/search", func(r chi.Router) {
			r.Use(publicCORS)
			r.Use(publicLimiter.Limit)
			r.Get("/", postsHandler.Search)
			r.Options("/", corsOK)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Use(beaconCORS)
			r.Use(beaconLimiter.Limit)
			r.Post("/view", analyticsHandler.View)
			r.Post("/engagement", analyticsHandler.Engagement)
		})

		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter.Limit).Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(appmiddleware.RequireAdmin(d.tokens))
			r.Post("/authors", authorsHandler.Create)
			r.Post("/upload", uploadHandler.Upload)
			r.Delete("/upload", uploadHandler.Delete)
		})

		r.Get("/diagnostics/db", diagnosticsHandler.Database)
	})

	r.Get("/", renderer.Home)
	r.Get("/blog", renderer.Blog)
	r.Get("/blog/{slug}", renderer.Post)
	r.Get("/search", renderer.Search)
	r.Get("/jobs", renderer.Jobs)
	r.Get("/admin/login", renderer.AdminLogin)
	r.With(appmiddleware.RedirectUnlessAdmin(d.tokens, "/admin/login")).Get("/admin", renderer.Admin)
	r.Handle("/static/*", renderer.Static())
	r.NotFound(renderer.NotFound)

	return r, nil
}

// corsOK answers an OPTIONS request that is not a CORS preflight; the cors
// middleware has already written any Access-Control headers.
func corsOK(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
