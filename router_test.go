package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/auth"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/config"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/db"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/media"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/models"
)

type stubStore struct{}

func (stubStore) ListPosts(context.Context, db.PostFilter) ([]models.BlogPost, error) {
	return []models.BlogPost{{ID: "1", Slug: "hello", Title: "Hello"}}, nil
}

func (stubStore) GetPostBySlug(_ context.Context, slug string) (*models.BlogPost, error) {
	if slug != "hello" {
		return nil, db.ErrNotFound
	}
	return &models.BlogPost{ID: "1", Slug: "hello", Title: "Hello"}, nil
}

func (stubStore) SearchPosts(context.Context, db.SearchParams) ([]models.BlogPost, int, error) {
	return nil, 0, nil
}

func (stubStore) CreateAuthor(_ context.Context, a models.Author) (*models.Author, error) {
	a.ID = "a1"
	return &a, nil
}

func (stubStore) RecordView(context.Context, models.PageView) error { return nil }

func (stubStore) RecordEngagement(context.Context, models.EngagementEvent) error { return nil }

func (stubStore) Ping(context.Context) error { return nil }

func (stubStore) CountPublishedPosts(context.Context) (int, error) { return 1, nil }

func (stubStore) ListComments(context.Context, string) ([]models.Comment, error) { return nil, nil }

type stubMedia struct{}

func (stubMedia) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	return "https://cdn.example/" + key, nil
}

func (stubMedia) Delete(context.Context, string) error { return nil }

func newTestServer(t *testing.T, opts ...func(*config.Config)) (http.Handler, *auth.Manager) {
	t.Helper()
	tokens, err := auth.NewManager("router_test_secret_with_plenty_of_length", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Config{
		Environment:        "development",
		CorsAllowedOrigins: []string{"https://blog.example"},
		Site:               config.SiteConfig{Name: "Test"},
		PageRenderTimeout:  time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	h, err := newRouter(deps{
		cfg:         cfg,
		store:       stubStore{},
		media:       stubMedia{},
		urls:        media.NewURLBuilder("https://cdn.example"),
		tokens:      tokens,
		credentials: auth.NewCredentials("admin@example.com", "secret"),
	})
	if err != nil {
		t.Fatalf("newRouter() error = %v", err)
	}
	return h, tokens
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicRoutes(t *testing.T) {
	h, _ := newTestServer(t)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/posts", http.StatusOK},
		{http.MethodGet, "/api/posts/hello", http.StatusOK},
		{http.MethodGet, "/api/posts/nope", http.StatusNotFound},
		{http.MethodGet, "/api/search?category=All", http.StatusBadRequest},
		{http.MethodGet, "/api/search?q=hello", http.StatusOK},
		{http.MethodGet, "/api/diagnostics/db", http.StatusOK},
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/blog/hello", http.StatusOK},
		{http.MethodGet, "/jobs", http.StatusOK},
		{http.MethodGet, "/static/site.css", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := serve(h, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	h, _ := newTestServer(t)

	for _, path := range []string{"/api/posts", "/api/posts/hello", "/api/search"} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		req.Header.Set("Origin", "https://elsewhere.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rec := serve(h, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("%s allow origin = %q, want *", path, got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodGet) {
			t.Errorf("%s allow methods = %q", path, got)
		}
	}

	req := httptest.NewRequest(http.MethodOptions, "/api/posts", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	if got := serve(h, req).Header().Get("Access-Control-Allow-Methods"); strings.Contains(got, http.MethodDelete) {
		t.Errorf("DELETE should not be allowed, got %q", got)
	}
}

func TestRouter_AdminRequiresCookie(t *testing.T) {
	h, tokens := newTestServer(t)

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/admin/authors", strings.NewReader(`{"name":"Ada"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous create author = %d, want 401", rec.Code)
	}
	rec = serve(h, httptest.NewRequest(http.MethodDelete, "/api/admin/upload?fileName=a.png", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous delete = %d, want 401", rec.Code)
	}

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin/login" {
		t.Errorf("anonymous /admin = %d %q", rec.Code, rec.Header().Get("Location"))
	}

	token, _, err := tokens.Issue("admin@example.com", models.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}
	cookie := &http.Cookie{Name: auth.CookieName, Value: token}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/authors", strings.NewReader(`{"name":"Ada"}`))
	req.AddCookie(cookie)
	if rec := serve(h, req); rec.Code != http.StatusCreated {
		t.Errorf("admin create author = %d, want 201", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)
	if rec := serve(h, req); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "admin@example.com") {
		t.Errorf("admin page = %d", rec.Code)
	}
}

func TestRouter_LoginFlow(t *testing.T) {
	h, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"admin@example.com","password":"secret"}`))
	req.RemoteAddr = "192.0.2.10:5000"
	rec := serve(h, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login = %d: %s", rec.Code, rec.Body.String())
	}
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			cookie = c
		}
	}
	if cookie == nil || cookie.Secure {
		t.Fatalf("development login cookie = %+v", cookie)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)
	if rec := serve(h, req); rec.Code != http.StatusOK {
		t.Errorf("me = %d", rec.Code)
	}
}

func loginAttempt(h http.Handler, remoteAddr, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"admin@example.com","password":"wrong"}`))
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
		req.Header.Set("X-Real-IP", forwardedFor)
		req.Header.Set("True-Client-IP", forwardedFor)
	}
	return serve(h, req).Code
}

func TestRouter_LoginRateLimited(t *testing.T) {
	h, _ := newTestServer(t)

	var last int
	for i := 0; i < 6; i++ {
		last = loginAttempt(h, "192.0.2.99:5000", "")
		if i < 5 && last != http.StatusUnauthorized {
			t.Fatalf("attempt %d = %d, want 401", i+1, last)
		}
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("6th attempt = %d, want 429", last)
	}
}

func TestRouter_LoginRateLimitIgnoresForwardedHeaders(t *testing.T) {
	h, _ := newTestServer(t)

	limited := 0
	for i := 0; i < 20; i++ {
		if loginAttempt(h, fmt.Sprintf("203.0.113.7:%d", 40000+i), fmt.Sprintf("10.1.%d.%d", i/250, i%250+1)) == http.StatusTooManyRequests {
			limited++
		}
	}
	if limited != 15 {
		t.Errorf("limited attempts = %d of 20, want 15", limited)
	}
}

func TestRouter_TrustProxyKeysByForwardedClient(t *testing.T) {
	h, _ := newTestServer(t, func(cfg *config.Config) { cfg.TrustProxy = true })

	for i := 0; i < 5; i++ {
		if code := loginAttempt(h, "10.0.0.1:5000", "198.51.100.20"); code != http.StatusUnauthorized {
			t.Fatalf("attempt %d = %d, want 401", i+1, code)
		}
	}
	if code := loginAttempt(h, "10.0.0.1:5000", "198.51.100.20"); code != http.StatusTooManyRequests {
		t.Errorf("6th attempt from same client = %d, want 429", code)
	}
	if code := loginAttempt(h, "10.0.0.1:5000", "198.51.100.21"); code != http.StatusUnauthorized {
		t.Errorf("other client behind the proxy = %d, want 401", code)
	}
}

func TestRouter_PlainOptions(t *testing.T) {
	h, _ := newTestServer(t)

	for _, path := range []string{"/api/posts", "/api/posts/hello", "/api/search"} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		req.Header.Set("Origin", "https://elsewhere.example")
		rec := serve(h, req)

		if rec.Code != http.StatusOK {
			t.Errorf("OPTIONS %s = %d, want 200", path, rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("OPTIONS %s allow origin = %q, want *", path, got)
		}
	}
}

func TestRouter_AnalyticsUnknownPost(t *testing.T) {
	h, _ := newTestServer(t)

	beacon := func(slug string) int {
		body := fmt.Sprintf(`{"slug":%q,"path":"/blog/%s"}`, slug, slug)
		return serve(h, httptest.NewRequest(http.MethodPost, "/api/analytics/view", strings.NewReader(body))).Code
	}
	if code := beacon("hello"); code != http.StatusNoContent {
		t.Errorf("known post beacon = %d, want 204", code)
	}
	if code := beacon("no-such-post"); code != http.StatusNotFound {
		t.Errorf("unknown post beacon = %d, want 404", code)
	}
}
