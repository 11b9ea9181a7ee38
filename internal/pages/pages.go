// Package pages renders the public site and the admin screens with
// html/template. Templates and static assets are embedded in the binary.
package pages

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/auth"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/config"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/db"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/logging"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/media"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	homeFeatured  = 3
	homeRecent    = 6
	blogPageSize  = 24
	searchPerPage = 10
)

var categories = []string{models.CategoryAll, "Strategy", "SEO", "Social Media", "Email", "Analytics"}

type PostSource interface {
	ListPosts(ctx context.Context, filter db.PostFilter) ([]models.BlogPost, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	SearchPosts(ctx context.Context, params db.SearchParams) ([]models.BlogPost, int, error)
}

type CommentSource interface {
	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
}

type Renderer struct {
	posts    PostSource
	comments CommentSource
	site     config.SiteConfig
	urls     media.URLBuilder
	timeout  time.Duration
	pages    map[string]*template.Template
}

func New(posts PostSource, comments CommentSource, site config.SiteConfig, urls media.URLBuilder, timeout time.Duration) (*Renderer, error) {
	r := &Renderer{
		posts:    posts,
		comments: comments,
		site:     site,
		urls:     urls,
		timeout:  timeout,
		pages:    make(map[string]*template.Template),
	}

	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	funcs := r.funcMap()
	for _, name := range names {
		if name == "templates/layout.html" {
			continue
		}
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name[len("templates/"):]] = tmpl
	}
	return r, nil
}

// Static serves the embedded assets; mount it under /static/.
func (r *Renderer) Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// page is the data every template receives.
type page struct {
	Site  config.SiteConfig
	Title string
	Path  string
	// Slug enables the analytics beacon on post pages.
	Slug       string
	Admin      *models.AdminUser
	Categories []string
	Data       any
}

func (r *Renderer) newPage(req *http.Request, title string, data any) page {
	p := page{
		Site:       r.site,
		Title:      title,
		Path:       req.URL.Path,
		Categories: categories,
		Data:       data,
	}
	if user, ok := auth.PrincipalFromContext(req.Context()); ok {
		p.Admin = &user
	}
	return p
}

func (r *Renderer) render(w http.ResponseWriter, req *http.Request, status int, name string, p page) {
	tmpl, ok := r.pages[name]
	if !ok {
		logging.Ctx(req.Context()).Error().Str("template", name).Msg("unknown template")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", p); err != nil {
		logging.Ctx(req.Context()).Error().Err(err).Str("template", name).Msg("render page failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, err error) {
	if errors.Is(err, db.ErrNotFound) {
		r.render(w, req, http.StatusNotFound, "not_found.html", r.newPage(req, "Not found", nil))
		return
	}
	logging.Ctx(req.Context()).Error().Err(err).Str("path", req.URL.Path).Msg("load page data failed")
	r.render(w, req, http.StatusInternalServerError, "error.html", r.newPage(req, "Something went wrong", nil))
}

// loadContext bounds the data loading of one page.
func (r *Renderer) loadContext(req *http.Request) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(req.Context())
	}
	return context.WithTimeout(req.Context(), r.timeout)
}

type homeData struct {
	Featured []models.BlogPost
	Recent   []models.BlogPost
}

func (r *Renderer) Home(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := r.loadContext(req)
	defer cancel()

	featured, err := r.posts.ListPosts(ctx, db.PostFilter{Featured: true, Limit: homeFeatured})
	if err != nil {
		r.renderError(w, req, err)
		return
	}
	recent, err := r.posts.ListPosts(ctx, db.PostFilter{Limit: homeRecent})
	if err != nil {
		r.renderError(w, req, err)
		return
	}
	r.render(w, req, http.StatusOK, "home.html", r.newPage(req, "", homeData{Featured: featured, Recent: recent}))
}

type blogData struct {
	Category string
	Posts    []models.BlogPost
}

func (r *Renderer) Blog(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := r.loadContext(req)
	defer cancel()

	category := req.URL.Query().Get("category")
	if category == "" {
		category = models.CategoryAll
	}
	posts, err := r.posts.ListPosts(ctx, db.PostFilter{Category: category, Limit: blogPageSize})
	if err != nil {
		r.renderError(w, req, err)
		return
	}
	r.render(w, req, http.StatusOK, "blog.html", r.newPage(req, "Blog", blogData{Category: category, Posts: posts}))
}

type postData struct {
	Post     *models.BlogPost
	Comments []models.Comment
	Related  []models.BlogPost
	URL      string
}

func (r *Renderer) Post(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := r.loadContext(req)
	defer cancel()

	slug := chi.URLParam(req, "slug")
	post, err := r.posts.GetPostBySlug(ctx, slug)
	if err != nil {
		r.renderError(w, req, err)
		return
	}

	// Comments and related posts are optional; a failure only hides them.
	comments, err := r.comments.ListComments(ctx, post.ID)
	if err != nil {
		logging.Ctx(req.Context()).Warn().Err(err).Str("slug", slug).Msg("load comments failed")
		comments = nil
	}
	var related []models.BlogPost
	if post.Category != "" {
		candidates, err := r.posts.ListPosts(ctx, db.PostFilter{Category: post.Category, Limit: 4})
		if err != nil {
			logging.Ctx(req.Context()).Warn().Err(err).Str("slug", slug).Msg("load related posts failed")
		}
		for _, c := range candidates {
			if c.Slug != post.Slug && len(related) < 3 {
				related = append(related, c)
			}
		}
	}

	p := r.newPage(req, post.Title, postData{
		Post:     post,
		Comments: comments,
		Related:  related,
		URL:      r.site.URL + "/blog/" + post.Slug,
	})
	p.Slug = post.Slug
	r.render(w, req, http.StatusOK, "post.html", p)
}

type searchData struct {
	Query    string
	Category string
	Tags     string
	Searched bool
	Result   models.SearchResult
	PrevURL  string
	NextURL  string
}

func (r *Renderer) Search(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	params := db.SearchParams{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Tags:     db.ParseTags(q.Get("tags")),
		Limit:    searchPerPage,
		Offset:   parseOffset(q.Get("offset")),
	}
	data := searchData{Query: params.Query, Category: params.Category, Tags: q.Get("tags")}

	if params.HasFilter() {
		ctx, cancel := r.loadContext(req)
		defer cancel()

		posts, total, err := r.posts.SearchPosts(ctx, params)
		if err != nil {
			r.renderError(w, req, err)
			return
		}
		data.Searched = true
		data.Result = models.NewSearchResult(posts, total, params.Limit, params.Offset)
		data.PrevURL, data.NextURL = pageLinks(req, data.Result)
	}
	r.render(w, req, http.StatusOK, "search.html", r.newPage(req, "Search", data))
}

func (r *Renderer) Jobs(w http.ResponseWriter, req *http.Request) {
	r.render(w, req, http.StatusOK, "jobs.html", r.newPage(req, "Jobs", models.SeedJobListings()))
}

func (r *Renderer) AdminLogin(w http.ResponseWriter, req *http.Request) {
	r.render(w, req, http.StatusOK, "admin_login.html", r.newPage(req, "Admin login", nil))
}

// Admin expects RedirectUnlessAdmin in front of it.
func (r *Renderer) Admin(w http.ResponseWriter, req *http.Request) {
	r.render(w, req, http.StatusOK, "admin.html", r.newPage(req, "Admin", nil))
}

func (r *Renderer) NotFound(w http.ResponseWriter, req *http.Request) {
	r.render(w, req, http.StatusNotFound, "not_found.html", r.newPage(req, "Not found", nil))
}
