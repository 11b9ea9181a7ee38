package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/db"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/logging"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/models"
)

const (
	maxListLimit   = 100
	maxSearchLimit = 50
)

type PostsHandler struct {
	store PostStore
}

func NewPostsHandler(store PostStore) *PostsHandler {
	return &PostsHandler{store: store}
}

func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := db.PostFilter{
		Category: trim(q.Get("category")),
		Featured: q.Get("featured") == "true",
		Limit:    clamp(parsePositiveInt(q.Get("limit"), 10), 1, maxListLimit),
	}

	posts, err := h.store.ListPosts(r.Context(), filter)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("list posts failed")
		respondError(w, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}
	if posts == nil {
		posts = []models.BlogPost{}
	}

	setCache(w, cacheLong)
	respondJSON(w, http.StatusOK, posts)
}

func (h *PostsHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		respondError(w, http.StatusBadRequest, "missing slug")
		return
	}

	post, err := h.store.GetPostBySlug(r.Context(), slug)
	if errors.Is(err, db.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("slug", slug).Msg("get post failed")
		respondError(w, http.StatusInternalServerError, "Failed to fetch post")
		return
	}

	setCache(w, cacheLong)
	respondJSON(w, http.StatusOK, post)
}

// Search requires at least one of q, a real category or tags. The "All"
// category alone does not count as a filter.
func (h *PostsHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := db.SearchParams{
		Query:    trim(q.Get("q")),
		Category: trim(q.Get("category")),
		Tags:     db.ParseTags(q.Get("tags")),
		Limit:    clamp(parsePositiveInt(q.Get("limit"), 10), 1, maxSearchLimit),
		Offset:   parseOffset(q.Get("offset")),
	}
	if !params.HasFilter() {
		respondError(w, http.StatusBadRequest, "Search query, category, or tags required")
		return
	}

	posts, total, err := h.store.SearchPosts(r.Context(), params)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("q", params.Query).Msg("search failed")
		respondError(w, http.StatusInternalServerError, "Failed to search posts")
		return
	}

	setCache(w, cacheShort)
	respondJSON(w, http.StatusOK, models.NewSearchResult(posts, total, params.Limit, params.Offset))
}
