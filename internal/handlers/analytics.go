package handlers

import (
	"errors"
	"net/http"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/db"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/logging"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/metrics"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/models"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/validation"
)

// AnalyticsHandler receives the beacon calls made by static/analytics.js.
// Beacons are only recorded for published posts, so blog_post_views_total
// has at most one series per post.
type AnalyticsHandler struct {
	store AnalyticsStore
	posts PostLookup
}

func NewAnalyticsHandler(store AnalyticsStore, posts PostLookup) *AnalyticsHandler {
	return &AnalyticsHandler{store: store, posts: posts}
}

type ViewRequest struct {
	Slug     string `json:"slug" validate:"required,max=200"`
	Path     string `json:"path" validate:"required,max=500"`
	Referrer string `json:"referrer" validate:"max=1000"`
}

type EngagementRequest struct {
	Slug  string `json:"slug" validate:"required,max=200"`
	Event string `json:"event" validate:"required,oneof=scroll visibility time"`
	Value int    `json:"value" validate:"min=0,max=86400"`
}

func (h *AnalyticsHandler) View(w http.ResponseWriter, r *http.Request) {
	var req ViewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !h.publishedPost(w, r, req.Slug) {
		return
	}

	err := h.store.RecordView(r.Context(), models.PageView{
		Slug:      req.Slug,
		Path:      req.Path,
		Referrer:  req.Referrer,
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("slug", req.Slug).Msg("record view failed")
		respondError(w, http.StatusInternalServerError, "Failed to record view")
		return
	}

	metrics.RecordPostView(req.Slug)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AnalyticsHandler) Engagement(w http.ResponseWriter, r *http.Request) {
	var req EngagementRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !h.publishedPost(w, r, req.Slug) {
		return
	}

	err := h.store.RecordEngagement(r.Context(), models.EngagementEvent{
		Slug:  req.Slug,
		Event: req.Event,
		Value: req.Value,
	})
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("event", req.Event).Msg("record engagement failed")
		respondError(w, http.StatusInternalServerError, "Failed to record event")
		return
	}

	metrics.RecordEngagement(req.Event)
	w.WriteHeader(http.StatusNoContent)
}

// publishedPost writes the error response and returns false when slug does
// not name a published post.
func (h *AnalyticsHandler) publishedPost(w http.ResponseWriter, r *http.Request, slug string) bool {
	_, err := h.posts.GetPostBySlug(r.Context(), slug)
	switch {
	case err == nil:
		return true
	case errors.Is(err, db.ErrNotFound):
		respondError(w, http.StatusNotFound, "Post not found")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("slug", slug).Msg("post lookup failed")
		respondError(w, http.StatusInternalServerError, "Failed to record event")
	}
	return false
}
