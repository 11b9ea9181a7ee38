package handlers

import (
	"net/http"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/logging"
)

func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type DiagnosticsHandler struct {
	db HealthChecker
}

func NewDiagnosticsHandler(db HealthChecker) *DiagnosticsHandler {
	return &DiagnosticsHandler{db: db}
}

type dbDiagnostics struct {
	Connected      bool `json:"connected"`
	PublishedPosts int  `json:"publishedPosts"`
}

// Database pings the pool and counts published posts. Failure details are
// logged, never returned.
func (h *DiagnosticsHandler) Database(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("database ping failed")
		respondError(w, http.StatusInternalServerError, "Database connection failed")
		return
	}
	count, err := h.db.CountPublishedPosts(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("count published posts failed")
		respondError(w, http.StatusInternalServerError, "Database connection failed")
		return
	}
	respondJSON(w, http.StatusOK, dbDiagnostics{Connected: true, PublishedPosts: count})
}
