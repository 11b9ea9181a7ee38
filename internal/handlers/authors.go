package handlers

import (
	"net/http"
	"unicode/utf8"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/logging"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/models"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/validation"
)

type AuthorsHandler struct {
	store AuthorStore
}

func NewAuthorsHandler(store AuthorStore) *AuthorsHandler {
	return &AuthorsHandler{store: store}
}

type CreateAuthorRequest struct {
	Name     string `json:"name"`
	Bio      string `json:"bio" validate:"max=2000"`
	Avatar   string `json:"avatar" validate:"omitempty,http_url"`
	Twitter  string `json:"twitter" validate:"max=100"`
	LinkedIn string `json:"linkedin" validate:"max=200"`
	Website  string `json:"website" validate:"omitempty,http_url"`
}

func (req *CreateAuthorRequest) normalize() {
	req.Name = trim(req.Name)
	req.Bio = trim(req.Bio)
	req.Avatar = trim(req.Avatar)
	req.Twitter = trim(req.Twitter)
	req.LinkedIn = trim(req.LinkedIn)
	req.Website = trim(req.Website)
}

func (h *AuthorsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAuthorRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	req.normalize()

	if utf8.RuneCountInString(req.Name) < 2 {
		respondError(w, http.StatusBadRequest, "Name must be at least 2 characters")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.store.CreateAuthor(r.Context(), models.Author{
		Name:   req.Name,
		Bio:    req.Bio,
		Avatar: req.Avatar,
		Social: models.Social{
			Twitter:  req.Twitter,
			LinkedIn: req.LinkedIn,
			Website:  req.Website,
		},
	})
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("create author failed")
		respondError(w, http.StatusInternalServerError, "Failed to create author")
		return
	}

	logging.Ctx(r.Context()).Info().Str("author_id", created.ID).Msg("author created")
	respondJSON(w, http.StatusCreated, created)
}
