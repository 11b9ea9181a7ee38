package handlers

import (
	"net/http"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/auth"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/logging"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/models"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/validation"
)

type AuthHandler struct {
	tokens       *auth.Manager
	credentials  auth.Credentials
	secureCookie bool
}

func NewAuthHandler(tokens *auth.Manager, credentials auth.Credentials, secureCookie bool) *AuthHandler {
	return &AuthHandler{tokens: tokens, credentials: credentials, secureCookie: secureCookie}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=256"`
}

type LoginResponse struct {
	Success bool             `json:"success"`
	User    models.AdminUser `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	req.Email = trim(req.Email)
	if err := validation.ValidateStruct(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.credentials.Check(req.Email, req.Password) {
		logging.Ctx(r.Context()).Warn().Msg("admin login rejected")
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	user := models.AdminUser{Email: h.credentials.Email(), Role: models.RoleAdmin}
	token, _, err := h.tokens.Issue(user.Email, user.Role)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("issue token failed")
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	h.tokens.SetCookie(w, token, h.secureCookie)
	logging.Ctx(r.Context()).Info().Str("email", user.Email).Msg("admin logged in")
	respondJSON(w, http.StatusOK, LoginResponse{Success: true, User: user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearCookie(w, h.secureCookie)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.tokens.FromRequest(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	respondJSON(w, http.StatusOK, map[string]models.AdminUser{"user": user})
}
