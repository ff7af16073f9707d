package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dom/whatnot-go/internal/domain"
	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	platform Platform
	logger   *slog.Logger
}

func NewUserHandler(platform Platform, logger *slog.Logger) *UserHandler {
	return &UserHandler{platform: platform, logger: logger}
}

type LivesResponse struct {
	Lives []domain.LiveStream `json:"lives"`
	Count int                 `json:"count"`
}

func (h *UserHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.platform.GetUser(r.Context(), username)
	if err != nil {
		writeError(w, h.logger, "user.GetByUsername", err)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.platform.GetUserByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, "user.GetByID", err)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) GetLives(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	first := 0
	if v := r.URL.Query().Get("first"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, "first must be a positive integer", http.StatusBadRequest)
			return
		}
		first = n
	}

	lives, err := h.platform.GetUserLives(r.Context(), id, first)
	if err != nil {
		writeError(w, h.logger, "user.GetLives", err)
		return
	}

	writeJSON(w, http.StatusOK, LivesResponse{Lives: lives, Count: len(lives)})
}
