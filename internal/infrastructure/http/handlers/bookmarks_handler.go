package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/tmarcinkow/bookmarkd/internal/application/bookmark"
	"github.com/tmarcinkow/bookmarkd/internal/domain"
	domerrors "github.com/tmarcinkow/bookmarkd/internal/domain/errors"
	"github.com/tmarcinkow/bookmarkd/internal/infrastructure/http/middleware"
)

// BookmarksHandler handles /bookmarks/*. Requires bearer auth.
type BookmarksHandler struct {
	service  *bookmark.Service
	validate *validator.Validate
	log      zerolog.Logger
}

func NewBookmarksHandler(service *bookmark.Service, log zerolog.Logger) *BookmarksHandler {
	return &BookmarksHandler{
		service:  service,
		validate: validator.New(),
		log:      log,
	}
}

// BookmarkResponse is the JSON shape for a single bookmark.
type BookmarkResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toBookmarkResponse(b *domain.Bookmark) BookmarkResponse {
	return BookmarkResponse{
		ID:          b.ID.String(),
		UserID:      b.UserID.String(),
		Title:       b.Title,
		Description: b.Description,
		Link:        b.Link,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   b.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *BookmarksHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	list, err := h.service.List(r.Context(), owner)
	if err != nil {
		h.log.Error().Err(err).Msg("list bookmarks failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	out := make([]BookmarkResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBookmarkResponse(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *BookmarksHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := h.bookmarkID(w, r)
	if !ok {
		return
	}
	b, err := h.service.GetByID(r.Context(), owner, id)
	if err != nil {
		if errors.Is(err, domerrors.ErrBookmarkNotFound) {
			writeErr(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("get bookmark failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toBookmarkResponse(b))
}

func (h *BookmarksHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	var body struct {
		Title       string `json:"title" validate:"required,max=512"`
		Description string `json:"description" validate:"max=4096"`
		Link        string `json:"link" validate:"required,url,max=2048"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	b, err := h.service.Create(r.Context(), owner, bookmark.CreateInput{
		Title:       body.Title,
		Description: body.Description,
		Link:        body.Link,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("create bookmark failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, toBookmarkResponse(b))
}

func (h *BookmarksHandler) Edit(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := h.bookmarkID(w, r)
	if !ok {
		return
	}
	var body struct {
		Title       *string `json:"title" validate:"omitempty,max=512"`
		Description *string `json:"description" validate:"omitempty,max=4096"`
		Link        *string `json:"link" validate:"omitempty,url,max=2048"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	b, err := h.service.Edit(r.Context(), owner, id, domain.BookmarkPatch{
		Title:       body.Title,
		Description: body.Description,
		Link:        body.Link,
	})
	if err != nil {
		if errors.Is(err, domerrors.ErrAccessDenied) {
			writeErr(w, http.StatusForbidden, ErrCodeForbidden, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("edit bookmark failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toBookmarkResponse(b))
}

func (h *BookmarksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := h.bookmarkID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), owner, id); err != nil {
		if errors.Is(err, domerrors.ErrAccessDenied) {
			writeErr(w, http.StatusForbidden, ErrCodeForbidden, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("delete bookmark failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookmarksHandler) owner(w http.ResponseWriter, r *http.Request) (domain.UserID, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return domain.UserID{}, false
	}
	owner, err := domain.ParseUserID(identity.UserID)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "", "invalid token subject")
		return domain.UserID{}, false
	}
	return owner, true
}

func (h *BookmarksHandler) bookmarkID(w http.ResponseWriter, r *http.Request) (domain.BookmarkID, bool) {
	id, err := domain.ParseBookmarkID(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid bookmark id")
		return domain.BookmarkID{}, false
	}
	return id, true
}
