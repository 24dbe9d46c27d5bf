package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tmoore/bookmarkd/internal/auth"
	"github.com/tmoore/bookmarkd/internal/store"
)

// bookmarkHandler provides the token-gated bookmark endpoints. Every query is
// scoped to the authenticated owner, so one user can never see or touch
// another user's bookmarks.
type bookmarkHandler struct {
	bookmarks *store.BookmarkStore
	log       *zap.Logger
	expose    bool
}

func registerBookmarkRoutes(r chi.Router, deps Deps) {
	h := &bookmarkHandler{bookmarks: deps.Bookmarks, log: deps.Log, expose: deps.ExposeErrors}
	r.Post("/bookmarks", h.Create)
	r.Get("/bookmarks", h.List)
	r.Get("/bookmarks/search", h.Search)
	r.Put("/bookmarks/{id}", h.Update)
	r.Delete("/bookmarks/{id}", h.Delete)
}

// Create adds a bookmark owned by the caller.
// POST /api/bookmarks
//
// @Summary      Create a bookmark
// @Description  Saves a new bookmark owned by the authenticated user.
// @Tags         Bookmarks
// @Accept       json
// @Produce      json
// @Param        body  body      CreateBookmarkRequest  true  "Bookmark to create"
// @Success      201   {object}  store.Bookmark
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks [post]
func (h *bookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if !validURL(req.URL) {
		writeError(w, http.StatusBadRequest, "a valid absolute url is required")
		return
	}
	if req.Category == "" {
		writeError(w, http.StatusBadRequest, "category is required")
		return
	}

	bookmark, err := h.bookmarks.Create(r.Context(), auth.UserID(r.Context()), store.BookmarkFields{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Tags:        req.Tags,
		Category:    req.Category,
	})
	if err != nil {
		writeInternalError(w, h.log, h.expose, err)
		return
	}

	writeJSON(w, http.StatusCreated, bookmark)
}

// Update modifies the caller's bookmark. Omitted fields keep their values.
// PUT /api/bookmarks/{id}
//
// @Summary      Update a bookmark
// @Description  Partially updates a bookmark owned by the authenticated user.
// @Tags         Bookmarks
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Bookmark ID"
// @Param        body  body      UpdateBookmarkRequest  true  "Fields to change"
// @Success      200   {object}  store.Bookmark
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks/{id} [put]
func (h *bookmarkHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title != nil && *req.Title == "" {
		writeError(w, http.StatusBadRequest, "title cannot be empty")
		return
	}
	if req.URL != nil && !validURL(*req.URL) {
		writeError(w, http.StatusBadRequest, "a valid absolute url is required")
		return
	}
	if req.Category != nil && *req.Category == "" {
		writeError(w, http.StatusBadRequest, "category cannot be empty")
		return
	}

	bookmark, err := h.bookmarks.Update(r.Context(), chi.URLParam(r, "id"), auth.UserID(r.Context()), store.BookmarkPatch{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Tags:        req.Tags,
		Category:    req.Category,
	})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "bookmark not found")
		return
	}
	if err != nil {
		writeInternalError(w, h.log, h.expose, err)
		return
	}

	writeJSON(w, http.StatusOK, bookmark)
}

// Delete removes the caller's bookmark.
// DELETE /api/bookmarks/{id}
//
// @Summary      Delete a bookmark
// @Description  Deletes a bookmark owned by the authenticated user.
// @Tags         Bookmarks
// @Produce      json
// @Param        id  path      string  true  "Bookmark ID"
// @Success      200 {object}  MessageResponse
// @Failure      401 {object}  ErrorResponse
// @Failure      404 {object}  ErrorResponse
// @Failure      500 {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks/{id} [delete]
func (h *bookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.bookmarks.Delete(r.Context(), chi.URLParam(r, "id"), auth.UserID(r.Context()))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "bookmark not found")
		return
	}
	if err != nil {
		writeInternalError(w, h.log, h.expose, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Bookmark deleted successfully"})
}

// List returns one page of the caller's bookmarks, newest first.
// GET /api/bookmarks?page=&limit=
//
// @Summary      List bookmarks
// @Description  Returns a page of the authenticated user's bookmarks.
// @Tags         Bookmarks
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 10)"
// @Success      200    {object}  store.Page[store.Bookmark]
// @Failure      401    {object}  ErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks [get]
func (h *bookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.bookmarks.List(r.Context(), auth.UserID(r.Context()), parsePagination(r))
	if err != nil {
		writeInternalError(w, h.log, h.expose, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Search returns the caller's bookmarks matching the q term.
// GET /api/bookmarks/search?q=&page=&limit=
//
// @Summary      Search bookmarks
// @Description  Case-insensitive substring match over title, description, category, and tags.
// @Tags         Bookmarks
// @Produce      json
// @Param        q      query     string  false  "Search term"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Page size (default 10)"
// @Success      200    {object}  store.Page[store.Bookmark]
// @Failure      401    {object}  ErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks/search [get]
func (h *bookmarkHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, err := h.bookmarks.Search(r.Context(), auth.UserID(r.Context()), r.URL.Query().Get("q"), parsePagination(r))
	if err != nil {
		writeInternalError(w, h.log, h.expose, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
