package api_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/tmoore/bookmarkd/internal/api"
	"github.com/tmoore/bookmarkd/internal/store"
)

type bookmarkPage struct {
	Data       []store.Bookmark `json:"data"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int64            `json:"total_pages"`
}

func TestBookmarksRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	paths := []struct{ method, path string }{
		{http.MethodPost, "/api/bookmarks"},
		{http.MethodGet, "/api/bookmarks"},
		{http.MethodGet, "/api/bookmarks/search?q=x"},
		{http.MethodPut, "/api/bookmarks/some-id"},
		{http.MethodDelete, "/api/bookmarks/some-id"},
	}
	for _, p := range paths {
		rec := doJSON(t, env, p.method, p.path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: status = %d, want 401", p.method, p.path, rec.Code)
		}
	}

	rec := doJSON(t, env, http.MethodGet, "/api/bookmarks", "not-a-valid-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", rec.Code)
	}
}

func TestCreateBookmark(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice", "alice@example.com")
	token := seedToken(t, env, user.ID)

	rec := doJSON(t, env, http.MethodPost, "/api/bookmarks", token, api.CreateBookmarkRequest{
		Title:       "Go Blog",
		URL:         "https://go.dev/blog",
		Description: "Official Go blog",
		Tags:        []string{"go", "reading"},
		Category:    "programming",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var b store.Bookmark
	decode(t, rec, &b)
	if b.ID == "" || b.UserID != user.ID {
		t.Errorf("bookmark = %+v, want generated ID owned by %s", b, user.ID)
	}
	if b.Title != "Go Blog" || len(b.Tags) != 2 {
		t.Errorf("round trip mismatch: %+v", b)
	}
}

func TestCreateBookmarkValidation(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice", "alice@example.com")
	token := seedToken(t, env, user.ID)

	tests := []struct {
		name string
		req  api.CreateBookmarkRequest
	}{
		{"missing title", api.CreateBookmarkRequest{URL: "https://example.com", Category: "misc"}},
		{"missing category", api.CreateBookmarkRequest{Title: "t", URL: "https://example.com"}},
		{"relative url", api.CreateBookmarkRequest{Title: "t", URL: "/just/a/path", Category: "misc"}},
		{"no scheme", api.CreateBookmarkRequest{Title: "t", URL: "example.com/page", Category: "misc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, env, http.MethodPost, "/api/bookmarks", token, tt.req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestUpdateBookmark(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice", "alice@example.com")
	token := seedToken(t, env, user.ID)

	created, err := env.Bookmarks.Create(context.Background(), user.ID, store.BookmarkFields{
		Title: "Before", URL: "https://example.com", Description: "keep", Category: "misc",
	})
	if err != nil {
		t.Fatalf("seed bookmark: %v", err)
	}

	title := "After"
	rec := doJSON(t, env, http.MethodPut, "/api/bookmarks/"+created.ID, token, api.UpdateBookmarkRequest{
		Title: &title,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var b store.Bookmark
	decode(t, rec, &b)
	if b.Title != "After" || b.Description != "keep" {
		t.Errorf("got %+v, want title After and description kept", b)
	}
}

func TestUpdateBookmarkNotOwned(t *testing.T) {
	env := newTestEnv(t)
	alice := seedUser(t, env, "alice", "alice@example.com")
	bob := seedUser(t, env, "bob", "bob@example.com")
	bobToken := seedToken(t, env, bob.ID)

	created, err := env.Bookmarks.Create(context.Background(), alice.ID, store.BookmarkFields{
		Title: "Alice's", URL: "https://example.com", Category: "misc",
	})
	if err != nil {
		t.Fatalf("seed bookmark: %v", err)
	}

	title := "Hijacked"
	rec := doJSON(t, env, http.MethodPut, "/api/bookmarks/"+created.ID, bobToken, api.UpdateBookmarkRequest{
		Title: &title,
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("update: status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, env, http.MethodDelete, "/api/bookmarks/"+created.ID, bobToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("delete: status = %d, want 404", rec.Code)
	}
}

func TestDeleteBookmark(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice", "alice@example.com")
	token := seedToken(t, env, user.ID)

	created, err := env.Bookmarks.Create(context.Background(), user.ID, store.BookmarkFields{
		Title: "Doomed", URL: "https://example.com", Category: "misc",
	})
	if err != nil {
		t.Fatalf("seed bookmark: %v", err)
	}

	rec := doJSON(t, env, http.MethodDelete, "/api/bookmarks/"+created.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp api.MessageResponse
	decode(t, rec, &resp)
	if resp.Message == "" {
		t.Error("expected a confirmation message")
	}

	rec = doJSON(t, env, http.MethodDelete, "/api/bookmarks/"+created.ID, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: status = %d, want 404", rec.Code)
	}
}

func TestListBookmarksPagination(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice", "alice@example.com")
	token := seedToken(t, env, user.ID)

	for i := 0; i < 12; i++ {
		_, err := env.Bookmarks.Create(context.Background(), user.ID, store.BookmarkFields{
			Title: fmt.Sprintf("bookmark %02d", i), URL: "https://example.com", Category: "misc",
		})
		if err != nil {
			t.Fatalf("seed bookmark %d: %v", i, err)
		}
	}

	// Defaults: page 1, limit 10.
	rec := doJSON(t, env, http.MethodGet, "/api/bookmarks", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var page bookmarkPage
	decode(t, rec, &page)
	if page.Page != 1 || page.Limit != 10 || page.Total != 12 || page.TotalPages != 2 {
		t.Errorf("defaults: %+v, want page=1 limit=10 total=12 total_pages=2", page)
	}
	if len(page.Data) != 10 {
		t.Errorf("len = %d, want 10", len(page.Data))
	}

	rec = doJSON(t, env, http.MethodGet, "/api/bookmarks?page=2&limit=10", token, nil)
	decode(t, rec, &page)
	if len(page.Data) != 2 || page.Page != 2 {
		t.Errorf("page 2: len = %d page = %d, want 2 and 2", len(page.Data), page.Page)
	}

	// Junk pagination falls back to defaults rather than erroring.
	rec = doJSON(t, env, http.MethodGet, "/api/bookmarks?page=banana&limit=-5", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("junk params: status = %d, want 200", rec.Code)
	}
	decode(t, rec, &page)
	if page.Page != 1 || page.Limit != 10 {
		t.Errorf("junk params: page=%d limit=%d, want 1 and 10", page.Page, page.Limit)
	}
}

func TestSearchBookmarks(t *testing.T) {
	env := newTestEnv(t)
	alice := seedUser(t, env, "alice", "alice@example.com")
	bob := seedUser(t, env, "bob", "bob@example.com")
	token := seedToken(t, env, alice.ID)
	ctx := context.Background()

	seed := []store.BookmarkFields{
		{Title: "Golang Weekly", URL: "https://example.com/1", Category: "programming"},
		{Title: "Recipes", URL: "https://example.com/2", Description: "pasta and golang gophers", Category: "food"},
		{Title: "Unrelated", URL: "https://example.com/3", Category: "misc"},
	}
	for _, f := range seed {
		if _, err := env.Bookmarks.Create(ctx, alice.ID, f); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	if _, err := env.Bookmarks.Create(ctx, bob.ID, store.BookmarkFields{
		Title: "Bob's golang stash", URL: "https://example.com/b", Category: "programming",
	}); err != nil {
		t.Fatalf("seed bob: %v", err)
	}

	rec := doJSON(t, env, http.MethodGet, "/api/bookmarks/search?q=GoLang", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var page bookmarkPage
	decode(t, rec, &page)
	if page.Total != 2 {
		t.Errorf("total = %d, want 2", page.Total)
	}
	for _, b := range page.Data {
		if b.UserID != alice.ID {
			t.Errorf("search leaked bookmark owned by %s", b.UserID)
		}
	}

	// A blank term matches nothing.
	rec = doJSON(t, env, http.MethodGet, "/api/bookmarks/search?q=", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("blank term: status = %d, want 200", rec.Code)
	}
	decode(t, rec, &page)
	if page.Total != 0 || len(page.Data) != 0 {
		t.Errorf("blank term: total = %d len = %d, want 0", page.Total, len(page.Data))
	}
}
