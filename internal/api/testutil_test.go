package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tmoore/bookmarkd/internal/api"
	"github.com/tmoore/bookmarkd/internal/auth"
	"github.com/tmoore/bookmarkd/internal/store"
	"github.com/tmoore/bookmarkd/internal/testutil"
)

// testEnv holds the router and helpers needed for API integration tests.
type testEnv struct {
	Router      http.Handler
	Credentials *auth.Service
	Tokens      *auth.JWT
	Bookmarks   *store.BookmarkStore
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and wires up the full router with real stores.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	users := store.NewUserStore(db)
	bookmarks := store.NewBookmarkStore(db)
	tokens := auth.NewJWT("test-secret", time.Hour)
	credentials := auth.NewService(users, tokens)

	router := api.NewRouter(api.Deps{
		Log:          zap.NewNop(),
		Credentials:  credentials,
		Gate:         auth.NewMiddleware(tokens),
		Bookmarks:    bookmarks,
		ExposeErrors: true,
	})

	return &testEnv{
		Router:      router,
		Credentials: credentials,
		Tokens:      tokens,
		Bookmarks:   bookmarks,
	}
}

// seedUser registers a user and returns the record.
func seedUser(t *testing.T, env *testEnv, username, email string) *store.User {
	t.Helper()
	u, err := env.Credentials.Register(context.Background(), username, email, "hunter2secret")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// seedToken issues a real bearer token for a user.
func seedToken(t *testing.T, env *testEnv, userID string) string {
	t.Helper()
	token, err := env.Tokens.Issue(userID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

// doJSON sends a JSON request through the router and returns the recorder.
func doJSON(t *testing.T, env *testEnv, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a recorded JSON response body into v.
func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
