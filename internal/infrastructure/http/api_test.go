package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tmarcinkow/bookmarkd/internal/application/auth"
	"github.com/tmarcinkow/bookmarkd/internal/application/bookmark"
	infraauth "github.com/tmarcinkow/bookmarkd/internal/infrastructure/auth"
	httprouter "github.com/tmarcinkow/bookmarkd/internal/infrastructure/http"
	"github.com/tmarcinkow/bookmarkd/internal/infrastructure/http/handlers"
	"github.com/tmarcinkow/bookmarkd/internal/infrastructure/http/middleware"
	"github.com/tmarcinkow/bookmarkd/internal/infrastructure/persistence/memory"
	"github.com/tmarcinkow/bookmarkd/internal/infrastructure/security"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	users := memory.NewUserRepository()
	bookmarks := memory.NewBookmarkRepository()
	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
	issuer := infraauth.NewTokenIssuer([]byte("test-secret"), "bookmarkd", 900)
	log := zerolog.Nop()

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:      handlers.NewAuthHandler(auth.NewSignup(users, hasher, issuer), auth.NewSignin(users, hasher, issuer), log),
		BookmarksHandler: handlers.NewBookmarksHandler(bookmark.NewService(bookmarks), log),
		UsersHandler:     handlers.NewUsersHandler(users),
		RequireAuth:      middleware.NewAuthValidator(issuer).Handler,
		Log:              log,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func doJSONList(t *testing.T, srv *httptest.Server, path, token string) (*http.Response, []map[string]any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func signupToken(t *testing.T, srv *httptest.Server, email, password string) string {
	t.Helper()
	resp, body := doJSON(t, srv, http.MethodPost, "/auth/signup", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestAPI_FullBookmarkLifecycle(t *testing.T) {
	srv := newTestServer(t)

	// signup then signin
	signupToken(t, srv, "u1@x.com", "password-one")
	resp, body := doJSON(t, srv, http.MethodPost, "/auth/signin", "", map[string]string{
		"email": "u1@x.com", "password": "password-one",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)

	// fresh user has no bookmarks
	resp, list := doJSONList(t, srv, "/bookmarks", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, list)

	// create
	resp, created := doJSON(t, srv, http.MethodPost, "/bookmarks", token, map[string]string{
		"title":       "first bookmark",
		"description": "a description",
		"link":        "https://example.com/one",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	// get by id returns matching fields
	resp, got := doJSON(t, srv, http.MethodGet, "/bookmarks/"+id, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "first bookmark", got["title"])
	require.Equal(t, "a description", got["description"])
	require.Equal(t, "https://example.com/one", got["link"])

	// patch only the title
	resp, _ = doJSON(t, srv, http.MethodPatch, "/bookmarks/"+id, token, map[string]string{
		"title": "new",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, got = doJSON(t, srv, http.MethodGet, "/bookmarks/"+id, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "new", got["title"])
	require.Equal(t, "a description", got["description"])
	require.Equal(t, "https://example.com/one", got["link"])

	// delete, then the list is empty again
	resp, _ = doJSON(t, srv, http.MethodDelete, "/bookmarks/"+id, token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, list = doJSONList(t, srv, "/bookmarks", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, list)
}

func TestAPI_SignupDuplicateEmail(t *testing.T) {
	srv := newTestServer(t)

	signupToken(t, srv, "dup@x.com", "password-one")
	resp, body := doJSON(t, srv, http.MethodPost, "/auth/signup", "", map[string]string{
		"email": "dup@x.com", "password": "completely-different",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "duplicate_email", body["code"])
}

func TestAPI_SigninFailuresAreUniform(t *testing.T) {
	srv := newTestServer(t)
	signupToken(t, srv, "known@x.com", "password-one")

	respWrong, bodyWrong := doJSON(t, srv, http.MethodPost, "/auth/signin", "", map[string]string{
		"email": "known@x.com", "password": "bad-password",
	})
	respUnknown, bodyUnknown := doJSON(t, srv, http.MethodPost, "/auth/signin", "", map[string]string{
		"email": "unknown@x.com", "password": "password-one",
	})
	require.Equal(t, http.StatusForbidden, respWrong.StatusCode)
	require.Equal(t, http.StatusForbidden, respUnknown.StatusCode)
	require.Equal(t, bodyWrong["error"], bodyUnknown["error"])
	require.Equal(t, bodyWrong["code"], bodyUnknown["code"])
}

func TestAPI_CrossUserAccess(t *testing.T) {
	srv := newTestServer(t)
	tokenA := signupToken(t, srv, "a@x.com", "password-one")
	tokenB := signupToken(t, srv, "b@x.com", "password-two")

	resp, created := doJSON(t, srv, http.MethodPost, "/bookmarks", tokenB, map[string]string{
		"title": "b's bookmark",
		"link":  "https://example.com/b",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := created["id"].(string)

	// A cannot read B's bookmark; it looks absent.
	resp, _ = doJSON(t, srv, http.MethodGet, "/bookmarks/"+id, tokenA, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// A cannot edit or delete it.
	resp, _ = doJSON(t, srv, http.MethodPatch, "/bookmarks/"+id, tokenA, map[string]string{"title": "hijacked"})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = doJSON(t, srv, http.MethodDelete, "/bookmarks/"+id, tokenA, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// B still sees it unchanged.
	resp, got := doJSON(t, srv, http.MethodGet, "/bookmarks/"+id, tokenB, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "b's bookmark", got["title"])
}

func TestAPI_ProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodGet, "/bookmarks"},
		{http.MethodPost, "/bookmarks"},
		{http.MethodGet, "/users/me"},
	} {
		resp, _ := doJSON(t, srv, tc.method, tc.path, "", nil)
		require.Equalf(t, http.StatusUnauthorized, resp.StatusCode, "%s %s without token", tc.method, tc.path)
	}

	resp, _ := doJSON(t, srv, http.MethodGet, "/bookmarks", "not.a.jwt", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_UsersMe(t *testing.T) {
	srv := newTestServer(t)
	token := signupToken(t, srv, "me@x.com", "password-one")

	resp, body := doJSON(t, srv, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "me@x.com", body["email"])
	require.NotEmpty(t, body["id"])
	_, hasHash := body["password_hash"]
	require.False(t, hasHash, "password hash must never be returned")
}

func TestAPI_CreateBookmarkValidation(t *testing.T) {
	srv := newTestServer(t)
	token := signupToken(t, srv, "v@x.com", "password-one")

	// missing link
	resp, _ := doJSON(t, srv, http.MethodPost, "/bookmarks", token, map[string]string{"title": "no link"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// link is not a URL
	resp, _ = doJSON(t, srv, http.MethodPost, "/bookmarks", token, map[string]string{
		"title": "bad link", "link": "not a url",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
