package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	env := setupEnv()

	rec := performRequest(env.router, http.MethodGet, "/notes", nil, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	env := setupEnv()

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for non-bearer header, got %d", rec.Code)
	}
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	env := setupEnv()

	rec := performRequest(env.router, http.MethodGet, "/notes", nil, "not-a-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for garbage token, got %d", rec.Code)
	}
}

func TestAuthMiddleware_StaleToken(t *testing.T) {
	env := setupEnv()
	token := signup(t, env, "user@example.com")

	// La cuenta desaparece despues de emitido el token.
	id := env.users.usersByEmail["user@example.com"]
	env.users.remove(id)

	rec := performRequest(env.router, http.MethodGet, "/notes", nil, token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for stale token, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	env := setupEnv()
	token := signup(t, env, "user@example.com")

	rec := performRequest(env.router, http.MethodGet, "/notes", nil, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Notes []struct{} `json:"notes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Notes) != 0 {
		t.Fatalf("expected empty note list for fresh user")
	}
}
