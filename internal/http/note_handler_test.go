package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"notely/internal/domain"
)

func TestNotes_CreateThenListNewestFirst(t *testing.T) {
	env := setupEnv()
	token := signup(t, env, "user@example.com")

	for _, title := range []string{"first", "second"} {
		rec := performRequest(env.router, http.MethodPost, "/notes", map[string]string{
			"title":   title,
			"content": "content of " + title,
		}, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d", rec.Code)
		}
	}

	rec := performRequest(env.router, http.MethodGet, "/notes", nil, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp struct {
		Notes []domain.Note `json:"notes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(resp.Notes))
	}
	if resp.Notes[0].Title != "second" || resp.Notes[1].Title != "first" {
		t.Fatalf("expected newest first, got %+v", resp.Notes)
	}
}

func TestNotes_CreateRejectsEmptyFields(t *testing.T) {
	env := setupEnv()
	token := signup(t, env, "user@example.com")

	rec := performRequest(env.router, http.MethodPost, "/notes", map[string]string{
		"title":   "   ",
		"content": "something",
	}, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for blank title, got %d", rec.Code)
	}

	rec = performRequest(env.router, http.MethodPost, "/notes", map[string]string{
		"title": "no content",
	}, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for missing content, got %d", rec.Code)
	}
}

func TestNotes_IsolationBetweenUsers(t *testing.T) {
	env := setupEnv()
	tokenA := signup(t, env, "a@example.com")
	tokenB := signup(t, env, "b@example.com")

	rec := performRequest(env.router, http.MethodPost, "/notes", map[string]string{
		"title":   "private",
		"content": "only for a",
	}, tokenA)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}
	var created struct {
		Note domain.Note `json:"note"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	rec = performRequest(env.router, http.MethodGet, "/notes", nil, tokenB)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var listB struct {
		Notes []domain.Note `json:"notes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listB); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(listB.Notes) != 0 {
		t.Fatalf("expected b to see no notes, got %d", len(listB.Notes))
	}

	rec = performRequest(env.router, http.MethodDelete, "/notes/"+created.Note.ID, nil, tokenB)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 deleting someone else's note, got %d", rec.Code)
	}

	rec = performRequest(env.router, http.MethodDelete, "/notes/"+created.Note.ID, nil, tokenA)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 deleting own note, got %d", rec.Code)
	}
}

func TestNotes_DeleteMissing(t *testing.T) {
	env := setupEnv()
	token := signup(t, env, "user@example.com")

	rec := performRequest(env.router, http.MethodDelete, "/notes/does-not-exist", nil, token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}
