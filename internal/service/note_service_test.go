package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notely/internal/domain"
)

type fakeNoteRepo struct {
	notes []domain.Note
}

func (f *fakeNoteRepo) Create(_ context.Context, note domain.Note) error {
	f.notes = append(f.notes, note)
	return nil
}

func (f *fakeNoteRepo) GetByID(_ context.Context, id string) (domain.Note, error) {
	for _, n := range f.notes {
		if n.ID == id {
			return n, nil
		}
	}
	return domain.Note{}, pgx.ErrNoRows
}

func (f *fakeNoteRepo) ListByUser(_ context.Context, userID string) ([]domain.Note, error) {
	// Mas recientes primero, como el repositorio real.
	out := make([]domain.Note, 0)
	for i := len(f.notes) - 1; i >= 0; i-- {
		if f.notes[i].UserID == userID {
			out = append(out, f.notes[i])
		}
	}
	return out, nil
}

func (f *fakeNoteRepo) Delete(_ context.Context, id string) error {
	kept := f.notes[:0]
	for _, n := range f.notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	f.notes = kept
	return nil
}

func TestNoteServiceCreate_TrimsAndValidates(t *testing.T) {
	repo := &fakeNoteRepo{}
	svc := NewNoteService(zap.NewNop(), repo)

	note, err := svc.Create(context.Background(), "u1", "  Title  ", "  Content  ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if note.Title != "Title" || note.Content != "Content" {
		t.Fatalf("expected trimmed fields, got %+v", note)
	}
	if note.UserID != "u1" || note.ID == "" {
		t.Fatalf("unexpected note: %+v", note)
	}

	if _, err := svc.Create(context.Background(), "u1", "   ", "content"); !errors.Is(err, ErrEmptyFields) {
		t.Fatalf("expected ErrEmptyFields for blank title, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "u1", "title", ""); !errors.Is(err, ErrEmptyFields) {
		t.Fatalf("expected ErrEmptyFields for empty content, got %v", err)
	}
}

func TestNoteServiceList_NewestFirstAndScoped(t *testing.T) {
	repo := &fakeNoteRepo{}
	svc := NewNoteService(zap.NewNop(), repo)

	first, err := svc.Create(context.Background(), "u1", "first", "c1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.Create(context.Background(), "u1", "second", "c2")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), "u2", "other", "c3"); err != nil {
		t.Fatalf("create: %v", err)
	}

	notes, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes for u1, got %d", len(notes))
	}
	if notes[0].ID != second.ID || notes[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", notes)
	}
}

func TestNoteServiceDelete_OwnershipEnforced(t *testing.T) {
	repo := &fakeNoteRepo{}
	repo.notes = append(repo.notes, domain.Note{
		ID:        "n1",
		UserID:    "u1",
		Title:     "t",
		Content:   "c",
		CreatedAt: time.Now().UTC(),
	})
	svc := NewNoteService(zap.NewNop(), repo)

	if err := svc.Delete(context.Background(), "u2", "n1"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := svc.Delete(context.Background(), "u1", "missing"); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), "u1", "n1"); err != nil {
		t.Fatalf("delete by owner: %v", err)
	}
	if len(repo.notes) != 0 {
		t.Fatalf("expected note removed")
	}
}
