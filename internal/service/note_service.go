package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notely/internal/domain"
	"notely/internal/repository"
)

// NoteService coordina reglas de negocio para notas.
type NoteService struct {
	logger *zap.Logger
	notes  repository.NoteRepository
}

func NewNoteService(logger *zap.Logger, notes repository.NoteRepository) *NoteService {
	return &NoteService{
		logger: logger,
		notes:  notes,
	}
}

var (
	ErrEmptyFields  = errors.New("title and content required")
	ErrNoteNotFound = errors.New("note not found")
	ErrNotOwner     = errors.New("note not owned by caller")
)

func (s *NoteService) Create(ctx context.Context, userID, title, content string) (domain.Note, error) {
	if s.notes == nil {
		return domain.Note{}, errors.New("note service not configured")
	}

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return domain.Note{}, ErrEmptyFields
	}

	note := domain.Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return domain.Note{}, err
	}
	return note, nil
}

// List devuelve las notas del usuario, mas recientes primero.
func (s *NoteService) List(ctx context.Context, userID string) ([]domain.Note, error) {
	if s.notes == nil {
		return nil, errors.New("note service not configured")
	}
	return s.notes.ListByUser(ctx, userID)
}

// Delete borra una nota solo si existe y pertenece al usuario.
func (s *NoteService) Delete(ctx context.Context, userID, noteID string) error {
	if s.notes == nil {
		return errors.New("note service not configured")
	}

	note, err := s.notes.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNoteNotFound
		}
		return err
	}
	if note.UserID != userID {
		return ErrNotOwner
	}
	return s.notes.Delete(ctx, noteID)
}
