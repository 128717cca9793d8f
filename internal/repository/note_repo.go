package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"notely/internal/domain"
)

// NoteRepository define el contrato de persistencia para notas.
type NoteRepository interface {
	Create(ctx context.Context, note domain.Note) error
	GetByID(ctx context.Context, id string) (domain.Note, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Note, error)
	Delete(ctx context.Context, id string) error
}

// PgNoteRepository implementa NoteRepository usando pgxpool.
type PgNoteRepository struct {
	pool *pgxpool.Pool
}

func NewPgNoteRepository(pool *pgxpool.Pool) *PgNoteRepository {
	return &PgNoteRepository{pool: pool}
}

func (r *PgNoteRepository) Create(ctx context.Context, note domain.Note) error {
	const query = `
		INSERT INTO notes (id, user_id, title, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		note.ID,
		note.UserID,
		note.Title,
		note.Content,
		note.CreatedAt,
	)
	return err
}

func (r *PgNoteRepository) GetByID(ctx context.Context, id string) (domain.Note, error) {
	const query = `
		SELECT id, user_id, title, content, created_at
		FROM notes
		WHERE id = $1
	`
	var n domain.Note
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&n.ID,
		&n.UserID,
		&n.Title,
		&n.Content,
		&n.CreatedAt,
	)
	if err != nil {
		return domain.Note{}, err
	}
	return n, nil
}

func (r *PgNoteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Note, error) {
	const query = `
		SELECT id, user_id, title, content, created_at
		FROM notes
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]domain.Note, 0)
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *PgNoteRepository) Delete(ctx context.Context, id string) error {
	const query = `
		DELETE FROM notes
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
