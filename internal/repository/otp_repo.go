package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"notely/internal/domain"
)

// OtpRepository define el contrato de persistencia para challenges OTP.
// El borrado por expiracion en storage es solo limpieza de espacio; la
// ventana de validez la aplica el servicio al verificar.
type OtpRepository interface {
	Create(ctx context.Context, challenge domain.OtpChallenge) error
	GetLatestByEmail(ctx context.Context, email string) (domain.OtpChallenge, error)
	DeleteByEmail(ctx context.Context, email string) error
}

// PgOtpRepository implementa OtpRepository usando pgxpool.
type PgOtpRepository struct {
	pool *pgxpool.Pool
}

func NewPgOtpRepository(pool *pgxpool.Pool) *PgOtpRepository {
	return &PgOtpRepository{pool: pool}
}

func (r *PgOtpRepository) Create(ctx context.Context, challenge domain.OtpChallenge) error {
	const query = `
		INSERT INTO otp_challenges (id, email, code_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query,
		challenge.ID,
		challenge.Email,
		challenge.CodeHash,
		challenge.CreatedAt,
	)
	return err
}

func (r *PgOtpRepository) GetLatestByEmail(ctx context.Context, email string) (domain.OtpChallenge, error) {
	const query = `
		SELECT id, email, code_hash, created_at
		FROM otp_challenges
		WHERE email = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	var c domain.OtpChallenge
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&c.ID,
		&c.Email,
		&c.CodeHash,
		&c.CreatedAt,
	)
	if err != nil {
		return domain.OtpChallenge{}, err
	}
	return c, nil
}

func (r *PgOtpRepository) DeleteByEmail(ctx context.Context, email string) error {
	const query = `
		DELETE FROM otp_challenges
		WHERE email = $1
	`
	_, err := r.pool.Exec(ctx, query, email)
	return err
}
