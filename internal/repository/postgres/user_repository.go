package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/rentcar-service/internal/domain"
	"github.com/spec-kit/rentcar-service/internal/repository"
)

const userColumns = `id::text, name, email, password_hash, last_seen, created_at`

type userRepository struct {
	db DBTX
}

// NewUserRepository returns a Postgres-backed credential store.
func NewUserRepository(db DBTX) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	const query = `
        INSERT INTO users (id, name, email, password_hash, last_seen)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at`

	id := uuid.NewString()
	err := r.db.QueryRow(ctx, query,
		id,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.LastSeen,
	).Scan(&user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	user.ID = id
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *userRepository) TouchLastSeen(ctx context.Context, email string, ts time.Time) (*domain.User, error) {
	const query = `
        UPDATE users SET last_seen = GREATEST(last_seen, $2)
        WHERE email=$1
        RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query, email, ts))
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC`
	return r.list(ctx, query)
}

func (r *userRepository) ListSeenSince(ctx context.Context, since time.Time) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE last_seen >= $1 ORDER BY last_seen DESC`
	return r.list(ctx, query, since)
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, `SELECT COUNT(*) FROM users`)
}

func (r *userRepository) CountSeenSince(ctx context.Context, since time.Time) (int64, error) {
	return count(ctx, r.db, `SELECT COUNT(*) FROM users WHERE last_seen >= $1`, since)
}

func (r *userRepository) list(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *user)
	}
	return result, rows.Err()
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.LastSeen,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
