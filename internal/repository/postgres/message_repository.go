package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/spec-kit/rentcar-service/internal/domain"
	"github.com/spec-kit/rentcar-service/internal/repository"
)

type messageRepository struct {
	db DBTX
}

// NewMessageRepository returns a Postgres-backed contact message log.
func NewMessageRepository(db DBTX) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	const query = `
        INSERT INTO messages (id, name, email, message, date)
        VALUES ($1,$2,$3,$4,$5)`

	id := uuid.NewString()
	if _, err := r.db.Exec(ctx, query, id, msg.Name, msg.Email, msg.Message, msg.Date); err != nil {
		return err
	}
	msg.ID = id
	return nil
}

func (r *messageRepository) List(ctx context.Context) ([]domain.Message, error) {
	const query = `
        SELECT id::text, name, email, message, date
        FROM messages ORDER BY date DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Date); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (r *messageRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, `SELECT COUNT(*) FROM messages`)
}
