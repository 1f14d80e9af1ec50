package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/spec-kit/rentcar-service/internal/domain"
	"github.com/spec-kit/rentcar-service/internal/repository"
)

type orderRepository struct {
	db DBTX
}

// NewOrderRepository returns a Postgres-backed order log.
func NewOrderRepository(db DBTX) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}
	const query = `
        INSERT INTO orders (id, user_name, car_name, payment_method, date)
        VALUES ($1,$2,$3,$4,$5)`

	id := uuid.NewString()
	if _, err := r.db.Exec(ctx, query,
		id,
		order.UserName,
		order.CarName,
		order.PaymentMethod,
		order.Date,
	); err != nil {
		return err
	}
	order.ID = id
	return nil
}

func (r *orderRepository) ListByUserName(ctx context.Context, userName string) ([]domain.Order, error) {
	const query = `
        SELECT id::text, user_name, car_name, payment_method, date
        FROM orders WHERE user_name=$1 ORDER BY date DESC`
	return r.list(ctx, query, userName)
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	const query = `
        SELECT id::text, user_name, car_name, payment_method, date
        FROM orders ORDER BY date DESC`
	return r.list(ctx, query)
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, `SELECT COUNT(*) FROM orders`)
}

func (r *orderRepository) CountDistinctCars(ctx context.Context) (int64, error) {
	return count(ctx, r.db, `SELECT COUNT(DISTINCT car_name) FROM orders`)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserName, &o.CarName, &o.PaymentMethod, &o.Date); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}
