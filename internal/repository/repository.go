package repository

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/rentcar-service/internal/domain"
)

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned by CreateUser when the email is taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository is the credential store.
type UserRepository interface {
	// Create persists user and fills in its ID. A taken email yields
	// ErrDuplicateEmail and leaves the store unchanged.
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// TouchLastSeen atomically moves lastSeen forward to ts (never backwards)
	// and returns the updated record.
	TouchLastSeen(ctx context.Context, email string, ts time.Time) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	ListSeenSince(ctx context.Context, since time.Time) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
	CountSeenSince(ctx context.Context, since time.Time) (int64, error)
}

// OrderRepository is the append-only order log.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	// ListByUserName returns orders for an exact userName, newest first.
	ListByUserName(ctx context.Context, userName string) ([]domain.Order, error)
	// List returns every order, newest first.
	List(ctx context.Context) ([]domain.Order, error)
	Count(ctx context.Context) (int64, error)
	CountDistinctCars(ctx context.Context) (int64, error)
}

// MessageRepository is the append-only contact message log.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	// List returns every message, newest first.
	List(ctx context.Context) ([]domain.Message, error)
	Count(ctx context.Context) (int64, error)
}

// Repositories groups the stores a backend provides.
type Repositories struct {
	Users    UserRepository
	Orders   OrderRepository
	Messages MessageRepository
}
