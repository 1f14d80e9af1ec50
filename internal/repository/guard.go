package repository

import (
	"context"

	"github.com/spec-kit/rentcar-service/internal/domain"
)

// EnsureFunc makes sure store setup (schema, unique indexes) is in place.
type EnsureFunc func(ctx context.Context) error

// WithEnsure wraps repos so every write first calls ensure. A user insert
// therefore never runs before the unique email index exists.
func WithEnsure(repos Repositories, ensure EnsureFunc) Repositories {
	if ensure == nil {
		return repos
	}
	return Repositories{
		Users:    ensuredUsers{UserRepository: repos.Users, ensure: ensure},
		Orders:   ensuredOrders{OrderRepository: repos.Orders, ensure: ensure},
		Messages: ensuredMessages{MessageRepository: repos.Messages, ensure: ensure},
	}
}

type ensuredUsers struct {
	UserRepository
	ensure EnsureFunc
}

func (r ensuredUsers) Create(ctx context.Context, user *domain.User) error {
	if err := r.ensure(ctx); err != nil {
		return err
	}
	return r.UserRepository.Create(ctx, user)
}

type ensuredOrders struct {
	OrderRepository
	ensure EnsureFunc
}

func (r ensuredOrders) Create(ctx context.Context, order *domain.Order) error {
	if err := r.ensure(ctx); err != nil {
		return err
	}
	return r.OrderRepository.Create(ctx, order)
}

type ensuredMessages struct {
	MessageRepository
	ensure EnsureFunc
}

func (r ensuredMessages) Create(ctx context.Context, msg *domain.Message) error {
	if err := r.ensure(ctx); err != nil {
		return err
	}
	return r.MessageRepository.Create(ctx, msg)
}
