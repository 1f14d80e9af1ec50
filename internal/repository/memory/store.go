// Package memory keeps every record in process memory. It backs the test
// suites and STORE_DRIVER=memory for running without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/rentcar-service/internal/domain"
	"github.com/spec-kit/rentcar-service/internal/repository"
)

// New returns a fresh set of in-memory repositories.
func New() repository.Repositories {
	return repository.Repositories{
		Users:    NewUserRepository(),
		Orders:   NewOrderRepository(),
		Messages: NewMessageRepository(),
	}
}

type userRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.User
	order   []string
}

// NewUserRepository returns an empty credential store.
func NewUserRepository() repository.UserRepository {
	return &userRepository{byEmail: make(map[string]*domain.User)}
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	user.ID = uuid.NewString()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	cp := *user
	r.byEmail[user.Email] = &cp
	r.order = append(r.order, user.Email)
	return nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userRepository) TouchLastSeen(_ context.Context, email string, ts time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if ts.After(u.LastSeen) {
		u.LastSeen = ts
	}
	cp := *u
	return &cp, nil
}

func (r *userRepository) List(_ context.Context) ([]domain.User, error) {
	return r.filter(func(domain.User) bool { return true }), nil
}

func (r *userRepository) ListSeenSince(_ context.Context, since time.Time) ([]domain.User, error) {
	return r.filter(func(u domain.User) bool { return !u.LastSeen.Before(since) }), nil
}

func (r *userRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.order)), nil
}

func (r *userRepository) CountSeenSince(ctx context.Context, since time.Time) (int64, error) {
	users, _ := r.ListSeenSince(ctx, since)
	return int64(len(users)), nil
}

func (r *userRepository) filter(keep func(domain.User) bool) []domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, 0, len(r.order))
	for _, email := range r.order {
		if u := r.byEmail[email]; keep(*u) {
			out = append(out, *u)
		}
	}
	return out
}

type orderRepository struct {
	mu     sync.RWMutex
	orders []domain.Order
}

// NewOrderRepository returns an empty order log.
func NewOrderRepository() repository.OrderRepository {
	return &orderRepository{}
}

func (r *orderRepository) Create(_ context.Context, order *domain.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = uuid.NewString()
	r.orders = append(r.orders, *order)
	return nil
}

func (r *orderRepository) ListByUserName(_ context.Context, userName string) ([]domain.Order, error) {
	return r.newestFirst(func(o domain.Order) bool { return o.UserName == userName }), nil
}

func (r *orderRepository) List(_ context.Context) ([]domain.Order, error) {
	return r.newestFirst(func(domain.Order) bool { return true }), nil
}

func (r *orderRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.orders)), nil
}

func (r *orderRepository) CountDistinctCars(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cars := make(map[string]struct{})
	for _, o := range r.orders {
		cars[o.CarName] = struct{}{}
	}
	return int64(len(cars)), nil
}

func (r *orderRepository) newestFirst(keep func(domain.Order) bool) []domain.Order {
	r.mu.RLock()
	out := make([]domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

type messageRepository struct {
	mu       sync.RWMutex
	messages []domain.Message
}

// NewMessageRepository returns an empty message log.
func NewMessageRepository() repository.MessageRepository {
	return &messageRepository{}
}

func (r *messageRepository) Create(_ context.Context, msg *domain.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	msg.ID = uuid.NewString()
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *messageRepository) List(_ context.Context) ([]domain.Message, error) {
	r.mu.RLock()
	out := append([]domain.Message(nil), r.messages...)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *messageRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.messages)), nil
}
