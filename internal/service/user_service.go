package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/rentcar-service/internal/domain"
	"github.com/spec-kit/rentcar-service/internal/presence"
	"github.com/spec-kit/rentcar-service/internal/repository"
	apperrors "github.com/spec-kit/rentcar-service/pkg/util/errorutil"
)

// UserService serves profile and directory reads.
type UserService struct {
	users    repository.UserRepository
	presence *presence.Tracker
	now      Clock
}

// NewUserService constructs UserService.
func NewUserService(users repository.UserRepository, tracker *presence.Tracker, clock Clock) *UserService {
	return &UserService{users: users, presence: tracker, now: clockOrDefault(clock)}
}

// Profile returns the user for email. Viewing a profile counts as activity
// for that user, so lastSeen moves to now.
func (s *UserService) Profile(ctx context.Context, email string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.NewValidationError("email required", nil)
	}
	user, err := s.presence.Touch(ctx, email, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user.Public(), nil
}

// ListAll returns every registered user without password hashes.
func (s *UserService) ListAll(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return stripHashes(users), nil
}

// ListOnline returns the users currently inside the presence window.
func (s *UserService) ListOnline(ctx context.Context) ([]domain.User, error) {
	users, err := s.presence.ListOnline(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return stripHashes(users), nil
}

// IsOnline reports presence for user at the service clock's now.
func (s *UserService) IsOnline(user *domain.User) bool {
	return s.presence.IsOnline(user, s.now())
}

func stripHashes(users []domain.User) []domain.User {
	out := make([]domain.User, len(users))
	for i := range users {
		out[i] = *users[i].Public()
	}
	return out
}
