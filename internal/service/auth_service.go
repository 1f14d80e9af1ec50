package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/rentcar-service/internal/auth"
	"github.com/spec-kit/rentcar-service/internal/config"
	"github.com/spec-kit/rentcar-service/internal/domain"
	"github.com/spec-kit/rentcar-service/internal/events"
	"github.com/spec-kit/rentcar-service/internal/presence"
	"github.com/spec-kit/rentcar-service/internal/repository"
	apperrors "github.com/spec-kit/rentcar-service/pkg/util/errorutil"
)

// AuthService coordinates registration and login flows. Login is stateless:
// no session or token is issued, only lastSeen is recorded.
type AuthService struct {
	users      repository.UserRepository
	presence   *presence.Tracker
	throttle   auth.LoginThrottle
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        Clock
	bcryptCost int
	dummyHash  string
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Presence   *presence.Tracker
	Throttle   auth.LoginThrottle
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Clock      Clock
}

// NewAuthService builds the service. It hashes a throwaway password once so
// logins for unknown emails cost the same bcrypt work as real ones.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) (*AuthService, error) {
	dummy, err := auth.HashPassword("rentcar-timing-equalizer", cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	throttle := deps.Throttle
	if throttle == nil {
		throttle = auth.NoopThrottle{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		presence:   deps.Presence,
		throttle:   throttle,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        clockOrDefault(deps.Clock),
		bcryptCost: cfg.BcryptCost,
		dummyHash:  dummy,
	}, nil
}

// Register creates a new account with lastSeen set to now.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, apperrors.NewValidationError("name, email, password required", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewDuplicateEmail(repository.ErrDuplicateEmail)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperrors.NewValidationError("password too long", map[string]any{"max_bytes": 72})
		}
		return nil, apperrors.NewInternalError(err)
	}

	now := s.now()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		LastSeen:     now,
		CreatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewDuplicateEmail(err)
		}
		return nil, err
	}

	s.logger.Info("user registered", zap.String("email", user.Email))
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventUserRegistered, user.Email, now, events.UserRegisteredPayload{
		Name:  user.Name,
		Email: user.Email,
	}))
	return user.Public(), nil
}

// Login verifies credentials and records activity. Unknown email and wrong
// password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)

	if retry, err := s.throttle.Acquire(ctx, email); err != nil {
		if errors.Is(err, auth.ErrTooManyAttempts) {
			s.logger.Warn("login throttled", zap.String("email", email))
			return nil, apperrors.NewTooManyAttempts(int(retry.Seconds()))
		}
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		_ = auth.ComparePassword(s.dummyHash, password)
		return nil, s.failLogin(email, err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, s.failLogin(email, err)
	}

	_ = s.throttle.Reset(ctx, email)

	touched, err := s.presence.Touch(ctx, email, s.now())
	if err != nil {
		return nil, err
	}
	s.logger.Info("user logged in", zap.String("email", email))
	return touched.Public(), nil
}

func (s *AuthService) failLogin(email string, cause error) error {
	s.logger.Info("login failed", zap.String("email", email))
	return apperrors.NewInvalidCredentials(cause)
}
