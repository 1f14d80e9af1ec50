package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/rentcar-service/internal/domain"
	"github.com/spec-kit/rentcar-service/internal/events"
	"github.com/spec-kit/rentcar-service/internal/repository"
	apperrors "github.com/spec-kit/rentcar-service/pkg/util/errorutil"
)

const previewLength = 80

// ContactService accepts contact-form messages.
type ContactService struct {
	messages   repository.MessageRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        Clock
}

// NewContactService constructs ContactService.
func NewContactService(messages repository.MessageRepository, dispatcher events.Dispatcher, logger *zap.Logger, clock Clock) *ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{messages: messages, dispatcher: dispatcher, logger: logger, now: clockOrDefault(clock)}
}

// Submit stores a message dated now.
func (s *ContactService) Submit(ctx context.Context, name, email, body string) (*domain.Message, error) {
	msg := &domain.Message{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Message: body,
		Date:    s.now(),
	}
	if msg.Name == "" || msg.Email == "" || strings.TrimSpace(msg.Message) == "" {
		return nil, apperrors.NewValidationError("name, email, message required", nil)
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventMessageReceived, msg.Email, msg.Date, events.MessageReceivedPayload{
		MessageID:   msg.ID,
		Name:        msg.Name,
		Email:       msg.Email,
		BodyPreview: preview(msg.Message),
	}))
	return msg, nil
}

// ListAll returns every message, newest first.
func (s *ContactService) ListAll(ctx context.Context) ([]domain.Message, error) {
	return s.messages.List(ctx)
}

func preview(body string) string {
	runes := []rune(strings.TrimSpace(body))
	if len(runes) <= previewLength {
		return string(runes)
	}
	return string(runes[:previewLength]) + "..."
}
