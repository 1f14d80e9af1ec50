package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/rentcar-service/internal/config"
	"github.com/spec-kit/rentcar-service/internal/events"
)

// NotificationService turns domain events into outbound notifications.
// Delivery is stubbed: e-mail and webhook sends are only logged.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	emailFrom  string
	webhookURL string
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		emailFrom:  strings.TrimSpace(cfg.EmailFrom),
		webhookURL: strings.TrimSpace(cfg.WebhookURL),
	}
}

// RegisterHandlers subscribes to every rental event.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.onUserRegistered)
	n.dispatcher.Subscribe(events.EventOrderCreated, n.onOrderCreated)
	n.dispatcher.Subscribe(events.EventMessageReceived, n.onMessageReceived)
}

func (n *NotificationService) onUserRegistered(_ context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.String("email", event.Subject), zap.String("event_id", event.ID))
	return nil
}

// Staff hear about every order by e-mail and webhook.
func (n *NotificationService) onOrderCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("OrderCreated", zap.String("user_name", event.Subject), zap.Any("payload", event.Payload))
	n.sendEmail(ctx, event)
	n.postWebhook(ctx, event)
	return nil
}

func (n *NotificationService) onMessageReceived(ctx context.Context, event events.Event) error {
	n.logger.Info("MessageReceived", zap.String("from", event.Subject), zap.Any("payload", event.Payload))
	n.sendEmail(ctx, event)
	return nil
}

func (n *NotificationService) sendEmail(_ context.Context, event events.Event) {
	if n.emailFrom == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.emailFrom),
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID))
}

func (n *NotificationService) postWebhook(_ context.Context, event events.Event) {
	if n.webhookURL == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.webhookURL),
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID))
}
