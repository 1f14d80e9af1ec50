package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventOrderCreated    EventType = "order_created"
	EventMessageReceived EventType = "message_received"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New stamps an event with a fresh id.
func New(eventType EventType, subject string, at time.Time, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Timestamp: at,
		Payload:   payload,
	}
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderCreatedPayload payload.
type OrderCreatedPayload struct {
	OrderID       string `json:"order_id"`
	UserName      string `json:"user_name"`
	CarName       string `json:"car_name"`
	PaymentMethod string `json:"payment_method"`
}

// MessageReceivedPayload payload.
type MessageReceivedPayload struct {
	MessageID   string `json:"message_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	BodyPreview string `json:"body_preview"`
}
