package domain

import (
	"time"

	apperrors "github.com/spec-kit/rentcar-service/pkg/util/errorutil"
)

// Message is a contact-form submission.
type Message struct {
	ID      string
	Name    string
	Email   string
	Message string
	Date    time.Time
}

// Validate checks the fields a store requires before persisting a message.
func (m *Message) Validate() error {
	missing := missingFields(map[string]string{
		"name":    m.Name,
		"email":   m.Email,
		"message": m.Message,
	})
	if len(missing) > 0 {
		return apperrors.NewValidationError("message record incomplete", map[string]any{"missing": missing})
	}
	if m.Date.IsZero() {
		return apperrors.NewValidationError("message date not set", nil)
	}
	return nil
}
