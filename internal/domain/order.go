package domain

import (
	"time"

	apperrors "github.com/spec-kit/rentcar-service/pkg/util/errorutil"
)

// Order is a write-once rental request. UserName and CarName are free text
// and are not checked against any user or car record.
type Order struct {
	ID            string
	UserName      string
	CarName       string
	PaymentMethod string
	Date          time.Time
}

// Validate checks the fields a store requires before persisting an order.
func (o *Order) Validate() error {
	missing := missingFields(map[string]string{
		"userName":      o.UserName,
		"carName":       o.CarName,
		"paymentMethod": o.PaymentMethod,
	})
	if len(missing) > 0 {
		return apperrors.NewValidationError("order record incomplete", map[string]any{"missing": missing})
	}
	if o.Date.IsZero() {
		return apperrors.NewValidationError("order date not set", nil)
	}
	return nil
}
