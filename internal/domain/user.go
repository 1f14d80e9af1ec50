package domain

import (
	"strings"
	"time"

	apperrors "github.com/spec-kit/rentcar-service/pkg/util/errorutil"
)

// User is the identity record for a registered customer.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	LastSeen     time.Time
	CreatedAt    time.Time
}

// Validate checks the fields a store requires before persisting a user.
func (u *User) Validate() error {
	missing := missingFields(map[string]string{
		"name":     u.Name,
		"email":    u.Email,
		"password": u.PasswordHash,
	})
	if len(missing) > 0 {
		return apperrors.NewValidationError("user record incomplete", map[string]any{"missing": missing})
	}
	return nil
}

// Public strips the password hash.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.PasswordHash = ""
	return &cp
}

func missingFields(fields map[string]string) []string {
	var missing []string
	for _, key := range []string{"name", "email", "password", "userName", "carName", "paymentMethod", "message"} {
		val, ok := fields[key]
		if ok && strings.TrimSpace(val) == "" {
			missing = append(missing, key)
		}
	}
	return missing
}
