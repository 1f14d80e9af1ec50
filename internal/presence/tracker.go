// Package presence derives online status from the lastSeen timestamp.
//
// A user is online while now - lastSeen <= window. Nothing expires users in
// the background: going offline is only ever observed at query time, and any
// activity-touching request (login, profile view) brings a user back online.
// This reflects recency of HTTP activity, not open connections.
package presence

import (
	"context"
	"time"

	"github.com/spec-kit/rentcar-service/internal/domain"
	"github.com/spec-kit/rentcar-service/internal/repository"
)

// DefaultWindow is used when a non-positive window is configured.
const DefaultWindow = 5 * time.Minute

// Tracker answers presence queries against the credential store.
type Tracker struct {
	users  repository.UserRepository
	window time.Duration
}

// NewTracker builds a tracker with the given presence window.
func NewTracker(users repository.UserRepository, window time.Duration) *Tracker {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Tracker{users: users, window: window}
}

// Window returns the configured presence window.
func (t *Tracker) Window() time.Duration {
	return t.window
}

// IsOnline reports whether user was active within the window ending at now.
// The boundary is inclusive. A user who was never seen is offline.
func (t *Tracker) IsOnline(user *domain.User, now time.Time) bool {
	if user == nil || user.LastSeen.IsZero() {
		return false
	}
	return now.Sub(user.LastSeen) <= t.window
}

// ListOnline returns every user online at now.
func (t *Tracker) ListOnline(ctx context.Context, now time.Time) ([]domain.User, error) {
	return t.users.ListSeenSince(ctx, t.cutoff(now))
}

// CountOnline returns the number of users online at now.
func (t *Tracker) CountOnline(ctx context.Context, now time.Time) (int64, error) {
	return t.users.CountSeenSince(ctx, t.cutoff(now))
}

// Touch records activity for email at now and returns the updated user.
func (t *Tracker) Touch(ctx context.Context, email string, now time.Time) (*domain.User, error) {
	return t.users.TouchLastSeen(ctx, email, now)
}

func (t *Tracker) cutoff(now time.Time) time.Time {
	return now.Add(-t.window)
}
