package presence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/rentcar-service/internal/domain"
	"github.com/spec-kit/rentcar-service/internal/repository"
	"github.com/spec-kit/rentcar-service/internal/repository/memory"
)

var t0 = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func seed(t *testing.T, users repository.UserRepository, email string, lastSeen time.Time) {
	t.Helper()
	require.NoError(t, users.Create(context.Background(), &domain.User{
		Name: "n", Email: email, PasswordHash: "h", LastSeen: lastSeen,
	}))
}

func TestIsOnline_Window(t *testing.T) {
	tr := NewTracker(memory.NewUserRepository(), 5*time.Minute)
	u := &domain.User{LastSeen: t0}

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"same instant", t0, true},
		{"inside window", t0.Add(4 * time.Minute), true},
		{"exactly at window", t0.Add(5 * time.Minute), true},
		{"just past window", t0.Add(5*time.Minute + time.Nanosecond), false},
		{"long gone", t0.Add(time.Hour), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tr.IsOnline(u, tc.now))
		})
	}
}

func TestIsOnline_NeverSeen(t *testing.T) {
	tr := NewTracker(memory.NewUserRepository(), time.Minute)
	assert.False(t, tr.IsOnline(&domain.User{}, t0))
	assert.False(t, tr.IsOnline(nil, t0))
}

func TestNewTracker_DefaultWindow(t *testing.T) {
	assert.Equal(t, DefaultWindow, NewTracker(memory.NewUserRepository(), 0).Window())
}

func TestListOnline_MatchesPredicate(t *testing.T) {
	users := memory.NewUserRepository()
	tr := NewTracker(users, 5*time.Minute)
	now := t0.Add(10 * time.Minute)

	seed(t, users, "a@x.com", now.Add(-time.Minute))
	seed(t, users, "b@x.com", now.Add(-5*time.Minute))
	seed(t, users, "c@x.com", now.Add(-6*time.Minute))
	seed(t, users, "d@x.com", time.Time{})

	online, err := tr.ListOnline(context.Background(), now)
	require.NoError(t, err)

	var emails []string
	for i := range online {
		assert.True(t, tr.IsOnline(&online[i], now))
		emails = append(emails, online[i].Email)
	}
	assert.ElementsMatch(t, []string{"a@x.com", "b@x.com"}, emails)

	n, err := tr.CountOnline(context.Background(), now)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestTouch_BringsUserOnline(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	tr := NewTracker(users, 5*time.Minute)
	seed(t, users, "a@x.com", t0)

	later := t0.Add(30 * time.Minute)
	before, err := users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, tr.IsOnline(before, later))

	after, err := tr.Touch(ctx, "a@x.com", later)
	require.NoError(t, err)
	assert.True(t, tr.IsOnline(after, later))
	assert.False(t, tr.IsOnline(after, later.Add(6*time.Minute)))

	_, err = tr.Touch(ctx, "missing@x.com", later)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
