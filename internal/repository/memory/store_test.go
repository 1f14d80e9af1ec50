package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/rentcar-service/internal/domain"
	"github.com/spec-kit/rentcar-service/internal/repository"
)

func newUser(email string, lastSeen time.Time) *domain.User {
	return &domain.User{Name: "Ali", Email: email, PasswordHash: "$2a$hash", LastSeen: lastSeen}
}

func TestUserRepository_DuplicateEmailLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	now := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, newUser("ali@x.com", now)))

	dup := newUser("ali@x.com", now.Add(time.Hour))
	dup.Name = "Impostor"
	err := repo.Create(ctx, dup)
	require.ErrorIs(t, err, repository.ErrDuplicateEmail)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	got, err := repo.GetByEmail(ctx, "ali@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ali", got.Name)
	assert.True(t, got.LastSeen.Equal(now))
}

func TestUserRepository_EmailIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	require.NoError(t, repo.Create(ctx, newUser("ali@x.com", time.Now())))
	require.NoError(t, repo.Create(ctx, newUser("Ali@x.com", time.Now())))

	_, err := repo.GetByEmail(ctx, "ALI@X.COM")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_CreateValidates(t *testing.T) {
	err := NewUserRepository().Create(context.Background(), &domain.User{Email: "a@b.c"})
	require.Error(t, err)
}

func TestUserRepository_TouchNeverMovesBackwards(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newUser("ali@x.com", base)))

	got, err := repo.TouchLastSeen(ctx, "ali@x.com", base.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, got.LastSeen.Equal(base.Add(time.Minute)))

	got, err = repo.TouchLastSeen(ctx, "ali@x.com", base)
	require.NoError(t, err)
	assert.True(t, got.LastSeen.Equal(base.Add(time.Minute)))

	_, err = repo.TouchLastSeen(ctx, "nobody@x.com", base)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_ConcurrentTouchesKeepNewest(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newUser("ali@x.com", base)))

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = repo.TouchLastSeen(ctx, "ali@x.com", base.Add(time.Duration(i)*time.Second))
		}(i)
	}
	wg.Wait()

	got, err := repo.GetByEmail(ctx, "ali@x.com")
	require.NoError(t, err)
	assert.True(t, got.LastSeen.Equal(base.Add(50*time.Second)))
}

func TestUserRepository_SeenSince(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newUser("fresh@x.com", now)))
	require.NoError(t, repo.Create(ctx, newUser("edge@x.com", now.Add(-5*time.Minute))))
	require.NoError(t, repo.Create(ctx, newUser("stale@x.com", now.Add(-6*time.Minute))))

	users, err := repo.ListSeenSince(ctx, now.Add(-5*time.Minute))
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "fresh@x.com", users[0].Email)
	assert.Equal(t, "edge@x.com", users[1].Email)

	n, err := repo.CountSeenSince(ctx, now.Add(-5*time.Minute))
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestOrderRepository_ListByUserNameNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	orders := []domain.Order{
		{UserName: "Ali", CarName: "Malibu", PaymentMethod: "card", Date: base},
		{UserName: "Vali", CarName: "Cobalt", PaymentMethod: "cash", Date: base.Add(time.Hour)},
		{UserName: "Ali", CarName: "Tracker", PaymentMethod: "cash", Date: base.Add(2 * time.Hour)},
		{UserName: "ali", CarName: "Spark", PaymentMethod: "card", Date: base.Add(3 * time.Hour)},
	}
	for i := range orders {
		require.NoError(t, repo.Create(ctx, &orders[i]))
		assert.NotEmpty(t, orders[i].ID)
	}

	got, err := repo.ListByUserName(ctx, "Ali")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Tracker", got[0].CarName)
	assert.Equal(t, "Malibu", got[1].CarName)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Spark", all[0].CarName)

	cars, err := repo.CountDistinctCars(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, cars)
}

func TestMessageRepository_CreateAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepository()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &domain.Message{Name: "Ali", Email: "a@x.com", Message: "first", Date: base}))
	require.NoError(t, repo.Create(ctx, &domain.Message{Name: "Vali", Email: "v@x.com", Message: "second", Date: base.Add(time.Minute)}))
	require.Error(t, repo.Create(ctx, &domain.Message{Name: "x", Email: "x@x.com", Date: base}))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Message)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}
