package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/spec-kit/rentcar-service/internal/domain"
	"github.com/spec-kit/rentcar-service/internal/repository"
)

// Integration tests run only when TEST_MONGO_URI is set. Each test gets its
// own throwaway database.

func mustTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("integration test skipped: TEST_MONGO_URI is not set")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)

	db := client.Database("rentcar_it_" + uuid.NewString()[:8])
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, EnsureIndexes(ctx, db))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

func TestUserRepository_Mongo(t *testing.T) {
	db := mustTestDB(t)
	repos := New(db)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	user := &domain.User{Name: "Ali", Email: "ali@x.com", PasswordHash: "$2a$hash", LastSeen: base}
	require.NoError(t, repos.Users.Create(ctx, user))
	assert.Len(t, user.ID, 24)

	err := repos.Users.Create(ctx, &domain.User{Name: "Other", Email: "ali@x.com", PasswordHash: "h", LastSeen: base})
	require.ErrorIs(t, err, repository.ErrDuplicateEmail)

	n, err := repos.Users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	touched, err := repos.Users.TouchLastSeen(ctx, "ali@x.com", base.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, touched.LastSeen.Equal(base.Add(time.Minute)))

	touched, err = repos.Users.TouchLastSeen(ctx, "ali@x.com", base)
	require.NoError(t, err)
	assert.True(t, touched.LastSeen.Equal(base.Add(time.Minute)))

	_, err = repos.Users.TouchLastSeen(ctx, "missing@x.com", base)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	online, err := repos.Users.ListSeenSince(ctx, base)
	require.NoError(t, err)
	require.Len(t, online, 1)
	assert.Equal(t, "$2a$hash", online[0].PasswordHash)
}

func TestUserRepository_MongoLegacyDocument(t *testing.T) {
	db := mustTestDB(t)
	repos := New(db)
	ctx := context.Background()

	_, err := db.Collection(usersCollection).InsertOne(ctx, bson.D{
		{Key: "name", Value: "Old"},
		{Key: "email", Value: "old@x.com"},
		{Key: "password", Value: "plain"},
		{Key: "__v", Value: 0},
	})
	require.NoError(t, err)

	got, err := repos.Users.GetByEmail(ctx, "old@x.com")
	require.NoError(t, err)
	assert.True(t, got.LastSeen.IsZero())
}

func TestOrderRepository_Mongo(t *testing.T) {
	db := mustTestDB(t)
	repos := New(db)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	for i, car := range []string{"Malibu", "Cobalt", "Malibu"} {
		require.NoError(t, repos.Orders.Create(ctx, &domain.Order{
			UserName: "Ali", CarName: car, PaymentMethod: "card", Date: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repos.Orders.Create(ctx, &domain.Order{UserName: "Vali", CarName: "Spark", PaymentMethod: "cash", Date: base}))

	got, err := repos.Orders.ListByUserName(ctx, "Ali")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].Date.After(got[1].Date))
	assert.True(t, got[1].Date.After(got[2].Date))

	cars, err := repos.Orders.CountDistinctCars(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, cars)
}

func TestMessageRepository_Mongo(t *testing.T) {
	db := mustTestDB(t)
	repos := New(db)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, repos.Messages.Create(ctx, &domain.Message{Name: "Ali", Email: "a@x.com", Message: "hi", Date: base}))
	require.NoError(t, repos.Messages.Create(ctx, &domain.Message{Name: "Vali", Email: "v@x.com", Message: "yo", Date: base.Add(time.Second)}))

	got, err := repos.Messages.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "yo", got[0].Message)
}
