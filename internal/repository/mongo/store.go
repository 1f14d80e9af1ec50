// Package mongo stores users, orders and messages as documents. Field names
// follow the existing users, orders and messages collections, so stored
// documents decode without a migration. Legacy user documents whose password
// field holds plaintext instead of a bcrypt hash decode but can never log in;
// those accounts need a one-time rehash or password reset.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/spec-kit/rentcar-service/internal/repository"
)

const (
	usersCollection    = "users"
	ordersCollection   = "orders"
	messagesCollection = "messages"
)

// New returns document-store repositories bound to db.
func New(db *mongo.Database) repository.Repositories {
	return repository.Repositories{
		Users:    NewUserRepository(db),
		Orders:   NewOrderRepository(db),
		Messages: NewMessageRepository(db),
	}
}

// EnsureIndexes creates the unique email index and the lookup indexes.
// It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "lastSeen", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if _, err := db.Collection(ordersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userName", Value: 1}, {Key: "date", Value: -1}},
	}); err != nil {
		return fmt.Errorf("orders indexes: %w", err)
	}
	return nil
}

func objectIDHex(id any) string {
	if oid, ok := id.(bson.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	return err
}

func newestFirst() *options.FindOptionsBuilder {
	return options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
}
