package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/spec-kit/rentcar-service/internal/domain"
	"github.com/spec-kit/rentcar-service/internal/repository"
)

// userDocument is the users collection schema. Documents written before
// lastSeen existed decode with a zero LastSeen and read as offline.
type userDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	Password  string        `bson:"password"`
	LastSeen  time.Time     `bson:"lastSeen,omitempty"`
	CreatedAt time.Time     `bson:"createdAt,omitempty"`
}

func (d userDocument) toDomain() domain.User {
	return domain.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		LastSeen:     d.LastSeen,
		CreatedAt:    d.CreatedAt,
	}
}

type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository returns a document-store credential store.
func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &userRepository{coll: db.Collection(usersCollection)}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	res, err := r.coll.InsertOne(ctx, userDocument{
		Name:      user.Name,
		Email:     user.Email,
		Password:  user.PasswordHash,
		LastSeen:  user.LastSeen,
		CreatedAt: user.CreatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	user.ID = objectIDHex(res.InsertedID)
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	user := doc.toDomain()
	return &user, nil
}

// TouchLastSeen uses $max so a late-arriving older timestamp cannot
// overwrite a newer one.
func (r *userRepository) TouchLastSeen(ctx context.Context, email string, ts time.Time) (*domain.User, error) {
	update := bson.D{{Key: "$max", Value: bson.D{{Key: "lastSeen", Value: ts}}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "email", Value: email}}, update, opts).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	user := doc.toDomain()
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (r *userRepository) ListSeenSince(ctx context.Context, since time.Time) ([]domain.User, error) {
	filter := bson.D{{Key: "lastSeen", Value: bson.D{{Key: "$gte", Value: since}}}}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "lastSeen", Value: -1}}))
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{})
}

func (r *userRepository) CountSeenSince(ctx context.Context, since time.Time) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{{Key: "lastSeen", Value: bson.D{{Key: "$gte", Value: since}}}})
}

func (r *userRepository) find(ctx context.Context, filter bson.D, opts *options.FindOptionsBuilder) ([]domain.User, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toDomain())
	}
	return users, nil
}
