package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/spec-kit/rentcar-service/internal/domain"
	"github.com/spec-kit/rentcar-service/internal/repository"
)

type messageDocument struct {
	ID      bson.ObjectID `bson:"_id,omitempty"`
	Name    string        `bson:"name"`
	Email   string        `bson:"email"`
	Message string        `bson:"message"`
	Date    time.Time     `bson:"date"`
}

type messageRepository struct {
	coll *mongo.Collection
}

// NewMessageRepository returns a document-store contact message log.
func NewMessageRepository(db *mongo.Database) repository.MessageRepository {
	return &messageRepository{coll: db.Collection(messagesCollection)}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	res, err := r.coll.InsertOne(ctx, messageDocument{
		Name:    msg.Name,
		Email:   msg.Email,
		Message: msg.Message,
		Date:    msg.Date,
	})
	if err != nil {
		return err
	}
	msg.ID = objectIDHex(res.InsertedID)
	return nil
}

func (r *messageRepository) List(ctx context.Context) ([]domain.Message, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, newestFirst())
	if err != nil {
		return nil, err
	}
	var docs []messageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	msgs := make([]domain.Message, 0, len(docs))
	for _, d := range docs {
		msgs = append(msgs, domain.Message{
			ID:      d.ID.Hex(),
			Name:    d.Name,
			Email:   d.Email,
			Message: d.Message,
			Date:    d.Date,
		})
	}
	return msgs, nil
}

func (r *messageRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{})
}
