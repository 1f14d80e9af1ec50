package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/spec-kit/rentcar-service/internal/domain"
	"github.com/spec-kit/rentcar-service/internal/repository"
)

type orderDocument struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	UserName      string        `bson:"userName"`
	CarName       string        `bson:"carName"`
	PaymentMethod string        `bson:"paymentMethod"`
	Date          time.Time     `bson:"date"`
}

type orderRepository struct {
	coll *mongo.Collection
}

// NewOrderRepository returns a document-store order log.
func NewOrderRepository(db *mongo.Database) repository.OrderRepository {
	return &orderRepository{coll: db.Collection(ordersCollection)}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}
	res, err := r.coll.InsertOne(ctx, orderDocument{
		UserName:      order.UserName,
		CarName:       order.CarName,
		PaymentMethod: order.PaymentMethod,
		Date:          order.Date,
	})
	if err != nil {
		return err
	}
	order.ID = objectIDHex(res.InsertedID)
	return nil
}

func (r *orderRepository) ListByUserName(ctx context.Context, userName string) ([]domain.Order, error) {
	return r.find(ctx, bson.D{{Key: "userName", Value: userName}})
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	return r.find(ctx, bson.D{})
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{})
}

func (r *orderRepository) CountDistinctCars(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$carName"}}}},
		{{Key: "$count", Value: "n"}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	var out []struct {
		N int64 `bson:"n"`
	}
	if err := cursor.All(ctx, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].N, nil
}

func (r *orderRepository) find(ctx context.Context, filter bson.D) ([]domain.Order, error) {
	cursor, err := r.coll.Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, err
	}
	var docs []orderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(docs))
	for _, d := range docs {
		orders = append(orders, domain.Order{
			ID:            d.ID.Hex(),
			UserName:      d.UserName,
			CarName:       d.CarName,
			PaymentMethod: d.PaymentMethod,
			Date:          d.Date,
		})
	}
	return orders, nil
}
