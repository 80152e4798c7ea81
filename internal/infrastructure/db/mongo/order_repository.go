package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
)

const collectionOrders = "orders"

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, o)
	return err
}

// FindForUser retrieves an order only when it belongs to the given user.
func (r *OrderRepository) FindForUser(ctx context.Context, id, userID string) (*domain.Order, error) {
	return r.findOne(ctx, bson.M{"id": id, "user_id": userID})
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *OrderRepository) findOne(ctx context.Context, filter bson.M) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var o domain.Order
	err := r.col.FindOne(ctx, filter).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFoundf("Order not found")
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListForUser(ctx context.Context, userID string, limit int) ([]*domain.Order, error) {
	return r.list(ctx, bson.M{"user_id": userID}, limit)
}

func (r *OrderRepository) ListAll(ctx context.Context, limit int) ([]*domain.Order, error) {
	return r.list(ctx, bson.M{}, limit)
}

func (r *OrderRepository) list(ctx context.Context, filter bson.M, limit int) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var orders []*domain.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) SetStatus(ctx context.Context, id string, status domain.OrderStatus, updatedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": updatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NotFoundf("Order not found")
	}
	return nil
}

func (r *OrderRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": since}})
}

func (r *OrderRepository) DeleteForUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
