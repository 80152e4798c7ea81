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

const collectionBills = "loyalty_bills"

type BillRepository struct {
	col *mongo.Collection
}

func NewBillRepository(db *mongo.Database) *BillRepository {
	return &BillRepository{col: db.Collection(collectionBills)}
}

// Create inserts the bill. The unique index on bill_number turns a concurrent
// double submit into a duplicate-key error, reported as a conflict.
func (r *BillRepository) Create(ctx context.Context, b *domain.LoyaltyBill) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, b)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.Conflictf("This bill has already been submitted")
		}
		return err
	}
	return nil
}

func (r *BillRepository) FindByBillNumber(ctx context.Context, billNumber string) (*domain.LoyaltyBill, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var b domain.LoyaltyBill
	err := r.col.FindOne(ctx, bson.M{"bill_number": billNumber}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFoundf("Bill not found")
		}
		return nil, err
	}
	return &b, nil
}

func (r *BillRepository) ExistsForUserSince(ctx context.Context, userID string, since time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{
		"user_id": userID,
		"date":    bson.M{"$gte": since},
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *BillRepository) ListForUser(ctx context.Context, userID string, limit int) ([]*domain.LoyaltyBill, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var bills []*domain.LoyaltyBill
	if err := cur.All(ctx, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *BillRepository) DeleteForUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

// EnsureIndexes creates necessary indexes on the loyalty_bills collection.
// The unique bill_number index is the authoritative dedup guard.
func (r *BillRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "bill_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
