package mongo

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
)

const collectionCoupons = "coupons"

type CouponRepository struct {
	col *mongo.Collection
}

func NewCouponRepository(db *mongo.Database) *CouponRepository {
	return &CouponRepository{col: db.Collection(collectionCoupons)}
}

func (r *CouponRepository) Create(ctx context.Context, c *domain.Coupon) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, c)
	return err
}

// FindByCode matches the code case-insensitively. Codes are stored as typed
// by the admin but customers tend to enter them in any case.
func (r *CouponRepository) FindByCode(ctx context.Context, code string, activeOnly bool) (*domain.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"code": bson.M{"$regex": "^" + regexp.QuoteMeta(code) + "$", "$options": "i"}}
	if activeOnly {
		filter["active"] = true
	}

	var c domain.Coupon
	err := r.col.FindOne(ctx, filter).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFoundf("Coupon not found")
		}
		return nil, err
	}
	return &c, nil
}

func (r *CouponRepository) List(ctx context.Context) ([]*domain.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "expiry_date", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var coupons []*domain.Coupon
	if err := cur.All(ctx, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *CouponRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"active": active}})
}

func (r *CouponRepository) IncrementUsage(ctx context.Context, id string) error {
	return r.updateOne(ctx, id, bson.M{"$inc": bson.M{"used_count": 1}})
}

func (r *CouponRepository) updateOne(ctx context.Context, id string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NotFoundf("Coupon not found")
	}
	return nil
}

func (r *CouponRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NotFoundf("Coupon not found")
	}
	return nil
}
