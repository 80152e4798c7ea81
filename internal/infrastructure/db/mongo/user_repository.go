package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
	"github.com/thugozi/foodtruck-api/internal/core/ports"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

// Create inserts a new user document.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, u)
	return err
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"phone_number": phone})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	err := r.col.FindOne(ctx, filter).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFoundf("User not found")
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Students != nil {
		query["is_student"] = *filter.Students
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []*domain.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListActiveStudents returns users eligible for the expiry sweep: verified
// students with loyalty switched on and a date of birth on record.
func (r *UserRepository) ListActiveStudents(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{
		"is_student":     true,
		"loyalty_active": true,
		"dob":            bson.M{"$exists": true, "$ne": ""},
	}

	cur, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []*domain.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) ApplyLoyalty(ctx context.Context, id, college, dob string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{
		"is_student":          true,
		"college":             college,
		"dob":                 dob,
		"verification_status": domain.VerificationNotStarted,
		"loyalty_active":      false,
	}})
}

func (r *UserRepository) SetVerificationPending(ctx context.Context, id string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{
		"verification_status": domain.VerificationPending,
	}})
}

func (r *UserRepository) ApproveVerification(ctx context.Context, id string, loyaltyActive bool) error {
	return r.updateOne(ctx, id, bson.M{
		"$set": bson.M{
			"verification_status": domain.VerificationApproved,
			"loyalty_active":      loyaltyActive,
		},
		"$unset": bson.M{"rejection_reason": ""},
	})
}

func (r *UserRepository) RejectVerification(ctx context.Context, id, reason string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{
		"verification_status": domain.VerificationRejected,
		"loyalty_active":      false,
		"rejection_reason":    reason,
	}})
}

func (r *UserRepository) SetLoyaltyActive(ctx context.Context, id string, active bool) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"loyalty_active": active}})
}

// AddPoints atomically increments the balance and stamps the visit in a
// single update, so a concurrent decay reset cannot interleave between them.
func (r *UserRepository) AddPoints(ctx context.Context, id string, points int, lastVisit time.Time) error {
	return r.updateOne(ctx, id, bson.M{
		"$inc": bson.M{"points": points},
		"$set": bson.M{"last_visit": lastVisit},
	})
}

func (r *UserRepository) SetPoints(ctx context.Context, id string, points int) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"points": points}})
}

func (r *UserRepository) SetLastVisit(ctx context.Context, id string, t time.Time) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"last_visit": t}})
}

func (r *UserRepository) updateOne(ctx context.Context, id string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NotFoundf("User not found")
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NotFoundf("User not found")
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context, filter ports.UserFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Students != nil {
		query["is_student"] = *filter.Students
	}
	return r.col.CountDocuments(ctx, query)
}

func (r *UserRepository) CountByVerificationStatus(ctx context.Context, status domain.VerificationStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"verification_status": status})
}

// TotalPoints sums the outstanding point balance across every user.
func (r *UserRepository) TotalPoints(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$points"}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var result []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &result); err != nil {
		return 0, err
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].Total, nil
}

// EnsureIndexes creates necessary indexes on the users collection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "is_student", Value: 1}, {Key: "loyalty_active", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
