package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
)

const collectionVerifications = "student_id_verifications"

type VerificationRepository struct {
	col *mongo.Collection
}

func NewVerificationRepository(db *mongo.Database) *VerificationRepository {
	return &VerificationRepository{col: db.Collection(collectionVerifications)}
}

func (r *VerificationRepository) Create(ctx context.Context, v *domain.StudentIDVerification) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, v)
	return err
}

func (r *VerificationRepository) FindByID(ctx context.Context, id string) (*domain.StudentIDVerification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v domain.StudentIDVerification
	err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFoundf("Verification request not found")
		}
		return nil, err
	}
	return &v, nil
}

// ListPending returns unresolved submissions, oldest first, so admins review
// in arrival order.
func (r *VerificationRepository) ListPending(ctx context.Context) ([]*domain.StudentIDVerification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"status": domain.SubmissionPending}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.StudentIDVerification
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *VerificationRepository) DeletePendingForUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{
		"user_id": userID,
		"status":  domain.SubmissionPending,
	})
	return err
}

func (r *VerificationRepository) SetStatus(ctx context.Context, id string, status domain.SubmissionStatus, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"status": status}
	if reason != "" {
		update["rejection_reason"] = reason
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NotFoundf("Verification request not found")
	}
	return nil
}

func (r *VerificationRepository) DeleteForUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
