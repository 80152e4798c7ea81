package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
)

const collectionAdmins = "admin_users"

type AdminRepository struct {
	col *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{col: db.Collection(collectionAdmins)}
}

func (r *AdminRepository) Create(ctx context.Context, a *domain.AdminUser) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, a)
	return err
}

func (r *AdminRepository) FindByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *AdminRepository) findOne(ctx context.Context, filter bson.M) (*domain.AdminUser, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.AdminUser
	err := r.col.FindOne(ctx, filter).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"password_hash": passwordHash}})
}

func (r *AdminRepository) UpdateUsername(ctx context.Context, id, username string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"username": username}})
}

func (r *AdminRepository) updateOne(ctx context.Context, id string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}
