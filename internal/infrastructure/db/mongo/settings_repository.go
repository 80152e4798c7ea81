package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
)

const (
	collectionSettings   = "settings"
	collectionClosedDays = "closed_days"

	settingsDocID = "shop_settings"
	aboutDocID    = "about_content"
)

// SettingsRepository stores the single shop configuration document, the
// about-page copy, and ad-hoc closed days.
type SettingsRepository struct {
	settings   *mongo.Collection
	closedDays *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{
		settings:   db.Collection(collectionSettings),
		closedDays: db.Collection(collectionClosedDays),
	}
}

func (r *SettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc struct {
		Settings domain.Settings `bson:"value"`
	}
	err := r.settings.FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFoundf("Shop settings not configured")
		}
		return nil, err
	}
	return &doc.Settings, nil
}

func (r *SettingsRepository) Update(ctx context.Context, s *domain.Settings) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.settings.UpdateOne(ctx,
		bson.M{"_id": settingsDocID},
		bson.M{"$set": bson.M{"value": s}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *SettingsRepository) AddClosedDay(ctx context.Context, date string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.closedDays.UpdateOne(ctx,
		bson.M{"date": date},
		bson.M{"$set": bson.M{"date": date}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *SettingsRepository) ListClosedDays(ctx context.Context) ([]*domain.ClosedDay, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cur, err := r.closedDays.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var days []*domain.ClosedDay
	if err := cur.All(ctx, &days); err != nil {
		return nil, err
	}
	return days, nil
}

func (r *SettingsRepository) GetAbout(ctx context.Context) (*domain.AboutContent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc struct {
		About domain.AboutContent `bson:"value"`
	}
	err := r.settings.FindOne(ctx, bson.M{"_id": aboutDocID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFoundf("About content not configured")
		}
		return nil, err
	}
	return &doc.About, nil
}

func (r *SettingsRepository) UpdateAbout(ctx context.Context, a *domain.AboutContent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.settings.UpdateOne(ctx,
		bson.M{"_id": aboutDocID},
		bson.M{"$set": bson.M{"value": a}},
		options.Update().SetUpsert(true),
	)
	return err
}
