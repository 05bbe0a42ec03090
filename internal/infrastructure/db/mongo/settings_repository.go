package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/unimag/portal/internal/core/domain"
)

const settingsCollection = "academic_settings"

// SettingsRepository stores one document per academic year, keyed by the
// year string itself. Upsert replaces the whole document.
type SettingsRepository struct {
	coll *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{coll: db.Collection(settingsCollection)}
}

func (r *SettingsRepository) Get(ctx context.Context, academicYear string) (*domain.AcademicSettings, error) {
	var s domain.AcademicSettings
	err := r.coll.FindOne(ctx, bson.M{"_id": academicYear}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

func (r *SettingsRepository) Latest(ctx context.Context) (*domain.AcademicSettings, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})

	var s domain.AcademicSettings
	err := r.coll.FindOne(ctx, bson.M{}, opts).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("latest settings: %w", err)
	}
	return &s, nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, s *domain.AcademicSettings) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": s.AcademicYear}, s, opts)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
