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

const facultiesCollection = "faculties"

// FacultyRepository serves the static faculty reference data. Faculties use
// stable string ids so they survive re-seeding across environments.
type FacultyRepository struct {
	coll *mongo.Collection
}

func NewFacultyRepository(db *mongo.Database) *FacultyRepository {
	return &FacultyRepository{coll: db.Collection(facultiesCollection)}
}

func (r *FacultyRepository) FindByID(ctx context.Context, id string) (*domain.Faculty, error) {
	var f domain.Faculty
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("find faculty: %w", err)
	}
	return &f, nil
}

func (r *FacultyRepository) List(ctx context.Context) ([]domain.Faculty, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list faculties: %w", err)
	}
	defer cur.Close(ctx)

	var faculties []domain.Faculty
	if err := cur.All(ctx, &faculties); err != nil {
		return nil, fmt.Errorf("decode faculties: %w", err)
	}
	return faculties, nil
}

// Seed inserts the given faculties when the collection is empty. Existing
// data is never touched.
func (r *FacultyRepository) Seed(ctx context.Context, faculties []domain.Faculty) error {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("seed faculties: %w", err)
	}
	if n > 0 || len(faculties) == 0 {
		return nil
	}

	docs := make([]any, len(faculties))
	for i, f := range faculties {
		docs[i] = f
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("seed faculties: %w", err)
	}
	return nil
}
