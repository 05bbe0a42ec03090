package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/unimag/portal/internal/core/domain"
)

const activityCollection = "activity_log"

// ActivityRepository persists the append-only audit trail. Entries are never
// updated or deleted, so insert is the only write.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

func (r *ActivityRepository) Insert(ctx context.Context, entry *domain.ActivityEntry) error {
	doc := bson.M{
		"user_id":   entry.UserID,
		"action":    string(entry.Action),
		"timestamp": entry.Timestamp.UTC(),
	}
	if entry.Details != "" {
		doc["details"] = entry.Details
	}

	_, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert activity entry: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup index for per-user audit queries.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	return err
}
