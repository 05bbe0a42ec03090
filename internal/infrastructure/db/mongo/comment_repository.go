package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/unimag/portal/internal/core/domain"
)

const commentsCollection = "comments"

type CommentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{coll: db.Collection(commentsCollection)}
}

type commentDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	SubmissionID string             `bson:"submission_id"`
	AuthorUserID string             `bson:"author_user_id"`
	Text         string             `bson:"text"`
	CommentedAt  time.Time          `bson:"commented_at"`
	IsRead       bool               `bson:"is_read"`
}

func (d commentDoc) toDomain() domain.Comment {
	return domain.Comment{
		ID:           d.ID.Hex(),
		SubmissionID: d.SubmissionID,
		AuthorUserID: d.AuthorUserID,
		Text:         d.Text,
		CommentedAt:  d.CommentedAt,
		IsRead:       d.IsRead,
	}
}

func (r *CommentRepository) Insert(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	doc := commentDoc{
		SubmissionID: c.SubmissionID,
		AuthorUserID: c.AuthorUserID,
		Text:         c.Text,
		CommentedAt:  c.CommentedAt,
		IsRead:       c.IsRead,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	created := *c
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// ListBySubmission returns the submission's comments newest-first.
func (r *CommentRepository) ListBySubmission(ctx context.Context, submissionID string) ([]domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "commented_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"submission_id": submissionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer cur.Close(ctx)

	comments := []domain.Comment{}
	for cur.Next(ctx) {
		var doc commentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode comment: %w", err)
		}
		comments = append(comments, doc.toDomain())
	}
	return comments, cur.Err()
}

func (r *CommentRepository) CountBySubmission(ctx context.Context, submissionID string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"submission_id": submissionID})
}

func (r *CommentRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the index backing per-submission comment listing.
func (r *CommentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "submission_id", Value: 1}, {Key: "commented_at", Value: -1}},
	})
	return err
}
