package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/unimag/portal/internal/core/domain"
	"github.com/unimag/portal/internal/core/ports"
)

const submissionsCollection = "submissions"

type SubmissionRepository struct {
	coll *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{coll: db.Collection(submissionsCollection)}
}

type submissionDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	OwnerUserID   string             `bson:"owner_user_id"`
	FacultyID     string             `bson:"faculty_id"`
	Title         string             `bson:"title"`
	Description   string             `bson:"description,omitempty"`
	FilePath      string             `bson:"file_path"`
	FileType      string             `bson:"file_type"`
	AcademicYear  string             `bson:"academic_year"`
	SubmittedAt   time.Time          `bson:"submitted_at"`
	Status        string             `bson:"status"`
	Selected      bool               `bson:"selected"`
	TermsAccepted bool               `bson:"terms_accepted"`
}

func (d submissionDoc) toDomain() *domain.Submission {
	return &domain.Submission{
		ID:            d.ID.Hex(),
		OwnerUserID:   d.OwnerUserID,
		FacultyID:     d.FacultyID,
		Title:         d.Title,
		Description:   d.Description,
		FilePath:      d.FilePath,
		FileType:      d.FileType,
		AcademicYear:  d.AcademicYear,
		SubmittedAt:   d.SubmittedAt,
		Status:        domain.SubmissionStatus(d.Status),
		Selected:      d.Selected,
		TermsAccepted: d.TermsAccepted,
	}
}

func (r *SubmissionRepository) Insert(ctx context.Context, s *domain.Submission) (*domain.Submission, error) {
	doc := submissionDoc{
		OwnerUserID:   s.OwnerUserID,
		FacultyID:     s.FacultyID,
		Title:         s.Title,
		Description:   s.Description,
		FilePath:      s.FilePath,
		FileType:      s.FileType,
		AcademicYear:  s.AcademicYear,
		SubmittedAt:   s.SubmittedAt,
		Status:        string(s.Status),
		Selected:      s.Selected,
		TermsAccepted: s.TermsAccepted,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert submission: %w", err)
	}

	created := *s
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// scopeFilter translates a QueryScope into query conditions. Rows outside
// the scope simply do not match, so out-of-scope ids read as not found.
func scopeFilter(scope domain.QueryScope) bson.M {
	filter := bson.M{}
	if scope.OwnerUserID != "" {
		filter["owner_user_id"] = scope.OwnerUserID
	}
	if scope.FacultyID != "" {
		filter["faculty_id"] = scope.FacultyID
	}
	if scope.Status != "" {
		filter["status"] = string(scope.Status)
	}
	return filter
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string, scope domain.QueryScope) (*domain.Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSubmissionNotFound
	}

	filter := scopeFilter(scope)
	filter["_id"] = oid

	var doc submissionDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("find submission: %w", err)
	}
	return doc.toDomain(), nil
}

// listFilter composes the scope conditions with the caller-supplied filters.
func listFilter(f ports.SubmissionFilter) bson.M {
	filter := scopeFilter(f.Scope)
	if f.FacultyID != "" {
		filter["faculty_id"] = f.FacultyID
	}
	if f.AcademicYear != "" {
		filter["academic_year"] = f.AcademicYear
	}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}
	return filter
}

func (r *SubmissionRepository) List(ctx context.Context, f ports.SubmissionFilter) ([]*domain.Submission, int64, error) {
	filter := listFilter(f)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count submissions: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "submitted_at", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list submissions: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Submission
	for cur.Next(ctx) {
		var doc submissionDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode submission: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	return items, total, cur.Err()
}

// ListForReview joins each submission with its comment count and sorts the
// whole result set on the urgency key before skip/limit, so the review order
// survives pagination. Urgency mirrors domain.NeedsUrgentComment: zero
// comments and submitted strictly after urgentSince.
func (r *SubmissionRepository) ListForReview(ctx context.Context, f ports.SubmissionFilter, urgentSince time.Time) ([]ports.ReviewRow, int64, error) {
	filter := listFilter(f)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count submissions: %w", err)
	}

	// Comments reference submissions by hex id string, so the join compares
	// against $toString of _id.
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$lookup", Value: bson.M{
			"from": commentsCollection,
			"let":  bson.M{"sid": bson.M{"$toString": "$_id"}},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$submission_id", "$$sid"}}}},
				bson.M{"$count": "count"},
			},
			"as": "comment_counts",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"comment_count": bson.M{"$ifNull": bson.A{
				bson.M{"$arrayElemAt": bson.A{"$comment_counts.count", 0}}, 0,
			}},
		}}},
		{{Key: "$addFields", Value: bson.M{
			"urgent": bson.M{"$and": bson.A{
				bson.M{"$eq": bson.A{"$comment_count", 0}},
				bson.M{"$gt": bson.A{"$submitted_at", urgentSince}},
			}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "urgent", Value: -1},
			{Key: "submitted_at", Value: -1},
		}}},
		{{Key: "$skip", Value: int64((f.Page - 1) * f.Limit)}},
		{{Key: "$limit", Value: int64(f.Limit)}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("list for review: %w", err)
	}
	defer cur.Close(ctx)

	type reviewDoc struct {
		submissionDoc `bson:",inline"`
		CommentCount  int64 `bson:"comment_count"`
	}

	var rows []ports.ReviewRow
	for cur.Next(ctx) {
		var doc reviewDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode review row: %w", err)
		}
		rows = append(rows, ports.ReviewRow{
			Submission:   doc.toDomain(),
			CommentCount: doc.CommentCount,
		})
	}
	return rows, total, cur.Err()
}

func (r *SubmissionRepository) SetReview(ctx context.Context, id string, status domain.SubmissionStatus, selected bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSubmissionNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{
		"$set": bson.M{"status": string(status), "selected": selected},
	})
	if err != nil {
		return fmt.Errorf("update review state: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}

func (r *SubmissionRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *SubmissionRepository) CountSelected(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"selected": true})
}

// StatsByFaculty groups submissions by faculty, counting totals and selected.
func (r *SubmissionRepository) StatsByFaculty(ctx context.Context) ([]ports.FacultyCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":         "$faculty_id",
			"submissions": bson.M{"$sum": 1},
			"selected": bson.M{"$sum": bson.M{
				"$cond": bson.A{"$selected", 1, 0},
			}},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("faculty stats: %w", err)
	}
	defer cur.Close(ctx)

	var counts []ports.FacultyCount
	if err := cur.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("decode faculty stats: %w", err)
	}
	return counts, nil
}

// EnsureIndexes creates the indexes backing the scoped list queries.
func (r *SubmissionRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_user_id", Value: 1}}},
		{Keys: bson.D{{Key: "faculty_id", Value: 1}, {Key: "submitted_at", Value: -1}}},
		{Keys: bson.D{{Key: "academic_year", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
