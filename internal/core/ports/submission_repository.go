package ports

import (
	"context"
	"time"

	"github.com/unimag/portal/internal/core/domain"
)

// SubmissionFilter carries all query parameters for listing submissions.
// Scope is always enforced by the repository; the remaining fields are the
// optional caller-supplied filters that compose conjunctively with it.
type SubmissionFilter struct {
	Scope        domain.QueryScope
	FacultyID    string // optional explicit faculty filter (admin)
	AcademicYear string // optional
	Search       string // optional: partial match on title or description
	Page         int    // 1-based
	Limit        int    // max rows per page (capped by the service)
}

// FacultyCount is one row of the per-faculty statistics aggregation.
type FacultyCount struct {
	FacultyID   string `bson:"_id"`
	Submissions int64  `bson:"submissions"`
	Selected    int64  `bson:"selected"`
}

// ReviewRow is a submission joined with its comment count, as produced by
// ListForReview.
type ReviewRow struct {
	Submission   *domain.Submission
	CommentCount int64
}

// SubmissionRepository defines persistence operations for submissions.
type SubmissionRepository interface {
	Insert(ctx context.Context, s *domain.Submission) (*domain.Submission, error)
	// FindByID retrieves a submission visible within scope. Out-of-scope rows
	// are indistinguishable from absent ones: both return ErrSubmissionNotFound.
	FindByID(ctx context.Context, id string, scope domain.QueryScope) (*domain.Submission, error)
	// List returns a page of submissions matching filter, newest-first, and
	// the total count.
	List(ctx context.Context, filter SubmissionFilter) ([]*domain.Submission, int64, error)
	// ListForReview returns a page of submissions matching filter in review
	// order: rows with no comments submitted after urgentSince come first,
	// the rest follow newest-first. The ordering is applied before
	// pagination, so every page slices the same globally ordered sequence.
	ListForReview(ctx context.Context, filter SubmissionFilter, urgentSince time.Time) ([]ReviewRow, int64, error)
	// SetReview persists a workflow transition (status + selection flag).
	SetReview(ctx context.Context, id string, status domain.SubmissionStatus, selected bool) error
	Count(ctx context.Context) (int64, error)
	CountSelected(ctx context.Context) (int64, error)
	StatsByFaculty(ctx context.Context) ([]FacultyCount, error)
}
