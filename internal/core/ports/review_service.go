package ports

import (
	"context"

	"github.com/unimag/portal/internal/core/domain"
)

// Reviewer identifies the coordinator performing a review action. Scope is
// enforced through the reviewer's faculty: submissions of other faculties
// are invisible, not forbidden.
type Reviewer struct {
	UserID    string
	FacultyID string
}

// WorklistInput carries parameters for the coordinator worklist.
type WorklistInput struct {
	Reviewer     Reviewer
	AcademicYear string
	Search       string
	Page         int
	Limit        int
}

// WorklistItem is a submission with its derived comment-need flags, used for
// the urgency-ordered coordinator view.
type WorklistItem struct {
	Submission         *domain.Submission
	CommentCount       int64
	NeedsComment       bool
	NeedsUrgentComment bool
}

// WorklistResult is returned by Worklist.
type WorklistResult struct {
	Items      []WorklistItem
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ReviewService defines the coordinator-side workflow operations.
type ReviewService interface {
	// Select toggles the publication selection flag on a submission within
	// the reviewer's faculty.
	Select(ctx context.Context, submissionID string, reviewer Reviewer, selected bool) (*domain.Submission, error)
	// Reject moves a submission to the rejected state.
	Reject(ctx context.Context, submissionID string, reviewer Reviewer) (*domain.Submission, error)
	// AddComment appends a review comment to a submission within the
	// reviewer's faculty.
	AddComment(ctx context.Context, submissionID string, reviewer Reviewer, text string) (*domain.Comment, error)
	// Worklist lists the reviewer's faculty submissions, urgent-and-uncommented
	// first, then newest-first.
	Worklist(ctx context.Context, input WorklistInput) (*WorklistResult, error)
}
