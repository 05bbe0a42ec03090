package ports

import (
	"context"

	"github.com/unimag/portal/internal/core/domain"
)

// CommentRepository defines persistence operations for review comments.
// Comments are append-only; there are no update or delete operations.
type CommentRepository interface {
	Insert(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	// ListBySubmission returns all comments for a submission, newest-first.
	ListBySubmission(ctx context.Context, submissionID string) ([]domain.Comment, error)
	CountBySubmission(ctx context.Context, submissionID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}
