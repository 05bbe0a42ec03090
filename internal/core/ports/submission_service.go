package ports

import (
	"context"
	"io"

	"github.com/unimag/portal/internal/core/domain"
)

// FileUpload is the transport-agnostic view of an uploaded file.
type FileUpload struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// CreateSubmissionInput carries all data needed to create a submission.
// FacultyID is never supplied by the caller; it is copied from the owner's
// faculty at creation time.
type CreateSubmissionInput struct {
	OwnerUserID   string
	Title         string
	Description   string
	AcademicYear  string
	TermsAccepted bool
	File          *FileUpload
}

// Caller identifies the authenticated actor for scoped reads.
type Caller struct {
	UserID    string
	Role      domain.Role
	FacultyID string
}

// ListSubmissionsInput carries all parameters for the list endpoint.
type ListSubmissionsInput struct {
	Caller       Caller
	FacultyID    string // optional explicit filter, admin only
	AcademicYear string
	Search       string
	Page         int
	Limit        int
}

// ListSubmissionsResult is returned by List.
type ListSubmissionsResult struct {
	Items      []*domain.Submission
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// SubmissionDetail is the full view returned by Get: the submission, its
// comments newest-first, and the derived workflow flags.
type SubmissionDetail struct {
	Submission         *domain.Submission
	Comments           []domain.Comment
	NeedsComment       bool
	NeedsUrgentComment bool
}

// DownloadResult points the transport layer at the stored file.
type DownloadResult struct {
	AbsPath     string
	FileName    string
	ContentType string
}

// SubmissionService defines use-case operations for submissions.
type SubmissionService interface {
	Create(ctx context.Context, input CreateSubmissionInput) (*domain.Submission, error)
	List(ctx context.Context, input ListSubmissionsInput) (*ListSubmissionsResult, error)
	Get(ctx context.Context, id string, caller Caller) (*SubmissionDetail, error)
	Download(ctx context.Context, id string, caller Caller) (*DownloadResult, error)
}
