package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/unimag/portal/internal/core/domain"
	"github.com/unimag/portal/internal/core/ports"
)

// ReviewService implements the coordinator workflow: selection transitions,
// review comments, and the urgency-ordered worklist.
type ReviewService struct {
	submissions ports.SubmissionRepository
	comments    ports.CommentRepository
	activity    ports.ActivityRecorder
	log         zerolog.Logger
	now         func() time.Time
}

func NewReviewService(
	submissions ports.SubmissionRepository,
	comments ports.CommentRepository,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) *ReviewService {
	return &ReviewService{
		submissions: submissions,
		comments:    comments,
		activity:    activity,
		log:         log,
		now:         time.Now,
	}
}

func (s *ReviewService) Select(ctx context.Context, submissionID string, reviewer ports.Reviewer, selected bool) (*domain.Submission, error) {
	submission, err := s.findInFaculty(ctx, submissionID, reviewer)
	if err != nil {
		return nil, err
	}

	if err := submission.ApplySelection(selected); err != nil {
		return nil, err
	}
	if err := s.submissions.SetReview(ctx, submission.ID, submission.Status, submission.Selected); err != nil {
		return nil, err
	}

	detail := "deselected " + submission.Title
	if selected {
		detail = "selected " + submission.Title
	}
	s.recordSelection(reviewer.UserID, detail)
	s.log.Info().
		Str("submission_id", submission.ID).
		Bool("selected", selected).
		Str("coordinator_id", reviewer.UserID).
		Msg("selection updated")

	return submission, nil
}

func (s *ReviewService) Reject(ctx context.Context, submissionID string, reviewer ports.Reviewer) (*domain.Submission, error) {
	submission, err := s.findInFaculty(ctx, submissionID, reviewer)
	if err != nil {
		return nil, err
	}

	if err := submission.Reject(); err != nil {
		return nil, err
	}
	if err := s.submissions.SetReview(ctx, submission.ID, submission.Status, submission.Selected); err != nil {
		return nil, err
	}

	s.recordSelection(reviewer.UserID, "rejected "+submission.Title)
	s.log.Info().
		Str("submission_id", submission.ID).
		Str("coordinator_id", reviewer.UserID).
		Msg("submission rejected")

	return submission, nil
}

func (s *ReviewService) AddComment(ctx context.Context, submissionID string, reviewer ports.Reviewer, text string) (*domain.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyComment
	}

	submission, err := s.findInFaculty(ctx, submissionID, reviewer)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		SubmissionID: submission.ID,
		AuthorUserID: reviewer.UserID,
		Text:         strings.TrimSpace(text),
		CommentedAt:  s.now().UTC(),
		IsRead:       false,
	}
	created, err := s.comments.Insert(ctx, comment)
	if err != nil {
		return nil, err
	}

	s.activity.Record(domain.ActivityEntry{
		UserID:    reviewer.UserID,
		Action:    domain.ActionComment,
		Details:   "commented on " + submission.Title,
		Timestamp: created.CommentedAt,
	})

	return created, nil
}

// Worklist returns the reviewer's faculty submissions ordered for review:
// urgent-and-uncommented first, then newest-submitted-first. The repository
// applies that order before pagination, so urgent items surface on page one
// no matter how deep they sit in the newest-first sequence.
func (s *ReviewService) Worklist(ctx context.Context, input ports.WorklistInput) (*ports.WorklistResult, error) {
	page, limit := normalizePage(input.Page, input.Limit)
	now := s.now().UTC()

	rows, total, err := s.submissions.ListForReview(ctx, ports.SubmissionFilter{
		Scope:        domain.QueryScope{FacultyID: input.Reviewer.FacultyID},
		AcademicYear: input.AcademicYear,
		Search:       input.Search,
		Page:         page,
		Limit:        limit,
	}, now.Add(-domain.UrgentCommentWindow))
	if err != nil {
		return nil, err
	}

	list := make([]ports.WorklistItem, len(rows))
	for i, row := range rows {
		list[i] = ports.WorklistItem{
			Submission:         row.Submission,
			CommentCount:       row.CommentCount,
			NeedsComment:       domain.NeedsComment(row.CommentCount),
			NeedsUrgentComment: row.Submission.NeedsUrgentComment(row.CommentCount, now),
		}
	}

	return &ports.WorklistResult{
		Items:      list,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *ReviewService) findInFaculty(ctx context.Context, submissionID string, reviewer ports.Reviewer) (*domain.Submission, error) {
	scope := domain.ScopeFor(domain.RoleCoordinator, reviewer.UserID, reviewer.FacultyID)
	return s.submissions.FindByID(ctx, submissionID, scope)
}

func (s *ReviewService) recordSelection(userID, details string) {
	s.activity.Record(domain.ActivityEntry{
		UserID:    userID,
		Action:    domain.ActionSelection,
		Details:   details,
		Timestamp: s.now().UTC(),
	})
}
