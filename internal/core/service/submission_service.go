package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/unimag/portal/internal/core/domain"
	"github.com/unimag/portal/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// SubmissionService implements creation and role-scoped reads of submissions.
type SubmissionService struct {
	submissions ports.SubmissionRepository
	comments    ports.CommentRepository
	users       ports.UserRepository
	settings    ports.SettingsRepository
	files       ports.FileStore
	activity    ports.ActivityRecorder
	log         zerolog.Logger
	now         func() time.Time
}

func NewSubmissionService(
	submissions ports.SubmissionRepository,
	comments ports.CommentRepository,
	users ports.UserRepository,
	settings ports.SettingsRepository,
	files ports.FileStore,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) *SubmissionService {
	return &SubmissionService{
		submissions: submissions,
		comments:    comments,
		users:       users,
		settings:    settings,
		files:       files,
		activity:    activity,
		log:         log,
		now:         time.Now,
	}
}

// Create validates the input, stores the file, and inserts the submission
// row. File storage and the database insert are not atomically linked: when
// the insert fails after the file was written, the file is deleted as a
// best-effort compensating action.
func (s *SubmissionService) Create(ctx context.Context, input ports.CreateSubmissionInput) (*domain.Submission, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if input.AcademicYear == "" {
		return nil, fmt.Errorf("%w: academic year is required", domain.ErrInvalidInput)
	}
	if !input.TermsAccepted {
		return nil, domain.ErrTermsNotAccepted
	}
	if input.File == nil {
		return nil, domain.ErrMissingFile
	}

	now := s.now().UTC()
	settings, err := s.settings.Get(ctx, input.AcademicYear)
	if err == nil && !settings.SubmissionOpen(now) {
		return nil, domain.ErrDeadlinePassed
	}
	if err != nil && err != domain.ErrSettingsNotFound {
		return nil, err
	}

	stored, err := s.files.Save(ctx, input.OwnerUserID, input.File)
	if err != nil {
		return nil, err
	}

	submission, err := s.insertRow(ctx, input, stored, now)
	if err != nil {
		if delErr := s.files.Delete(ctx, stored.RelPath); delErr != nil {
			s.log.Warn().Err(delErr).Str("path", stored.RelPath).Msg("failed to delete orphaned upload")
		}
		return nil, err
	}

	s.activity.Record(domain.ActivityEntry{
		UserID:    input.OwnerUserID,
		Action:    domain.ActionSubmission,
		Details:   "submitted " + submission.Title,
		Timestamp: now,
	})
	s.log.Info().
		Str("submission_id", submission.ID).
		Str("owner_user_id", submission.OwnerUserID).
		Str("faculty_id", submission.FacultyID).
		Msg("submission created")

	return submission, nil
}

// insertRow resolves the owner's faculty and persists the submission.
// Failures here trigger the compensating file delete in Create.
func (s *SubmissionService) insertRow(ctx context.Context, input ports.CreateSubmissionInput, stored *ports.StoredFile, now time.Time) (*domain.Submission, error) {
	owner, err := s.users.FindByID(ctx, input.OwnerUserID)
	if err != nil {
		return nil, err
	}

	submission := &domain.Submission{
		OwnerUserID:   owner.ID,
		FacultyID:     owner.FacultyID, // copied at creation, immutable after
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		FilePath:      stored.RelPath,
		FileType:      stored.ContentType,
		AcademicYear:  input.AcademicYear,
		SubmittedAt:   now,
		Status:        domain.StatusSubmitted,
		Selected:      false,
		TermsAccepted: true,
	}
	return s.submissions.Insert(ctx, submission)
}

func (s *SubmissionService) List(ctx context.Context, input ports.ListSubmissionsInput) (*ports.ListSubmissionsResult, error) {
	page, limit := normalizePage(input.Page, input.Limit)

	filter := ports.SubmissionFilter{
		Scope:        domain.ScopeFor(input.Caller.Role, input.Caller.UserID, input.Caller.FacultyID),
		AcademicYear: input.AcademicYear,
		Search:       input.Search,
		Page:         page,
		Limit:        limit,
	}
	// The explicit faculty filter is an admin affordance; for other roles the
	// scope already pins the faculty or makes it irrelevant.
	if input.Caller.Role == domain.RoleAdmin {
		filter.FacultyID = input.FacultyID
	}

	items, total, err := s.submissions.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListSubmissionsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *SubmissionService) Get(ctx context.Context, id string, caller ports.Caller) (*ports.SubmissionDetail, error) {
	submission, err := s.find(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListBySubmission(ctx, submission.ID)
	if err != nil {
		return nil, err
	}

	count := int64(len(comments))
	return &ports.SubmissionDetail{
		Submission:         submission,
		Comments:           comments,
		NeedsComment:       domain.NeedsComment(count),
		NeedsUrgentComment: submission.NeedsUrgentComment(count, s.now().UTC()),
	}, nil
}

func (s *SubmissionService) Download(ctx context.Context, id string, caller ports.Caller) (*ports.DownloadResult, error) {
	submission, err := s.find(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	abs, err := s.files.Resolve(submission.FilePath)
	if err != nil {
		return nil, err
	}

	s.activity.Record(domain.ActivityEntry{
		UserID:    caller.UserID,
		Action:    domain.ActionDownload,
		Details:   "downloaded " + submission.Title,
		Timestamp: s.now().UTC(),
	})

	// The stored name is a content hash, so the download is named after the
	// title with the stored file's extension appended.
	return &ports.DownloadResult{
		AbsPath:     abs,
		FileName:    submission.Title + path.Ext(submission.FilePath),
		ContentType: submission.FileType,
	}, nil
}

func (s *SubmissionService) find(ctx context.Context, id string, caller ports.Caller) (*domain.Submission, error) {
	scope := domain.ScopeFor(caller.Role, caller.UserID, caller.FacultyID)
	return s.submissions.FindByID(ctx, id, scope)
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
