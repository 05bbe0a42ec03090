package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/unimag/portal/internal/core/domain"
	"github.com/unimag/portal/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	nextID    int
	createErr error
	findErr   error

	updatedHashFor  string // user id of the last UpdatePasswordHash call
	lastLoginSetFor string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := *u
	clone.ID = "user_" + strconv.Itoa(r.nextID)
	r.byID[clone.ID] = &clone
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Email == strings.ToLower(email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	r.updatedHashFor = id
	return nil
}

func (r *stubUserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.LastLoginAt = at
	r.lastLoginSetFor = id
	return nil
}

func (r *stubUserRepo) List(_ context.Context, page, limit int) ([]*domain.User, int64, error) {
	var out []*domain.User
	for _, u := range r.byID {
		clone := *u
		out = append(out, &clone)
	}
	return out, int64(len(r.byID)), nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

// seedUser inserts a user bypassing Create's duplicate check.
func (r *stubUserRepo) seedUser(u *domain.User) *domain.User {
	r.nextID++
	clone := *u
	if clone.ID == "" {
		clone.ID = "user_" + strconv.Itoa(r.nextID)
	}
	r.byID[clone.ID] = &clone
	return &clone
}

type stubFacultyRepo struct {
	byID map[string]*domain.Faculty
}

func newStubFacultyRepo(ids ...string) *stubFacultyRepo {
	r := &stubFacultyRepo{byID: make(map[string]*domain.Faculty)}
	for _, id := range ids {
		r.byID[id] = &domain.Faculty{ID: id, Name: "Faculty " + id}
	}
	return r
}

func (r *stubFacultyRepo) FindByID(_ context.Context, id string) (*domain.Faculty, error) {
	f, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrFacultyNotFound
	}
	clone := *f
	return &clone, nil
}

func (r *stubFacultyRepo) List(_ context.Context) ([]domain.Faculty, error) {
	out := make([]domain.Faculty, 0, len(r.byID))
	for _, f := range r.byID {
		out = append(out, *f)
	}
	return out, nil
}

func (r *stubFacultyRepo) Seed(_ context.Context, faculties []domain.Faculty) error {
	if len(r.byID) > 0 {
		return nil
	}
	for _, f := range faculties {
		clone := f
		r.byID[f.ID] = &clone
	}
	return nil
}

// stubLimiter counts failures in memory with the same open/closed semantics
// as the Redis implementation.
type stubLimiter struct {
	failures map[string]int
	max      int
	err      error // if set, every method returns this error
}

func newStubLimiter() *stubLimiter {
	return &stubLimiter{failures: make(map[string]int), max: 5}
}

func (l *stubLimiter) TooMany(_ context.Context, email string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	return l.failures[email] >= l.max, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, email string) error {
	if l.err != nil {
		return l.err
	}
	l.failures[email]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, email string) error {
	if l.err != nil {
		return l.err
	}
	delete(l.failures, email)
	return nil
}

// stubRecorder captures activity entries synchronously.
type stubRecorder struct {
	entries []domain.ActivityEntry
}

func (r *stubRecorder) Record(entry domain.ActivityEntry) {
	r.entries = append(r.entries, entry)
}

func (r *stubRecorder) lastAction() domain.ActivityAction {
	if len(r.entries) == 0 {
		return ""
	}
	return r.entries[len(r.entries)-1].Action
}

type stubSubmissionRepo struct {
	byID      map[string]*domain.Submission
	comments  *stubCommentRepo // backs ListForReview's comment counts
	nextID    int
	insertErr error
	setErr    error
}

func newStubSubmissionRepo() *stubSubmissionRepo {
	return &stubSubmissionRepo{byID: make(map[string]*domain.Submission)}
}

func (r *stubSubmissionRepo) Insert(_ context.Context, s *domain.Submission) (*domain.Submission, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	r.nextID++
	clone := *s
	clone.ID = "sub_" + strconv.Itoa(r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubSubmissionRepo) inScope(s *domain.Submission, scope domain.QueryScope) bool {
	if scope.OwnerUserID != "" && s.OwnerUserID != scope.OwnerUserID {
		return false
	}
	if scope.FacultyID != "" && s.FacultyID != scope.FacultyID {
		return false
	}
	if scope.Status != "" && s.Status != scope.Status {
		return false
	}
	return true
}

func (r *stubSubmissionRepo) FindByID(_ context.Context, id string, scope domain.QueryScope) (*domain.Submission, error) {
	s, ok := r.byID[id]
	if !ok || !r.inScope(s, scope) {
		return nil, domain.ErrSubmissionNotFound
	}
	clone := *s
	return &clone, nil
}

// List applies the same filters the real Mongo repo would use.
func (r *stubSubmissionRepo) List(_ context.Context, f ports.SubmissionFilter) ([]*domain.Submission, int64, error) {
	var matched []*domain.Submission
	for _, s := range r.byID {
		if !r.inScope(s, f.Scope) {
			continue
		}
		if f.FacultyID != "" && s.FacultyID != f.FacultyID {
			continue
		}
		if f.AcademicYear != "" && s.AcademicYear != f.AcademicYear {
			continue
		}
		if f.Search != "" {
			titleMatch := strings.Contains(strings.ToLower(s.Title), strings.ToLower(f.Search))
			descMatch := strings.Contains(strings.ToLower(s.Description), strings.ToLower(f.Search))
			if !titleMatch && !descMatch {
				continue
			}
		}
		clone := *s
		matched = append(matched, &clone)
	}

	// Newest first, mirroring the Mongo sort.
	for i := 0; i < len(matched); i++ {
		for j := i + 1; j < len(matched); j++ {
			if matched[j].SubmittedAt.After(matched[i].SubmittedAt) {
				matched[i], matched[j] = matched[j], matched[i]
			}
		}
	}

	total := int64(len(matched))
	limit := f.Limit
	if limit <= 0 {
		limit = len(matched)
	}
	skip := (f.Page - 1) * limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(matched) {
		return []*domain.Submission{}, total, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

// ListForReview mirrors the aggregation's review order: urgent rows first,
// then newest-first, with pagination sliced from the globally sorted set.
func (r *stubSubmissionRepo) ListForReview(ctx context.Context, f ports.SubmissionFilter, urgentSince time.Time) ([]ports.ReviewRow, int64, error) {
	unpaged := f
	unpaged.Page = 1
	unpaged.Limit = 0
	matched, total, err := r.List(ctx, unpaged)
	if err != nil {
		return nil, 0, err
	}

	rows := make([]ports.ReviewRow, len(matched))
	for i, s := range matched {
		var count int64
		if r.comments != nil {
			count = int64(len(r.comments.bySubmission[s.ID]))
		}
		rows[i] = ports.ReviewRow{Submission: s, CommentCount: count}
	}

	urgent := func(row ports.ReviewRow) bool {
		return row.CommentCount == 0 && row.Submission.SubmittedAt.After(urgentSince)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return urgent(rows[i]) && !urgent(rows[j])
	})

	limit := f.Limit
	if limit <= 0 {
		limit = len(rows)
	}
	skip := (f.Page - 1) * limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(rows) {
		return []ports.ReviewRow{}, total, nil
	}
	end := skip + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[skip:end], total, nil
}

func (r *stubSubmissionRepo) SetReview(_ context.Context, id string, status domain.SubmissionStatus, selected bool) error {
	if r.setErr != nil {
		return r.setErr
	}
	s, ok := r.byID[id]
	if !ok {
		return domain.ErrSubmissionNotFound
	}
	s.Status = status
	s.Selected = selected
	return nil
}

func (r *stubSubmissionRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *stubSubmissionRepo) CountSelected(_ context.Context) (int64, error) {
	var n int64
	for _, s := range r.byID {
		if s.Selected {
			n++
		}
	}
	return n, nil
}

func (r *stubSubmissionRepo) StatsByFaculty(_ context.Context) ([]ports.FacultyCount, error) {
	byFaculty := make(map[string]*ports.FacultyCount)
	for _, s := range r.byID {
		fc, ok := byFaculty[s.FacultyID]
		if !ok {
			fc = &ports.FacultyCount{FacultyID: s.FacultyID}
			byFaculty[s.FacultyID] = fc
		}
		fc.Submissions++
		if s.Selected {
			fc.Selected++
		}
	}
	out := make([]ports.FacultyCount, 0, len(byFaculty))
	for _, fc := range byFaculty {
		out = append(out, *fc)
	}
	return out, nil
}

// seedSubmission inserts a submission with a fixed id.
func (r *stubSubmissionRepo) seedSubmission(s *domain.Submission) *domain.Submission {
	clone := *s
	if clone.ID == "" {
		r.nextID++
		clone.ID = "sub_" + strconv.Itoa(r.nextID)
	}
	if clone.Status == "" {
		clone.Status = domain.StatusSubmitted
	}
	r.byID[clone.ID] = &clone
	return &clone
}

type stubCommentRepo struct {
	bySubmission map[string][]domain.Comment
	nextID       int
	insertErr    error
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{bySubmission: make(map[string][]domain.Comment)}
}

func (r *stubCommentRepo) Insert(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	r.nextID++
	clone := *c
	clone.ID = "com_" + strconv.Itoa(r.nextID)
	r.bySubmission[c.SubmissionID] = append(r.bySubmission[c.SubmissionID], clone)
	return &clone, nil
}

// ListBySubmission returns comments newest-first, mirroring the Mongo sort.
func (r *stubCommentRepo) ListBySubmission(_ context.Context, submissionID string) ([]domain.Comment, error) {
	out := make([]domain.Comment, len(r.bySubmission[submissionID]))
	copy(out, r.bySubmission[submissionID])
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CommentedAt.After(out[j].CommentedAt)
	})
	return out, nil
}

func (r *stubCommentRepo) CountBySubmission(_ context.Context, submissionID string) (int64, error) {
	return int64(len(r.bySubmission[submissionID])), nil
}

func (r *stubCommentRepo) Count(_ context.Context) (int64, error) {
	var n int64
	for _, comments := range r.bySubmission {
		n += int64(len(comments))
	}
	return n, nil
}

type stubSettingsRepo struct {
	byYear map[string]*domain.AcademicSettings
}

func newStubSettingsRepo() *stubSettingsRepo {
	return &stubSettingsRepo{byYear: make(map[string]*domain.AcademicSettings)}
}

func (r *stubSettingsRepo) Get(_ context.Context, academicYear string) (*domain.AcademicSettings, error) {
	s, ok := r.byYear[academicYear]
	if !ok {
		return nil, domain.ErrSettingsNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSettingsRepo) Latest(_ context.Context) (*domain.AcademicSettings, error) {
	var latest *domain.AcademicSettings
	for _, s := range r.byYear {
		if latest == nil || s.AcademicYear > latest.AcademicYear {
			latest = s
		}
	}
	if latest == nil {
		return nil, domain.ErrSettingsNotFound
	}
	clone := *latest
	return &clone, nil
}

func (r *stubSettingsRepo) Upsert(_ context.Context, s *domain.AcademicSettings) error {
	clone := *s
	r.byYear[s.AcademicYear] = &clone
	return nil
}

// stubFileStore keeps uploads in memory and records deletions.
type stubFileStore struct {
	saved   []ports.StoredFile
	deleted []string
	saveErr error
}

func (f *stubFileStore) Save(_ context.Context, ownerID string, upload *ports.FileUpload) (*ports.StoredFile, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	stored := ports.StoredFile{
		RelPath:     ownerID + "/deadbeef.pdf",
		SHA256:      "deadbeef",
		ContentType: upload.ContentType,
		Size:        upload.Size,
	}
	f.saved = append(f.saved, stored)
	return &stored, nil
}

func (f *stubFileStore) Delete(_ context.Context, relPath string) error {
	f.deleted = append(f.deleted, relPath)
	return nil
}

func (f *stubFileStore) Resolve(relPath string) (string, error) {
	return "/data/uploads/" + relPath, nil
}
