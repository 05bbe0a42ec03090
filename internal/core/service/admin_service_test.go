package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/unimag/portal/internal/core/domain"
)

type adminFixture struct {
	svc         *AdminService
	users       *stubUserRepo
	submissions *stubSubmissionRepo
	comments    *stubCommentRepo
	faculties   *stubFacultyRepo
	settings    *stubSettingsRepo
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		users:       newStubUserRepo(),
		submissions: newStubSubmissionRepo(),
		comments:    newStubCommentRepo(),
		faculties:   newStubFacultyRepo("engineering", "arts"),
		settings:    newStubSettingsRepo(),
	}
	f.svc = NewAdminService(f.users, f.submissions, f.comments, f.faculties, f.settings, discardLogger)
	return f
}

func TestAdminService_DashboardStats(t *testing.T) {
	f := newAdminFixture()
	f.users.seedUser(&domain.User{Email: "a@uni.edu"})
	f.users.seedUser(&domain.User{Email: "b@uni.edu"})
	f.submissions.seedSubmission(&domain.Submission{ID: "s1", FacultyID: "engineering"})
	f.submissions.seedSubmission(&domain.Submission{
		ID: "s2", FacultyID: "arts", Status: domain.StatusSelected, Selected: true,
	})
	_, _ = f.comments.Insert(context.Background(), &domain.Comment{SubmissionID: "s1", Text: "ok"})

	stats, err := f.svc.DashboardStats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Users != 2 || stats.Submissions != 2 || stats.Selected != 1 || stats.Comments != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestAdminService_FacultyStats_IncludesEmptyFaculties(t *testing.T) {
	f := newAdminFixture()
	f.submissions.seedSubmission(&domain.Submission{ID: "s1", FacultyID: "engineering"})
	f.submissions.seedSubmission(&domain.Submission{
		ID: "s2", FacultyID: "engineering", Status: domain.StatusSelected, Selected: true,
	})

	stats, err := f.svc.FacultyStats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 2 {
		t.Fatalf("every faculty must appear, got %d rows", len(stats))
	}

	byID := make(map[string]int64)
	selectedByID := make(map[string]int64)
	for _, s := range stats {
		byID[s.FacultyID] = s.Submissions
		selectedByID[s.FacultyID] = s.Selected
	}
	if byID["engineering"] != 2 || selectedByID["engineering"] != 1 {
		t.Errorf("engineering counts wrong: %d/%d", byID["engineering"], selectedByID["engineering"])
	}
	if byID["arts"] != 0 {
		t.Errorf("faculty without submissions must report zero, got %d", byID["arts"])
	}
}

func TestAdminService_Settings_UpsertAndGet(t *testing.T) {
	f := newAdminFixture()
	deadline := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.svc.PutSettings(context.Background(), &domain.AcademicSettings{
		AcademicYear:       "2025-2026",
		SubmissionDeadline: deadline,
		FinalEditDeadline:  deadline.AddDate(0, 1, 0),
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := f.svc.GetSettings(context.Background(), "2025-2026")
	if err != nil {
		t.Fatal(err)
	}
	if !got.SubmissionDeadline.Equal(deadline) {
		t.Errorf("deadline round-trip failed: %v", got.SubmissionDeadline)
	}

	// A second put for the same year replaces, not duplicates.
	moved := deadline.AddDate(0, 0, 7)
	if _, err := f.svc.PutSettings(context.Background(), &domain.AcademicSettings{
		AcademicYear:       "2025-2026",
		SubmissionDeadline: moved,
	}); err != nil {
		t.Fatal(err)
	}
	got, _ = f.svc.GetSettings(context.Background(), "2025-2026")
	if !got.SubmissionDeadline.Equal(moved) {
		t.Errorf("upsert must replace the row, got %v", got.SubmissionDeadline)
	}
	if len(f.settings.byYear) != 1 {
		t.Errorf("expected a single settings row, got %d", len(f.settings.byYear))
	}
}

func TestAdminService_GetSettings_FallsBackToLatest(t *testing.T) {
	f := newAdminFixture()
	for _, year := range []string{"2023-2024", "2025-2026", "2024-2025"} {
		_, _ = f.svc.PutSettings(context.Background(), &domain.AcademicSettings{
			AcademicYear:       year,
			SubmissionDeadline: time.Now().UTC().AddDate(1, 0, 0),
		})
	}

	got, err := f.svc.GetSettings(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if got.AcademicYear != "2025-2026" {
		t.Errorf("expected latest year, got %q", got.AcademicYear)
	}
}

func TestAdminService_PutSettings_Validation(t *testing.T) {
	f := newAdminFixture()
	deadline := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.svc.PutSettings(context.Background(), &domain.AcademicSettings{
		SubmissionDeadline: deadline,
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("missing year: expected ErrInvalidInput, got %v", err)
	}

	_, err = f.svc.PutSettings(context.Background(), &domain.AcademicSettings{
		AcademicYear:       "2025-2026",
		SubmissionDeadline: deadline,
		FinalEditDeadline:  deadline.AddDate(0, -1, 0),
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("inverted deadlines: expected ErrInvalidInput, got %v", err)
	}
}

func TestAdminService_GetSettings_NotFound(t *testing.T) {
	f := newAdminFixture()

	if _, err := f.svc.GetSettings(context.Background(), "1999-2000"); !errors.Is(err, domain.ErrSettingsNotFound) {
		t.Errorf("expected ErrSettingsNotFound, got %v", err)
	}
	if _, err := f.svc.GetSettings(context.Background(), ""); !errors.Is(err, domain.ErrSettingsNotFound) {
		t.Errorf("empty store: expected ErrSettingsNotFound, got %v", err)
	}
}
