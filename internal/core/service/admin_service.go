package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/unimag/portal/internal/core/domain"
	"github.com/unimag/portal/internal/core/ports"
)

// AdminService implements the administration and configuration operations.
type AdminService struct {
	users       ports.UserRepository
	submissions ports.SubmissionRepository
	comments    ports.CommentRepository
	faculties   ports.FacultyRepository
	settings    ports.SettingsRepository
	log         zerolog.Logger
}

func NewAdminService(
	users ports.UserRepository,
	submissions ports.SubmissionRepository,
	comments ports.CommentRepository,
	faculties ports.FacultyRepository,
	settings ports.SettingsRepository,
	log zerolog.Logger,
) *AdminService {
	return &AdminService{
		users:       users,
		submissions: submissions,
		comments:    comments,
		faculties:   faculties,
		settings:    settings,
		log:         log,
	}
}

func (s *AdminService) DashboardStats(ctx context.Context) (*ports.DashboardStats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	submissions, err := s.submissions.Count(ctx)
	if err != nil {
		return nil, err
	}
	selected, err := s.submissions.CountSelected(ctx)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.DashboardStats{
		Users:       users,
		Submissions: submissions,
		Selected:    selected,
		Comments:    comments,
	}, nil
}

func (s *AdminService) FacultyStats(ctx context.Context) ([]ports.FacultyStats, error) {
	faculties, err := s.faculties.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.submissions.StatsByFaculty(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]ports.FacultyCount, len(counts))
	for _, c := range counts {
		byID[c.FacultyID] = c
	}

	// Every faculty appears in the result, including ones with no submissions.
	stats := make([]ports.FacultyStats, len(faculties))
	for i, f := range faculties {
		c := byID[f.ID]
		stats[i] = ports.FacultyStats{
			FacultyID:   f.ID,
			FacultyName: f.Name,
			Submissions: c.Submissions,
			Selected:    c.Selected,
		}
	}
	return stats, nil
}

func (s *AdminService) ListUsers(ctx context.Context, page, limit int) (*ports.UserListResult, error) {
	page, limit = normalizePage(page, limit)
	users, total, err := s.users.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return &ports.UserListResult{Items: users, Total: total, Page: page, Limit: limit}, nil
}

func (s *AdminService) GetSettings(ctx context.Context, academicYear string) (*domain.AcademicSettings, error) {
	if academicYear == "" {
		return s.settings.Latest(ctx)
	}
	return s.settings.Get(ctx, academicYear)
}

func (s *AdminService) PutSettings(ctx context.Context, settings *domain.AcademicSettings) (*domain.AcademicSettings, error) {
	if settings.AcademicYear == "" {
		return nil, fmt.Errorf("%w: academic year is required", domain.ErrInvalidInput)
	}
	if !settings.FinalEditDeadline.IsZero() && settings.FinalEditDeadline.Before(settings.SubmissionDeadline) {
		return nil, fmt.Errorf("%w: final edit deadline precedes submission deadline", domain.ErrInvalidInput)
	}

	if err := s.settings.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	s.log.Info().Str("academic_year", settings.AcademicYear).Msg("academic settings updated")
	return settings, nil
}

func (s *AdminService) ListFaculties(ctx context.Context) ([]domain.Faculty, error) {
	return s.faculties.List(ctx)
}
