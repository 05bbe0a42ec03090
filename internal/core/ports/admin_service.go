package ports

import (
	"context"

	"github.com/unimag/portal/internal/core/domain"
)

// DashboardStats are the portal-wide totals shown on the admin dashboard.
type DashboardStats struct {
	Users       int64 `json:"users"`
	Submissions int64 `json:"submissions"`
	Selected    int64 `json:"selected"`
	Comments    int64 `json:"comments"`
}

// FacultyStats are the per-faculty submission totals.
type FacultyStats struct {
	FacultyID   string `json:"faculty_id"`
	FacultyName string `json:"faculty_name"`
	Submissions int64  `json:"submissions"`
	Selected    int64  `json:"selected"`
}

// UserListResult is a page of user accounts.
type UserListResult struct {
	Items []*domain.User
	Total int64
	Page  int
	Limit int
}

// AdminService defines the administration and configuration operations.
type AdminService interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	FacultyStats(ctx context.Context) ([]FacultyStats, error)
	ListUsers(ctx context.Context, page, limit int) (*UserListResult, error)
	GetSettings(ctx context.Context, academicYear string) (*domain.AcademicSettings, error)
	PutSettings(ctx context.Context, s *domain.AcademicSettings) (*domain.AcademicSettings, error)
	ListFaculties(ctx context.Context) ([]domain.Faculty, error)
}
