package ports

import (
	"context"

	"github.com/unimag/portal/internal/core/domain"
)

// SettingsRepository persists the per-year academic settings singleton.
type SettingsRepository interface {
	Get(ctx context.Context, academicYear string) (*domain.AcademicSettings, error)
	// Latest returns the most recent settings row by academic year.
	Latest(ctx context.Context) (*domain.AcademicSettings, error)
	// Upsert replaces the row for the settings' academic year, creating it
	// when absent.
	Upsert(ctx context.Context, s *domain.AcademicSettings) error
}

// FacultyRepository provides read access to the static faculty reference data.
type FacultyRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Faculty, error)
	List(ctx context.Context) ([]domain.Faculty, error)
	// Seed inserts the given faculties when the collection is empty.
	Seed(ctx context.Context, faculties []domain.Faculty) error
}
