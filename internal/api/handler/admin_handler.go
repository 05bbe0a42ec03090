package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/unimag/portal/internal/core/domain"
	"github.com/unimag/portal/internal/core/ports"
)

// AdminHandler handles administration and configuration endpoints.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type settingsRequest struct {
	AcademicYear       string    `json:"academic_year"       validate:"required"`
	SubmissionDeadline time.Time `json:"submission_deadline" validate:"required"`
	FinalEditDeadline  time.Time `json:"final_edit_deadline" validate:"required"`
}

type userSummaryResponse struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	FacultyID   string    `json:"faculty_id"`
	Role        string    `json:"role"`
	LastLoginAt time.Time `json:"last_login_at,omitzero"`
}

type listUsersResponse struct {
	Data       []userSummaryResponse `json:"data"`
	Pagination paginationResponse    `json:"pagination"`
}

// DashboardStats handles GET /api/admin/dashboard/stats.
//
// @Summary      Portal-wide totals
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardStats
// @Router       /api/admin/dashboard/stats [get]
func (h *AdminHandler) DashboardStats(c echo.Context) error {
	stats, err := h.service.DashboardStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// FacultyStats handles GET /api/admin/faculties/stats.
//
// @Summary      Per-faculty submission totals
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.FacultyStats
// @Router       /api/admin/faculties/stats [get]
func (h *AdminHandler) FacultyStats(c echo.Context) error {
	stats, err := h.service.FacultyStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// ListUsers handles GET /api/admin/users.
//
// @Summary      List user accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "Page (1-based)"
// @Param        limit  query  int  false  "Page size (max 100)"
// @Success      200  {object}  listUsersResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListUsers(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}

	data := make([]userSummaryResponse, len(result.Items))
	for i, u := range result.Items {
		data[i] = userSummaryResponse{
			ID:          u.ID,
			FirstName:   u.FirstName,
			LastName:    u.LastName,
			Email:       u.Email,
			FacultyID:   u.FacultyID,
			Role:        string(u.Role),
			LastLoginAt: u.LastLoginAt,
		}
	}
	return c.JSON(http.StatusOK, listUsersResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: pageCount(result.Total, result.Limit),
		},
	})
}

// GetSettings handles GET /api/admin/settings.
//
// @Summary      Get academic settings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        academicYear  query  string  false  "Academic year; latest when omitted"
// @Success      200  {object}  domain.AcademicSettings
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/settings [get]
func (h *AdminHandler) GetSettings(c echo.Context) error {
	settings, err := h.service.GetSettings(c.Request().Context(), c.QueryParam("academicYear"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// PutSettings handles PUT /api/admin/settings: upsert keyed by academic year.
//
// @Summary      Replace academic settings
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      settingsRequest  true  "Settings"
// @Success      200   {object}  domain.AcademicSettings
// @Failure      400   {object}  errorResponse
// @Router       /api/admin/settings [put]
func (h *AdminHandler) PutSettings(c echo.Context) error {
	var req settingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	settings, err := h.service.PutSettings(c.Request().Context(), &domain.AcademicSettings{
		AcademicYear:       req.AcademicYear,
		SubmissionDeadline: req.SubmissionDeadline,
		FinalEditDeadline:  req.FinalEditDeadline,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// ListFaculties handles GET /api/faculties: public reference data for the
// registration form.
//
// @Summary      List faculties
// @Tags         faculties
// @Produce      json
// @Success      200  {array}  domain.Faculty
// @Router       /api/faculties [get]
func (h *AdminHandler) ListFaculties(c echo.Context) error {
	faculties, err := h.service.ListFaculties(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, faculties)
}
