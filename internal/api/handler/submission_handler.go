package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/unimag/portal/internal/api/metrics"
	"github.com/unimag/portal/internal/core/ports"
)

// SubmissionHandler handles student-facing submission operations and the
// shared role-scoped reads.
type SubmissionHandler struct {
	service ports.SubmissionService
}

func NewSubmissionHandler(service ports.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// Create handles POST /api/submissions: multipart upload of a new piece.
//
// @Summary      Submit an article or image
// @Tags         submissions
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file           formData  file    true   "Article or image file (PDF/DOC/DOCX/JPEG/PNG, max 10MB)"
// @Param        title          formData  string  true   "Title"
// @Param        description    formData  string  false  "Description"
// @Param        academic_year  formData  string  true   "Academic year, e.g. 2024-2025"
// @Param        terms_accepted formData  bool    true   "Terms acceptance"
// @Success      201  {object}  submissionResponse
// @Failure      400  {object}  errorResponse
// @Failure      413  {object}  errorResponse
// @Failure      415  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/submissions [post]
func (h *SubmissionHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer src.Close()

	terms, _ := strconv.ParseBool(c.FormValue("terms_accepted"))

	submission, err := h.service.Create(c.Request().Context(), ports.CreateSubmissionInput{
		OwnerUserID:   caller.UserID,
		Title:         c.FormValue("title"),
		Description:   c.FormValue("description"),
		AcademicYear:  c.FormValue("academic_year"),
		TermsAccepted: terms,
		File: &ports.FileUpload{
			Name:        fileHeader.Filename,
			ContentType: fileHeader.Header.Get(echo.HeaderContentType),
			Size:        fileHeader.Size,
			Reader:      src,
		},
	})
	if err != nil {
		return err
	}

	metrics.SubmissionsCreatedTotal.WithLabelValues(submission.FacultyID).Inc()
	return c.JSON(http.StatusCreated, toSubmissionResponse(submission))
}

// List handles GET /api/submissions: role-scoped listing.
//
// @Summary      List submissions visible to the caller
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        faculty       query  string  false  "Explicit faculty filter (admin only)"
// @Param        academicYear  query  string  false  "Academic year filter"
// @Param        search        query  string  false  "Free-text search over title and description"
// @Param        page          query  int     false  "Page (1-based)"
// @Param        limit         query  int     false  "Page size (max 100)"
// @Success      200  {object}  listSubmissionsResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/submissions [get]
func (h *SubmissionHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListSubmissionsInput{
		Caller:       caller,
		FacultyID:    c.QueryParam("faculty"),
		AcademicYear: c.QueryParam("academicYear"),
		Search:       strings.TrimSpace(c.QueryParam("search")),
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return err
	}

	data := make([]submissionResponse, len(result.Items))
	for i, s := range result.Items {
		data[i] = toSubmissionResponse(s)
	}
	return c.JSON(http.StatusOK, listSubmissionsResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Get handles GET /api/submissions/:id.
//
// @Summary      Get a submission with its comments
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Submission id"
// @Success      200  {object}  submissionDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/submissions/{id} [get]
func (h *SubmissionHandler) Get(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), c.Param("id"), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDetailResponse(detail))
}

// Download handles GET /api/submissions/:id/file: streams the stored file.
//
// @Summary      Download a submission's file
// @Tags         submissions
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id   path      string  true  "Submission id"
// @Success      200  {file}    file
// @Failure      404  {object}  errorResponse
// @Router       /api/submissions/{id}/file [get]
func (h *SubmissionHandler) Download(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	dl, err := h.service.Download(c.Request().Context(), c.Param("id"), caller)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, dl.ContentType)
	return c.Attachment(dl.AbsPath, dl.FileName)
}
