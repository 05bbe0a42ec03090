package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/unimag/portal/internal/api/metrics"
	"github.com/unimag/portal/internal/core/ports"
)

// ReviewHandler handles the coordinator review workflow.
type ReviewHandler struct {
	reviews     ports.ReviewService
	submissions ports.SubmissionService
}

func NewReviewHandler(reviews ports.ReviewService, submissions ports.SubmissionService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, submissions: submissions}
}

// Worklist handles GET /api/coordinator/submissions: the urgency-ordered
// review queue for the coordinator's faculty.
//
// @Summary      Coordinator worklist
// @Tags         coordinator
// @Produce      json
// @Security     BearerAuth
// @Param        academicYear  query  string  false  "Academic year filter"
// @Param        search        query  string  false  "Free-text search"
// @Param        page          query  int     false  "Page (1-based)"
// @Param        limit         query  int     false  "Page size (max 100)"
// @Success      200  {object}  worklistResponse
// @Router       /api/coordinator/submissions [get]
func (h *ReviewHandler) Worklist(c echo.Context) error {
	reviewer, err := ctxReviewer(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.reviews.Worklist(c.Request().Context(), ports.WorklistInput{
		Reviewer:     reviewer,
		AcademicYear: c.QueryParam("academicYear"),
		Search:       strings.TrimSpace(c.QueryParam("search")),
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWorklistResponse(result))
}

// Get handles GET /api/coordinator/submissions/:id: submission plus its
// comments, faculty-scoped.
//
// @Summary      Get a faculty submission with comments
// @Tags         coordinator
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Submission id"
// @Success      200  {object}  submissionDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/coordinator/submissions/{id} [get]
func (h *ReviewHandler) Get(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	detail, err := h.submissions.Get(c.Request().Context(), c.Param("id"), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDetailResponse(detail))
}

// AddComment handles POST /api/coordinator/submissions/:id/comments.
//
// @Summary      Add a review comment
// @Tags         coordinator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Submission id"
// @Param        body  body      addCommentRequest  true  "Comment"
// @Success      201   {object}  commentResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/coordinator/submissions/{id}/comments [post]
func (h *ReviewHandler) AddComment(c echo.Context) error {
	reviewer, err := ctxReviewer(c)
	if err != nil {
		return err
	}

	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	comment, err := h.reviews.AddComment(c.Request().Context(), c.Param("id"), reviewer, req.CommentText)
	if err != nil {
		return err
	}

	metrics.CommentsTotal.Inc()
	return c.JSON(http.StatusCreated, commentResponse{
		ID:           comment.ID,
		SubmissionID: comment.SubmissionID,
		AuthorUserID: comment.AuthorUserID,
		Text:         comment.Text,
		CommentedAt:  comment.CommentedAt,
		IsRead:       comment.IsRead,
	})
}

// Select handles PATCH /api/coordinator/submissions/:id/select.
//
// @Summary      Toggle the publication selection flag
// @Tags         coordinator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Submission id"
// @Param        body  body      selectRequest  true  "Selection flag"
// @Success      200   {object}  submissionResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/coordinator/submissions/{id}/select [patch]
func (h *ReviewHandler) Select(c echo.Context) error {
	reviewer, err := ctxReviewer(c)
	if err != nil {
		return err
	}

	var req selectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Selected == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "selected is required")
	}

	submission, err := h.reviews.Select(c.Request().Context(), c.Param("id"), reviewer, *req.Selected)
	if err != nil {
		return err
	}

	decision := "deselected"
	if *req.Selected {
		decision = "selected"
	}
	metrics.SelectionsTotal.WithLabelValues(decision).Inc()
	return c.JSON(http.StatusOK, toSubmissionResponse(submission))
}

// Reject handles PATCH /api/coordinator/submissions/:id/reject.
//
// @Summary      Reject a submission
// @Tags         coordinator
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Submission id"
// @Success      200  {object}  submissionResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/coordinator/submissions/{id}/reject [patch]
func (h *ReviewHandler) Reject(c echo.Context) error {
	reviewer, err := ctxReviewer(c)
	if err != nil {
		return err
	}

	submission, err := h.reviews.Reject(c.Request().Context(), c.Param("id"), reviewer)
	if err != nil {
		return err
	}

	metrics.SelectionsTotal.WithLabelValues("rejected").Inc()
	return c.JSON(http.StatusOK, toSubmissionResponse(submission))
}
