package handler

import (
	"time"

	"github.com/unimag/portal/internal/core/domain"
	"github.com/unimag/portal/internal/core/ports"
)

// Response-only types owned by the transport layer. These are intentionally
// separate from domain types so the JSON contract is not coupled to internal
// changes.

type submissionResponse struct {
	ID           string    `json:"id"`
	OwnerUserID  string    `json:"owner_user_id"`
	FacultyID    string    `json:"faculty_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	FileType     string    `json:"file_type"`
	AcademicYear string    `json:"academic_year"`
	SubmittedAt  time.Time `json:"submitted_at"`
	Status       string    `json:"status"`
	Selected     bool      `json:"selected"`
}

type commentResponse struct {
	ID           string    `json:"id"`
	SubmissionID string    `json:"submission_id"`
	AuthorUserID string    `json:"author_user_id"`
	Text         string    `json:"text"`
	CommentedAt  time.Time `json:"commented_at"`
	IsRead       bool      `json:"is_read"`
}

type submissionDetailResponse struct {
	Submission         submissionResponse `json:"submission"`
	Comments           []commentResponse  `json:"comments"`
	NeedsComment       bool               `json:"needs_comment"`
	NeedsUrgentComment bool               `json:"needs_urgent_comment"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func pageCount(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

type listSubmissionsResponse struct {
	Data       []submissionResponse `json:"data"`
	Pagination paginationResponse   `json:"pagination"`
}

func toSubmissionResponse(s *domain.Submission) submissionResponse {
	return submissionResponse{
		ID:           s.ID,
		OwnerUserID:  s.OwnerUserID,
		FacultyID:    s.FacultyID,
		Title:        s.Title,
		Description:  s.Description,
		FileType:     s.FileType,
		AcademicYear: s.AcademicYear,
		SubmittedAt:  s.SubmittedAt,
		Status:       string(s.Status),
		Selected:     s.Selected,
	}
}

func toCommentResponses(comments []domain.Comment) []commentResponse {
	out := make([]commentResponse, len(comments))
	for i, cm := range comments {
		out[i] = commentResponse{
			ID:           cm.ID,
			SubmissionID: cm.SubmissionID,
			AuthorUserID: cm.AuthorUserID,
			Text:         cm.Text,
			CommentedAt:  cm.CommentedAt,
			IsRead:       cm.IsRead,
		}
	}
	return out
}

func toDetailResponse(d *ports.SubmissionDetail) submissionDetailResponse {
	return submissionDetailResponse{
		Submission:         toSubmissionResponse(d.Submission),
		Comments:           toCommentResponses(d.Comments),
		NeedsComment:       d.NeedsComment,
		NeedsUrgentComment: d.NeedsUrgentComment,
	}
}
