package handler

import "github.com/unimag/portal/internal/core/ports"

type addCommentRequest struct {
	CommentText string `json:"comment_text" validate:"required"`
}

type selectRequest struct {
	Selected *bool `json:"selected" validate:"required"`
}

type worklistItemResponse struct {
	Submission         submissionResponse `json:"submission"`
	CommentCount       int64              `json:"comment_count"`
	NeedsComment       bool               `json:"needs_comment"`
	NeedsUrgentComment bool               `json:"needs_urgent_comment"`
}

type worklistResponse struct {
	Data       []worklistItemResponse `json:"data"`
	Pagination paginationResponse     `json:"pagination"`
}

func toWorklistResponse(r *ports.WorklistResult) worklistResponse {
	data := make([]worklistItemResponse, len(r.Items))
	for i, item := range r.Items {
		data[i] = worklistItemResponse{
			Submission:         toSubmissionResponse(item.Submission),
			CommentCount:       item.CommentCount,
			NeedsComment:       item.NeedsComment,
			NeedsUrgentComment: item.NeedsUrgentComment,
		}
	}
	return worklistResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}
