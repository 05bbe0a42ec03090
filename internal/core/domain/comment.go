package domain

import (
	"errors"
	"time"
)

var ErrEmptyComment = errors.New("comment text is empty")

// Comment is a single review remark on a submission. Comments are append-only:
// they are never edited or deleted once created.
type Comment struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	SubmissionID string    `json:"submission_id" bson:"submission_id"`
	AuthorUserID string    `json:"author_user_id" bson:"author_user_id"`
	Text         string    `json:"text" bson:"text"`
	CommentedAt  time.Time `json:"commented_at" bson:"commented_at"`
	IsRead       bool      `json:"is_read" bson:"is_read"`
}
