package domain

import (
	"errors"
	"time"
)

// SubmissionStatus represents the review state of a submission.
type SubmissionStatus string

const (
	StatusSubmitted SubmissionStatus = "submitted"
	StatusSelected  SubmissionStatus = "selected"
	StatusRejected  SubmissionStatus = "rejected"
)

// UrgentCommentWindow is how long after submission an uncommented piece is
// considered urgent on the coordinator worklist.
const UrgentCommentWindow = 14 * 24 * time.Hour

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[SubmissionStatus][]SubmissionStatus{
	StatusSubmitted: {StatusSelected, StatusRejected},
	StatusSelected:  {StatusSubmitted, StatusRejected},
	StatusRejected:  {StatusSubmitted, StatusSelected},
}

var ErrSubmissionNotFound = errors.New("submission not found")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrTermsNotAccepted = errors.New("terms must be accepted")
var ErrDeadlinePassed = errors.New("submission deadline has passed")
var ErrInvalidInput = errors.New("invalid input")

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s SubmissionStatus) CanTransitionTo(next SubmissionStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Submission is the core aggregate of the portal: one uploaded article or
// image, owned by a student, reviewed by the coordinator of its faculty.
type Submission struct {
	ID            string           `json:"id" bson:"_id,omitempty"`
	OwnerUserID   string           `json:"owner_user_id" bson:"owner_user_id"`
	FacultyID     string           `json:"faculty_id" bson:"faculty_id"`
	Title         string           `json:"title" bson:"title"`
	Description   string           `json:"description,omitempty" bson:"description,omitempty"`
	FilePath      string           `json:"file_path" bson:"file_path"`
	FileType      string           `json:"file_type" bson:"file_type"`
	AcademicYear  string           `json:"academic_year" bson:"academic_year"`
	SubmittedAt   time.Time        `json:"submitted_at" bson:"submitted_at"`
	Status        SubmissionStatus `json:"status" bson:"status"`
	Selected      bool             `json:"selected" bson:"selected"`
	TermsAccepted bool             `json:"terms_accepted" bson:"terms_accepted"`
}

// ApplySelection toggles the publication selection flag, keeping the
// selected/status invariant: selected=true means status=selected, and
// deselecting returns the submission to submitted.
func (s *Submission) ApplySelection(selected bool) error {
	next := StatusSubmitted
	if selected {
		next = StatusSelected
	}
	if s.Status != next && !s.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	s.Selected = selected
	s.Status = next
	return nil
}

// Reject moves the submission to rejected and clears the selection flag.
func (s *Submission) Reject() error {
	if s.Status != StatusRejected && !s.Status.CanTransitionTo(StatusRejected) {
		return ErrInvalidTransition
	}
	s.Selected = false
	s.Status = StatusRejected
	return nil
}

// NeedsComment reports whether the submission has no review comments yet.
func NeedsComment(commentCount int64) bool {
	return commentCount == 0
}

// NeedsUrgentComment reports whether the submission is uncommented and still
// inside the urgent window. The boundary is exclusive: exactly 14 days old is
// no longer urgent.
func (s *Submission) NeedsUrgentComment(commentCount int64, now time.Time) bool {
	return NeedsComment(commentCount) && now.Sub(s.SubmittedAt) < UrgentCommentWindow
}
