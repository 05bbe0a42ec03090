package domain

import (
	"errors"
	"time"
)

var ErrSettingsNotFound = errors.New("academic settings not found")

// AcademicSettings is the singleton-per-year configuration record. An upsert
// keyed by academic year replaces the existing row.
type AcademicSettings struct {
	AcademicYear       string    `json:"academic_year" bson:"_id"`
	SubmissionDeadline time.Time `json:"submission_deadline" bson:"submission_deadline"`
	FinalEditDeadline  time.Time `json:"final_edit_deadline" bson:"final_edit_deadline"`
}

// SubmissionOpen reports whether new submissions are still accepted at now.
// The deadline instant itself is closed: submitting at exactly the deadline
// fails.
func (s *AcademicSettings) SubmissionOpen(now time.Time) bool {
	return now.Before(s.SubmissionDeadline)
}
