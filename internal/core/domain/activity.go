package domain

import "time"

// ActivityAction identifies the kind of event recorded in the audit trail.
type ActivityAction string

const (
	ActionLogin      ActivityAction = "login"
	ActionRegister   ActivityAction = "register"
	ActionSubmission ActivityAction = "submission"
	ActionComment    ActivityAction = "comment"
	ActionSelection  ActivityAction = "selection"
	ActionDownload   ActivityAction = "download"
)

// ActivityEntry is one row of the append-only audit trail. Entries are never
// mutated or deleted.
type ActivityEntry struct {
	ID        string         `json:"id" bson:"_id,omitempty"`
	UserID    string         `json:"user_id" bson:"user_id"`
	Action    ActivityAction `json:"action" bson:"action"`
	Details   string         `json:"details,omitempty" bson:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`
}
