package domain

import "errors"

var ErrFacultyNotFound = errors.New("faculty not found")

// Faculty is static reference data; read-only from the workflow's view.
type Faculty struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}
