package models

import "time"

// Project groups credentials and usage data under a single named workspace
// owned by one account. Deleting a project cascades to every credential
// scoped to it (enforced at the storage layer with a foreign key).
type Project struct {
	// ID is the internal unique identifier of the project.
	ID int64 `json:"id"`

	// AccountID is the owning account. Ownership is checked before any
	// project-scoped credential operation.
	AccountID string `json:"-"`

	// Name is the display name of the project.
	Name string `json:"name"`

	// Description is an optional free-form note.
	Description string `json:"description,omitempty"`

	// CreatedAt is when the project was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Project model.
func (p Project) TableName() string {
	return "projects"
}
