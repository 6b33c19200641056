package domain

import (
	"time"

	"github.com/google/uuid"
)

type Assignment struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	DueDate      time.Time `db:"due_date" json:"dueDate"`
	ResourceLink string    `db:"resource_link" json:"resourceLink"`
	CreatorID    uuid.UUID `db:"creator_id" json:"creatorId"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`

	// IsSubmitted is computed per caller on list/detail reads, never stored.
	IsSubmitted bool `db:"-" json:"isSubmitted"`
}

// AssignmentPatch carries the updatable fields; nil means leave unchanged.
type AssignmentPatch struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	ResourceLink *string
}

func (p AssignmentPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil && p.ResourceLink == nil
}

// AssignmentSummary is the shape joined into submission payloads.
type AssignmentSummary struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	DueDate      time.Time `db:"due_date" json:"dueDate"`
	ResourceLink string    `db:"resource_link" json:"resourceLink,omitempty"`
}

type AssignmentsTable struct {
	ID           string
	Title        string
	Description  string
	DueDate      string
	ResourceLink string
	CreatorID    string
	CreatedAt    string
}

func GetAssignmentTable() AssignmentsTable {
	return AssignmentsTable{
		ID:           "id",
		Title:        "title",
		Description:  "description",
		DueDate:      "due_date",
		ResourceLink: "resource_link",
		CreatorID:    "creator_id",
		CreatedAt:    "created_at",
	}
}

func (t AssignmentsTable) GetTableName() string {
	return "assignments"
}
