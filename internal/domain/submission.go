package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission ties an assignment to either a group or an individual
// submitter, with a one-way confirmation step.
type Submission struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	AssignmentID uuid.UUID  `db:"assignment_id" json:"assignmentId"`
	GroupID      *uuid.UUID `db:"group_id" json:"groupId,omitempty"`
	SubmitterID  uuid.UUID  `db:"submitter_id" json:"submitterId"`
	Confirmed    bool       `db:"confirmed" json:"confirmed"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`

	Assignment *AssignmentSummary `db:"-" json:"assignment,omitempty"`
	Group      *GroupSummary      `db:"-" json:"group,omitempty"`
	Submitter  *UserSummary       `db:"-" json:"user,omitempty"`
}

// SubmissionSubject is who a submission is for: exactly one of a group or
// an individual submitter. Constructed once per submit call so the two
// uniqueness branches cannot drift apart.
type SubmissionSubject struct {
	groupID     *uuid.UUID
	submitterID uuid.UUID
}

func GroupSubject(groupID, submitterID uuid.UUID) SubmissionSubject {
	return SubmissionSubject{groupID: &groupID, submitterID: submitterID}
}

func IndividualSubject(submitterID uuid.UUID) SubmissionSubject {
	return SubmissionSubject{submitterID: submitterID}
}

func (s SubmissionSubject) IsGroup() bool {
	return s.groupID != nil
}

func (s SubmissionSubject) GroupID() *uuid.UUID {
	return s.groupID
}

func (s SubmissionSubject) SubmitterID() uuid.UUID {
	return s.submitterID
}

type SubmissionsTable struct {
	ID           string
	AssignmentID string
	GroupID      string
	SubmitterID  string
	Confirmed    string
	CreatedAt    string
}

func GetSubmissionTable() SubmissionsTable {
	return SubmissionsTable{
		ID:           "id",
		AssignmentID: "assignment_id",
		GroupID:      "group_id",
		SubmitterID:  "submitter_id",
		Confirmed:    "confirmed",
		CreatedAt:    "created_at",
	}
}

func (t SubmissionsTable) GetTableName() string {
	return "submissions"
}
