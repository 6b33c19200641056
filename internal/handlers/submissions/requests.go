package submissions

// SubmitRequest represents a request to submit an assignment. An absent
// groupId means an individual submission.
type SubmitRequest struct {
	AssignmentID string  `json:"assignmentId" validate:"required,uuid4"`
	GroupID      *string `json:"groupId,omitempty" validate:"omitempty,uuid4"`
}
