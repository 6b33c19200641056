package assignments

// CreateAssignmentRequest represents a request to create an assignment
type CreateAssignmentRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	DueDate      string `json:"dueDate" validate:"required,datetime=2006-01-02"`
	ResourceLink string `json:"resourceLink" validate:"required,url"`
}

// UpdateAssignmentRequest carries a partial update; absent fields stay
// unchanged
type UpdateAssignmentRequest struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	DueDate      *string `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ResourceLink *string `json:"resourceLink,omitempty" validate:"omitempty,url"`
}
