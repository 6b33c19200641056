package groups

// CreateGroupRequest represents a request to create a group
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required"`
}

// AddMemberRequest adds a student to a group by email
type AddMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
}
