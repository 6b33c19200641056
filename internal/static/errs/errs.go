package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error so the HTTP layer can map it to a status
// code without inspecting message strings.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindValidation
	KindConflict
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal for anything that is not
// an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

var (
	TokenMissing       = New(KindUnauthenticated, "token missing")
	InvalidToken       = New(KindUnauthenticated, "invalid token")
	TokenRevoked       = New(KindUnauthenticated, "token revoked")
	InvalidCredentials = New(KindUnauthenticated, "invalid credentials")

	ProfessorOnly    = New(KindForbidden, "access denied. This is a protected route for professors only")
	NotResourceOwner = New(KindForbidden, "you are not authorized to modify this resource")
	NotGroupMember   = New(KindForbidden, "you are not a member of this group")
	NotGroupCreator  = New(KindForbidden, "only group creator can perform this action")

	UserNotFound       = New(KindNotFound, "user not found")
	AssignmentNotFound = New(KindNotFound, "assignment not found")
	GroupNotFound      = New(KindNotFound, "group not found")
	SubmissionNotFound = New(KindNotFound, "submission not found")

	UserExists          = New(KindConflict, "user already exists")
	AlreadySubmitted    = New(KindConflict, "submission already exists")
	AlreadyConfirmed    = New(KindConflict, "submission already confirmed")
	AlreadyMember       = New(KindConflict, "user is already a member of this group")
	CannotRemoveCreator = New(KindConflict, "cannot remove group creator")
	GroupHasSubmissions = New(KindConflict, "cannot delete a group that has submissions")

	MissingFields   = New(KindValidation, "please provide all fields")
	StudentsOnly    = New(KindValidation, "only students can be added to groups")
	EmailRequired   = New(KindValidation, "email is required")
	GeneratingToken = New(KindInternal, "error generating token")
	InternalError   = New(KindInternal, "internal server error")
)
