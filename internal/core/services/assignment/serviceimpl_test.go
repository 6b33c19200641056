package assignment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/amsys-2025.net/internal/domain"
	"gitlab.com/amsys-2025.net/internal/static/errs"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

type fakeAssignments struct {
	m map[uuid.UUID]*domain.Assignment
}

func newFakeAssignments() *fakeAssignments {
	return &fakeAssignments{m: make(map[uuid.UUID]*domain.Assignment)}
}

func (f *fakeAssignments) Create(ctx context.Context, a *domain.Assignment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	f.m[a.ID] = a
	return nil
}

func (f *fakeAssignments) Get(ctx context.Context, id uuid.UUID) (*domain.Assignment, error) {
	return f.m[id], nil
}

func (f *fakeAssignments) List(ctx context.Context) ([]*domain.Assignment, error) {
	out := make([]*domain.Assignment, 0, len(f.m))
	for _, a := range f.m {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAssignments) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Assignment, error) {
	var out []*domain.Assignment
	for _, a := range f.m {
		if a.CreatorID == creatorID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignments) Update(ctx context.Context, id uuid.UUID, patch domain.AssignmentPatch) (*domain.Assignment, error) {
	a := f.m[id]
	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Description != nil {
		a.Description = *patch.Description
	}
	if patch.DueDate != nil {
		a.DueDate = *patch.DueDate
	}
	if patch.ResourceLink != nil {
		a.ResourceLink = *patch.ResourceLink
	}
	return a, nil
}

func (f *fakeAssignments) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.m, id)
	return nil
}

// submissionExistence answers ExistsForUser from a fixed set and stubs the
// rest of the submission port.
type submissionExistence struct {
	submitted map[uuid.UUID]map[uuid.UUID]bool // assignment -> user
}

func (s *submissionExistence) Create(ctx context.Context, sub *domain.Submission) error { return nil }
func (s *submissionExistence) Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	return nil, nil
}
func (s *submissionExistence) GetBySubject(ctx context.Context, assignmentID uuid.UUID, subject domain.SubmissionSubject) (*domain.Submission, error) {
	return nil, nil
}
func (s *submissionExistence) Confirm(ctx context.Context, id uuid.UUID) (bool, error) {
	return false, nil
}
func (s *submissionExistence) List(ctx context.Context) ([]*domain.Submission, error) {
	return nil, nil
}
func (s *submissionExistence) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Submission, error) {
	return nil, nil
}
func (s *submissionExistence) ListByAssignments(ctx context.Context, assignmentIDs []uuid.UUID) ([]*domain.Submission, error) {
	return nil, nil
}
func (s *submissionExistence) ListVisibleTo(ctx context.Context, userID uuid.UUID) ([]*domain.Submission, error) {
	return nil, nil
}
func (s *submissionExistence) ExistsForUser(ctx context.Context, assignmentID, userID uuid.UUID) (bool, error) {
	return s.submitted[assignmentID][userID], nil
}

func newTestService() (*AssignmentService, *fakeAssignments, *submissionExistence) {
	assignments := newFakeAssignments()
	submissions := &submissionExistence{submitted: make(map[uuid.UUID]map[uuid.UUID]bool)}
	return NewAssignmentService(assignments, submissions, nopLogger{}), assignments, submissions
}

func TestCreateAssignment(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()
	professor := domain.Principal{UserID: uuid.New(), Role: domain.RoleProfessor}
	student := domain.Principal{UserID: uuid.New(), Role: domain.RoleStudent}

	input := CreateInput{
		Title:       "Lab 1",
		Description: "Build a parser",
		DueDate:     time.Now().Add(7 * 24 * time.Hour),
	}

	_, err := svc.Create(ctx, student, input)
	assert.ErrorIs(t, err, errs.ProfessorOnly)

	created, err := svc.Create(ctx, professor, input)
	require.NoError(t, err)
	assert.Equal(t, professor.UserID, created.CreatorID)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestListFlagsSubmitted(t *testing.T) {
	ctx := context.Background()
	svc, assignments, submissions := newTestService()
	professor := domain.Principal{UserID: uuid.New(), Role: domain.RoleProfessor}
	student := domain.Principal{UserID: uuid.New(), Role: domain.RoleStudent}

	done := &domain.Assignment{Title: "done", CreatorID: professor.UserID}
	pending := &domain.Assignment{Title: "pending", CreatorID: professor.UserID}
	require.NoError(t, assignments.Create(ctx, done))
	require.NoError(t, assignments.Create(ctx, pending))
	submissions.submitted[done.ID] = map[uuid.UUID]bool{student.UserID: true}

	listed, err := svc.List(ctx, student)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	for _, a := range listed {
		assert.Equal(t, a.ID == done.ID, a.IsSubmitted, "assignment %s", a.Title)
	}
}

func TestGetAssignment(t *testing.T) {
	ctx := context.Background()
	svc, assignments, _ := newTestService()
	professor := domain.Principal{UserID: uuid.New(), Role: domain.RoleProfessor}
	student := domain.Principal{UserID: uuid.New(), Role: domain.RoleStudent}

	a := &domain.Assignment{Title: "Lab 1", CreatorID: professor.UserID}
	require.NoError(t, assignments.Create(ctx, a))

	got, err := svc.Get(ctx, student, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = svc.Get(ctx, student, uuid.New())
	assert.ErrorIs(t, err, errs.AssignmentNotFound)
}

func TestUpdateAssignment(t *testing.T) {
	ctx := context.Background()
	svc, assignments, _ := newTestService()
	owner := domain.Principal{UserID: uuid.New(), Role: domain.RoleProfessor}
	rival := domain.Principal{UserID: uuid.New(), Role: domain.RoleProfessor}

	a := &domain.Assignment{Title: "Lab 1", CreatorID: owner.UserID}
	require.NoError(t, assignments.Create(ctx, a))

	newTitle := "Lab 1 (revised)"
	_, err := svc.Update(ctx, rival, a.ID, domain.AssignmentPatch{Title: &newTitle})
	assert.ErrorIs(t, err, errs.NotResourceOwner)

	updated, err := svc.Update(ctx, owner, a.ID, domain.AssignmentPatch{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)

	// an empty patch is a no-op, not an error
	same, err := svc.Update(ctx, owner, a.ID, domain.AssignmentPatch{})
	require.NoError(t, err)
	assert.Equal(t, newTitle, same.Title)
}

func TestDeleteAssignment(t *testing.T) {
	ctx := context.Background()
	svc, assignments, _ := newTestService()
	owner := domain.Principal{UserID: uuid.New(), Role: domain.RoleProfessor}
	student := domain.Principal{UserID: uuid.New(), Role: domain.RoleStudent}

	a := &domain.Assignment{Title: "Lab 1", CreatorID: owner.UserID}
	require.NoError(t, assignments.Create(ctx, a))

	err := svc.Delete(ctx, student, a.ID)
	assert.ErrorIs(t, err, errs.ProfessorOnly)

	require.NoError(t, svc.Delete(ctx, owner, a.ID))
	_, err = svc.Get(ctx, owner, a.ID)
	assert.ErrorIs(t, err, errs.AssignmentNotFound)
}
