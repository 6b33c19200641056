package authz

import (
	"github.com/google/uuid"

	"gitlab.com/amsys-2025.net/internal/domain"
	"gitlab.com/amsys-2025.net/internal/static/errs"
)

// The guard is pure: it checks an already-authenticated principal against
// already-fetched state. Role checks run before any resource lookup so a
// role failure never leaks resource existence.

// RequireRole fails with a forbidden error unless the principal holds the
// given role.
func RequireRole(p domain.Principal, role domain.Role) error {
	if p.Role != role {
		if role == domain.RoleProfessor {
			return errs.ProfessorOnly
		}
		return errs.New(errs.KindForbidden, "access denied")
	}
	return nil
}

// RequireOwner fails with a forbidden error unless the principal is the
// owner of the resource.
func RequireOwner(p domain.Principal, ownerID uuid.UUID) error {
	if p.UserID != ownerID {
		return errs.NotResourceOwner
	}
	return nil
}
