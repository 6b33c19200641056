package authz

import (
	"testing"

	"github.com/google/uuid"

	"gitlab.com/amsys-2025.net/internal/domain"
	"gitlab.com/amsys-2025.net/internal/static/errs"
)

func TestRequireRole(t *testing.T) {
	professor := domain.Principal{UserID: uuid.New(), Role: domain.RoleProfessor}
	student := domain.Principal{UserID: uuid.New(), Role: domain.RoleStudent}

	tests := []struct {
		name    string
		p       domain.Principal
		role    domain.Role
		wantErr error
	}{
		{name: "professor passes professor check", p: professor, role: domain.RoleProfessor},
		{name: "student fails professor check", p: student, role: domain.RoleProfessor, wantErr: errs.ProfessorOnly},
		{name: "student passes student check", p: student, role: domain.RoleStudent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := RequireRole(tt.p, tt.role); err != tt.wantErr {
				t.Errorf("RequireRole() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequireOwner(t *testing.T) {
	owner := uuid.New()

	if err := RequireOwner(domain.Principal{UserID: owner}, owner); err != nil {
		t.Errorf("RequireOwner() owner should pass, got %v", err)
	}
	if err := RequireOwner(domain.Principal{UserID: uuid.New()}, owner); err != errs.NotResourceOwner {
		t.Errorf("RequireOwner() error = %v, want %v", err, errs.NotResourceOwner)
	}
}
