package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAssignRole_RejectsInvalidRole(t *testing.T) {
	target := &User{Role: RoleEmployee}

	err := CanAssignRole(1, target, Role("superuser"))
	assert.ErrorIs(t, err, ErrInvalidRole)

	err = CanAssignRole(1, target, Role(""))
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestCanAssignRole_BlocksDemotingLastAdmin(t *testing.T) {
	target := &User{Role: RoleAdmin}

	err := CanAssignRole(1, target, RoleEmployee)
	assert.ErrorIs(t, err, ErrLastAdmin)

	err = CanAssignRole(0, target, RoleEmployee)
	assert.ErrorIs(t, err, ErrLastAdmin)
}

func TestCanAssignRole_BlocksSecondAdmin(t *testing.T) {
	target := &User{Role: RoleEmployee}

	err := CanAssignRole(1, target, RoleAdmin)
	assert.ErrorIs(t, err, ErrOnlyOneAdmin)
}

func TestCanAssignRole_AllowsNoOpAssignments(t *testing.T) {
	// Re-asserting the role an account already holds is always fine.
	admin := &User{Role: RoleAdmin}
	assert.NoError(t, CanAssignRole(1, admin, RoleAdmin))

	employee := &User{Role: RoleEmployee}
	assert.NoError(t, CanAssignRole(1, employee, RoleEmployee))
}

func TestCanAssignRole_AllowsPromotionWhenNoAdminExists(t *testing.T) {
	target := &User{Role: RoleEmployee}

	assert.NoError(t, CanAssignRole(0, target, RoleAdmin))
}
