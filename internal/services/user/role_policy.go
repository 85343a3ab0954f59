package user

import "errors"

var (
	ErrInvalidRole  = errors.New("invalid role")
	ErrLastAdmin    = errors.New("at least one admin is required")
	ErrOnlyOneAdmin = errors.New("only one admin account is allowed")
)

// CanAssignRole evaluates the single-admin invariant for a role mutation.
// adminCount is the current system-wide number of admin accounts. The check is
// pure; the caller applies the mutation only when this returns nil.
//
// Two rules hold at all times:
//   - demoting the last admin is rejected (the admin count never reaches 0)
//   - promoting a second admin is rejected (the admin count never exceeds 1)
func CanAssignRole(adminCount int, target *User, requested Role) error {
	if !requested.Valid() {
		return ErrInvalidRole
	}

	if target.Role == RoleAdmin && requested != RoleAdmin && adminCount <= 1 {
		return ErrLastAdmin
	}

	if requested == RoleAdmin && target.Role != RoleAdmin && adminCount >= 1 {
		return ErrOnlyOneAdmin
	}

	return nil
}
