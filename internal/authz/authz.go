// Package authz centralizes the role/ownership checks that guard mutating
// and detail-fetch operations, so individual handlers do not grow their own
// variations.
package authz

import (
	"strings"

	"boardapi/internal/domain"
	"boardapi/internal/domain/models"
)

// Principal is the authenticated actor behind a request.
type Principal struct {
	ID   int64
	Role string
}

// Elevated reports whether the principal may bypass ownership checks.
func (p Principal) Elevated() bool {
	role := strings.ToLower(strings.TrimSpace(p.Role))
	return role == models.RoleAdmin || role == models.RoleModerator
}

// Admin reports whether the principal holds the admin role.
func (p Principal) Admin() bool {
	return strings.EqualFold(strings.TrimSpace(p.Role), models.RoleAdmin)
}

// RequireRole permits only principals whose role is in the allowed set.
func RequireRole(p Principal, allowed ...string) error {
	role := strings.ToLower(strings.TrimSpace(p.Role))
	for _, a := range allowed {
		if role == strings.ToLower(strings.TrimSpace(a)) {
			return nil
		}
	}
	return domain.ForbiddenError{Msg: "role not permitted"}
}

// RequireOwnerOrElevated permits the record owner and elevated roles. It runs
// before any sensitive read or mutation; callers short-circuit on error.
func RequireOwnerOrElevated(p Principal, ownerID int64) error {
	if p.Elevated() {
		return nil
	}
	if p.ID != 0 && p.ID == ownerID {
		return nil
	}
	return domain.ForbiddenError{Msg: "not the owner of this record"}
}

// RequireAdmin permits only admins.
func RequireAdmin(p Principal) error {
	return RequireRole(p, models.RoleAdmin)
}

// RequireElevated permits admins and moderators.
func RequireElevated(p Principal) error {
	return RequireRole(p, models.RoleAdmin, models.RoleModerator)
}
