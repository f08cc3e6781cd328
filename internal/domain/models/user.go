package models

import "time"

const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleMember    = "member"
)

const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

type User struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// ValidRole reports whether s is one of the known roles.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleModerator || s == RoleMember
}

// ValidUserStatus reports whether s is one of the known account states.
func ValidUserStatus(s string) bool {
	return s == UserStatusActive || s == UserStatusSuspended
}
