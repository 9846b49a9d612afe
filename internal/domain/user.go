package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of platform roles. Free-form role strings from the
// outside world must go through ParseRole so unknown values are rejected
// instead of silently matching nothing.
type Role string

const (
	RoleStudent     Role = "student"
	RoleSpeaker     Role = "speaker"
	RoleSchoolAdmin Role = "school_admin"
	RoleSuperAdmin  Role = "super_admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleSpeaker, RoleSchoolAdmin, RoleSuperAdmin:
		return Role(s), nil
	}

	return "", fmt.Errorf("unknown role %q", s)
}

// In reports whether r is a member of the given allow-list.
func (r Role) In(roles ...Role) bool {
	for _, allowed := range roles {
		if r == allowed {
			return true
		}
	}

	return false
}

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	SchoolID  *uint     `json:"school_id,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
