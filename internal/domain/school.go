package domain

import "time"

type School struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Address          string    `json:"address"`
	Description      string    `json:"description,omitempty"`
	AdminID          uint      `json:"admin_id"`
	AdditionalAdmins []User    `json:"additional_admins,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// IsAdministeredBy reports whether userID is the school's primary admin or
// one of its additional admins.
func (s School) IsAdministeredBy(userID uint) bool {
	if s.AdminID == userID {
		return true
	}

	for _, admin := range s.AdditionalAdmins {
		if admin.ID == userID {
			return true
		}
	}

	return false
}
