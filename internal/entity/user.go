package entity

import (
	"strings"
	"time"
)

// Role controls what a user may do in the contribution workflow.
type Role string

const (
	RoleContributor Role = "contributor"
	RoleReviewer    Role = "reviewer"
	RoleAdmin       Role = "admin"
)

// User represents an account in the collaborative dictionary.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	// Dialects a contributor may create or move entries into. Empty means
	// no restriction for reviewers/admins, no grants for contributors.
	Dialects  []string  `json:"dialects,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate validates the user entity.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrInvalidUserName
	}
	if strings.TrimSpace(u.Email) == "" || !strings.Contains(u.Email, "@") {
		return ErrInvalidUserEmail
	}
	return nil
}

// CanReview reports whether the user may approve or reject entries.
func (u *User) CanReview() bool {
	return u != nil && (u.Role == RoleReviewer || u.Role == RoleAdmin)
}

// CanContributeToDialect reports whether the user may write entries for the
// named dialect. Reviewers and admins are unrestricted.
func (u *User) CanContributeToDialect(name string) bool {
	if u == nil {
		return false
	}
	if u.CanReview() {
		return true
	}
	name = strings.TrimSpace(name)
	for _, d := range u.Dialects {
		if strings.EqualFold(strings.TrimSpace(d), name) {
			return true
		}
	}
	return false
}

// ParseRole converts an arbitrary string into a supported Role value.
func ParseRole(s string) Role {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "admin":
		return RoleAdmin
	case "reviewer":
		return RoleReviewer
	default:
		return RoleContributor
	}
}
