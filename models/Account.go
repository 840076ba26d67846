package models

import "time"

// Role identifies what a signed-in identity is allowed to do in the gallery.
type Role string

const (
	RoleVisitor Role = "visitor"
	RoleArtist  Role = "artist"
	RoleCurator Role = "curator"
	RoleAdmin   Role = "admin"
)

// ValidRole reports whether the role belongs to the fixed role set.
func ValidRole(role Role) bool {
	switch role {
	case RoleVisitor, RoleArtist, RoleCurator, RoleAdmin:
		return true
	}
	return false
}

// CanCurate reports whether the role may approve artworks and manage exhibitions.
func (r Role) CanCurate() bool {
	return r == RoleCurator || r == RoleAdmin
}

// Account is a self-registered entry of the registered-users table.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	PasswordHash string    `json:"passwordHash"`
}

// Session returns the password-free projection of the account.
func (a Account) Session() Session {
	return Session{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
}
