package auth

import (
	"crypto/subtle"
	"strings"

	"artvista/models"
)

// StaffCredential is one entry of the fixed staff table.
type StaffCredential struct {
	Password string
	Role     models.Role
	Name     string
}

// StaffTable maps a lower-cased email to its staff credential.
type StaffTable map[string]StaffCredential

// DefaultStaff is the built-in staff table.
var DefaultStaff = StaffTable{
	"manan@gmail.com": {
		Password: "123456",
		Role:     models.RoleAdmin,
		Name:     "Manan Shah",
	},
}

// Lookup finds the credential for email, ignoring case and surrounding space.
func (t StaffTable) Lookup(email string) (StaffCredential, bool) {
	cred, ok := t[normalizeEmail(email)]
	return cred, ok
}

func (c StaffCredential) matches(password string) bool {
	return secureEqual(c.Password, password)
}

func secureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
