package auth

import "fmt"

// Role is the platform-wide account role. Every route that used to carry its
// own role check is gated by one middleware keyed on this set.
type Role string

const (
	RoleCandidate Role = "CANDIDATE"
	RoleCompany   Role = "COMPANY"
	RoleAdmin     Role = "ADMIN"
)

// ParseRole converts a raw string into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleCandidate, RoleCompany, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Scopes returns the scope set granted to the role.
func (r Role) Scopes() []string {
	return RoleScopes[r]
}
