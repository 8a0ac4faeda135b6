package models

// Role is the closed set of account roles. Access decisions switch on this
// type instead of comparing raw strings per handler.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// ParseRole maps arbitrary input to a known role. Anything outside the
// known set becomes RoleEmployee; signup relies on this downgrade.
func ParseRole(value string) Role {
	switch Role(value) {
	case RoleEmployee, RoleAdmin:
		return Role(value)
	default:
		return RoleEmployee
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleAdmin
}
