package auth

// Roles a user can hold. Handlers pass these to RequireRole.
const (
	RoleAdmin   = "ADMIN"
	RoleStaff   = "STAFF"
	RoleStudent = "STUDENT"
)

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleStaff, RoleStudent:
		return true
	}
	return false
}
