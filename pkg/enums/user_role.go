package enums

import "fmt"

// UserRole is the account-level permission role.
type UserRole string

const (
	UserRoleAdmin     UserRole = "ADMIN"
	UserRoleModerator UserRole = "MODERATOR"
	UserRoleUser      UserRole = "USER"
)

var validUserRoles = []UserRole{
	UserRoleAdmin,
	UserRoleModerator,
	UserRoleUser,
}

// Permission names a capability granted to one or more roles.
type Permission string

const (
	PermissionWatch          Permission = "watch"
	PermissionManageProfiles Permission = "manage_profiles"
	PermissionModerate       Permission = "moderate"
	PermissionManageCatalog  Permission = "manage_catalog"
	PermissionManageUsers    Permission = "manage_users"
)

var rolePermissions = map[UserRole][]Permission{
	UserRoleUser: {
		PermissionWatch,
		PermissionManageProfiles,
	},
	UserRoleModerator: {
		PermissionWatch,
		PermissionManageProfiles,
		PermissionModerate,
	},
	UserRoleAdmin: {
		PermissionWatch,
		PermissionManageProfiles,
		PermissionModerate,
		PermissionManageCatalog,
		PermissionManageUsers,
	},
}

// AllUserRoles returns every known role.
func AllUserRoles() []UserRole {
	return append([]UserRole(nil), validUserRoles...)
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known UserRole.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// HasPermission reports whether the role grants p. Unknown roles grant nothing.
func (r UserRole) HasPermission(p Permission) bool {
	for _, granted := range rolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
