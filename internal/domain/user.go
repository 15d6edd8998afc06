package domain

import "time"

// UserType is the kind of account chosen at registration.
type UserType string

const (
	UserTypeInvestor   UserType = "Investor"
	UserTypeTeacher    UserType = "Teacher"
	UserTypeSuperAdmin UserType = "SuperAdmin"
)

// UserRole is the authorization role carried in user claims.
type UserRole string

const (
	UserRoleSuperAdmin UserRole = "SuperAdmin"
	UserRoleInvestor   UserRole = "Investor"
	UserRoleTeacher    UserRole = "Teacher"
)

// RoleForUserType maps a registration type onto its role. Unknown types become teachers.
func RoleForUserType(t UserType) UserRole {
	switch t {
	case UserTypeSuperAdmin:
		return UserRoleSuperAdmin
	case UserTypeInvestor:
		return UserRoleInvestor
	default:
		return UserRoleTeacher
	}
}

// User is a regular site account (investor, teacher or super admin user).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	UserType     UserType
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
