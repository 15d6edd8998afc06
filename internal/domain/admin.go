package domain

import "time"

// AdminUser is an operator of the admin console. Admins live apart from regular users.
type AdminUser struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
