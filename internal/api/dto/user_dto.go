package dto

import (
	"time"

	"github.com/spec-kit/caelum-portal/internal/domain"
)

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	Name     string          `json:"name" form:"name" validate:"min=2"`
	Email    string          `json:"email" form:"email" validate:"email"`
	Password string          `json:"password" form:"password" validate:"min=8,bcrypt_len,password_strength"`
	UserType domain.UserType `json:"userType" form:"userType" validate:"oneof=Investor Teacher SuperAdmin"`
}

func (UserRegisterRequest) validationMessages() map[string]string {
	return map[string]string{
		"name|min":                   "Name must be at least 2 characters",
		"email|email":                "Invalid email address",
		"password|min":               "Password must be at least 8 characters",
		"password|bcrypt_len":        "Password must be at most 72 characters",
		"password|password_strength": "Password must contain at least one uppercase letter, one lowercase letter, and one number",
		"userType|oneof":             "User type must be one of Investor, Teacher, SuperAdmin",
	}
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email" form:"email" validate:"email"`
	Password string `json:"password" form:"password" validate:"min=6"`
}

func (UserLoginRequest) validationMessages() map[string]string {
	return loginMessages
}

var loginMessages = map[string]string{
	"email|email":  "Invalid email address",
	"password|min": "Password must be at least 6 characters",
}

// UserResponse is a user record without its password hash.
type UserResponse struct {
	UserID    string          `json:"userId"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	UserType  domain.UserType `json:"userType"`
	Role      domain.UserRole `json:"role"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NewUserResponse strips the password hash from user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		UserType:  user.UserType,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// UserAuthResult is returned by register and login.
type UserAuthResult struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
