package dto

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/caelum-portal/pkg/util"
)

func validationMessage(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, de.HTTPStatus)
	assert.Equal(t, apperrors.LabelValidation, de.Label)
	return de.Message
}

func TestValidate_Login(t *testing.T) {
	assert.NoError(t, Validate(UserLoginRequest{Email: "a@example.com", Password: "123456"}))
	assert.NoError(t, Validate(AdminLoginRequest{Email: "admin@caelum.com", Password: "admin123"}))

	msg := validationMessage(t, Validate(UserLoginRequest{Email: "nope", Password: "123"}))
	assert.Equal(t, "Invalid email address, Password must be at least 6 characters", msg)

	msg = validationMessage(t, Validate(AdminLoginRequest{}))
	assert.Equal(t, "Invalid email address, Password must be at least 6 characters", msg)
}

func TestValidate_Register(t *testing.T) {
	valid := UserRegisterRequest{Name: "Grace", Email: "grace@example.com", Password: "Secret123", UserType: "Investor"}
	assert.NoError(t, Validate(valid))

	tests := []struct {
		name   string
		mutate func(*UserRegisterRequest)
		want   string
	}{
		{"short name", func(r *UserRegisterRequest) { r.Name = "G" }, "Name must be at least 2 characters"},
		{"bad email", func(r *UserRegisterRequest) { r.Email = "grace" }, "Invalid email address"},
		{"short password", func(r *UserRegisterRequest) { r.Password = "Se1" }, "Password must be at least 8 characters"},
		{"weak password", func(r *UserRegisterRequest) { r.Password = "secret123" }, "Password must contain at least one uppercase letter, one lowercase letter, and one number"},
		{"long password", func(r *UserRegisterRequest) { r.Password = "Aa1" + strings.Repeat("x", 70) }, "Password must be at most 72 characters"},
		{"multibyte password over 72 bytes", func(r *UserRegisterRequest) { r.Password = strings.Repeat("é", 36) + "Aa1" }, "Password must be at most 72 characters"},
		{"unknown type", func(r *UserRegisterRequest) { r.UserType = "Student" }, "User type must be one of Investor, Teacher, SuperAdmin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Equal(t, tt.want, validationMessage(t, Validate(req)))
		})
	}
}

func TestValidate_PasswordLimitCountsBytes(t *testing.T) {
	req := UserRegisterRequest{Name: "Grace", Email: "grace@example.com", UserType: "Teacher"}

	req.Password = strings.Repeat("é", 34) + "Aa1x"
	require.Len(t, req.Password, 72)
	assert.NoError(t, Validate(req))

	req.Password = strings.Repeat("é", 35) + "Aa1"
	require.Len(t, req.Password, 73)
	assert.Equal(t, "Password must be at most 72 characters", validationMessage(t, Validate(req)))
}
