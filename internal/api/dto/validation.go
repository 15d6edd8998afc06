package dto

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/caelum-portal/pkg/util"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("password_strength", passwordStrength); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("bcrypt_len", bcryptLength); err != nil {
		panic(err)
	}
	return v
}

// maxBcryptBytes is the input limit of bcrypt. It counts bytes, not runes.
const maxBcryptBytes = 72

func bcryptLength(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= maxBcryptBytes
}

// passwordStrength requires at least one lowercase letter, one uppercase letter and one digit.
func passwordStrength(fl validator.FieldLevel) bool {
	var lower, upper, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

// messageSource supplies human messages keyed by "<json field>|<tag>".
type messageSource interface {
	validationMessages() map[string]string
}

// Validate checks req and returns a 422 error whose message joins every failed rule.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError("Validation failed")
	}

	var messages map[string]string
	if src, ok := req.(messageSource); ok {
		messages = src.validationMessages()
	}

	out := make([]string, 0, len(fieldErrs))
	seen := make(map[string]struct{}, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := messages[fe.Field()+"|"+fe.Tag()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		if _, dup := seen[msg]; dup {
			continue
		}
		seen[msg] = struct{}{}
		out = append(out, msg)
	}
	return apperrors.NewValidationError(strings.Join(out, ", "))
}
