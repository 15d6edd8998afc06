package auth

import (
	"github.com/spec-kit/caelum-portal/internal/config"
	"github.com/spec-kit/caelum-portal/internal/domain"
)

// Secrets holds one HMAC signing key per principal type. It is built once at startup
// and never mutated, so it is safe to share across goroutines.
type Secrets struct {
	user  []byte
	admin []byte
}

// NewSecrets copies both keys into an immutable value.
func NewSecrets(userSecret, adminSecret string) Secrets {
	return Secrets{user: []byte(userSecret), admin: []byte(adminSecret)}
}

// SecretsFromConfig builds the secret store from loaded configuration.
func SecretsFromConfig(cfg config.AuthConfig) Secrets {
	return NewSecrets(cfg.UserJWTSecret, cfg.AdminJWTSecret)
}

// key returns the signing key for pt. The slice must not be modified by callers.
func (s Secrets) key(pt domain.PrincipalType) ([]byte, bool) {
	switch pt {
	case domain.PrincipalUser:
		return s.user, len(s.user) > 0
	case domain.PrincipalAdmin:
		return s.admin, len(s.admin) > 0
	default:
		return nil, false
	}
}
