package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/caelum-portal/internal/domain"
)

const (
	// UserTokenTTL bounds the validity of user tokens and the auth-token cookie.
	UserTokenTTL = 7 * 24 * time.Hour
	// AdminTokenTTL bounds the validity of admin tokens and the admin-auth-token cookie.
	AdminTokenTTL = 24 * time.Hour
)

var errUnknownPrincipal = errors.New("unknown principal type")

// Codec issues and validates HS256 tokens, one secret and one lifetime per principal type.
type Codec struct {
	secrets  Secrets
	userTTL  time.Duration
	adminTTL time.Duration
	now      func() time.Time
}

// CodecOption customises a Codec.
type CodecOption func(*Codec)

// WithClock overrides the time source used for issuing and expiry checks.
func WithClock(now func() time.Time) CodecOption {
	return func(c *Codec) { c.now = now }
}

// WithTTL overrides the lifetime of tokens minted for pt.
func WithTTL(pt domain.PrincipalType, ttl time.Duration) CodecOption {
	return func(c *Codec) {
		switch pt {
		case domain.PrincipalUser:
			c.userTTL = ttl
		case domain.PrincipalAdmin:
			c.adminTTL = ttl
		}
	}
}

// NewCodec builds a codec over the given secrets.
func NewCodec(secrets Secrets, opts ...CodecOption) *Codec {
	c := &Codec{
		secrets:  secrets,
		userTTL:  UserTokenTTL,
		adminTTL: AdminTokenTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MintUser signs claims with the user secret. Registered fields are overwritten.
func (c *Codec) MintUser(claims UserClaims) (string, time.Time, error) {
	expiresAt := c.stamp(&claims.RegisteredClaims, c.userTTL)
	token, err := c.sign(domain.PrincipalUser, &claims)
	return token, expiresAt, err
}

// MintAdmin signs claims with the admin secret. Registered fields are overwritten.
func (c *Codec) MintAdmin(claims AdminClaims) (string, time.Time, error) {
	expiresAt := c.stamp(&claims.RegisteredClaims, c.adminTTL)
	token, err := c.sign(domain.PrincipalAdmin, &claims)
	return token, expiresAt, err
}

// Verify checks token against the secret for pt. It reports false for any malformed,
// foreign, tampered or expired token without saying which.
func (c *Codec) Verify(token string, pt domain.PrincipalType) (Claim, bool) {
	switch pt {
	case domain.PrincipalUser:
		claims, ok := c.VerifyUser(token)
		if !ok {
			return nil, false
		}
		return claims, true
	case domain.PrincipalAdmin:
		claims, ok := c.VerifyAdmin(token)
		if !ok {
			return nil, false
		}
		return claims, true
	default:
		return nil, false
	}
}

// VerifyUser validates a user token.
func (c *Codec) VerifyUser(token string) (*UserClaims, bool) {
	claims := &UserClaims{}
	if err := c.parse(token, domain.PrincipalUser, claims); err != nil || !claims.identified() {
		return nil, false
	}
	return claims, true
}

// VerifyAdmin validates an admin token.
func (c *Codec) VerifyAdmin(token string) (*AdminClaims, bool) {
	claims := &AdminClaims{}
	if err := c.parse(token, domain.PrincipalAdmin, claims); err != nil || !claims.identified() {
		return nil, false
	}
	return claims, true
}

func (c *Codec) stamp(rc *jwt.RegisteredClaims, ttl time.Duration) time.Time {
	now := c.now()
	expiresAt := now.Add(ttl)
	*rc = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	return expiresAt
}

func (c *Codec) sign(pt domain.PrincipalType, claims jwt.Claims) (string, error) {
	key, ok := c.secrets.key(pt)
	if !ok {
		return "", fmt.Errorf("sign %s token: %w", pt, errUnknownPrincipal)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", pt, err)
	}
	return token, nil
}

func (c *Codec) parse(tokenStr string, pt domain.PrincipalType, claims jwt.Claims) error {
	key, ok := c.secrets.key(pt)
	if !ok {
		return errUnknownPrincipal
	}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return err
	}
	if !parsed.Valid {
		return errors.New("invalid token")
	}
	return nil
}
