package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/caelum-portal/internal/domain"
)

// credentialSource yields a raw token for a principal type, if the request carries one.
type credentialSource func(r CredentialRequest, pt domain.PrincipalType) (string, bool)

// credentialSources is evaluated in order; the first source that yields a token is
// authoritative even when that token fails verification.
var credentialSources = []credentialSource{
	bearerToken,
	CookieToken,
}

func bearerToken(r CredentialRequest, _ domain.PrincipalType) (string, bool) {
	return ExtractBearer(r.Get(fiber.HeaderAuthorization))
}

// Resolver turns an inbound request into a verified claim for a principal type.
type Resolver struct {
	codec *Codec
}

// NewResolver wires a resolver to the codec that verifies tokens.
func NewResolver(codec *Codec) *Resolver {
	return &Resolver{codec: codec}
}

// Resolve returns the verified claim for pt. Absent and invalid credentials both yield false.
func (r *Resolver) Resolve(req CredentialRequest, pt domain.PrincipalType) (Claim, bool) {
	for _, src := range credentialSources {
		token, ok := src(req, pt)
		if !ok {
			continue
		}
		return r.codec.Verify(token, pt)
	}
	return nil, false
}

// ResolveUser returns the verified user claim carried by req.
func (r *Resolver) ResolveUser(req CredentialRequest) (*UserClaims, bool) {
	claim, ok := r.Resolve(req, domain.PrincipalUser)
	if !ok {
		return nil, false
	}
	user, ok := claim.(*UserClaims)
	return user, ok
}

// ResolveAdmin returns the verified admin claim carried by req.
func (r *Resolver) ResolveAdmin(req CredentialRequest) (*AdminClaims, bool) {
	claim, ok := r.Resolve(req, domain.PrincipalAdmin)
	if !ok {
		return nil, false
	}
	admin, ok := claim.(*AdminClaims)
	return admin, ok
}
