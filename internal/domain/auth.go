package domain

// PrincipalType identifies one of the two disjoint credential spaces.
type PrincipalType string

const (
	PrincipalUser  PrincipalType = "USER"
	PrincipalAdmin PrincipalType = "ADMIN"
)

// Valid reports whether p names a known principal type.
func (p PrincipalType) Valid() bool {
	return p == PrincipalUser || p == PrincipalAdmin
}
