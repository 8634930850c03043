package service

import (
	"github.com/lamalex/odu-grants/internal/grants/domain"
	"github.com/lamalex/odu-grants/pkg/jwtx"
)

// requireAdministrator is the single authorization guard for every
// admin-restricted operation. It runs before any side effect, so a caller
// with the wrong role can never cause a storage mutation.
func requireAdministrator(claims jwtx.Claims) error {
	if claims.UID == "" || domain.Role(claims.Role) != domain.RoleAdministrator {
		return ErrUnauthorized
	}
	return nil
}
