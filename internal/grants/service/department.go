package service

import (
	"context"

	"github.com/lamalex/odu-grants/internal/grants/domain"
	"github.com/lamalex/odu-grants/internal/grants/store"
	"github.com/lamalex/odu-grants/pkg/jwtx"
)

// DepartmentService exposes the department directory, which administrators
// need when composing invitations.
type DepartmentService struct {
	Store store.Store
}

// ListDepartments returns all departments ordered by name. Admin-only.
func (s *DepartmentService) ListDepartments(ctx context.Context, claims jwtx.Claims) ([]domain.Department, error) {
	if err := requireAdministrator(claims); err != nil {
		return nil, err
	}
	return s.Store.Departments().ListDepartments(ctx)
}
