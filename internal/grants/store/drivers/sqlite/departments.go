package sqlite

import (
	"context"

	"github.com/lamalex/odu-grants/internal/grants/domain"
)

type departmentsRepo struct {
	q dbtx
}

func (r *departmentsRepo) GetDepartmentByID(ctx context.Context, id string) (domain.Department, error) {
	var d domain.Department
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM departments WHERE id = ?`, id).
		Scan(&d.ID, &d.Name, &d.CreatedAt)
	if err != nil {
		return domain.Department{}, mapNotFound(err)
	}
	return d, nil
}

func (r *departmentsRepo) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, name, created_at FROM departments ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Department
	for rows.Next() {
		var d domain.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type entitiesRepo struct {
	q dbtx
}

func (r *entitiesRepo) GetEntityByName(ctx context.Context, name string) (domain.GrantingEntity, error) {
	var e domain.GrantingEntity
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, type FROM granting_entities WHERE name = ?`, name).
		Scan(&e.ID, &e.Name, &e.Type)
	if err != nil {
		return domain.GrantingEntity{}, mapNotFound(err)
	}
	return e, nil
}
