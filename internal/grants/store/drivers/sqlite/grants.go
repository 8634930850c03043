package sqlite

import (
	"context"
	"database/sql"

	"github.com/lamalex/odu-grants/internal/grants/domain"
)

type grantsRepo struct {
	q dbtx
}

// grantDetailQuery joins each grant with its source entity, administrator
// metadata, and a space-delimited recipient id list.
const grantDetailQuery = `
	SELECT g.id, g.grant_number, g.title, g.source_id, g.original_amount, g.balance,
	       g.status, g.administrator_id, g.created_at, g.updated_at,
	       e.id, e.name, e.type,
	       a.id, a.name, a.email, a.user_role, a.department_id,
	       COALESCE((SELECT GROUP_CONCAT(gr.user_id, ' ')
	                 FROM grant_recipients gr
	                 WHERE gr.grant_id = g.id), '')
	FROM grants g
	JOIN granting_entities e ON g.source_id = e.id
	JOIN users a ON g.administrator_id = a.id`

func (r *grantsRepo) CreateGrant(ctx context.Context, g domain.Grant) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO grants (id, grant_number, title, source_id, original_amount, balance, status, administrator_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.GrantNumber, g.Title, g.SourceID, g.OriginalAmount, g.Balance,
		string(g.Status), g.AdministratorID)
	if err != nil {
		return err
	}

	for _, userID := range g.Recipients {
		if _, err := r.q.ExecContext(ctx,
			`INSERT INTO grant_recipients (grant_id, user_id) VALUES (?, ?)`,
			g.ID, userID); err != nil {
			return err
		}
	}
	return nil
}

func (r *grantsRepo) ListForRecipient(ctx context.Context, userID string) ([]domain.GrantDetail, error) {
	rows, err := r.q.QueryContext(ctx,
		grantDetailQuery+`
		WHERE g.id IN (SELECT grant_id FROM grant_recipients WHERE user_id = ?)
		ORDER BY g.created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	return collectGrantDetails(rows)
}

func (r *grantsRepo) ListAdministeredBy(ctx context.Context, adminID string) ([]domain.GrantDetail, error) {
	rows, err := r.q.QueryContext(ctx,
		grantDetailQuery+`
		WHERE g.administrator_id = ?
		ORDER BY g.created_at DESC`,
		adminID)
	if err != nil {
		return nil, err
	}
	return collectGrantDetails(rows)
}

func (r *grantsRepo) GetGrantByID(ctx context.Context, id string) (domain.Grant, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT g.id, g.grant_number, g.title, g.source_id, g.original_amount, g.balance,
		        g.status, g.administrator_id, g.created_at, g.updated_at,
		        COALESCE((SELECT GROUP_CONCAT(gr.user_id, ' ')
		                  FROM grant_recipients gr
		                  WHERE gr.grant_id = g.id), '')
		 FROM grants g WHERE g.id = ?`, id)

	var g domain.Grant
	var status, recipients string
	err := row.Scan(
		&g.ID, &g.GrantNumber, &g.Title, &g.SourceID, &g.OriginalAmount, &g.Balance,
		&status, &g.AdministratorID, &g.CreatedAt, &g.UpdatedAt, &recipients,
	)
	if err != nil {
		return domain.Grant{}, mapNotFound(err)
	}
	g.Status = domain.GrantStatus(status)
	g.Recipients = splitAndFilter(recipients)
	return g, nil
}

func (r *grantsRepo) UpdateGrantStatus(ctx context.Context, grantID string, status domain.GrantStatus) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE grants SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(status), grantID)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func collectGrantDetails(rows *sql.Rows) ([]domain.GrantDetail, error) {
	defer rows.Close()

	var out []domain.GrantDetail
	for rows.Next() {
		var d domain.GrantDetail
		var status, adminRole, recipients string
		err := rows.Scan(
			&d.ID, &d.GrantNumber, &d.Title, &d.SourceID, &d.OriginalAmount, &d.Balance,
			&status, &d.AdministratorID, &d.CreatedAt, &d.UpdatedAt,
			&d.Source.ID, &d.Source.Name, &d.Source.Type,
			&d.Administrator.ID, &d.Administrator.Name, &d.Administrator.Email,
			&adminRole, &d.Administrator.DepartmentID,
			&recipients,
		)
		if err != nil {
			return nil, err
		}
		d.Status = domain.GrantStatus(status)
		d.Administrator.Role = domain.Role(adminRole)
		d.Recipients = splitAndFilter(recipients)
		out = append(out, d)
	}
	return out, rows.Err()
}
