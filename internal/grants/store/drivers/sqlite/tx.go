package sqlite

import (
	"database/sql"

	"github.com/lamalex/odu-grants/internal/grants/store"
)

// txStore scopes the repositories to a single transaction. The outer Store's
// WithTx owns commit/rollback; this type only hands out tx-bound repos.
type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Users() store.Users             { return &usersRepo{q: t.tx} }
func (t *txStore) Grants() store.Grants           { return &grantsRepo{q: t.tx} }
func (t *txStore) Departments() store.Departments { return &departmentsRepo{q: t.tx} }
func (t *txStore) Entities() store.Entities       { return &entitiesRepo{q: t.tx} }
