package sqlstore

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/innosync/internal/collab/store"
)

type txStore struct {
	tx *sql.Tx
	d  Dialect
}

func newTx(tx *sql.Tx, d Dialect) *txStore {
	return &txStore{tx: tx, d: d}
}

func (t *txStore) conn() conn { return conn{q: t.tx, d: t.d} }

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the owning Store keeps the pool open.
func (t *txStore) Close() error { return nil }

// Ping is a no-op, the transaction already holds a live connection.
func (t *txStore) Ping(ctx context.Context) error { return nil }

// Tx is not supported inside a transaction.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone
}

// WithTx is not supported inside a transaction.
func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

// ApplyMigrations is a no-op; migrations run before any transaction.
func (t *txStore) ApplyMigrations() error { return nil }

func (t *txStore) Users() store.Users                 { return &usersRepo{t.conn()} }
func (t *txStore) RefreshTokens() store.RefreshTokens { return &refreshTokensRepo{t.conn()} }
func (t *txStore) Projects() store.Projects           { return &projectsRepo{t.conn()} }
func (t *txStore) Invitations() store.Invitations     { return &invitationsRepo{t.conn()} }
func (t *txStore) Applications() store.Applications   { return &applicationsRepo{t.conn()} }
func (t *txStore) TeamMembers() store.TeamMembers     { return &teamMembersRepo{t.conn()} }
