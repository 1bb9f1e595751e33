package rdb

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// newTestTx opens a transaction that is rolled back when the test ends.
func newTestTx(t *testing.T) *sqlx.Tx {
	t.Helper()

	db := newTestDB(t)
	tx, err := db.BeginTxx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")
	t.Cleanup(func() {
		tx.Rollback()
	})

	return tx
}

func countUsers(t *testing.T, q sqlx.QueryerContext) int {
	t.Helper()

	var count int
	err := sqlx.GetContext(context.Background(), q, &count, "SELECT COUNT(*) FROM users")
	require.NoError(t, err)
	return count
}
