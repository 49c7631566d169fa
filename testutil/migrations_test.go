package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/train-reservation/migrations"
	"github.com/pkordes/train-reservation/testutil"
)

// migratedTables lists every table the embedded migrations create.
var migratedTables = []string{"cities", "trains"}

// TestMigrations runs the migrations down to zero, up, and down again,
// checking the directory tables appear and disappear.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)
	provider, err := migrations.NewProvider(db)
	require.NoError(t, err)
	ctx := context.Background()

	// Another package's TestMain may already have migrated the shared database.
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "initial reset")

	applied, err := migrations.Up(ctx, db)
	require.NoError(t, err, "up")
	assert.Equal(t, []int64{1, 2}, applied)
	for _, table := range migratedTables {
		assert.True(t, tableExists(t, db, table), "expected table %q after up", table)
	}

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "down-to 0")
	for _, table := range migratedTables {
		assert.False(t, tableExists(t, db, table), "expected table %q gone after down", table)
	}

	// Leave the schema in place for packages that run after this one.
	_, err = migrations.Up(ctx, db)
	require.NoError(t, err, "restore")
}

func TestMigrations_TrainCapacityCheck(t *testing.T) {
	require.NoError(t, testutil.Migrate(context.Background()))
	tx := testutil.NewTx(t)

	_, err := tx.Exec(context.Background(), `INSERT INTO trains (name, capacity) VALUES ('Train1', -1)`)

	assert.Error(t, err, "negative capacity must violate the CHECK constraint")
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public'
			AND   table_name   = $1
		)`
	var exists bool
	require.NoError(t, db.QueryRowContext(context.Background(), q, table).Scan(&exists), "check table %q", table)
	return exists
}
