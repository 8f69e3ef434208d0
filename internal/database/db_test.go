package database

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/wordle-engine/assets"
)

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, path)
}

func TestMigrateEmbedded(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db, assets.Migrations))
	require.NoError(t, Migrate(db, assets.Migrations), "second run is a no-op")

	for _, table := range []string{"users", "games", "daily_results"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, table)
	}

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestMigrateOrderAndFailure(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer db.Close()

	good := fstest.MapFS{
		"002_b.sql": {Data: []byte(`INSERT INTO t(v) VALUES ('b');`)},
		"001_a.sql": {Data: []byte(`CREATE TABLE t (v TEXT);`)},
		"notes.txt": {Data: []byte(`ignored`)},
	}
	require.NoError(t, Migrate(db, good))

	var v string
	require.NoError(t, db.QueryRow(`SELECT v FROM t`).Scan(&v))
	assert.Equal(t, "b", v)

	bad := fstest.MapFS{"003_c.sql": {Data: []byte(`INSERT INTO missing VALUES (1);`)}}
	err = Migrate(db, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "003_c.sql")

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM _migrations WHERE name='003_c.sql'`).Scan(&n))
	assert.Equal(t, 0, n, "failed migration is not recorded")
}

func TestSelfManaged(t *testing.T) {
	assert.True(t, selfManaged("pragma foreign_keys=off;"))
	assert.True(t, selfManaged("BEGIN TRANSACTION; COMMIT;"))
	assert.False(t, selfManaged("CREATE TABLE x (y INT);"))
}
