package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stratify/internal/db"
	"stratify/internal/db/dbtest"
	"stratify/internal/model"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := db.Open("oracle", "", db.Options{})
	assert.EqualError(t, err, `unsupported database driver "oracle"`)
}

func TestMigrateAndReset(t *testing.T) {
	gdb := dbtest.New(t)

	for _, m := range model.All() {
		assert.True(t, gdb.Migrator().HasTable(m))
	}
	assert.True(t, gdb.Migrator().HasIndex(&model.Position{}, "idx_position_portfolio_asset"))

	require.NoError(t, db.Reset(gdb))
	for _, m := range model.All() {
		assert.False(t, gdb.Migrator().HasTable(m))
	}

	// Reset on an empty schema is a no-op.
	require.NoError(t, db.Reset(gdb))
}
