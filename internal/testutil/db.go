// Package testutil holds helpers shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tokobajukeren/pos-api/internal/db"
)

// NewTestDB returns a migrated SQLite database living in a temp dir that is
// removed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "pos_test.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close(gdb)
	})

	return gdb
}
