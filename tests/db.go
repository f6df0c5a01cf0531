package testutil

import (
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/dance10/webapps/core"
	"github.com/dance10/webapps/storage/database"
)

// PrepareDB opens a migrated in-memory SQLite database that is closed with the test.
func PrepareDB(t *testing.T) *sqlx.DB {
	conf := &core.Config{}
	conf.Database.Engine = database.EngineSQLite
	conf.Database.Path = ":memory:"

	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(db); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	return db
}
