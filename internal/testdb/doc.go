// Package testdb provides database helpers for tests.
//
// Tests run each case inside a transaction that is rolled back when the case
// completes, so cases never see each other's rows and need no cleanup:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.OpenPostgres(t) // skipped unless FOCUS_TEST_DATABASE_URL is set
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        store := postgres.NewPostgresTaskStore(tx, nil)
//	        // ...
//	    })
//	}
//
// OpenSQLite returns a migrated in-memory database and needs no setup.
package testdb
