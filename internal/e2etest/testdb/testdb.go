// Package testdb points the database-backed tests at a disposable PostgreSQL
// instance. The connection string comes from TEST_DATABASE_URI; when it is
// unset the tests skip instead of failing, so the rest of the suite stays
// runnable without a database.
package testdb

import "os"

type TestDBInstance struct {
	DSN string
}

func NewTestDBInstance() (*TestDBInstance, error) {
	return &TestDBInstance{DSN: os.Getenv("TEST_DATABASE_URI")}, nil
}

func (i *TestDBInstance) Available() bool {
	return i.DSN != ""
}

// Down releases the instance. An externally provided database has nothing to
// tear down; tests keep their rows isolated through fresh ids instead.
func (i *TestDBInstance) Down() {}
