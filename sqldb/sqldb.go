// Package sqldb implements the board and project repositories on
// database/sql. The SQL uses ?-placeholders and sticks to what sqlite3
// and mysql have in common.
package sqldb

import (
	"database/sql"
)

func mustPrepare(db *sql.DB, query string) *sql.Stmt {
	stmt, err := db.Prepare(query)
	if err != nil {
		panic(err)
	}
	return stmt
}
