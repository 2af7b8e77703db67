package models

import "database/sql"

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx so data-access
// functions can run inside or outside a transaction.
type SQLExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}
