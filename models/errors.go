package models

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when no row matched the given identifier.
var ErrNotFound = errors.New("record not found")

// MySQL server error numbers the API cares about.
const (
	mysqlErrDuplicateEntry    = 1062
	mysqlErrRowIsReferenced   = 1451
	mysqlErrNoReferencedRow   = 1452
)

func mysqlErrNumber(err error) uint16 {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}

// IsDuplicateEntry reports whether err is a unique-constraint violation.
func IsDuplicateEntry(err error) bool {
	return mysqlErrNumber(err) == mysqlErrDuplicateEntry
}

// IsRowReferenced reports whether a delete was blocked because dependent
// rows still reference the target.
func IsRowReferenced(err error) bool {
	return mysqlErrNumber(err) == mysqlErrRowIsReferenced
}

// IsMissingReference reports whether an insert or update named a foreign key
// that does not exist.
func IsMissingReference(err error) bool {
	return mysqlErrNumber(err) == mysqlErrNoReferencedRow
}
