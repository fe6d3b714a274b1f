// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// service and handlers to distinguish between different failure scenarios.
// For example, ErrDanglingReference indicates that a show points at an
// artist or venue that does not exist.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

// ErrVenueNotFound is returned when a venue cannot be found in the DB.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound is returned when an artist cannot be found in the DB.
var ErrArtistNotFound = errors.New("artist not found")

// ErrDanglingReference is returned when a show references an artist or a
// venue that does not exist. Nothing is written when it is returned.
var ErrDanglingReference = errors.New("dangling reference")

// MySQL error numbers for foreign key violations on insert/update (1452)
// and on delete of a referenced parent row (1451).
const (
	mysqlErrNoReferencedRow = 1452
	mysqlErrRowIsReferenced = 1451
)

// isForeignKeyViolation reports whether err is a foreign key violation from
// either supported driver.
func isForeignKeyViolation(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlErrNoReferencedRow || me.Number == mysqlErrRowIsReferenced
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
