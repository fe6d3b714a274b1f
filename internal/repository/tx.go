package repository

import (
	"context"
	"database/sql"
	"strings"
)

// inTx runs fn inside a transaction.  The transaction is committed when fn
// returns nil and rolled back on any error or panic, so it is always
// finished when inTx returns.
func inTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// exists reports whether a row with the given id is present in table.  The
// table name is always a package constant, never user input.
func exists(ctx context.Context, tx *sql.Tx, table string, id uint64) (bool, error) {
	var n int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+" WHERE id = ?", id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// likePattern turns a free-text term into a case-insensitive substring
// pattern for `LOWER(col) LIKE ? ESCAPE '!'`.  An empty term yields "%%",
// which matches every row.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// NamedCount is a record id and name together with the number of its shows
// starting after the evaluation instant.
type NamedCount struct {
	ID            uint64
	Name          string
	UpcomingShows int
}
