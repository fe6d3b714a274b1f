package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Migration is one named schema step.  Statements are executed one by one so
// the MySQL DSN does not need multiStatements.
type Migration struct {
	Name       string
	Statements []string
}

var mysqlMigrations = []Migration{
	{
		Name: "001_initial_schema",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS venues (
				id                  BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
				name                VARCHAR(255)  NOT NULL,
				city                VARCHAR(120)  NOT NULL,
				state               VARCHAR(120)  NOT NULL,
				address             VARCHAR(120)  NOT NULL,
				phone               VARCHAR(120)  NOT NULL DEFAULT '',
				genres              JSON          NOT NULL,
				facebook_link       VARCHAR(120)  NOT NULL DEFAULT '',
				image_link          VARCHAR(500)  NOT NULL DEFAULT '',
				website_link        VARCHAR(200)  NOT NULL DEFAULT '',
				seeking_talent      BOOLEAN       NOT NULL DEFAULT FALSE,
				seeking_description VARCHAR(1000) NOT NULL DEFAULT '',
				KEY idx_venues_area (city, state)
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
			`CREATE TABLE IF NOT EXISTS artists (
				id                  BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
				name                VARCHAR(255)  NOT NULL,
				city                VARCHAR(120)  NOT NULL,
				state               VARCHAR(120)  NOT NULL,
				phone               VARCHAR(120)  NOT NULL DEFAULT '',
				genres              JSON          NOT NULL,
				facebook_link       VARCHAR(120)  NOT NULL DEFAULT '',
				image_link          VARCHAR(500)  NOT NULL DEFAULT '',
				website_link        VARCHAR(200)  NOT NULL DEFAULT '',
				seeking_venue       BOOLEAN       NOT NULL DEFAULT FALSE,
				seeking_description VARCHAR(1000) NOT NULL DEFAULT ''
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
			`CREATE TABLE IF NOT EXISTS shows (
				id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
				artist_id  BIGINT UNSIGNED NOT NULL,
				venue_id   BIGINT UNSIGNED NOT NULL,
				start_time DATETIME        NOT NULL,
				KEY idx_shows_venue (venue_id, start_time),
				KEY idx_shows_artist (artist_id, start_time),
				CONSTRAINT fk_shows_artist FOREIGN KEY (artist_id) REFERENCES artists (id),
				CONSTRAINT fk_shows_venue FOREIGN KEY (venue_id) REFERENCES venues (id) ON DELETE CASCADE
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		},
	},
}

var sqliteMigrations = []Migration{
	{
		Name: "001_initial_schema",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS venues (
				id                  INTEGER PRIMARY KEY AUTOINCREMENT,
				name                TEXT    NOT NULL,
				city                TEXT    NOT NULL,
				state               TEXT    NOT NULL,
				address             TEXT    NOT NULL,
				phone               TEXT    NOT NULL DEFAULT '',
				genres              TEXT    NOT NULL DEFAULT '[]',
				facebook_link       TEXT    NOT NULL DEFAULT '',
				image_link          TEXT    NOT NULL DEFAULT '',
				website_link        TEXT    NOT NULL DEFAULT '',
				seeking_talent      BOOLEAN NOT NULL DEFAULT 0,
				seeking_description TEXT    NOT NULL DEFAULT ''
			)`,
			`CREATE INDEX IF NOT EXISTS idx_venues_area ON venues (city, state)`,
			`CREATE TABLE IF NOT EXISTS artists (
				id                  INTEGER PRIMARY KEY AUTOINCREMENT,
				name                TEXT    NOT NULL,
				city                TEXT    NOT NULL,
				state               TEXT    NOT NULL,
				phone               TEXT    NOT NULL DEFAULT '',
				genres              TEXT    NOT NULL DEFAULT '[]',
				facebook_link       TEXT    NOT NULL DEFAULT '',
				image_link          TEXT    NOT NULL DEFAULT '',
				website_link        TEXT    NOT NULL DEFAULT '',
				seeking_venue       BOOLEAN NOT NULL DEFAULT 0,
				seeking_description TEXT    NOT NULL DEFAULT ''
			)`,
			`CREATE TABLE IF NOT EXISTS shows (
				id         INTEGER  PRIMARY KEY AUTOINCREMENT,
				artist_id  INTEGER  NOT NULL REFERENCES artists (id),
				venue_id   INTEGER  NOT NULL REFERENCES venues (id) ON DELETE CASCADE,
				start_time DATETIME NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_shows_venue ON shows (venue_id, start_time)`,
			`CREATE INDEX IF NOT EXISTS idx_shows_artist ON shows (artist_id, start_time)`,
		},
	},
}

// Migrate applies every migration for the given driver that has not been
// recorded in schema_migrations yet.  Each migration runs in its own
// transaction (MySQL commits DDL implicitly, so there it only guards the
// bookkeeping row).
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	var list []Migration
	switch driver {
	case "", DriverMySQL:
		list = mysqlMigrations
	case DriverSQLite:
		list = sqliteMigrations
	default:
		return fmt.Errorf("unsupported db driver %q", driver)
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name       VARCHAR(191) NOT NULL PRIMARY KEY,
		applied_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for _, m := range list {
		var n int
		if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE name = ?`, m.Name).Scan(&n); err != nil {
			return fmt.Errorf("check migration %s: %w", m.Name, err)
		}
		if n > 0 {
			continue
		}
		if err := apply(ctx, db, m); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.Name, err)
		}
	}
	return nil
}

func apply(ctx context.Context, db *sql.DB, m Migration) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	for _, stmt := range m.Statements {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES (?)`, m.Name); err != nil {
		return err
	}
	return tx.Commit()
}
