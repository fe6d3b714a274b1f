package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

// Supported values for Options.Driver.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

// sqliteUnicode is the registered name of the SQLite driver used by Open.
// SQLite's built-in lower() folds ASCII only; every connection replaces it
// with a Unicode-aware one so case-insensitive search works on any name.
const sqliteUnicode = "sqlite3_unicode"

func init() {
	sql.Register(sqliteUnicode, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", strings.ToLower, true)
		},
	})
}

// Options describes how to reach the database.  MySQL uses the network
// fields; SQLite only uses Path (":memory:" is accepted).
type Options struct {
	Driver string
	User   string
	Pass   string
	Host   string
	Port   string
	Name   string
	Path   string
}

// DSN builds the driver-specific data source name.
func (o Options) DSN() (string, error) {
	switch o.Driver {
	case "", DriverMySQL:
		auth := o.User
		if o.Pass != "" {
			auth = fmt.Sprintf("%s:%s", o.User, o.Pass)
		}
		// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
		return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			auth, o.Host, o.Port, o.Name), nil
	case DriverSQLite:
		path := o.Path
		if path == "" {
			path = "fyyur.db"
		}
		if path == ":memory:" {
			return "file::memory:?_fk=1", nil
		}
		return fmt.Sprintf("file:%s?_fk=1&_busy_timeout=5000", path), nil
	default:
		return "", fmt.Errorf("unsupported db driver %q", o.Driver)
	}
}

// Open connects to the configured database, applies pool settings and
// verifies the connection.
func Open(o Options) (*sql.DB, error) {
	dsn, err := o.DSN()
	if err != nil {
		return nil, err
	}
	driver := o.Driver
	if driver == "" {
		driver = DriverMySQL
	}
	if driver == DriverSQLite && o.Path != "" && o.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(o.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	sqlDriver := driver
	if driver == DriverSQLite {
		sqlDriver = sqliteUnicode
	}
	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1) // SQLite works best with a single connection
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
