// Package database opens the configured store and classifies driver errors.
package database

import (
	"SmartBudget/database/migration"
	"SmartBudget/database/postgres"
	"SmartBudget/database/sqlite"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	sqliteDriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const defaultSQLitePath = "./storage/smartbudget.db"

// Open connects to DB_DRIVER (postgres by default) and applies pending migrations.
func Open() (*sqlx.DB, error) {
	switch driver := os.Getenv("DB_DRIVER"); driver {
	case "", postgres.DriverName:
		if err := migration.Up(postgres.DriverName, postgres.DSN()); err != nil {
			return nil, err
		}
		return postgres.New()
	case sqlite.DriverName:
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = defaultSQLitePath
		}
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// OpenSQLite opens a migrated SQLite database at path.
func OpenSQLite(path string) (*sqlx.DB, error) {
	db, err := sqlite.New(path)
	if err != nil {
		return nil, err
	}

	if err := migration.Up(sqlite.DriverName, sqlite.DSN(path)); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var sqliteErr *sqliteDriver.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(sqliteErr.Error(), "UNIQUE")
		}
	}

	return false
}

func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}

	var sqliteErr *sqliteDriver.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
			return true
		}
		// RESTRICT actions surface as SQLITE_CONSTRAINT_TRIGGER, so match on the primary code.
		if sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			return strings.Contains(sqliteErr.Error(), "FOREIGN KEY")
		}
	}

	return false
}
