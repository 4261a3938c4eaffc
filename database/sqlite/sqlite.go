package sqlite

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const DriverName = "sqlite"

func init() {
	// sqlx does not know the modernc driver name, so Rebind would leave named args as-is.
	sqlx.BindDriver(DriverName, sqlx.QUESTION)
}

// DSN enables foreign keys and WAL on every pooled connection and writes times in a sortable format.
func DSN(path string) string {
	params := url.Values{}
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", "busy_timeout(5000)")
	params.Add("_pragma", "journal_mode(WAL)")
	params.Add("_time_format", "sqlite")

	return fmt.Sprintf("file:%s?%s", path, params.Encode())
}

func New(path string) (*sqlx.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sqlx.Connect(DriverName, DSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	return db, nil
}
