// Package testutil provides a migrated SQLite store for repository and service tests.
package testutil

import (
	"SmartBudget/database"
	"SmartBudget/internal/entity"
	"crypto/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jmoiron/sqlx"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// NewDB returns a migrated SQLite database living in t.TempDir.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "smartbudget_test.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func NewID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(rand.Reader, 0)).String()
}

// CreateUser inserts a user row directly so owned records can satisfy their foreign keys.
func CreateUser(t *testing.T, db *sqlx.DB) entity.User {
	t.Helper()

	now := time.Now().UTC()
	user := entity.User{
		ID:        NewID(),
		Email:     gofakeit.Email(),
		Username:  gofakeit.Username(),
		Password:  "hashed",
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := db.NamedExec(`INSERT INTO users (id, email, username, password, created_at, updated_at)
		VALUES (:id, :email, :username, :password, :created_at, :updated_at)`, user)
	require.NoError(t, err)

	return user
}

// Date is a shorthand for midnight UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
