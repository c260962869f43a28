// Package dbtest opens gorm on top of sqlmock with the postgres dialector, so
// tests can assert the statements a handler or service issues.
package dbtest

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns a gorm DB whose queries must match mock expectations in order.
// Unmet expectations fail the test on cleanup.
func New(t testing.TB) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = sqlDB.Close()
	})
	return db, mock
}

// DryRun builds statements without executing them; read them from
// Statement.SQL and Statement.Vars.
func DryRun(t testing.TB) *gorm.DB {
	t.Helper()
	db, _ := New(t)
	return db.Session(&gorm.Session{DryRun: true})
}
