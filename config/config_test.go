package config

import (
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestSeedRolesSkipsExisting(t *testing.T) {
	db, mock := newMockDB(t)

	for _, name := range []string{"student", "faculty", "admin"} {
		mock.ExpectQuery(`SELECT \* FROM "roles"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(uuid.NewString(), name))
	}

	require.NoError(t, seedRoles(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedRolesCreatesMissing(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "roles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "roles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	mock.ExpectCommit()
	for _, name := range []string{"faculty", "admin"} {
		mock.ExpectQuery(`SELECT \* FROM "roles"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(uuid.NewString(), name))
	}

	require.NoError(t, seedRoles(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedRolesPropagatesCreateError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "roles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "roles"`).
		WillReturnError(fmt.Errorf("connection reset"))
	mock.ExpectRollback()

	assert.Error(t, seedRoles(db))
}

func TestSeedDietaryTagsPropagatesCreateError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "dietary_tags"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "dietary_tags"`).
		WillReturnError(fmt.Errorf("connection reset"))
	mock.ExpectRollback()

	assert.Error(t, seedDietaryTags(db))
}
