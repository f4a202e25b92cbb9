package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestMissingColumns(t *testing.T) {
	columns := []string{"Field", "Type", "Null", "Key", "Default", "Extra"}

	t.Run("AllPresent", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SHOW COLUMNS FROM `results`").WillReturnRows(
			sqlmock.NewRows(columns).
				AddRow("id", "bigint", "NO", "PRI", nil, "").
				AddRow("meet_id", "bigint", "NO", "MUL", nil, "").
				AddRow("event_id", "varchar(40)", "NO", "", nil, "").
				AddRow("round", "varchar(10)", "NO", "", nil, "").
				AddRow("athlete_id", "bigint", "YES", "", nil, "").
				AddRow("relay_team", "varchar(80)", "YES", "", nil, ""))

		missing, err := MissingColumns(db, "results",
			[]string{"meet_id", "event_id", "round", "athlete_id", "relay_team"})
		require.NoError(t, err)
		assert.Empty(t, missing)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ReportsDrift", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SHOW COLUMNS FROM `results`").WillReturnRows(
			sqlmock.NewRows(columns).
				AddRow("id", "bigint", "NO", "PRI", nil, "").
				AddRow("meet_id", "bigint", "NO", "MUL", nil, ""))

		missing, err := MissingColumns(db, "results", []string{"meet_id", "event_id", "round"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"event_id", "round"}, missing)
	})

	t.Run("QueryFailure", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SHOW COLUMNS FROM `results`").WillReturnError(assert.AnError)

		_, err := MissingColumns(db, "results", []string{"meet_id"})
		assert.Error(t, err)
	})
}
