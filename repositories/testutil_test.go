package repositories

import (
	"CareUSmile/cache"
	"CareUSmile/models"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a gorm connection backed by sqlmock. sqlmock's default
// matcher treats expectations as regular expressions.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

// newTestCache returns a cache with no backing client: every operation fails
// softly, which repositories treat as a miss.
func newTestCache() *cache.Cache {
	return cache.NewWithClient(nil)
}

func testPatient() models.Patient {
	return models.Patient{
		FirstName:      "Ana",
		FirstLastName:  "Mora",
		Identification: "1-1111-1111",
		NumberPhone:    "8888-8888",
	}
}
