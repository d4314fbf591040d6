package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClosingExists(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewMonthlyClosingRepository(db, newTestCache())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "monthly_closings" WHERE month = \$1 AND year = \$2`).
		WithArgs("MARZO", 2026).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), "MARZO", 2026)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestClosingDoesNotExist(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewMonthlyClosingRepository(db, newTestCache())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "monthly_closings" WHERE month = \$1 AND year = \$2`).
		WithArgs("ABRIL", 2026).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.Exists(context.Background(), "ABRIL", 2026)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestClosingListDefaultsToTwelve(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewMonthlyClosingRepository(db, newTestCache())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "monthly_closings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(24))
	mock.ExpectQuery(`SELECT \* FROM "monthly_closings" ORDER BY year DESC,month DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"closing_id", "month", "year"}).
			AddRow(1, "MARZO", 2026))

	result, err := repo.List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 12, result.Limit)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 2, result.TotalPages)
}
