package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseStats(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBillRepository(db, newTestCache())

	mock.ExpectQuery(`SELECT "amount","is_recurrent" FROM "bills" WHERE bill_date >= \$1 AND bill_date <= \$2`).
		WithArgs("2026-03-01", "2026-03-31").
		WillReturnRows(sqlmock.NewRows([]string{"amount", "is_recurrent"}).
			AddRow(1000.0, true).
			AddRow(200.0, false).
			AddRow(300.0, false))

	stats, err := repo.ExpenseStats(context.Background(), "2026-03-01", "2026-03-31")
	require.NoError(t, err)

	assert.Equal(t, 1500.0, stats.TotalExpenses)
	assert.Equal(t, 1000.0, stats.FixedExpenses)
	assert.Equal(t, 500.0, stats.VariableExpenses)
	assert.Equal(t, 3, stats.TotalBills)
	assert.Equal(t, 1, stats.FixedCount)
	assert.Equal(t, 2, stats.VariableCount)
}

func TestBillListFixedTypeFilter(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBillRepository(db, newTestCache())

	// The legacy FIJO value maps onto is_recurrent = true.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bills" WHERE is_recurrent = \$1`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM "bills" WHERE is_recurrent = \$1 ORDER BY bill_date DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"bill_id", "description", "amount", "is_recurrent"}).
			AddRow(1, "Alquiler", 1000.0, true).
			AddRow(2, "Internet", 50.0, true))

	result, err := repo.List(context.Background(), 1, 20, BillFilters{Type: "FIJO"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecurrentBills(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBillRepository(db, newTestCache())

	mock.ExpectQuery(`SELECT \* FROM "bills" WHERE is_recurrent = \$1 ORDER BY description`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"bill_id", "description", "amount", "is_recurrent"}).
			AddRow(1, "Alquiler", 1000.0, true))

	bills, err := repo.GetRecurrent(context.Background())
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "Alquiler", bills[0].Description)
}

func TestBillDeleteNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBillRepository(db, newTestCache())

	mock.ExpectQuery(`SELECT \* FROM "bills" WHERE bill_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"bill_id"}))

	_, err := repo.Delete(context.Background(), 17)
	assert.ErrorIs(t, err, ErrBillNotFound)
}
