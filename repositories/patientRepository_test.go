package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patientRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"patient_id", "first_name", "first_last_name", "identification", "number_phone",
	})
}

func TestPatientGetByIDNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPatientRepository(db, newTestCache())

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE patient_id = \$1`).
		WillReturnRows(patientRows())

	patient, err := repo.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, patient)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientCreateDuplicateIdentification(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPatientRepository(db, newTestCache())

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE identification = \$1`).
		WillReturnRows(patientRows().AddRow(1, "Ana", "Mora", "1-1111-1111", ""))

	patient := testPatient()
	err := repo.Create(context.Background(), &patient)
	assert.ErrorIs(t, err, ErrDuplicateIdentification)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientCreate(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPatientRepository(db, newTestCache())

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE identification = \$1`).
		WillReturnRows(patientRows())
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "patients"`).
		WillReturnRows(sqlmock.NewRows([]string{"patient_id"}).AddRow(7))
	mock.ExpectCommit()

	patient := testPatient()
	err := repo.Create(context.Background(), &patient)
	require.NoError(t, err)
	assert.Equal(t, uint(7), patient.PatientID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientDeleteBlockedByAppointments(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPatientRepository(db, newTestCache())

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE patient_id = \$1`).
		WillReturnRows(patientRows().AddRow(5, "Ana", "Mora", "1-1111-1111", ""))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "clinical_appointments" WHERE patient_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	patient, err := repo.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrPatientHasAppointments)
	assert.Nil(t, patient)
	// No DELETE must have been issued.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientDelete(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPatientRepository(db, newTestCache())

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE patient_id = \$1`).
		WillReturnRows(patientRows().AddRow(5, "Ana", "Mora", "1-1111-1111", ""))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "clinical_appointments" WHERE patient_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "patients" WHERE patient_id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	patient, err := repo.Delete(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, patient)
	assert.Equal(t, "1-1111-1111", patient.Identification)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientDeleteNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPatientRepository(db, newTestCache())

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE patient_id = \$1`).
		WillReturnRows(patientRows())

	_, err := repo.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestPatientListPagination(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPatientRepository(db, newTestCache())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "patients"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(45))
	mock.ExpectQuery(`SELECT \* FROM "patients" ORDER BY creation_date DESC`).
		WillReturnRows(patientRows().AddRow(21, "Ana", "Mora", "1-1111-1111", ""))

	result, err := repo.List(context.Background(), 2, 20, "")
	require.NoError(t, err)
	assert.Equal(t, int64(45), result.Total)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 20, result.Limit)
	assert.Equal(t, 3, result.TotalPages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientListSearch(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPatientRepository(db, newTestCache())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "patients" WHERE first_name ILIKE \$1 OR first_last_name ILIKE \$2 OR identification ILIKE \$3`).
		WithArgs("%mora%", "%mora%", "%mora%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE first_name ILIKE \$1 OR first_last_name ILIKE \$2 OR identification ILIKE \$3`).
		WillReturnRows(patientRows().AddRow(3, "Ana", "Mora", "1-1111-1111", ""))

	result, err := repo.List(context.Background(), 1, 20, "mora")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
