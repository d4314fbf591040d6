package handlers

import (
	"CareUSmile/cache"
	"CareUSmile/repositories"
	"CareUSmile/services"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
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

func newTestCache() *cache.Cache {
	return cache.NewWithClient(nil)
}

func performRequest(router *gin.Engine, url string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, url, nil)
	router.ServeHTTP(recorder, request)
	return recorder
}

func newProcedureRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewProcedureHandler(services.NewProcedureService(repositories.NewProcedureRepository(db, newTestCache())))
	router := gin.New()
	router.GET("/api/procedures/stats/income", handler.GetIncomeStats)
	return router
}

func TestIncomeStatsCamelCaseRange(t *testing.T) {
	db, mock := newTestDB(t)
	router := newProcedureRouter(db)

	mock.ExpectQuery(`SELECT "total_cost","is_orthodontics" FROM "procedures" WHERE procedure_date >= \$1 AND procedure_date <= \$2`).
		WithArgs("2026-01-01", "2026-01-31").
		WillReturnRows(sqlmock.NewRows([]string{"total_cost", "is_orthodontics"}).
			AddRow(1000.0, true))

	recorder := performRequest(router, "/api/procedures/stats/income?startDate=2026-01-01&endDate=2026-01-31")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"doctor_income":600`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncomeStatsMissingRange(t *testing.T) {
	db, _ := newTestDB(t)
	router := newProcedureRouter(db)

	recorder := performRequest(router, "/api/procedures/stats/income")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Fecha inicio y fin son requeridas")
}

func TestExpenseStatsCamelCaseRange(t *testing.T) {
	db, mock := newTestDB(t)
	gin.SetMode(gin.TestMode)
	handler := NewBillHandler(services.NewBillService(repositories.NewBillRepository(db, newTestCache())))
	router := gin.New()
	router.GET("/api/bills/stats/expenses", handler.GetExpenseStats)

	mock.ExpectQuery(`SELECT "amount","is_recurrent" FROM "bills" WHERE bill_date >= \$1 AND bill_date <= \$2`).
		WithArgs("2026-01-01", "2026-01-31").
		WillReturnRows(sqlmock.NewRows([]string{"amount", "is_recurrent"}).
			AddRow(200.0, true).
			AddRow(100.0, false))

	recorder := performRequest(router, "/api/bills/stats/expenses?startDate=2026-01-01&endDate=2026-01-31")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"fixed_expenses":200`)
	assert.Contains(t, recorder.Body.String(), `"variable_expenses":100`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func newAppointmentRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAppointmentHandler(services.NewAppointmentService(repositories.NewAppointmentRepository(db, newTestCache())))
	router := gin.New()
	router.GET("/api/appointments", handler.GetAllAppointments)
	router.GET("/api/appointments/count", handler.CountAppointments)
	return router
}

func TestAppointmentListCamelCaseFilters(t *testing.T) {
	db, mock := newTestDB(t)
	router := newAppointmentRouter(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "clinical_appointments" WHERE patient_id = \$1 AND is_orthodontics = \$2`).
		WithArgs(3, true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM "clinical_appointments" WHERE patient_id = \$1 AND is_orthodontics = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"appointment_id"}))

	recorder := performRequest(router, "/api/appointments?patientId=3&isOrthodontics=true")

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountAppointmentsByState(t *testing.T) {
	db, mock := newTestDB(t)
	router := newAppointmentRouter(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "clinical_appointments" WHERE state = \$1`).
		WithArgs("completed").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	recorder := performRequest(router, "/api/appointments/count?state=completed")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"count":4`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountAppointmentsRejectsUnknownState(t *testing.T) {
	db, _ := newTestDB(t)
	router := newAppointmentRouter(db)

	recorder := performRequest(router, "/api/appointments/count?state=archived")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Estado de cita inválido")
}

func newClosingRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := services.NewMonthlyClosingService(
		repositories.NewMonthlyClosingRepository(db, newTestCache()),
		repositories.NewProcedureRepository(db, newTestCache()),
		repositories.NewBillRepository(db, newTestCache()),
	)
	handler := NewMonthlyClosingHandler(service)
	router := gin.New()
	router.GET("/api/monthly-closings/summary/financial", handler.GetFinancialSummary)
	return router
}

func TestFinancialSummaryDateRange(t *testing.T) {
	db, mock := newTestDB(t)
	router := newClosingRouter(db)

	mock.ExpectQuery(`SELECT "total_cost","is_orthodontics" FROM "procedures" WHERE procedure_date >= \$1 AND procedure_date <= \$2`).
		WithArgs("2026-01-15", "2026-02-14").
		WillReturnRows(sqlmock.NewRows([]string{"total_cost", "is_orthodontics"}).
			AddRow(500.0, false).
			AddRow(1000.0, true))
	mock.ExpectQuery(`SELECT "amount","is_recurrent" FROM "bills" WHERE bill_date >= \$1 AND bill_date <= \$2`).
		WithArgs("2026-01-15", "2026-02-14").
		WillReturnRows(sqlmock.NewRows([]string{"amount", "is_recurrent"}).
			AddRow(200.0, true))

	recorder := performRequest(router, "/api/monthly-closings/summary/financial?startDate=2026-01-15&endDate=2026-02-14")

	assert.Equal(t, http.StatusOK, recorder.Code)
	// 500 general + 40% of 1000 orthodontic - 200 expenses.
	assert.Contains(t, recorder.Body.String(), `"net_profit":700`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFinancialSummaryRequiresPeriod(t *testing.T) {
	db, _ := newTestDB(t)
	router := newClosingRouter(db)

	recorder := performRequest(router, "/api/monthly-closings/summary/financial")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Fecha inicio y fin son requeridas")
}
