package controllers

import (
	"CareUSmile/handlers"
	"CareUSmile/middlewares"
	"CareUSmile/models"

	"github.com/gin-gonic/gin"
)

// SetupClinicRoutes registers the clinic resources under /api. Every route
// requires a valid token.
func SetupClinicRoutes(
	router *gin.Engine,
	patientHandler *handlers.PatientHandler,
	appointmentHandler *handlers.AppointmentHandler,
	procedureHandler *handlers.ProcedureHandler,
	billHandler *handlers.BillHandler,
	closingHandler *handlers.MonthlyClosingHandler,
) {
	api := router.Group("/api", middlewares.TokenAuthMiddleware())

	patients := api.Group("/patients")
	{
		patients.GET("", patientHandler.GetAllPatients)
		patients.GET("/count", patientHandler.CountPatients)
		patients.GET("/:id", patientHandler.GetPatientByID)
		patients.POST("", patientHandler.CreatePatient)
		patients.PUT("/:id", patientHandler.UpdatePatient)
		patients.DELETE("/:id", patientHandler.DeletePatient)
	}

	appointments := api.Group("/appointments")
	{
		appointments.GET("", appointmentHandler.GetAllAppointments)
		appointments.GET("/count", appointmentHandler.CountAppointments)
		appointments.GET("/:id", appointmentHandler.GetAppointmentByID)
		appointments.GET("/date/:date", appointmentHandler.GetAppointmentsByDate)
		appointments.POST("", appointmentHandler.CreateAppointment)
		appointments.PUT("/:id", appointmentHandler.UpdateAppointment)
		appointments.DELETE("/:id", appointmentHandler.DeleteAppointment)
		appointments.POST("/:id/convert-to-procedure", appointmentHandler.ConvertToProcedure)
	}

	procedures := api.Group("/procedures")
	{
		procedures.GET("", procedureHandler.GetAllProcedures)
		procedures.GET("/normal", procedureHandler.GetNormalProcedures)
		procedures.GET("/orthodontics", procedureHandler.GetOrthodonticProcedures)
		procedures.GET("/count", procedureHandler.CountProcedures)
		procedures.GET("/stats/income", procedureHandler.GetIncomeStats)
		procedures.GET("/patient/:patientId", procedureHandler.GetProceduresByPatient)
		procedures.GET("/:id", procedureHandler.GetProcedureByID)
		procedures.POST("", procedureHandler.CreateProcedure)
		procedures.PUT("/:id", procedureHandler.UpdateProcedure)
		procedures.DELETE("/:id", procedureHandler.DeleteProcedure)
	}

	bills := api.Group("/bills")
	{
		bills.GET("", billHandler.GetAllBills)
		bills.GET("/recurrent/all", billHandler.GetRecurrentBills)
		bills.GET("/stats/expenses", billHandler.GetExpenseStats)
		bills.GET("/:id", billHandler.GetBillByID)
		bills.POST("", billHandler.CreateBill)
		bills.PUT("/:id", billHandler.UpdateBill)
		bills.DELETE("/:id", billHandler.DeleteBill)
	}

	closings := api.Group("/monthly-closings")
	{
		closings.GET("", closingHandler.GetAllClosings)
		closings.GET("/summary/financial", closingHandler.GetFinancialSummary)
		closings.GET("/:id", closingHandler.GetClosingByID)
		closings.POST("", middlewares.UserTypeAuthMiddleware(models.UserTypeAdmin), closingHandler.CreateClosing)
	}
}
