package routes

import (
	"CareUSmile/cache"
	"CareUSmile/config"
	"CareUSmile/controllers"
	"CareUSmile/handlers"
	"CareUSmile/middlewares"
	"CareUSmile/repositories"
	"CareUSmile/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{config.GetCORSOrigin(), "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15, // 15 requests per second
		Burst:             30, // Burst of 30
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories, services, and handlers
	patientRepo := repositories.NewPatientRepository(db, cache)
	appointmentRepo := repositories.NewAppointmentRepository(db, cache)
	procedureRepo := repositories.NewProcedureRepository(db, cache)
	billRepo := repositories.NewBillRepository(db, cache)
	closingRepo := repositories.NewMonthlyClosingRepository(db, cache)
	userRepo := repositories.NewUserRepository(db, cache)

	patientService := services.NewPatientService(patientRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo)
	procedureService := services.NewProcedureService(procedureRepo)
	billService := services.NewBillService(billRepo)
	closingService := services.NewMonthlyClosingService(closingRepo, procedureRepo, billRepo)
	userService := services.NewUserService(userRepo)

	patientHandler := handlers.NewPatientHandler(patientService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	procedureHandler := handlers.NewProcedureHandler(procedureService)
	billHandler := handlers.NewBillHandler(billService)
	closingHandler := handlers.NewMonthlyClosingHandler(closingService)
	authHandler := handlers.NewAuthHandler(userService)

	// Register routes
	controllers.SetupClinicRoutes(
		router,
		patientHandler,
		appointmentHandler,
		procedureHandler,
		billHandler,
		closingHandler,
	)

	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupRootRoutes(router)

	return router
}
