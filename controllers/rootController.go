package controllers

import (
	"CareUSmile/database"
	"net/http"

	"github.com/gin-gonic/gin"
)

// rootHandler handles requests to the root path
func rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":   "Care U Smile API",
		"status": "ok",
	})
}

// healthHandler reports whether the database is reachable.
func healthHandler(c *gin.Context) {
	if err := database.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "unreachable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

// SetupRootRoutes sets up the root, health and catch-all routes.
func SetupRootRoutes(router *gin.Engine) {
	router.GET("/", rootHandler)
	router.GET("/health", healthHandler)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Ruta no encontrada",
			"path":  c.Request.URL.Path,
		})
	})
}
