package controllers

import (
	"CareUSmile/handlers"
	"CareUSmile/middlewares"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Handler *handlers.AuthHandler
}

// NewAuthController creates a new AuthController with the given AuthHandler
func NewAuthController(authHandler *handlers.AuthHandler) *AuthController {
	return &AuthController{
		Handler: authHandler,
	}
}

// RegisterRoutes initializes all authentication routes directly on the router
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	// Public routes: No authentication required
	auth := router.Group("/api/auth")
	{
		auth.POST("/login", ac.Handler.Login)
		auth.POST("/register", ac.Handler.Register)
		auth.GET("/check-session", ac.Handler.CheckSession)
		auth.POST("/send-reset-code", ac.Handler.SendResetCode)
		auth.POST("/change-password", ac.Handler.ChangePassword)
	}

	// Protected routes: Requires a valid token
	authGroup := router.Group("/api/auth").Use(middlewares.TokenAuthMiddleware())
	{
		authGroup.POST("/logout", ac.Handler.Logout)
		authGroup.POST("/refresh-token", ac.Handler.RefreshToken)
	}
}
