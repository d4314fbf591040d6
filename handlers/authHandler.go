package handlers

import (
	"CareUSmile/middlewares"
	"CareUSmile/models"
	"CareUSmile/services"
	"CareUSmile/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// Register creates a new account. Validation and the duplicate-email check
// live in the service.
func (h *AuthHandler) Register(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		respondBadRequest(c, "Datos de usuario inválidos")
		return
	}

	if err := h.userService.ValidateAndCreateUser(c.Request.Context(), &user); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, "Usuario registrado exitosamente", gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"name":      user.Name,
		"user_type": user.UserType,
	})
}

// Login authenticates by email and password, sets the auth cookies and also
// returns the tokens in the body for clients that prefer headers.
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		respondBadRequest(c, "Datos de acceso inválidos")
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), credentials.Email, credentials.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(strconv.FormatInt(user.ID, 10), user.UserType)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SetAuthCookies(c, accessToken, refreshToken)

	respondData(c, http.StatusOK, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"name":      user.Name,
			"user_type": user.UserType,
		},
	})
}

// CheckSession validates the caller's token and returns the current user.
func (h *AuthHandler) CheckSession(c *gin.Context) {
	token := middlewares.ExtractAccessToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Missing access token"})
		return
	}

	claims, err := utils.ValidateToken(token, models.UserTypeAdmin, models.UserTypeUser)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token"})
		return
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token"})
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"name":      user.Name,
		"user_type": user.UserType,
	})
}

// RefreshToken issues a fresh access token for a still-valid one.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token := middlewares.ExtractAccessToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Missing access token"})
		return
	}

	claims, err := utils.ValidateToken(token, models.UserTypeAdmin, models.UserTypeUser)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token"})
		return
	}

	accessToken, err := utils.GenerateAccessToken(claims.UserID, claims.UserType)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"accessToken": accessToken})
}

// Logout clears the auth cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.ClearAuthCookies(c)
	respondMessage(c, http.StatusOK, "Sesión cerrada exitosamente", nil)
}

// SendResetCode emails a password reset code. It answers the same way for
// known and unknown addresses.
func (h *AuthHandler) SendResetCode(c *gin.Context) {
	var data struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&data); err != nil || data.Email == "" {
		respondBadRequest(c, "Correo inválido")
		return
	}

	if err := h.userService.SendResetCode(c.Request.Context(), data.Email); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Si el correo existe, se ha enviado un código de restablecimiento", nil)
}

// ChangePassword sets a new password given a valid reset code.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var data struct {
		Email       string `json:"email"`
		ResetCode   string `json:"reset_code"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		respondBadRequest(c, "Datos inválidos")
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), data.Email, data.ResetCode, data.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Contraseña actualizada exitosamente", nil)
}
