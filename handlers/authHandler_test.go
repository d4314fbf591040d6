package handlers

import (
	"CareUSmile/models"
	"CareUSmile/services"
	"CareUSmile/utils"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) ValidateAndCreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserService) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserService) SendResetCode(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *mockUserService) ChangePassword(ctx context.Context, email, resetCode, newPassword string) error {
	args := m.Called(ctx, email, resetCode, newPassword)
	return args.Error(0)
}

func newAuthRouter(service services.UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAuthHandler(service)
	router.POST("/api/auth/login", handler.Login)
	router.POST("/api/auth/register", handler.Register)
	router.GET("/api/auth/check-session", handler.CheckSession)
	return router
}

func TestLogin(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")

	service := new(mockUserService)
	service.On("AuthenticateUser", mock.Anything, "doctora@example.com", "Secreta1!").
		Return(&models.User{ID: 1, Email: "doctora@example.com", Name: "Dra. Mora", UserType: models.UserTypeAdmin}, nil)

	router := newAuthRouter(service)
	body, _ := json.Marshal(gin.H{"email": "doctora@example.com", "password": "Secreta1!"})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.NotEmpty(t, response.Data.AccessToken)
	assert.NotEmpty(t, response.Data.RefreshToken)
	assert.NotEmpty(t, recorder.Header().Values("Set-Cookie"))

	service.AssertExpectations(t)
}

func TestLoginInvalidCredentials(t *testing.T) {
	service := new(mockUserService)
	service.On("AuthenticateUser", mock.Anything, "doctora@example.com", "mala-clave").
		Return(nil, services.ErrInvalidCredentials)

	router := newAuthRouter(service)
	body, _ := json.Marshal(gin.H{"email": "doctora@example.com", "password": "mala-clave"})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Correo o contraseña incorrectos")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service := new(mockUserService)
	service.On("ValidateAndCreateUser", mock.Anything, mock.Anything).
		Return(services.ErrEmailRegistered)

	router := newAuthRouter(service)
	body, _ := json.Marshal(gin.H{
		"email": "doctora@example.com", "password": "Secreta1!",
		"name": "Dra. Mora", "user_type": "ADMIN",
	})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "El correo ya está registrado")
}

func TestCheckSessionWithoutToken(t *testing.T) {
	router := newAuthRouter(new(mockUserService))
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/auth/check-session", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestCheckSession(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")

	service := new(mockUserService)
	service.On("GetUserByID", mock.Anything, int64(1)).
		Return(&models.User{ID: 1, Email: "doctora@example.com", Name: "Dra. Mora", UserType: models.UserTypeAdmin}, nil)

	router := newAuthRouter(service)

	token, err := utils.GenerateAccessToken("1", models.UserTypeAdmin)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/auth/check-session", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "doctora@example.com")
	service.AssertExpectations(t)
}
