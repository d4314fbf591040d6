package middlewares

import (
	"CareUSmile/models"
	"CareUSmile/utils"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSymmetricKey = "0123456789abcdef0123456789abcdef"

func newAdminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	admin := router.Group("/admin", TokenAuthMiddleware(), UserTypeAuthMiddleware(models.UserTypeAdmin))
	admin.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func performAdminRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestAdminRouteRejectsMissingToken(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", testSymmetricKey)

	recorder := performAdminRequest(newAdminRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAdminRouteRejectsRegularUser(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", testSymmetricKey)

	token, err := utils.GenerateAccessToken("7", models.UserTypeUser)
	require.NoError(t, err)

	recorder := performAdminRequest(newAdminRouter(), token)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestAdminRouteAllowsAdmin(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", testSymmetricKey)

	token, err := utils.GenerateAccessToken("1", models.UserTypeAdmin)
	require.NoError(t, err)

	recorder := performAdminRequest(newAdminRouter(), token)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
