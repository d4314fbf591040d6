package handlers

import (
	"CareUSmile/repositories"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
)

func recordError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	respondError(c, err)
	return recorder
}

func TestRespondErrorNotFound(t *testing.T) {
	recorder := recordError(repositories.ErrPatientNotFound)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Paciente no encontrado")
}

func TestRespondErrorBusinessRule(t *testing.T) {
	recorder := recordError(repositories.ErrAppointmentNotCompleted)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Solo las citas completadas")
}

func TestRespondErrorWrapped(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), repositories.ErrClosingExists)
	recorder := recordError(wrapped)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRespondErrorValidation(t *testing.T) {
	err := validation.Errors{"total_cost": errors.New("must be no less than 0.01")}
	recorder := recordError(err)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "total_cost")
}

func TestRespondErrorUnknownIsInternal(t *testing.T) {
	recorder := recordError(errors.New("driver: bad connection"))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	// Internals never leak to clients.
	assert.NotContains(t, recorder.Body.String(), "driver")
}
