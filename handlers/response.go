package handlers

import (
	"CareUSmile/repositories"
	"CareUSmile/services"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type errorResponse struct {
	status  int
	message string
}

// domainErrors maps known domain errors to an HTTP status and the Spanish
// message clients expect. Anything not listed is treated as an internal error.
var domainErrors = map[error]errorResponse{
	repositories.ErrPatientNotFound:         {http.StatusNotFound, "Paciente no encontrado"},
	repositories.ErrAppointmentNotFound:     {http.StatusNotFound, "Cita no encontrada"},
	repositories.ErrProcedureNotFound:       {http.StatusNotFound, "Procedimiento no encontrado"},
	repositories.ErrBillNotFound:            {http.StatusNotFound, "Gasto no encontrado"},
	repositories.ErrClosingNotFound:         {http.StatusNotFound, "Cierre mensual no encontrado"},
	repositories.ErrPatientHasAppointments:  {http.StatusBadRequest, "No se puede eliminar el paciente porque tiene citas asociadas"},
	repositories.ErrDuplicateIdentification: {http.StatusBadRequest, "Ya existe un paciente con esta identificación"},
	repositories.ErrAppointmentNotCompleted: {http.StatusBadRequest, "Solo las citas completadas pueden convertirse en procedimientos"},
	repositories.ErrInvalidStateTransition:  {http.StatusBadRequest, "Transición de estado no permitida"},
	repositories.ErrClosingExists:           {http.StatusBadRequest, "Ya existe un cierre para este mes y año"},
	services.ErrInvalidCredentials:          {http.StatusUnauthorized, "Correo o contraseña incorrectos"},
	services.ErrEmailRegistered:             {http.StatusBadRequest, "El correo ya está registrado"},
	services.ErrInvalidResetCode:            {http.StatusBadRequest, "Código de restablecimiento inválido o expirado"},
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{"success": true, "message": message, "data": data})
}

func respondPage(c *gin.Context, page *repositories.Page) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       page.Data,
		"total":      page.Total,
		"page":       page.Page,
		"limit":      page.Limit,
		"totalPages": page.TotalPages,
	})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": message})
}

// respondError translates validation failures and domain sentinels into the
// right status; everything else is a 500 with a generic Spanish message so
// internals never leak to clients.
func respondError(c *gin.Context, err error) {
	var validationErrors validation.Errors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validationErrors.Error()})
		return
	}

	for sentinel, response := range domainErrors {
		if errors.Is(err, sentinel) {
			c.JSON(response.status, gin.H{"success": false, "error": response.message})
			return
		}
	}

	log.Printf("Unhandled error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error interno del servidor"})
}
