package handlers

import (
	"CareUSmile/models"
	"CareUSmile/repositories"
	"CareUSmile/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	service *services.AppointmentService
}

func NewAppointmentHandler(service *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

func (h *AppointmentHandler) GetAllAppointments(c *gin.Context) {
	page, limit := parsePaging(c)
	filters := repositories.AppointmentFilters{
		StartDate:      firstQuery(c, "startDate", "start_date"),
		EndDate:        firstQuery(c, "endDate", "end_date"),
		State:          c.Query("state"),
		IsOrthodontics: parseBoolQuery(c, "isOrthodontics", "is_orthodontics"),
	}
	if raw := firstQuery(c, "patientId", "patient_id"); raw != "" {
		if patientID, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filters.PatientID = uint(patientID)
		}
	}
	result, err := h.service.List(c.Request.Context(), page, limit, filters)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, result)
}

func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	appointment, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if appointment == nil {
		respondError(c, repositories.ErrAppointmentNotFound)
		return
	}
	respondData(c, http.StatusOK, appointment)
}

func (h *AppointmentHandler) GetAppointmentsByDate(c *gin.Context) {
	date := c.Param("date")
	appointments, err := h.service.GetByDate(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, appointments)
}

func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var appointment models.Appointment
	if err := c.ShouldBindJSON(&appointment); err != nil {
		respondBadRequest(c, "Datos de cita inválidos")
		return
	}
	if err := h.service.Create(c.Request.Context(), &appointment); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Cita creada exitosamente", appointment)
}

func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var appointment models.Appointment
	if err := c.ShouldBindJSON(&appointment); err != nil {
		respondBadRequest(c, "Datos de cita inválidos")
		return
	}
	appointment.AppointmentID = id
	if err := h.service.Update(c.Request.Context(), &appointment); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Cita actualizada exitosamente", appointment)
}

func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	appointment, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Cita eliminada exitosamente", appointment)
}

// CountAppointments counts appointments in the state named by ?state.
func (h *AppointmentHandler) CountAppointments(c *gin.Context) {
	state := c.Query("state")
	if !models.IsAppointmentState(state) {
		respondBadRequest(c, "Estado de cita inválido: "+state)
		return
	}
	count, err := h.service.CountByState(c.Request.Context(), state)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"count": count})
}

// ConvertToProcedure turns a completed appointment into a billed procedure.
// The request body carries only the billing fields; patient, date and
// orthodontics flag are copied from the appointment inside the transaction.
func (h *AppointmentHandler) ConvertToProcedure(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var procedure models.Procedure
	if err := c.ShouldBindJSON(&procedure); err != nil {
		respondBadRequest(c, "Datos de procedimiento inválidos")
		return
	}
	appointment, created, err := h.service.ConvertToProcedure(c.Request.Context(), id, &procedure)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Cita convertida a procedimiento exitosamente", gin.H{
		"appointment": appointment,
		"procedure":   created,
	})
}
