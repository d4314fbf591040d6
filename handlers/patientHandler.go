package handlers

import (
	"CareUSmile/models"
	"CareUSmile/repositories"
	"CareUSmile/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	service *services.PatientService
}

func NewPatientHandler(service *services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

func (h *PatientHandler) GetAllPatients(c *gin.Context) {
	page, limit := parsePaging(c)
	result, err := h.service.List(c.Request.Context(), page, limit, c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, result)
}

func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	patient, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if patient == nil {
		respondError(c, repositories.ErrPatientNotFound)
		return
	}
	respondData(c, http.StatusOK, patient)
}

func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		respondBadRequest(c, "Datos de paciente inválidos")
		return
	}
	if err := h.service.Create(c.Request.Context(), &patient); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Paciente creado exitosamente", patient)
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		respondBadRequest(c, "Datos de paciente inválidos")
		return
	}
	patient.PatientID = id
	if err := h.service.Update(c.Request.Context(), &patient); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Paciente actualizado exitosamente", patient)
}

func (h *PatientHandler) DeletePatient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	patient, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Paciente eliminado exitosamente", patient)
}

func (h *PatientHandler) CountPatients(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"count": count})
}
