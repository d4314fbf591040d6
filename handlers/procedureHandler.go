package handlers

import (
	"CareUSmile/models"
	"CareUSmile/repositories"
	"CareUSmile/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ProcedureHandler struct {
	service *services.ProcedureService
}

func NewProcedureHandler(service *services.ProcedureService) *ProcedureHandler {
	return &ProcedureHandler{service: service}
}

func (h *ProcedureHandler) GetAllProcedures(c *gin.Context) {
	h.listFiltered(c, nil)
}

// GetNormalProcedures lists only non-orthodontic procedures.
func (h *ProcedureHandler) GetNormalProcedures(c *gin.Context) {
	isOrtho := false
	h.listFiltered(c, &isOrtho)
}

// GetOrthodonticProcedures lists only orthodontic procedures.
func (h *ProcedureHandler) GetOrthodonticProcedures(c *gin.Context) {
	isOrtho := true
	h.listFiltered(c, &isOrtho)
}

func (h *ProcedureHandler) listFiltered(c *gin.Context, isOrthodontics *bool) {
	page, limit := parsePaging(c)
	filters := repositories.ProcedureFilters{
		StartDate:      firstQuery(c, "startDate", "start_date"),
		EndDate:        firstQuery(c, "endDate", "end_date"),
		IsOrthodontics: isOrthodontics,
	}
	if filters.IsOrthodontics == nil {
		filters.IsOrthodontics = parseBoolQuery(c, "isOrthodontics", "is_orthodontics")
	}
	result, err := h.service.List(c.Request.Context(), page, limit, filters)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, result)
}

func (h *ProcedureHandler) GetProcedureByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	procedure, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if procedure == nil {
		respondError(c, repositories.ErrProcedureNotFound)
		return
	}
	respondData(c, http.StatusOK, procedure)
}

func (h *ProcedureHandler) GetProceduresByPatient(c *gin.Context) {
	patientID, ok := parseIDParam(c, "patientId")
	if !ok {
		return
	}
	procedures, err := h.service.GetByPatientID(c.Request.Context(), patientID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, procedures)
}

func (h *ProcedureHandler) CreateProcedure(c *gin.Context) {
	var procedure models.Procedure
	if err := c.ShouldBindJSON(&procedure); err != nil {
		respondBadRequest(c, "Datos de procedimiento inválidos")
		return
	}
	if err := h.service.Create(c.Request.Context(), &procedure); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Procedimiento creado exitosamente", procedure)
}

func (h *ProcedureHandler) UpdateProcedure(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var procedure models.Procedure
	if err := c.ShouldBindJSON(&procedure); err != nil {
		respondBadRequest(c, "Datos de procedimiento inválidos")
		return
	}
	procedure.ProcedureID = id
	if err := h.service.Update(c.Request.Context(), &procedure); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Procedimiento actualizado exitosamente", procedure)
}

func (h *ProcedureHandler) DeleteProcedure(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	procedure, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Procedimiento eliminado exitosamente", procedure)
}

func (h *ProcedureHandler) CountProcedures(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"count": count})
}

// GetIncomeStats aggregates income over ?startDate and ?endDate. Both are
// required; without a range the numbers would silently cover all history.
func (h *ProcedureHandler) GetIncomeStats(c *gin.Context) {
	startDate := firstQuery(c, "startDate", "start_date")
	endDate := firstQuery(c, "endDate", "end_date")
	if startDate == "" || endDate == "" {
		respondBadRequest(c, "Fecha inicio y fin son requeridas")
		return
	}
	stats, err := h.service.IncomeStats(c.Request.Context(), startDate, endDate)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}
