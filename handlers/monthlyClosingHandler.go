package handlers

import (
	"CareUSmile/repositories"
	"CareUSmile/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type MonthlyClosingHandler struct {
	service *services.MonthlyClosingService
}

func NewMonthlyClosingHandler(service *services.MonthlyClosingService) *MonthlyClosingHandler {
	return &MonthlyClosingHandler{service: service}
}

// closingRequest carries the month to close plus optional overrides for the
// aggregation period, which otherwise defaults to the calendar month.
type closingRequest struct {
	Month     string `json:"month"`
	Year      int    `json:"year"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Comment   string `json:"comment"`
}

func (h *MonthlyClosingHandler) GetAllClosings(c *gin.Context) {
	page, limit := parsePaging(c)
	result, err := h.service.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, result)
}

func (h *MonthlyClosingHandler) GetClosingByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	closing, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if closing == nil {
		respondError(c, repositories.ErrClosingNotFound)
		return
	}
	respondData(c, http.StatusOK, closing)
}

func (h *MonthlyClosingHandler) CreateClosing(c *gin.Context) {
	var request closingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBadRequest(c, "Datos de cierre inválidos")
		return
	}
	closing, err := h.service.CreateClosing(c.Request.Context(), request.Month, request.Year, request.StartDate, request.EndDate, request.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Cierre mensual creado exitosamente", closing)
}

// GetFinancialSummary previews the numbers without persisting a closing.
// ?startDate and ?endDate select an arbitrary inclusive range; ?month
// (Spanish month name) with ?year is accepted as a shorthand for the
// calendar month.
func (h *MonthlyClosingHandler) GetFinancialSummary(c *gin.Context) {
	startDate := firstQuery(c, "startDate", "start_date")
	endDate := firstQuery(c, "endDate", "end_date")
	if startDate != "" && endDate != "" {
		summary, err := h.service.GetFinancialSummaryForPeriod(c.Request.Context(), startDate, endDate)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, summary)
		return
	}

	month := c.Query("month")
	year, err := strconv.Atoi(c.Query("year"))
	if month == "" || err != nil {
		respondBadRequest(c, "Fecha inicio y fin son requeridas")
		return
	}
	summary, err := h.service.GetFinancialSummary(c.Request.Context(), month, year)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, summary)
}
