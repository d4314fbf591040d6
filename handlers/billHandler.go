package handlers

import (
	"CareUSmile/models"
	"CareUSmile/repositories"
	"CareUSmile/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type BillHandler struct {
	service *services.BillService
}

func NewBillHandler(service *services.BillService) *BillHandler {
	return &BillHandler{service: service}
}

func (h *BillHandler) GetAllBills(c *gin.Context) {
	page, limit := parsePaging(c)
	filters := repositories.BillFilters{
		Category:  c.Query("category"),
		Type:      c.Query("type"),
		StartDate: firstQuery(c, "startDate", "start_date"),
		EndDate:   firstQuery(c, "endDate", "end_date"),
	}
	result, err := h.service.List(c.Request.Context(), page, limit, filters)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, result)
}

func (h *BillHandler) GetBillByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	bill, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if bill == nil {
		respondError(c, repositories.ErrBillNotFound)
		return
	}
	respondData(c, http.StatusOK, bill)
}

func (h *BillHandler) CreateBill(c *gin.Context) {
	var bill models.Bill
	if err := c.ShouldBindJSON(&bill); err != nil {
		respondBadRequest(c, "Datos de gasto inválidos")
		return
	}
	if err := h.service.Create(c.Request.Context(), &bill); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Gasto creado exitosamente", bill)
}

func (h *BillHandler) UpdateBill(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var bill models.Bill
	if err := c.ShouldBindJSON(&bill); err != nil {
		respondBadRequest(c, "Datos de gasto inválidos")
		return
	}
	bill.BillID = id
	if err := h.service.Update(c.Request.Context(), &bill); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Gasto actualizado exitosamente", bill)
}

func (h *BillHandler) DeleteBill(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	bill, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Gasto eliminado exitosamente", bill)
}

func (h *BillHandler) GetRecurrentBills(c *gin.Context) {
	bills, err := h.service.GetRecurrent(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, bills)
}

func (h *BillHandler) GetExpenseStats(c *gin.Context) {
	startDate := firstQuery(c, "startDate", "start_date")
	endDate := firstQuery(c, "endDate", "end_date")
	if startDate == "" || endDate == "" {
		respondBadRequest(c, "Fecha inicio y fin son requeridas")
		return
	}
	stats, err := h.service.ExpenseStats(c.Request.Context(), startDate, endDate)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}
