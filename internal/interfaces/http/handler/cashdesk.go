package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/application/cashdesk"
)

// CashdeskHandler handles cash register HTTP requests
type CashdeskHandler struct {
	BaseHandler
	cashService *cashdesk.CashService
}

// NewCashdeskHandler creates a new CashdeskHandler
func NewCashdeskHandler(cashService *cashdesk.CashService) *CashdeskHandler {
	return &CashdeskHandler{cashService: cashService}
}

// RegisterRoutes registers cash register routes
func (h *CashdeskHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/registers", h.CreateRegister)
	rg.GET("/registers/:id", h.GetRegister)
	rg.POST("/registers/:id/transactions", h.RecordTransaction)
	rg.GET("/registers/:id/transactions", h.ListTransactions)
	rg.GET("/registers/:id/day-summary", h.GetDaySummary)
}

// CreateRegister creates a cash register with a zero balance
func (h *CashdeskHandler) CreateRegister(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	var req cashdesk.CreateRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.cashService.CreateRegister(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetRegister returns a cash register and its current balance
func (h *CashdeskHandler) GetRegister(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	registerID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid register ID")
		return
	}

	resp, err := h.cashService.GetRegister(c.Request.Context(), businessID, registerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecordTransaction records a cash movement against a register
func (h *CashdeskHandler) RecordTransaction(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	registerID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid register ID")
		return
	}

	var req cashdesk.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if req.ActorID == uuid.Nil {
		if actorID, err := getUserID(c); err == nil {
			req.ActorID = actorID
		}
	}

	resp, err := h.cashService.RecordTransaction(c.Request.Context(), businessID, registerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListTransactions returns a register's cash movements, newest first
func (h *CashdeskHandler) ListTransactions(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	registerID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid register ID")
		return
	}

	var filter cashdesk.TransactionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.cashService.ListTransactions(c.Request.Context(), businessID, registerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp, filter.Page, filter.PageSize, len(resp))
}

// GetDaySummary returns opening balance, closing balance and per-type totals
// for one register day. The day defaults to today.
func (h *CashdeskHandler) GetDaySummary(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	registerID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid register ID")
		return
	}

	day := time.Now()
	if dayStr := c.Query("day"); dayStr != "" {
		day, err = time.ParseInLocation("2006-01-02", dayStr, time.Local)
		if err != nil {
			h.BadRequest(c, "Invalid day, expected YYYY-MM-DD")
			return
		}
	}

	resp, err := h.cashService.GetDaySummary(c.Request.Context(), businessID, registerID, day)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
