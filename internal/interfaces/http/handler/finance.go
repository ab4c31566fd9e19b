package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/application/finance"
	"github.com/salonkit/backend/internal/domain/ledger"
)

// FinanceHandler handles ledger account HTTP requests (receivables and payables)
type FinanceHandler struct {
	BaseHandler
	accountService *finance.AccountService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(accountService *finance.AccountService) *FinanceHandler {
	return &FinanceHandler{accountService: accountService}
}

// RegisterRoutes registers ledger account routes
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/accounts", h.Create)
	rg.GET("/accounts", h.List)
	rg.GET("/accounts/:id", h.GetByID)
	rg.GET("/accounts/origin/:origin_type/:origin_id", h.GetByOrigin)
	rg.POST("/accounts/:id/payments", h.RecordPayment)
}

// Create opens a ledger account. Receivables for sales are opened
// automatically by the sale close flow; this endpoint covers manual entries
// and purchase invoices.
func (h *FinanceHandler) Create(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	var req finance.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.accountService.Create(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID returns a ledger account with its payment history
func (h *FinanceHandler) GetByID(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	accountID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	resp, err := h.accountService.GetByID(c.Request.Context(), businessID, accountID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByOrigin returns the ledger account opened for a specific origin document
func (h *FinanceHandler) GetByOrigin(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	originID, err := parseIDParam(c, "origin_id")
	if err != nil {
		h.BadRequest(c, "Invalid origin ID")
		return
	}
	originType := ledger.OriginType(c.Param("origin_type"))

	resp, err := h.accountService.GetByOrigin(c.Request.Context(), businessID, originType, originID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns ledger accounts, optionally filtered by kind, status,
// counterparty or overdue state
func (h *FinanceHandler) List(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	var filter finance.AccountListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.accountService.List(c.Request.Context(), businessID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp, filter.Page, filter.PageSize, len(resp))
}

// RecordPayment applies a payment to an account
func (h *FinanceHandler) RecordPayment(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	accountID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req finance.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if req.ActorID == uuid.Nil {
		if actorID, err := getUserID(c); err == nil {
			req.ActorID = actorID
		}
	}

	resp, err := h.accountService.RecordPayment(c.Request.Context(), businessID, accountID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
