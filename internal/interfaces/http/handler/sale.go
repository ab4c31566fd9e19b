package handler

import (
	"github.com/gin-gonic/gin"
	sales "github.com/salonkit/backend/internal/application/sales"
)

// SaleHandler handles sale lifecycle HTTP requests
type SaleHandler struct {
	BaseHandler
	saleService  *sales.SaleService
	closeService *sales.CloseSaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *sales.SaleService, closeService *sales.CloseSaleService) *SaleHandler {
	return &SaleHandler{
		saleService:  saleService,
		closeService: closeService,
	}
}

// RegisterRoutes registers sale routes
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sales", h.Create)
	rg.GET("/sales", h.List)
	rg.GET("/sales/:id", h.GetByID)
	rg.POST("/sales/:id/items", h.AddItem)
	rg.POST("/sales/:id/start", h.StartProcessing)
	rg.POST("/sales/:id/close", h.Close)
	rg.POST("/sales/:id/cancel", h.Cancel)
}

// Create opens a new sale for a client visit
func (h *SaleHandler) Create(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	var req sales.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.saleService.Create(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID returns a sale with its line items
func (h *SaleHandler) GetByID(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	saleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	resp, err := h.saleService.GetByID(c.Request.Context(), businessID, saleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns sales for the business, optionally filtered by client or status
func (h *SaleHandler) List(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	var filter sales.SaleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.saleService.List(c.Request.Context(), businessID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp, filter.Page, filter.PageSize, len(resp))
}

// AddItem adds a service or retail line to an open sale
func (h *SaleHandler) AddItem(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	saleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	var req sales.AddLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.saleService.AddItem(c.Request.Context(), businessID, saleID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// StartProcessing moves a sale from OPEN to IN_PROCESS
func (h *SaleHandler) StartProcessing(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	saleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	var req sales.StartProcessingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.saleService.StartProcessing(c.Request.Context(), businessID, saleID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Close finalizes a sale: assigns the invoice number, creates commissions for
// every line and opens the receivable, all in one transaction.
func (h *SaleHandler) Close(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	saleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	req := sales.CloseSaleRequest{}
	if actorID, err := getUserID(c); err == nil {
		req.ActorID = actorID
	}

	resp, err := h.closeService.Close(c.Request.Context(), businessID, saleID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel cancels an open or in-process sale
func (h *SaleHandler) Cancel(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	saleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	var req sales.CancelSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.saleService.Cancel(c.Request.Context(), businessID, saleID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
