package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/salonkit/backend/internal/application/commissions"
)

// CommissionHandler handles commission HTTP requests
type CommissionHandler struct {
	BaseHandler
	commissionService *commissions.CommissionService
}

// NewCommissionHandler creates a new CommissionHandler
func NewCommissionHandler(commissionService *commissions.CommissionService) *CommissionHandler {
	return &CommissionHandler{commissionService: commissionService}
}

// RegisterRoutes registers commission routes
func (h *CommissionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/commissions/:id", h.GetByID)
	rg.POST("/commissions/:id/pay", h.MarkPaid)
	rg.POST("/commissions/:id/cancel", h.Cancel)
	rg.GET("/sales/:id/commissions", h.ListBySale)
	rg.GET("/experts/:id/commissions", h.ListByExpert)
}

// GetByID returns a single commission
func (h *CommissionHandler) GetByID(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	commissionID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid commission ID")
		return
	}

	resp, err := h.commissionService.GetByID(c.Request.Context(), businessID, commissionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListBySale returns all commissions produced by one sale
func (h *CommissionHandler) ListBySale(c *gin.Context) {
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

	resp, err := h.commissionService.ListBySale(c.Request.Context(), businessID, saleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListByExpert returns an expert's commissions, optionally filtered by status
// or line type
func (h *CommissionHandler) ListByExpert(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	expertID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid expert ID")
		return
	}

	var filter commissions.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.commissionService.ListByExpert(c.Request.Context(), businessID, expertID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp, filter.Page, filter.PageSize, len(resp))
}

// MarkPaid marks a pending commission as paid out
func (h *CommissionHandler) MarkPaid(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	commissionID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid commission ID")
		return
	}

	resp, err := h.commissionService.MarkPaid(c.Request.Context(), businessID, commissionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel cancels a pending commission
func (h *CommissionHandler) Cancel(c *gin.Context) {
	businessID, err := getBusinessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	commissionID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid commission ID")
		return
	}

	var req commissions.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.commissionService.Cancel(c.Request.Context(), businessID, commissionID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
