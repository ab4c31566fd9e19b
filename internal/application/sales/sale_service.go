package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/sale"
	"github.com/salonkit/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SaleService handles the sale lifecycle up to (but not including) closing.
// Closing is orchestrated by CloseSaleService because it fans out into
// commissions and the receivable ledger.
type SaleService struct {
	saleRepo  sale.Repository
	sequences shared.SequenceGenerator
	logger    *zap.Logger
}

// NewSaleService creates a new SaleService
func NewSaleService(saleRepo sale.Repository, sequences shared.SequenceGenerator, logger *zap.Logger) *SaleService {
	return &SaleService{
		saleRepo:  saleRepo,
		sequences: sequences,
		logger:    logger,
	}
}

// Create opens a new sale for a client visit
func (s *SaleService) Create(ctx context.Context, businessID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	number, err := s.sequences.Next(ctx, businessID, shared.SequenceSale)
	if err != nil {
		return nil, err
	}

	newSale, err := sale.NewSale(businessID, fmt.Sprintf("S-%06d", number), req.ClientID)
	if err != nil {
		return nil, err
	}

	if err := s.saleRepo.Save(ctx, newSale); err != nil {
		return nil, err
	}

	response := ToSaleResponse(newSale)
	return &response, nil
}

// GetByID retrieves a sale by ID
func (s *SaleService) GetByID(ctx context.Context, businessID, saleID uuid.UUID) (*SaleResponse, error) {
	found, err := s.saleRepo.FindByIDForBusiness(ctx, businessID, saleID)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(found)
	return &response, nil
}

// List retrieves sales with filtering and pagination
func (s *SaleService) List(ctx context.Context, businessID uuid.UUID, filter SaleListFilter) ([]SaleResponse, error) {
	domainFilter := sale.Filter{
		Filter:   shared.DefaultFilter(),
		ClientID: filter.ClientID,
		Status:   filter.Status,
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}

	sales, err := s.saleRepo.FindAllForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToSaleResponses(sales), nil
}

// AddItem adds a service or retail line item to a sale
func (s *SaleService) AddItem(ctx context.Context, businessID, saleID uuid.UUID, req AddLineItemRequest) (*SaleResponse, error) {
	found, err := s.saleRepo.FindByIDForBusiness(ctx, businessID, saleID)
	if err != nil {
		return nil, err
	}

	var item *sale.LineItem
	switch req.ItemType {
	case sale.ItemTypeService:
		inputs := make([]sale.InputCost, 0, len(req.InputCosts))
		for _, in := range req.InputCosts {
			cost, err := sale.NewInputCost(in.Name, in.Amount)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, cost)
		}
		item, err = sale.NewServiceLine(found.ID, req.ExpertID, req.Description, req.GrossAmount, inputs)
	case sale.ItemTypeRetail:
		item, err = sale.NewRetailLine(found.ID, req.ExpertID, req.Description, req.GrossAmount)
	default:
		return nil, shared.NewDomainError("INVALID_ITEM_TYPE", fmt.Sprintf("Unknown item type %q", req.ItemType))
	}
	if err != nil {
		return nil, err
	}

	// Input costs above gross are accepted but worth flagging: the expert's
	// net on this line will be negative.
	if item.InputCostsExceedGross() {
		s.logger.Warn("line item input costs exceed gross amount",
			zap.String("sale_id", found.ID.String()),
			zap.String("line_item_id", item.ID.String()),
			zap.String("gross_amount", item.GrossAmount.String()),
			zap.String("input_costs", item.TotalInputCosts().String()),
		)
	}

	if err := found.AddItem(item); err != nil {
		return nil, err
	}
	if err := s.saleRepo.SaveWithLock(ctx, found); err != nil {
		return nil, err
	}

	response := ToSaleResponse(found)
	return &response, nil
}

// StartProcessing moves a sale from OPEN to IN_PROCESS
func (s *SaleService) StartProcessing(ctx context.Context, businessID, saleID uuid.UUID, req StartProcessingRequest) (*SaleResponse, error) {
	found, err := s.saleRepo.FindByIDForBusiness(ctx, businessID, saleID)
	if err != nil {
		return nil, err
	}
	if err := found.StartProcessing(req.Notes); err != nil {
		return nil, err
	}
	if err := s.saleRepo.SaveWithLock(ctx, found); err != nil {
		return nil, err
	}
	response := ToSaleResponse(found)
	return &response, nil
}

// Cancel voids a sale before it is closed
func (s *SaleService) Cancel(ctx context.Context, businessID, saleID uuid.UUID, req CancelSaleRequest) (*SaleResponse, error) {
	found, err := s.saleRepo.FindByIDForBusiness(ctx, businessID, saleID)
	if err != nil {
		return nil, err
	}
	if err := found.Cancel(req.Reason); err != nil {
		return nil, err
	}
	if err := s.saleRepo.SaveWithLock(ctx, found); err != nil {
		return nil, err
	}
	response := ToSaleResponse(found)
	return &response, nil
}
