package commissions

import (
	"context"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/commission"
	"github.com/salonkit/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CommissionService handles commission settlement operations. Commissions are
// created by the sale close flow; this service only moves them through their
// PENDING -> PAID/CANCELLED lifecycle and serves queries.
type CommissionService struct {
	commissionRepo commission.Repository
	logger         *zap.Logger
}

// NewCommissionService creates a new CommissionService
func NewCommissionService(commissionRepo commission.Repository, logger *zap.Logger) *CommissionService {
	return &CommissionService{
		commissionRepo: commissionRepo,
		logger:         logger,
	}
}

// GetByID retrieves a commission by ID
func (s *CommissionService) GetByID(ctx context.Context, businessID, commissionID uuid.UUID) (*CommissionResponse, error) {
	found, err := s.commissionRepo.FindByIDForBusiness(ctx, businessID, commissionID)
	if err != nil {
		return nil, err
	}
	response := ToCommissionResponse(found)
	return &response, nil
}

// ListBySale retrieves the commissions created when a sale closed
func (s *CommissionService) ListBySale(ctx context.Context, businessID, saleID uuid.UUID) ([]CommissionResponse, error) {
	found, err := s.commissionRepo.FindBySale(ctx, businessID, saleID)
	if err != nil {
		return nil, err
	}
	return ToCommissionResponses(found), nil
}

// ListByExpert retrieves an expert's commissions with filtering
func (s *CommissionService) ListByExpert(ctx context.Context, businessID, expertID uuid.UUID, filter ListFilter) ([]CommissionResponse, error) {
	domainFilter := commission.Filter{
		Filter:   shared.DefaultFilter(),
		Status:   filter.Status,
		LineType: filter.LineType,
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	found, err := s.commissionRepo.FindByExpert(ctx, businessID, expertID, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToCommissionResponses(found), nil
}

// MarkPaid settles a pending commission
func (s *CommissionService) MarkPaid(ctx context.Context, businessID, commissionID uuid.UUID) (*CommissionResponse, error) {
	found, err := s.commissionRepo.FindByIDForBusiness(ctx, businessID, commissionID)
	if err != nil {
		return nil, err
	}
	if err := found.MarkPaid(); err != nil {
		return nil, err
	}
	if err := s.commissionRepo.SaveWithLock(ctx, found); err != nil {
		return nil, err
	}

	s.logger.Info("commission paid",
		zap.String("commission_id", found.ID.String()),
		zap.String("expert_id", found.ExpertID.String()),
		zap.String("amount", found.CommissionAmount.String()),
	)

	response := ToCommissionResponse(found)
	return &response, nil
}

// Cancel voids a pending commission (e.g. when the underlying sale is reversed)
func (s *CommissionService) Cancel(ctx context.Context, businessID, commissionID uuid.UUID, req CancelRequest) (*CommissionResponse, error) {
	found, err := s.commissionRepo.FindByIDForBusiness(ctx, businessID, commissionID)
	if err != nil {
		return nil, err
	}
	if err := found.Cancel(req.Reason); err != nil {
		return nil, err
	}
	if err := s.commissionRepo.SaveWithLock(ctx, found); err != nil {
		return nil, err
	}

	response := ToCommissionResponse(found)
	return &response, nil
}
