package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/commission"
	"github.com/salonkit/backend/internal/domain/ledger"
	"github.com/salonkit/backend/internal/domain/sale"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/salonkit/backend/internal/domain/staff"
	"go.uber.org/zap"
)

// CloseSaleService orchestrates the all-or-nothing close of a sale: every
// line's commission is computed against its expert's current configuration,
// an invoice number is assigned, a receivable is opened for the sale total,
// and everything is persisted in one transaction. Any failure leaves the
// sale untouched in IN_PROCESS.
type CloseSaleService struct {
	saleRepo       sale.Repository
	personRepo     staff.PersonRepository
	commissionRepo commission.Repository
	ledgerRepo     ledger.Repository
	sequences      shared.SequenceGenerator
	txManager      shared.TransactionManager
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewCloseSaleService creates a new CloseSaleService
func NewCloseSaleService(
	saleRepo sale.Repository,
	personRepo staff.PersonRepository,
	commissionRepo commission.Repository,
	ledgerRepo ledger.Repository,
	sequences shared.SequenceGenerator,
	txManager shared.TransactionManager,
	logger *zap.Logger,
) *CloseSaleService {
	return &CloseSaleService{
		saleRepo:       saleRepo,
		personRepo:     personRepo,
		commissionRepo: commissionRepo,
		ledgerRepo:     ledgerRepo,
		sequences:      sequences,
		txManager:      txManager,
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *CloseSaleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Close finalizes a sale. Commissions are computed for every line before any
// state changes; a single bad line (inactive expert, malformed configuration)
// fails the whole close with SALE_NOT_CLOSABLE.
func (s *CloseSaleService) Close(ctx context.Context, businessID, saleID uuid.UUID, req CloseSaleRequest) (*CloseSaleResponse, error) {
	found, err := s.saleRepo.FindByIDForBusiness(ctx, businessID, saleID)
	if err != nil {
		return nil, err
	}

	if !found.Status.CanTransitionTo(sale.StatusClosed) {
		return nil, shared.NewDomainError(shared.CodeSaleNotClosable,
			fmt.Sprintf("Sale %s cannot be closed from %s status", found.SaleNumber, found.Status))
	}
	if len(found.Items) == 0 {
		return nil, shared.NewDomainError(shared.CodeSaleNotClosable,
			fmt.Sprintf("Sale %s has no line items to close", found.SaleNumber))
	}

	results, err := s.computeCommissions(ctx, found)
	if err != nil {
		return nil, err
	}

	invoiceNumber, err := s.sequences.Next(ctx, businessID, shared.SequenceInvoice)
	if err != nil {
		return nil, err
	}
	if err := found.Close(invoiceNumber, req.ActorID); err != nil {
		return nil, err
	}

	accountNumber, err := s.sequences.Next(ctx, businessID, shared.SequenceAccount)
	if err != nil {
		return nil, err
	}
	receivable, err := ledger.CreateFromOrigin(
		businessID,
		fmt.Sprintf("AR-%06d", accountNumber),
		ledger.KindReceivable,
		found.ClientID,
		ledger.OriginSale,
		found.ID,
		found.GetTotalAmountMoney(),
		nil,
	)
	if err != nil {
		return nil, err
	}

	err = s.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// The version check on the sale is the concurrency guard: a racing
		// close loses here and the whole transaction rolls back, so no
		// orphan commissions or receivables can exist.
		if err := s.saleRepo.SaveWithLock(txCtx, found); err != nil {
			return err
		}
		if err := s.commissionRepo.CreateBatch(txCtx, results); err != nil {
			return err
		}
		return s.ledgerRepo.Save(txCtx, receivable)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, found, results, receivable)

	s.logger.Info("sale closed",
		zap.String("sale_id", found.ID.String()),
		zap.Int64("invoice_number", invoiceNumber),
		zap.Int("commissions", len(results)),
		zap.String("total_amount", found.TotalAmount.String()),
	)

	response := &CloseSaleResponse{
		Sale:        ToSaleResponse(found),
		Commissions: ToCommissionResponses(results),
	}
	return response, nil
}

// computeCommissions builds one commission per line item using each expert's
// configuration as of now. Read-only: nothing is persisted here.
func (s *CloseSaleService) computeCommissions(ctx context.Context, found *sale.Sale) ([]*commission.Commission, error) {
	// Experts repeat across lines; fetch each once
	experts := make(map[uuid.UUID]staff.CommissionConfig)
	commissions := make([]*commission.Commission, 0, len(found.Items))

	for _, item := range found.Items {
		config, ok := experts[item.ExpertID]
		if !ok {
			expert, err := s.personRepo.FindActiveExpert(ctx, found.BusinessID, item.ExpertID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return nil, shared.NewDomainError(shared.CodeSaleNotClosable,
						fmt.Sprintf("Line item %s references expert %s who is not an active expert", item.ID, item.ExpertID))
				}
				return nil, err
			}
			config, err = expert.ExpertConfig()
			if err != nil {
				return nil, err
			}
			experts[item.ExpertID] = config
		}

		line := commission.LineInput{
			LineItemID:  item.ID,
			LineType:    commission.LineType(item.ItemType),
			GrossAmount: item.GrossAmount,
			InputCosts:  item.TotalInputCosts(),
		}
		result, err := commission.Compute(line, config)
		if err != nil {
			return nil, err
		}

		c, err := commission.NewCommission(found.BusinessID, found.ID, item.ExpertID, line, result)
		if err != nil {
			return nil, err
		}
		commissions = append(commissions, c)
	}

	return commissions, nil
}

func (s *CloseSaleService) publishEvents(ctx context.Context, found *sale.Sale, commissions []*commission.Commission, receivable *ledger.Account) {
	if s.eventPublisher == nil {
		return
	}

	events := found.GetDomainEvents()
	for _, c := range commissions {
		events = append(events, c.GetDomainEvents()...)
	}
	events = append(events, receivable.GetDomainEvents()...)

	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish close events",
			zap.String("sale_id", found.ID.String()),
			zap.Error(err),
		)
	}

	found.ClearDomainEvents()
	for _, c := range commissions {
		c.ClearDomainEvents()
	}
	receivable.ClearDomainEvents()
}
