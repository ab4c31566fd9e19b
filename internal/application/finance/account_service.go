package finance

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/ledger"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/salonkit/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// AccountService manages receivable/payable ledger accounts and payment
// application. Derived fields (paid, pending, status) only ever change through
// the aggregate's own recompute; this layer just orchestrates.
type AccountService struct {
	ledgerRepo     ledger.Repository
	sequences      shared.SequenceGenerator
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(ledgerRepo ledger.Repository, sequences shared.SequenceGenerator, logger *zap.Logger) *AccountService {
	return &AccountService{
		ledgerRepo: ledgerRepo,
		sequences:  sequences,
		logger:     logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *AccountService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create opens a ledger account from a purchase invoice or manual entry
func (s *AccountService) Create(ctx context.Context, businessID uuid.UUID, req CreateAccountRequest) (*AccountResponse, error) {
	if req.OriginType == ledger.OriginSale {
		return nil, shared.NewDomainError("INVALID_ORIGIN_TYPE",
			"Sale receivables are created by closing the sale, not directly")
	}

	number, err := s.sequences.Next(ctx, businessID, shared.SequenceAccount)
	if err != nil {
		return nil, err
	}
	prefix := "AR"
	if req.Kind == ledger.KindPayable {
		prefix = "AP"
	}

	amount := valueobject.NewMoneyUSD(req.TotalAmount)
	account, err := ledger.CreateFromOrigin(
		businessID,
		fmt.Sprintf("%s-%06d", prefix, number),
		req.Kind,
		req.CounterpartyID,
		req.OriginType,
		req.OriginID,
		amount,
		req.DueDate,
	)
	if err != nil {
		return nil, err
	}
	if req.Remark != "" {
		account.SetRemark(req.Remark)
	}

	if err := s.ledgerRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, account)

	response := ToAccountResponse(account)
	return &response, nil
}

// GetByID retrieves an account by ID
func (s *AccountService) GetByID(ctx context.Context, businessID, accountID uuid.UUID) (*AccountResponse, error) {
	found, err := s.ledgerRepo.FindByIDForBusiness(ctx, businessID, accountID)
	if err != nil {
		return nil, err
	}
	response := ToAccountResponse(found)
	return &response, nil
}

// GetByOrigin retrieves the account spawned by an origin document
func (s *AccountService) GetByOrigin(ctx context.Context, businessID uuid.UUID, originType ledger.OriginType, originID uuid.UUID) (*AccountResponse, error) {
	found, err := s.ledgerRepo.FindByOrigin(ctx, businessID, originType, originID)
	if err != nil {
		return nil, err
	}
	response := ToAccountResponse(found)
	return &response, nil
}

// List retrieves accounts with filtering and pagination
func (s *AccountService) List(ctx context.Context, businessID uuid.UUID, filter AccountListFilter) ([]AccountResponse, error) {
	domainFilter := ledger.Filter{
		Filter:         shared.DefaultFilter(),
		Kind:           filter.Kind,
		Status:         filter.Status,
		CounterpartyID: filter.CounterpartyID,
		Overdue:        filter.Overdue,
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	accounts, err := s.ledgerRepo.FindAllForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToAccountResponses(accounts), nil
}

// RecordPayment applies a payment to an account. Overpayments and payments
// against settled accounts are rejected by the aggregate; version conflicts
// surface as CONCURRENCY_CONFLICT for the caller to retry.
func (s *AccountService) RecordPayment(ctx context.Context, businessID, accountID uuid.UUID, req RecordPaymentRequest) (*AccountResponse, error) {
	found, err := s.ledgerRepo.FindByIDForBusiness(ctx, businessID, accountID)
	if err != nil {
		return nil, err
	}

	payment, err := found.AddPayment(valueobject.NewMoneyUSD(req.Amount), req.Method, req.ActorID)
	if err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.SaveWithLock(ctx, found); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, found)

	s.logger.Info("payment recorded",
		zap.String("account_id", found.ID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", payment.Amount.String()),
		zap.String("status", found.Status.String()),
	)

	response := ToAccountResponse(found)
	return &response, nil
}

func (s *AccountService) publishEvents(ctx context.Context, account *ledger.Account) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, account.GetDomainEvents()...); err != nil {
		s.logger.Error("failed to publish ledger events",
			zap.String("account_id", account.ID.String()),
			zap.Error(err),
		)
	}
	account.ClearDomainEvents()
}
