package cashdesk

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/cashbox"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/salonkit/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// CashService manages cash registers and their append-only transaction log.
// Register balance updates and transaction appends happen in one storage
// transaction; the register's version check serializes concurrent movements.
type CashService struct {
	registerRepo    cashbox.RegisterRepository
	transactionRepo cashbox.TransactionRepository
	txManager       shared.TransactionManager
	eventPublisher  shared.EventPublisher
	logger          *zap.Logger
}

// NewCashService creates a new CashService
func NewCashService(
	registerRepo cashbox.RegisterRepository,
	transactionRepo cashbox.TransactionRepository,
	txManager shared.TransactionManager,
	logger *zap.Logger,
) *CashService {
	return &CashService{
		registerRepo:    registerRepo,
		transactionRepo: transactionRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *CashService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateRegister creates a cash register with a zero balance
func (s *CashService) CreateRegister(ctx context.Context, businessID uuid.UUID, req CreateRegisterRequest) (*RegisterResponse, error) {
	register, err := cashbox.NewRegister(businessID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.registerRepo.Save(ctx, register); err != nil {
		return nil, err
	}
	response := ToRegisterResponse(register)
	return &response, nil
}

// GetRegister retrieves a register by ID
func (s *CashService) GetRegister(ctx context.Context, businessID, registerID uuid.UUID) (*RegisterResponse, error) {
	found, err := s.registerRepo.FindByIDForBusiness(ctx, businessID, registerID)
	if err != nil {
		return nil, err
	}
	response := ToRegisterResponse(found)
	return &response, nil
}

// RecordTransaction applies a cash movement to a register and appends the
// audit entry. Balance-breaking withdrawals fail with INSUFFICIENT_BALANCE
// before anything is written.
func (s *CashService) RecordTransaction(ctx context.Context, businessID, registerID uuid.UUID, req RecordTransactionRequest) (*TransactionResponse, error) {
	found, err := s.registerRepo.FindByIDForBusiness(ctx, businessID, registerID)
	if err != nil {
		return nil, err
	}

	tx, err := found.ApplyTransaction(req.TransactionType, req.Direction,
		valueobject.NewMoneyUSD(req.Amount), req.ActorID, req.Remark)
	if err != nil {
		return nil, err
	}

	err = s.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := s.registerRepo.SaveWithLock(txCtx, found); err != nil {
			return err
		}
		return s.transactionRepo.Create(txCtx, tx)
	})
	if err != nil {
		return nil, err
	}
	s.publishEvents(ctx, found)

	s.logger.Info("cash transaction recorded",
		zap.String("register_id", found.ID.String()),
		zap.String("transaction_type", tx.TransactionType.String()),
		zap.String("amount", tx.Amount.String()),
		zap.String("new_balance", tx.NewBalance.String()),
	)

	response := ToTransactionResponse(tx)
	return &response, nil
}

// ListTransactions retrieves a register's transactions with filtering
func (s *CashService) ListTransactions(ctx context.Context, businessID, registerID uuid.UUID, filter TransactionListFilter) ([]TransactionResponse, error) {
	domainFilter := cashbox.TransactionFilter{
		Filter:          shared.DefaultFilter(),
		TransactionType: filter.TransactionType,
		From:            filter.From,
		To:              filter.To,
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	transactions, err := s.transactionRepo.FindByRegister(ctx, businessID, registerID, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToTransactionResponses(transactions), nil
}

// GetDaySummary computes the summary of one register day from its
// transactions. Nothing is stored; re-reading the same day always reproduces
// the same summary.
func (s *CashService) GetDaySummary(ctx context.Context, businessID, registerID uuid.UUID, day time.Time) (*DaySummaryResponse, error) {
	if _, err := s.registerRepo.FindByIDForBusiness(ctx, businessID, registerID); err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.FindByRegisterAndDay(ctx, businessID, registerID, day)
	if err != nil {
		return nil, err
	}

	summary := cashbox.SummarizeDay(registerID, day, transactions)
	response := ToDaySummaryResponse(summary)
	return &response, nil
}

func (s *CashService) publishEvents(ctx context.Context, register *cashbox.Register) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, register.GetDomainEvents()...); err != nil {
		s.logger.Error("failed to publish cashbox events",
			zap.String("register_id", register.ID.String()),
			zap.Error(err),
		)
	}
	register.ClearDomainEvents()
}
