package shared

import "context"

// TransactionManager runs a function within a storage transaction. Every
// repository call made with the ctx passed to fn joins the same transaction;
// returning an error rolls everything back.
type TransactionManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoopTransactionManager runs the function without any transaction.
// Useful in tests.
type NoopTransactionManager struct{}

// Transaction runs fn directly
func (NoopTransactionManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
