package persistence

import (
	"context"

	"github.com/salonkit/backend/internal/domain/shared"
	"gorm.io/gorm"
)

type txContextKey struct{}

// withTx returns a context carrying the transactional DB handle
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// dbFromContext returns the transactional DB handle from the context if one
// was started by GormTransactionManager, otherwise the fallback connection.
// Every repository routes its queries through this so repository calls made
// inside a transaction automatically join it.
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}

// GormTransactionManager implements shared.TransactionManager on top of GORM.
// The transaction handle is propagated through the context, so the
// application layer can group repository calls atomically without depending
// on GORM.
type GormTransactionManager struct {
	db *gorm.DB
}

// NewGormTransactionManager creates a new GormTransactionManager
func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

// Transaction executes fn inside a database transaction. The callback
// receives a derived context; repository calls using that context run on the
// same transaction and the whole group commits or rolls back together.
func (m *GormTransactionManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}

// Ensure GormTransactionManager implements TransactionManager
var _ shared.TransactionManager = (*GormTransactionManager)(nil)
