package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

type contextKey int

const txKey contextKey = iota

// ContextWithTx stores an open transaction in the context so that nested
// facade calls and repositories join it.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// TxFromContext returns the ambient transaction, or nil when none is open.
func TxFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// DB returns the handle repositories should use: the ambient transaction when
// one is open, the fallback connection otherwise.
func DB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return fallback.WithContext(ctx)
}

// GormUnitOfWork implements shared.UnitOfWork over a gorm connection.
// InTransaction is reentrant: a nested invocation joins the ambient
// transaction instead of opening a new one.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates the unit of work over the given connection.
func NewUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

var _ shared.UnitOfWork = (*GormUnitOfWork)(nil)

// InTransaction runs the operation inside a transaction, committing on nil and
// rolling back every write on error.
func (u *GormUnitOfWork) InTransaction(ctx context.Context, operation func(ctx context.Context) error) error {
	if TxFromContext(ctx) != nil {
		return operation(ctx)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return operation(ContextWithTx(ctx, tx))
	})
}
