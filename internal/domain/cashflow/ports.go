package cashflow

import (
	"context"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/allocation"
)

// CashflowRepository persists per-project cashflow records.
type CashflowRepository interface {
	Add(ctx context.Context, cashflow *Cashflow) error
	Update(ctx context.Context, cashflow *Cashflow) error

	// FindByID tolerates absence and returns nil when unknown.
	FindByID(ctx context.Context, projectID allocation.ProjectAllocationsID) (*Cashflow, error)

	// GetByID requires existence and fails with NotFoundError when unknown.
	GetByID(ctx context.Context, projectID allocation.ProjectAllocationsID) (*Cashflow, error)

	FindAll(ctx context.Context) ([]*Cashflow, error)
}
