// Package cashflow exposes the income/cost bookkeeping use cases.
package cashflow

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/allocation"
	domain "github.com/grzesiek-galezowski/smartschedule-go/internal/domain/cashflow"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

// CashFlowFacade records project income and cost and republishes the derived
// earnings so the risk saga can track project value.
type CashFlowFacade struct {
	repository domain.CashflowRepository
	publisher  shared.EventsPublisher
	uow        shared.UnitOfWork
	clock      shared.Clock
	log        zerolog.Logger
}

// NewCashFlowFacade creates the facade over its collaborators.
func NewCashFlowFacade(
	repository domain.CashflowRepository,
	publisher shared.EventsPublisher,
	uow shared.UnitOfWork,
	clock shared.Clock,
	log zerolog.Logger,
) *CashFlowFacade {
	return &CashFlowFacade{
		repository: repository,
		publisher:  publisher,
		uow:        uow,
		clock:      clock,
		log:        log,
	}
}

// AddIncomeAndCost records the project's income and cost, creating the record
// on first use, and publishes the recalculated earnings.
func (f *CashFlowFacade) AddIncomeAndCost(ctx context.Context, projectID allocation.ProjectAllocationsID, income domain.Income, cost domain.Cost) error {
	return f.uow.InTransaction(ctx, func(ctx context.Context) error {
		record, err := f.repository.FindByID(ctx, projectID)
		if err != nil {
			return err
		}
		created := record == nil
		if created {
			record = domain.NewCashflow(projectID)
		}
		record.Update(income, cost)

		if created {
			err = f.repository.Add(ctx, record)
		} else {
			err = f.repository.Update(ctx, record)
		}
		if err != nil {
			return err
		}

		f.log.Debug().
			Str("project", projectID.String()).
			Int64("earnings", int64(record.Earnings())).
			Msg("earnings recalculated")
		event := domain.NewEarningsRecalculated(projectID, record.Earnings(), f.clock.Now())
		return f.publisher.Publish(ctx, event)
	})
}

// Find returns the project's current earnings, failing when no cashflow was
// recorded yet.
func (f *CashFlowFacade) Find(ctx context.Context, projectID allocation.ProjectAllocationsID) (domain.Earnings, error) {
	record, err := f.repository.GetByID(ctx, projectID)
	if err != nil {
		return 0, err
	}
	return record.Earnings(), nil
}

// FindAllEarnings snapshots every project's earnings.
func (f *CashFlowFacade) FindAllEarnings(ctx context.Context) (map[allocation.ProjectAllocationsID]domain.Earnings, error) {
	records, err := f.repository.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	earnings := make(map[allocation.ProjectAllocationsID]domain.Earnings, len(records))
	for _, record := range records {
		earnings[record.ProjectID()] = record.Earnings()
	}
	return earnings, nil
}
