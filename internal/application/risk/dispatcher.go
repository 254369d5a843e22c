// Package risk wires the periodic-check saga to the event stream: each handler
// mutates saga state inside a transaction and performs the decided step after
// the state is safely persisted.
package risk

import (
	"context"

	"github.com/rs/zerolog"

	allocationapp "github.com/grzesiek-galezowski/smartschedule-go/internal/application/allocation"
	capabilityapp "github.com/grzesiek-galezowski/smartschedule-go/internal/application/capabilityscheduling"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/allocation"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/availability"
	capabilitydomain "github.com/grzesiek-galezowski/smartschedule-go/internal/domain/capabilityscheduling"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/cashflow"
	domain "github.com/grzesiek-galezowski/smartschedule-go/internal/domain/risk"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

// PeriodicCheckSagaDispatcher routes allocation, cashflow and availability
// events into the per-project sagas and executes the steps they decide.
type PeriodicCheckSagaDispatcher struct {
	repository   domain.PeriodicCheckSagaRepository
	finder       *capabilityapp.CapabilityFinder
	transfers    *allocationapp.PotentialTransfersService
	notification domain.PushNotification
	uow          shared.UnitOfWork
	clock        shared.Clock
	log          zerolog.Logger
}

// NewPeriodicCheckSagaDispatcher creates the dispatcher over its collaborators.
func NewPeriodicCheckSagaDispatcher(
	repository domain.PeriodicCheckSagaRepository,
	finder *capabilityapp.CapabilityFinder,
	transfers *allocationapp.PotentialTransfersService,
	notification domain.PushNotification,
	uow shared.UnitOfWork,
	clock shared.Clock,
	log zerolog.Logger,
) *PeriodicCheckSagaDispatcher {
	return &PeriodicCheckSagaDispatcher{
		repository:   repository,
		finder:       finder,
		transfers:    transfers,
		notification: notification,
		uow:          uow,
		clock:        clock,
		log:          log,
	}
}

// HandleProjectAllocationScheduled seeds or updates the project's saga with
// its deadline.
func (d *PeriodicCheckSagaDispatcher) HandleProjectAllocationScheduled(ctx context.Context, event allocation.ProjectAllocationScheduled) error {
	return d.transition(ctx, event.ProjectID, func(saga *domain.PeriodicCheckSaga) domain.Step {
		return saga.HandleProjectScheduled(event)
	})
}

// HandleNotSatisfiedDemands feeds the periodic missing-demands snapshot into
// every mentioned saga.
func (d *PeriodicCheckSagaDispatcher) HandleNotSatisfiedDemands(ctx context.Context, event allocation.NotSatisfiedDemands) error {
	for projectID, missingDemands := range event.MissingDemands {
		demands := missingDemands
		if err := d.transition(ctx, projectID, func(saga *domain.PeriodicCheckSaga) domain.Step {
			return saga.HandleMissingDemands(demands)
		}); err != nil {
			return err
		}
	}
	return nil
}

// HandleEarningsRecalculated stores the project's latest earnings in its saga.
func (d *PeriodicCheckSagaDispatcher) HandleEarningsRecalculated(ctx context.Context, event cashflow.EarningsRecalculated) error {
	return d.transition(ctx, event.ProjectID, func(saga *domain.PeriodicCheckSaga) domain.Step {
		return saga.HandleEarningsRecalculated(event.Earnings)
	})
}

// HandleResourceTakenOver warns every project that was holding the disabled
// resource, or simulates a replacement for valuable ones.
func (d *PeriodicCheckSagaDispatcher) HandleResourceTakenOver(ctx context.Context, event availability.ResourceTakenOver) error {
	interested := make([]allocation.ProjectAllocationsID, 0, len(event.PreviousOwners))
	for _, owner := range event.PreviousOwners {
		if owner.IsNone() {
			continue
		}
		interested = append(interested, allocation.ProjectAllocationsIDOf(owner.ID()))
	}
	if len(interested) == 0 {
		return nil
	}

	var steps map[*domain.PeriodicCheckSaga]domain.Step
	err := d.uow.InTransaction(ctx, func(ctx context.Context) error {
		sagas, err := d.repository.FindByProjectIDIn(ctx, interested)
		if err != nil {
			return err
		}
		steps = make(map[*domain.PeriodicCheckSaga]domain.Step, len(sagas))
		for _, saga := range sagas {
			steps[saga] = saga.HandleResourceTakenOver()
		}
		return nil
	})
	if err != nil {
		return err
	}

	for saga, step := range steps {
		if err := d.perform(ctx, step, saga); err != nil {
			return err
		}
	}
	return nil
}

// HandleWeeklyCheck re-evaluates every saga against its project deadline.
func (d *PeriodicCheckSagaDispatcher) HandleWeeklyCheck(ctx context.Context) error {
	sagas, err := d.repository.FindAll(ctx)
	if err != nil {
		return err
	}
	when := d.clock.Now()
	for _, saga := range sagas {
		if err := d.perform(ctx, saga.HandleWeeklyCheck(when), saga); err != nil {
			return err
		}
	}
	return nil
}

func (d *PeriodicCheckSagaDispatcher) transition(ctx context.Context, projectID allocation.ProjectAllocationsID, handle func(saga *domain.PeriodicCheckSaga) domain.Step) error {
	var saga *domain.PeriodicCheckSaga
	var step domain.Step
	err := d.uow.InTransaction(ctx, func(ctx context.Context) error {
		var err error
		saga, err = d.repository.FindByProjectIDOrCreate(ctx, projectID)
		if err != nil {
			return err
		}
		step = handle(saga)
		return d.repository.Update(ctx, saga)
	})
	if err != nil {
		return err
	}
	return d.perform(ctx, step, saga)
}

func (d *PeriodicCheckSagaDispatcher) perform(ctx context.Context, step domain.Step, saga *domain.PeriodicCheckSaga) error {
	projectID := saga.ProjectID()
	switch step {
	case domain.NotifyAboutDemandsSatisfied:
		d.notification.NotifyDemandsSatisfied(projectID)
	case domain.FindAvailable:
		return d.findAvailableFor(ctx, saga)
	case domain.SuggestReplacement:
		return d.suggestReplacementFor(ctx, saga)
	case domain.NotifyAboutPossibleRisk:
		d.notification.NotifyAboutPossibleRisk(projectID)
	case domain.DoNothing:
	}
	return nil
}

func (d *PeriodicCheckSagaDispatcher) findAvailableFor(ctx context.Context, saga *domain.PeriodicCheckSaga) error {
	replacements, err := d.searchReplacements(ctx, saga.MissingDemands(), d.finder.FindAvailableCapabilities)
	if err != nil {
		return err
	}
	// Stay silent when nothing can cover the demands.
	for _, replacement := range replacements {
		if len(replacement.Replacements.All) > 0 {
			d.notification.NotifyAboutAvailability(saga.ProjectID(), replacements)
			return nil
		}
	}
	return nil
}

func (d *PeriodicCheckSagaDispatcher) suggestReplacementFor(ctx context.Context, saga *domain.PeriodicCheckSaga) error {
	// Relocation candidates may already be blocked by another project, so the
	// search ignores calendars and the simulation prices the move instead.
	replacements, err := d.searchReplacements(ctx, saga.MissingDemands(), d.finder.FindCapabilities)
	if err != nil {
		return err
	}
	for _, replacement := range replacements {
		for _, candidate := range replacement.Replacements.All {
			profit, err := d.transfers.ProfitAfterMovingCapabilities(ctx, saga.ProjectID(), candidate, candidate.TimeSlot)
			if err != nil {
				return err
			}
			if profit > 0 {
				d.log.Info().
					Str("project", saga.ProjectID().String()).
					Str("capability", candidate.ID.String()).
					Float64("profit", profit).
					Msg("profitable relocation found")
				d.notification.NotifyProfitableRelocationFound(saga.ProjectID(), candidate.ID)
			}
		}
	}
	return nil
}

type capabilitySearch func(ctx context.Context, capability shared.Capability, timeSlot shared.TimeSlot) (capabilitydomain.AllocatableCapabilitiesSummary, error)

func (d *PeriodicCheckSagaDispatcher) searchReplacements(ctx context.Context, demands allocation.Demands, search capabilitySearch) ([]domain.AvailableReplacement, error) {
	replacements := make([]domain.AvailableReplacement, 0, len(demands.All))
	for _, demand := range demands.All {
		found, err := search(ctx, demand.Capability, demand.Slot)
		if err != nil {
			return nil, err
		}
		replacements = append(replacements, domain.AvailableReplacement{
			Demand:       demand,
			Replacements: found,
		})
	}
	return replacements, nil
}
