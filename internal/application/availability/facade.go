// Package availability exposes the calendar-management use cases: creating
// slots, blocking, releasing and disabling them, and reading calendars.
package availability

import (
	"context"

	"github.com/rs/zerolog"

	domain "github.com/grzesiek-galezowski/smartschedule-go/internal/domain/availability"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/availability/segment"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

// AvailabilityFacade coordinates availability writes. Every mutating method
// normalizes its slot to segment boundaries, runs inside a transaction and
// reports contention as a plain false.
type AvailabilityFacade struct {
	repository domain.ResourceAvailabilityRepository
	readModel  domain.AvailabilityReadModel
	publisher  shared.EventsPublisher
	uow        shared.UnitOfWork
	clock      shared.Clock
	log        zerolog.Logger
}

// NewAvailabilityFacade creates the facade over its collaborators.
func NewAvailabilityFacade(
	repository domain.ResourceAvailabilityRepository,
	readModel domain.AvailabilityReadModel,
	publisher shared.EventsPublisher,
	uow shared.UnitOfWork,
	clock shared.Clock,
	log zerolog.Logger,
) *AvailabilityFacade {
	return &AvailabilityFacade{
		repository: repository,
		readModel:  readModel,
		publisher:  publisher,
		uow:        uow,
		clock:      clock,
		log:        log,
	}
}

// CreateResourceSlots creates unowned availability records covering the slot.
func (f *AvailabilityFacade) CreateResourceSlots(ctx context.Context, resourceID domain.ResourceID, timeSlot shared.TimeSlot) error {
	grouped := domain.GroupedAvailabilityOf(resourceID, timeSlot)
	return f.uow.InTransaction(ctx, func(ctx context.Context) error {
		return f.repository.SaveNew(ctx, grouped)
	})
}

// CreateResourceSlotsWithParent creates records for a resource grouped under a
// parent.
func (f *AvailabilityFacade) CreateResourceSlotsWithParent(ctx context.Context, resourceID, parentID domain.ResourceID, timeSlot shared.TimeSlot) error {
	grouped := domain.GroupedAvailabilityWithParentOf(resourceID, parentID, timeSlot)
	return f.uow.InTransaction(ctx, func(ctx context.Context) error {
		return f.repository.SaveNew(ctx, grouped)
	})
}

// Block takes every segment of the slot for the requester. Returns false when
// no slots exist, any segment refuses, or a concurrent writer won the race.
func (f *AvailabilityFacade) Block(ctx context.Context, resourceID domain.ResourceID, timeSlot shared.TimeSlot, requester domain.Owner) (bool, error) {
	blocked := false
	err := f.uow.InTransaction(ctx, func(ctx context.Context) error {
		grouped, err := f.findGrouped(ctx, resourceID, timeSlot)
		if err != nil {
			return err
		}
		blocked, err = f.blockGrouped(ctx, grouped, requester)
		return err
	})
	if err != nil {
		return false, err
	}
	return blocked, nil
}

func (f *AvailabilityFacade) blockGrouped(ctx context.Context, grouped *domain.ResourceGroupedAvailability, requester domain.Owner) (bool, error) {
	if grouped.HasNoSlots() || !grouped.Block(requester) {
		return false, nil
	}
	return f.repository.SaveCheckingVersion(ctx, grouped)
}

// Release frees every segment of the slot held by the requester.
func (f *AvailabilityFacade) Release(ctx context.Context, resourceID domain.ResourceID, timeSlot shared.TimeSlot, requester domain.Owner) (bool, error) {
	released := false
	err := f.uow.InTransaction(ctx, func(ctx context.Context) error {
		grouped, err := f.findGrouped(ctx, resourceID, timeSlot)
		if err != nil {
			return err
		}
		if grouped.HasNoSlots() || !grouped.Release(requester) {
			return nil
		}
		released, err = f.repository.SaveCheckingVersion(ctx, grouped)
		return err
	})
	if err != nil {
		return false, err
	}
	return released, nil
}

// Disable forcibly takes the slot over for the requester, evicting current
// owners. Publishes ResourceTakenOver naming the evicted owners.
func (f *AvailabilityFacade) Disable(ctx context.Context, resourceID domain.ResourceID, timeSlot shared.TimeSlot, requester domain.Owner) (bool, error) {
	disabled := false
	err := f.uow.InTransaction(ctx, func(ctx context.Context) error {
		grouped, err := f.findGrouped(ctx, resourceID, timeSlot)
		if err != nil {
			return err
		}
		if grouped.HasNoSlots() {
			return nil
		}
		previousOwners := grouped.Owners()
		if !grouped.Disable(requester) {
			return nil
		}
		disabled, err = f.repository.SaveCheckingVersion(ctx, grouped)
		if err != nil || !disabled {
			return err
		}
		event := domain.NewResourceTakenOver(resourceID, previousOwners, timeSlot, f.clock.Now())
		return f.publisher.Publish(ctx, event)
	})
	if err != nil {
		return false, err
	}
	if disabled {
		f.log.Info().
			Str("resource", resourceID.String()).
			Str("requester", requester.String()).
			Msg("resource disabled, previous owners evicted")
	}
	return disabled, nil
}

// BlockRandomAvailable blocks the whole slot of one randomly chosen resource
// among the candidates. Returns the chosen resource id, or the none sentinel
// when no candidate could be blocked.
func (f *AvailabilityFacade) BlockRandomAvailable(ctx context.Context, resourceIDs []domain.ResourceID, within shared.TimeSlot, requester domain.Owner) (domain.ResourceID, error) {
	normalized := segment.NormalizeToSegmentBoundaries(within, segment.DefaultSegment())
	chosen := domain.NoResourceID()
	err := f.uow.InTransaction(ctx, func(ctx context.Context) error {
		grouped, err := f.repository.LoadAvailabilitiesOfRandomResourceWithin(ctx, resourceIDs, normalized)
		if err != nil {
			return err
		}
		blocked, err := f.blockGrouped(ctx, grouped, requester)
		if err != nil {
			return err
		}
		if blocked {
			chosen = grouped.ResourceID()
		}
		return nil
	})
	if err != nil {
		return domain.NoResourceID(), err
	}
	return chosen, nil
}

// Find loads the grouped availability of the resource within the slot.
func (f *AvailabilityFacade) Find(ctx context.Context, resourceID domain.ResourceID, within shared.TimeSlot) (*domain.ResourceGroupedAvailability, error) {
	return f.findGrouped(ctx, resourceID, within)
}

// FindByParentID loads the grouped availability of every resource under the
// parent within the slot.
func (f *AvailabilityFacade) FindByParentID(ctx context.Context, parentID domain.ResourceID, within shared.TimeSlot) (*domain.ResourceGroupedAvailability, error) {
	normalized := segment.NormalizeToSegmentBoundaries(within, segment.DefaultSegment())
	records, err := f.repository.LoadAllByParentIDWithinSlot(ctx, parentID, normalized)
	if err != nil {
		return nil, err
	}
	return domain.NewResourceGroupedAvailability(records), nil
}

// LoadCalendar projects one resource's calendar within the slot.
func (f *AvailabilityFacade) LoadCalendar(ctx context.Context, resourceID domain.ResourceID, within shared.TimeSlot) (domain.Calendar, error) {
	normalized := segment.NormalizeToSegmentBoundaries(within, segment.DefaultSegment())
	return f.readModel.Load(ctx, resourceID, normalized)
}

// LoadCalendars projects several resources' calendars within the slot.
func (f *AvailabilityFacade) LoadCalendars(ctx context.Context, resourceIDs []domain.ResourceID, within shared.TimeSlot) (domain.Calendars, error) {
	normalized := segment.NormalizeToSegmentBoundaries(within, segment.DefaultSegment())
	return f.readModel.LoadAll(ctx, resourceIDs, normalized)
}

func (f *AvailabilityFacade) findGrouped(ctx context.Context, resourceID domain.ResourceID, within shared.TimeSlot) (*domain.ResourceGroupedAvailability, error) {
	normalized := segment.NormalizeToSegmentBoundaries(within, segment.DefaultSegment())
	records, err := f.repository.LoadAllWithinSlot(ctx, resourceID, normalized)
	if err != nil {
		return nil, err
	}
	return domain.NewResourceGroupedAvailability(records), nil
}
