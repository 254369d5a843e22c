// Package capabilityscheduling exposes the use cases around capability
// declarations: scheduling them for periods and finding them for allocation.
package capabilityscheduling

import (
	"context"

	"github.com/rs/zerolog"

	availabilityapp "github.com/grzesiek-galezowski/smartschedule-go/internal/application/availability"
	domain "github.com/grzesiek-galezowski/smartschedule-go/internal/domain/capabilityscheduling"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

// CapabilityScheduler declares capabilities for periods. Each declaration gets
// its own availability calendar so it can be blocked independently.
type CapabilityScheduler struct {
	repository   domain.AllocatableCapabilityRepository
	availability *availabilityapp.AvailabilityFacade
	uow          shared.UnitOfWork
	log          zerolog.Logger
}

// NewCapabilityScheduler creates the scheduler over its collaborators.
func NewCapabilityScheduler(
	repository domain.AllocatableCapabilityRepository,
	availability *availabilityapp.AvailabilityFacade,
	uow shared.UnitOfWork,
	log zerolog.Logger,
) *CapabilityScheduler {
	return &CapabilityScheduler{
		repository:   repository,
		availability: availability,
		uow:          uow,
		log:          log,
	}
}

// ScheduleResourceCapabilitiesForPeriod declares each selector for the
// resource during the slot and opens a calendar per declaration.
func (s *CapabilityScheduler) ScheduleResourceCapabilitiesForPeriod(ctx context.Context, resourceID domain.AllocatableResourceID, capabilities []domain.CapabilitySelector, timeSlot shared.TimeSlot) ([]domain.AllocatableCapabilityID, error) {
	declarations := make([]*domain.AllocatableCapability, 0, len(capabilities))
	for _, selector := range capabilities {
		declarations = append(declarations, domain.NewAllocatableCapability(resourceID, selector, timeSlot))
	}

	ids, err := s.saveWithCalendars(ctx, declarations)
	if err != nil {
		return nil, err
	}
	s.log.Debug().
		Str("resource", resourceID.String()).
		Int("capabilities", len(ids)).
		Msg("resource capabilities scheduled")
	return ids, nil
}

// ScheduleMultipleResourcesForPeriod declares one shared capability for many
// resources at once.
func (s *CapabilityScheduler) ScheduleMultipleResourcesForPeriod(ctx context.Context, resourceIDs []domain.AllocatableResourceID, capability shared.Capability, timeSlot shared.TimeSlot) ([]domain.AllocatableCapabilityID, error) {
	declarations := make([]*domain.AllocatableCapability, 0, len(resourceIDs))
	for _, resourceID := range resourceIDs {
		declarations = append(declarations,
			domain.NewAllocatableCapability(resourceID, domain.CanJustPerform(capability), timeSlot))
	}
	return s.saveWithCalendars(ctx, declarations)
}

// FindResourceCapabilities returns the declaration ids of the resource for the
// named capability within the period.
func (s *CapabilityScheduler) FindResourceCapabilities(ctx context.Context, resourceID domain.AllocatableResourceID, capability shared.Capability, period shared.TimeSlot) ([]domain.AllocatableCapabilityID, error) {
	declaration, err := s.repository.FindByResourceIDAndCapabilityAndTimeSlot(ctx, resourceID, capability.Name, capability.Type, period)
	if err != nil {
		return nil, err
	}
	if declaration == nil {
		return nil, nil
	}
	return []domain.AllocatableCapabilityID{declaration.ID()}, nil
}

// FindAllResourceCapabilities returns every declaration id of the resource for
// the period.
func (s *CapabilityScheduler) FindAllResourceCapabilities(ctx context.Context, resourceID domain.AllocatableResourceID, period shared.TimeSlot) ([]domain.AllocatableCapabilityID, error) {
	declarations, err := s.repository.FindByResourceIDAndTimeSlot(ctx, resourceID, period)
	if err != nil {
		return nil, err
	}
	ids := make([]domain.AllocatableCapabilityID, 0, len(declarations))
	for _, declaration := range declarations {
		ids = append(ids, declaration.ID())
	}
	return ids, nil
}

func (s *CapabilityScheduler) saveWithCalendars(ctx context.Context, declarations []*domain.AllocatableCapability) ([]domain.AllocatableCapabilityID, error) {
	ids := make([]domain.AllocatableCapabilityID, 0, len(declarations))
	err := s.uow.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.repository.SaveAll(ctx, declarations); err != nil {
			return err
		}
		for _, declaration := range declarations {
			id := declaration.ID()
			if err := s.availability.CreateResourceSlots(ctx, id.ToAvailabilityResourceID(), declaration.TimeSlot()); err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
