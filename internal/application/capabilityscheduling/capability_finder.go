package capabilityscheduling

import (
	"context"

	availabilityapp "github.com/grzesiek-galezowski/smartschedule-go/internal/application/availability"
	availabilitydomain "github.com/grzesiek-galezowski/smartschedule-go/internal/domain/availability"
	domain "github.com/grzesiek-galezowski/smartschedule-go/internal/domain/capabilityscheduling"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

// CapabilityFinder answers capability searches. FindAvailableCapabilities is
// two-phase: a structural match on the declarations followed by a calendar
// check that drops the ones already blocked for the slot.
type CapabilityFinder struct {
	repository   domain.AllocatableCapabilityRepository
	availability *availabilityapp.AvailabilityFacade
}

// NewCapabilityFinder creates the finder over its collaborators.
func NewCapabilityFinder(repository domain.AllocatableCapabilityRepository, availability *availabilityapp.AvailabilityFacade) *CapabilityFinder {
	return &CapabilityFinder{repository: repository, availability: availability}
}

// FindAvailableCapabilities returns declarations matching the capability whose
// calendars are still free for the whole slot.
func (f *CapabilityFinder) FindAvailableCapabilities(ctx context.Context, capability shared.Capability, timeSlot shared.TimeSlot) (domain.AllocatableCapabilitiesSummary, error) {
	declarations, err := f.repository.FindByCapabilityWithin(ctx, capability.Name, capability.Type, timeSlot.From, timeSlot.To)
	if err != nil {
		return domain.AllocatableCapabilitiesSummary{}, err
	}
	available, err := f.filterAvailabilityInTimeSlot(ctx, declarations, timeSlot)
	if err != nil {
		return domain.AllocatableCapabilitiesSummary{}, err
	}
	return toSummary(available), nil
}

// FindCapabilities returns declarations matching the capability regardless of
// their current calendar state.
func (f *CapabilityFinder) FindCapabilities(ctx context.Context, capability shared.Capability, timeSlot shared.TimeSlot) (domain.AllocatableCapabilitiesSummary, error) {
	declarations, err := f.repository.FindByCapabilityWithin(ctx, capability.Name, capability.Type, timeSlot.From, timeSlot.To)
	if err != nil {
		return domain.AllocatableCapabilitiesSummary{}, err
	}
	return toSummary(declarations), nil
}

// FindByID returns the summaries of the given declarations, skipping unknown ids.
func (f *CapabilityFinder) FindByID(ctx context.Context, ids []domain.AllocatableCapabilityID) (domain.AllocatableCapabilitiesSummary, error) {
	declarations, err := f.repository.FindAllByID(ctx, ids)
	if err != nil {
		return domain.AllocatableCapabilitiesSummary{}, err
	}
	return toSummary(declarations), nil
}

// FindOneByID returns one declaration's summary, or nil when unknown.
func (f *CapabilityFinder) FindOneByID(ctx context.Context, id domain.AllocatableCapabilityID) (*domain.AllocatableCapabilitySummary, error) {
	declaration, err := f.repository.FindByID(ctx, id)
	if err != nil || declaration == nil {
		return nil, err
	}
	summary := toSummaryOne(declaration)
	return &summary, nil
}

// IsPresent reports whether the declaration exists.
func (f *CapabilityFinder) IsPresent(ctx context.Context, id domain.AllocatableCapabilityID) (bool, error) {
	return f.repository.ExistsByID(ctx, id)
}

func (f *CapabilityFinder) filterAvailabilityInTimeSlot(ctx context.Context, declarations []*domain.AllocatableCapability, timeSlot shared.TimeSlot) ([]*domain.AllocatableCapability, error) {
	if len(declarations) == 0 {
		return nil, nil
	}
	resourceIDs := make([]availabilitydomain.ResourceID, 0, len(declarations))
	for _, declaration := range declarations {
		resourceIDs = append(resourceIDs, declaration.ID().ToAvailabilityResourceID())
	}

	calendars, err := f.availability.LoadCalendars(ctx, resourceIDs, timeSlot)
	if err != nil {
		return nil, err
	}

	available := make([]*domain.AllocatableCapability, 0, len(declarations))
	for _, declaration := range declarations {
		calendar := calendars.Get(declaration.ID().ToAvailabilityResourceID())
		if calendar.IsAvailableFor(timeSlot) {
			available = append(available, declaration)
		}
	}
	return available, nil
}

func toSummary(declarations []*domain.AllocatableCapability) domain.AllocatableCapabilitiesSummary {
	all := make([]domain.AllocatableCapabilitySummary, 0, len(declarations))
	for _, declaration := range declarations {
		all = append(all, toSummaryOne(declaration))
	}
	return domain.AllocatableCapabilitiesSummary{All: all}
}

func toSummaryOne(declaration *domain.AllocatableCapability) domain.AllocatableCapabilitySummary {
	return domain.AllocatableCapabilitySummary{
		ID:           declaration.ID(),
		ResourceID:   declaration.ResourceID(),
		Capabilities: declaration.Capabilities(),
		TimeSlot:     declaration.TimeSlot(),
	}
}
